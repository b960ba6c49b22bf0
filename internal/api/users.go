package api

import (
	"context"
	"io"
	"net/url"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// UsersService groups the /users endpoints (admin-facing user
// management plus the intern roster).
type UsersService struct {
	c *Client
}

// UserFilter narrows List results. Zero values are omitted.
type UserFilter struct {
	Role   string
	Search string
}

func (f UserFilter) query() string {
	v := url.Values{}
	if f.Role != "" {
		v.Set("role", f.Role)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// List returns users matching the filter.
func (s *UsersService) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	var users []model.User
	if err := s.c.get(ctx, "/users"+filter.query(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Interns returns the intern roster.
func (s *UsersService) Interns(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.c.get(ctx, "/users/interns", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns a single user by ID.
func (s *UsersService) Get(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.c.get(ctx, "/users/"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a user. payload is passed through opaquely.
func (s *UsersService) Create(ctx context.Context, payload interface{}) (*model.User, error) {
	var user model.User
	if err := s.c.post(ctx, "/users", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user and returns the server's representation.
func (s *UsersService) Update(ctx context.Context, id string, payload interface{}) (*model.User, error) {
	var user model.User
	if err := s.c.put(ctx, "/users/"+id, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/users/"+id)
}

// UploadAvatar uploads a profile image for the user.
func (s *UsersService) UploadAvatar(
	ctx context.Context,
	id string,
	fileName string,
	file io.Reader,
) (*model.User, error) {
	var user model.User
	err := s.c.upload(
		ctx, "POST", "/users/"+id+"/avatar",
		"avatar", fileName, file, nil, &user,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
