package api

import (
	"context"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// AuthService groups the /auth endpoints.
type AuthService struct {
	c *Client
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload is the registration request body. The backend decides
// which fields are required; the client passes them through.
type RegisterPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateDetailsPayload is the profile update request body.
type UpdateDetailsPayload struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// AuthResult is the token+user pair returned by login and register.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a token and user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := s.c.post(ctx, "/auth/login", Credentials{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns the new session.
func (s *AuthService) Register(ctx context.Context, payload RegisterPayload) (*AuthResult, error) {
	var result AuthResult
	if err := s.c.post(ctx, "/auth/register", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the server-side session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.post(ctx, "/auth/logout", nil, nil)
}

// Me returns the authenticated user's record.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateDetails updates profile fields and returns the server's
// representation of the user, which replaces the local copy wholesale.
func (s *AuthService) UpdateDetails(ctx context.Context, payload UpdateDetailsPayload) (*model.User, error) {
	var user model.User
	if err := s.c.put(ctx, "/auth/updatedetails", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword changes the account password. The backend issues a
// fresh token on success.
func (s *AuthService) UpdatePassword(ctx context.Context, current, next string) (*AuthResult, error) {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	var result AuthResult
	if err := s.c.put(ctx, "/auth/updatepassword", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
