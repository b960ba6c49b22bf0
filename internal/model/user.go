package model

import "time"

// Role identifies the authorization level of an account. It is the only
// authorization branch point the client observes; everything else is
// enforced server-side.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleIntern Role = "intern"
)

// User is the identity record returned by the auth and users endpoints.
// Profile fields beyond Role are passed through for display only.
type User struct {
	// ID is the server-assigned identifier.
	ID string `json:"_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is the login identifier.
	Email string `json:"email"`

	// Role determines which dashboard is rendered.
	Role Role `json:"role"`

	// Department is the organizational unit (interns only).
	Department string `json:"department,omitempty"`

	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`

	// Avatar is a URL or path to the profile image.
	Avatar string `json:"avatar,omitempty"`

	// Supervisor is the ID of the supervising admin (interns only).
	Supervisor string `json:"supervisor,omitempty"`

	// StartDate and EndDate bound the internship period.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// IsActive reports whether the account is enabled.
	IsActive bool `json:"isActive"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"createdAt"`
}
