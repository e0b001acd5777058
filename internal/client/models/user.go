// Package models defines the client-side data model of the Momento feed:
// users, posts, and comments. The JSON tags match the remote API's
// snake_case serialization, and the same encoding is reused for the local
// mirror snapshots.
package models

// User is the authenticated identity as reported by the remote API.
type User struct {
	// ID is the user's UUID.
	ID string `json:"id"`

	Email string `json:"email"`

	IsActive    bool `json:"is_active"`
	IsSuperuser bool `json:"is_superuser"`
	IsVerified  bool `json:"is_verified"`
}

// RegisterRequest is the registration payload sent to POST /auth/register.
// New accounts are always created active, non-superuser, unverified; the
// server owns any later promotion.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	IsVerified  bool   `json:"is_verified"`
}

// NewRegisterRequest builds the fixed-shape registration payload.
func NewRegisterRequest(email, password string) RegisterRequest {
	return RegisterRequest{
		Email:       email,
		Password:    password,
		IsActive:    true,
		IsSuperuser: false,
		IsVerified:  false,
	}
}
