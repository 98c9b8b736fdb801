package user

import "handyhub/models"

// RegisterInput is the allow-listed signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateProfileInput carries the profile fields a user may edit. Nil
// pointers leave the field unchanged.
type UpdateProfileInput struct {
	Name   *string
	Phone  *string
	Avatar *string
}

// AuthResult pairs an account with its freshly issued token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages customer accounts.
type UserService interface {
	Register(in RegisterInput) (*AuthResult, error)
	Authenticate(email, password string) (*AuthResult, error)
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(id string, in UpdateProfileInput) (*models.User, error)
}
