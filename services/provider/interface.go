package provider

import "handyhub/models"

// RegisterInput is the provider signup payload.
type RegisterInput struct {
	BusinessName string
	Email        string
	Phone        string
	Password     string
}

// UpdateProfileInput carries the editable profile fields. Nil pointers
// leave the field unchanged.
type UpdateProfileInput struct {
	BusinessName *string
	Phone        *string
	Bio          *string
	Avatar       *string
	Address      *string
	ServiceArea  *string
}

// AuthResult pairs a provider account with its freshly issued token.
type AuthResult struct {
	Provider *models.Provider `json:"provider"`
	Token    string           `json:"token"`
}

// ProviderService manages provider accounts.
type ProviderService interface {
	Register(in RegisterInput) (*AuthResult, error)
	Authenticate(email, password string) (*AuthResult, error)
	GetProviderByID(id string) (*models.Provider, error)
	UpdateProfile(id string, in UpdateProfileInput) (*models.Provider, error)
}
