package admin

import (
	"handyhub/models"
	"handyhub/utils"
)

// AuthResult pairs an admin account with its freshly issued token.
type AuthResult struct {
	Admin *models.Admin `json:"admin"`
	Token string        `json:"token"`
}

// VerificationInput is the admin decision on a provider verification.
type VerificationInput struct {
	Status   string
	Document string
	Note     string
}

// PlatformStats is the dashboard summary.
type PlatformStats struct {
	Bookings       map[string]int64 `json:"bookings"`
	TotalRevenue   float64          `json:"totalRevenue"`
	TotalUsers     int64            `json:"totalUsers"`
	TotalProviders int64            `json:"totalProviders"`
	TopServices    []models.Service `json:"topServices"`
}

// AdminService backs the moderation dashboard.
type AdminService interface {
	Authenticate(email, password string) (*AuthResult, error)
	ListUsers(status string, page utils.PageParams) ([]models.User, int64, error)
	ListProviders(status string, page utils.PageParams) ([]models.Provider, int64, error)
	SetProviderVerification(providerID string, in VerificationInput) (*models.Provider, error)
	Stats() (*PlatformStats, error)
}
