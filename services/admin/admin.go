package admin

import (
	"errors"
	"strings"
	"time"

	adminRepo "handyhub/database/repository/admin"
	bookingRepo "handyhub/database/repository/booking"
	providerRepo "handyhub/database/repository/provider"
	serviceRepo "handyhub/database/repository/service"
	userRepo "handyhub/database/repository/user"
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL        = 12 * time.Hour
	topServiceCount = 5
)

// DefaultAdminService is the production AdminService.
type DefaultAdminService struct {
	Repo         adminRepo.AdminRepository
	UserRepo     userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
	ServiceRepo  serviceRepo.ServiceRepository
	BookingRepo  bookingRepo.BookingRepository
	Tokens       *utils.TokenManager
}

// Authenticate verifies admin credentials and issues an admin-audience
// token. Admin accounts are provisioned out of band, there is no signup.
func (s *DefaultAdminService) Authenticate(email, password string) (*AuthResult, error) {
	adm, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
	}
	if adm.Status != models.AccountActive {
		return nil, utils.NewAppError(utils.CodeForbidden, "account is not active")
	}
	token, err := s.Tokens.Issue(adm.ID, utils.AudienceAdmin, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Admin: adm, Token: token}, nil
}

// ListUsers pages through user accounts, optionally filtered by status.
func (s *DefaultAdminService) ListUsers(status string, page utils.PageParams) ([]models.User, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.UserRepo.List(filter, page)
}

// ListProviders pages through provider accounts, optionally filtered by
// account status.
func (s *DefaultAdminService) ListProviders(status string, page utils.PageParams) ([]models.Provider, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.ProviderRepo.List(filter, page)
}

// SetProviderVerification records the admin decision on a provider.
func (s *DefaultAdminService) SetProviderVerification(providerID string, in VerificationInput) (*models.Provider, error) {
	switch in.Status {
	case models.VerificationVerified, models.VerificationRejected, models.VerificationPending:
	default:
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "status", Message: "must be one of pending, verified, rejected", Value: in.Status,
		}})
	}
	prov, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
		}
		return nil, err
	}
	v := models.ProviderVerification{
		Status:   in.Status,
		Document: prov.Verification.Document,
		Note:     in.Note,
	}
	if in.Document != "" {
		v.Document = in.Document
	}
	if err := s.ProviderRepo.SetVerification(providerID, v); err != nil {
		return nil, err
	}
	return s.ProviderRepo.GetByID(providerID)
}

// Stats assembles the dashboard summary: booking counts and revenue from
// the aggregation pipeline, account totals, and the top rated services.
func (s *DefaultAdminService) Stats() (*PlatformStats, error) {
	bookingStats, err := s.BookingRepo.Stats()
	if err != nil {
		return nil, err
	}
	_, totalUsers, err := s.UserRepo.List(bson.M{}, utils.PageParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	_, totalProviders, err := s.ProviderRepo.List(bson.M{}, utils.PageParams{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	top, _, err := s.ServiceRepo.Search(serviceRepo.ServiceSearchCriteria{
		Status: models.ServiceActive,
		SortBy: "rating",
	}, utils.PageParams{Page: 1, Limit: topServiceCount})
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		Bookings:       bookingStats.CountsByStatus,
		TotalRevenue:   bookingStats.TotalRevenue,
		TotalUsers:     totalUsers,
		TotalProviders: totalProviders,
		TopServices:    top,
	}, nil
}
