package provider

import (
	"errors"
	"strings"
	"time"

	providerRepo "handyhub/database/repository/provider"
	"handyhub/models"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// DefaultProviderService is the production ProviderService.
type DefaultProviderService struct {
	Repo   providerRepo.ProviderRepository
	Tokens *utils.TokenManager
}

// Register creates a provider account. The account starts active but
// unverified; the provider guard rejects its token until an admin marks
// the verification as verified.
func (s *DefaultProviderService) Register(in RegisterInput) (*AuthResult, error) {
	var fields []utils.FieldError
	if in.BusinessName == "" {
		fields = append(fields, utils.FieldError{Field: "businessName", Message: "is required"})
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields = append(fields, utils.FieldError{Field: "email", Message: "must be a valid email address", Value: in.Email})
	}
	if len(in.Password) < 8 {
		fields = append(fields, utils.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	email := strings.ToLower(in.Email)
	if _, err := s.Repo.GetByEmail(email); err == nil {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "email", Message: "is already registered", Value: email,
		}})
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	prov := &models.Provider{
		ID: uuid.NewString(),
		Profile: models.ProviderProfile{
			BusinessName: in.BusinessName,
			Email:        email,
			Phone:        in.Phone,
		},
		PasswordHash: string(hash),
		Status:       models.AccountActive,
		Verification: models.ProviderVerification{Status: models.VerificationPending},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(prov); err != nil {
		return nil, err
	}
	return s.issue(prov)
}

// Authenticate verifies credentials and issues a fresh token. Login is
// allowed for unverified providers so they can check their verification
// state; guarded routes stay closed until verification passes.
func (s *DefaultProviderService) Authenticate(email, password string) (*AuthResult, error) {
	prov, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(prov.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
	}
	if prov.Status != models.AccountActive {
		return nil, utils.NewAppError(utils.CodeForbidden, "account is not active")
	}
	return s.issue(prov)
}

func (s *DefaultProviderService) issue(prov *models.Provider) (*AuthResult, error) {
	token, err := s.Tokens.Issue(prov.ID, utils.AudienceProvider, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Provider: prov, Token: token}, nil
}

func (s *DefaultProviderService) GetProviderByID(id string) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "provider not found")
		}
		return nil, err
	}
	return prov, nil
}

// UpdateProfile applies the allow-listed profile fields.
func (s *DefaultProviderService) UpdateProfile(id string, in UpdateProfileInput) (*models.Provider, error) {
	fields := bson.M{}
	if in.BusinessName != nil {
		if *in.BusinessName == "" {
			return nil, utils.NewValidationError([]utils.FieldError{{Field: "businessName", Message: "must not be empty"}})
		}
		fields["profile.businessName"] = *in.BusinessName
	}
	if in.Phone != nil {
		fields["profile.phone"] = *in.Phone
	}
	if in.Bio != nil {
		fields["profile.bio"] = *in.Bio
	}
	if in.Avatar != nil {
		fields["profile.avatar"] = *in.Avatar
	}
	if in.Address != nil {
		fields["profile.address"] = *in.Address
	}
	if in.ServiceArea != nil {
		fields["profile.serviceArea"] = *in.ServiceArea
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetProviderByID(id)
}
