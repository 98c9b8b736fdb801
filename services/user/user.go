package user

import (
	"errors"
	"strings"
	"time"

	userRepo "handyhub/database/repository/user"
	"handyhub/models"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Tokens *utils.TokenManager
}

// Register creates an active user account and signs it in.
func (s *DefaultUserService) Register(in RegisterInput) (*AuthResult, error) {
	var fields []utils.FieldError
	if in.Name == "" {
		fields = append(fields, utils.FieldError{Field: "name", Message: "is required"})
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
	usr := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Status:       models.AccountActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, err
	}
	return s.issue(usr)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResult, error) {
	usr, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewAppError(utils.CodeUnauthenticated, "invalid email or password")
	}
	if usr.Status != models.AccountActive {
		return nil, utils.NewAppError(utils.CodeForbidden, "account is not active")
	}
	return s.issue(usr)
}

func (s *DefaultUserService) issue(usr *models.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(usr.ID, utils.AudienceUser, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: usr, Token: token}, nil
}

func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return usr, nil
}

// UpdateProfile applies the allow-listed profile fields.
func (s *DefaultUserService) UpdateProfile(id string, in UpdateProfileInput) (*models.User, error) {
	fields := bson.M{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, utils.NewValidationError([]utils.FieldError{{Field: "name", Message: "must not be empty"}})
		}
		fields["name"] = *in.Name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Avatar != nil {
		fields["avatar"] = *in.Avatar
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetUserByID(id)
}
