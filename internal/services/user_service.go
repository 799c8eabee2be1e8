package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

// UserService handles account registration, login and profile updates
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.User, error)
	UpdateProfile(ctx context.Context, publicID string, update models.UserUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.NewValidationError("name, email and password are required")
	}
	if len(password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to check email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, errors.NewInternalError(err)
	}

	user := &models.User{
		PublicID:     uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("registered user: public_id=%s", user.PublicID)
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetByPublicID(ctx context.Context, publicID string) (*models.User, error) {
	user, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, publicID string, update models.UserUpdate) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, errors.NewValidationError("name cannot be empty")
	}

	if err := s.userRepo.Update(ctx, user.ID, update); err != nil {
		log.Error("failed to update user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.GetByPublicID(ctx, publicID)
}
