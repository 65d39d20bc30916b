package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finbridge/cashkick-service/internal/config"
	"github.com/finbridge/cashkick-service/internal/models"
	"github.com/finbridge/cashkick-service/internal/repository"
)

// UserService handles registration, authentication and account updates
type UserService struct {
	store  repository.Store
	log    *logrus.Logger
	config *config.Config
}

// NewUserService initializes a new user service
func NewUserService(store repository.Store, log *logrus.Logger, cfg *config.Config) *UserService {
	return &UserService{store: store, log: log, config: cfg}
}

// Signup creates a new user with a hashed password and platform defaults
// for rate, credit balance and term cap.
func (s *UserService) Signup(ctx context.Context, input models.SignupInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Errorf("Failed to hash password: %v", err)
		return nil, ErrUserCreate
	}

	user := &models.User{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  string(hashed),
		Rate:          s.config.DefaultRate,
		CreditBalance: s.config.DefaultCreditBalance,
		TermCap:       s.config.DefaultTermCap,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		s.log.Errorf("Failed to create user %s: %v", input.Email, err)
		return nil, ErrUserCreate
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		s.log.Errorf("Failed to fetch user %s: %v", email, err)
		return "", ErrUserFetch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.JWTTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		s.log.Errorf("Failed to sign token for user %s: %v", user.ID, err)
		return "", ErrUserFetch
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// UserByEmail retrieves a user by email
func (s *UserService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		s.log.Errorf("Failed to fetch user %s: %v", email, err)
		return nil, ErrUserFetch
	}
	return user, nil
}

// Users retrieves all users
func (s *UserService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.log.Errorf("Failed to list users: %v", err)
		return nil, ErrUserFetch
	}
	return users, nil
}

// UpdateUser changes a user's password, credit balance, or both
func (s *UserService) UpdateUser(ctx context.Context, id string, input models.UserUpdateInput) error {
	var passwordHash *string
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			s.log.Errorf("Failed to hash password: %v", err)
			return ErrUserUpdate
		}
		h := string(hashed)
		passwordHash = &h
	}

	err := s.store.UpdateUser(ctx, id, passwordHash, input.CreditBalance)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		s.log.Errorf("Failed to update user %s: %v", id, err)
		return ErrUserUpdate
	}

	s.log.Infof("User updated: %s", id)
	return nil
}
