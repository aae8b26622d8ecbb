// Package auth implements account registration, credential checks, and the
// session lifecycle on top of the user record store.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tahsinkabir/marketmind/internal/logging"
	"github.com/tahsinkabir/marketmind/internal/middleware"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const (
	msgLogin    = "সফলভাবে লগইন করেছেন।"
	msgRegister = "নতুন অ্যাকাউন্ট রেজিস্টার করেছেন।"
	msgLogout   = "সিস্টেম থেকে লগআউট করেছেন।"
)

// Service handles authentication against the user record store.
type Service struct {
	store      *store.UserRecordStore
	logger     *logging.Logger
	adminEmail string
	tokenTTL   time.Duration
}

// NewService creates an authentication service. adminEmail is the account
// that gets admin rights on registration.
func NewService(s *store.UserRecordStore, logger *logging.Logger, adminEmail string, tokenTTL time.Duration) *Service {
	return &Service{
		store:      s,
		logger:     logger,
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		tokenTTL:   tokenTTL,
	}
}

// Register creates a new account, opens a session for it, and returns the
// user with a signed token.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = store.NormalizeEmail(email)
	if email == "" {
		return nil, "", ErrInvalidCredentials
	}
	if len(password) < 6 {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	isAdmin := email == s.adminEmail

	user, err := s.store.CreateUser(ctx, email, isAdmin)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	if err := s.store.Mutate(ctx, email, func(u *models.User) error {
		u.PasswordHash = string(hash)
		return nil
	}); err != nil {
		return nil, "", err
	}
	user.PasswordHash = string(hash)

	if err := s.store.SetCurrentUser(ctx, user); err != nil {
		return nil, "", err
	}
	if err := s.store.LogActivity(ctx, msgRegister, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record registration activity")
	}

	token, err := middleware.GenerateToken(email, isAdmin, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithUserEmail(email).Info("Account registered")
	return user, token, nil
}

// Login verifies credentials, opens a session, and returns the user with a
// signed token. An unknown email and a wrong password report the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = store.NormalizeEmail(email)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.Status == models.UserStatusInactive {
		return nil, "", ErrInactiveAccount
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.store.SetCurrentUser(ctx, user); err != nil {
		return nil, "", err
	}
	if err := s.store.LogActivity(ctx, msgLogin, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record login activity")
	}

	token, err := middleware.GenerateToken(email, user.IsAdmin, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithUserEmail(email).Info("User logged in")
	return user, token, nil
}

// Logout records the event and clears the session pointer.
func (s *Service) Logout(ctx context.Context, email string) error {
	email = store.NormalizeEmail(email)

	if err := s.store.LogActivity(ctx, msgLogout, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record logout activity")
	}
	return s.store.ClearCurrentUser(ctx)
}

// CurrentUser returns the account the session pointer refers to.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.store.GetCurrentUser(ctx)
}
