// Package service contains the application's domain operations.
package service

import (
	"context"
	"errors"
	"time"

	"kindling/internal/models"
	"kindling/internal/observability"
	"kindling/internal/repository"
	"kindling/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns accounts and sessions.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates an AuthService with the given session lifetime.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

type SignupInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// Signup registers a new account and opens its first session.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, *models.Session, error) {
	if issues := validation.Credentials(in.Username, in.Password); len(issues) > 0 {
		return nil, nil, models.NewFieldErrors(issues)
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, models.NewFieldErrors(map[string]string{
			"username": "Username is already taken",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and opens a fresh session. Failures are
// deliberately uniform so the endpoint is not a username oracle.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, *models.Session, error) {
	if in.Username == "" || in.Password == "" {
		return nil, nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewUnauthorizedError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("Invalid username or password")
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout deletes the session behind the given token. Unknown tokens are
// not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// Resolve turns a session token into the caller's identity. Missing or
// expired sessions resolve to Anonymous; expired rows are deleted on the
// way out.
func (s *AuthService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Anonymous(), nil
	}

	session, err := s.sessionRepo.GetWithUser(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Anonymous(), nil
	}
	if err != nil {
		return models.Anonymous(), err
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return models.Anonymous(), err
		}
		return models.Anonymous(), nil
	}

	return models.Authenticated(&session.User), nil
}

func (s *AuthService) openSession(ctx context.Context, userID uint) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	observability.SessionsOpened.Inc()
	return session, nil
}
