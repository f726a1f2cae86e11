package service

import (
	"context"
	"errors"
	"time"

	"github.com/mnk3936/Highway-metals/internal/config"
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"
	"github.com/mnk3936/Highway-metals/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionWriter is the write side of the session store. The middleware holds
// the read side; logout revokes by deleting the session id.
type SessionWriter interface {
	Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	// Login verifies credentials and opens a session; the returned token is
	// the signed session cookie value.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.UserResponse, string, error)
	Logout(ctx context.Context, sessionID string) error
	SessionTTL() time.Duration
}

type authService struct {
	users    repository.UserRepository
	sessions SessionWriter
	cfg      *config.Config
}

func NewAuthService(users repository.UserRepository, sessions SessionWriter, cfg *config.Config) AuthService {
	return &authService{users: users, sessions: sessions, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID.String(), Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	ttl := s.SessionTTL()
	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionID, user.ID, ttl); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user, sessionID, ttl)
	if err != nil {
		return nil, "", err
	}

	return &dto.UserResponse{ID: user.ID.String(), Username: user.Username, IsAdmin: user.IsAdmin}, token, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) SessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

func (s *authService) signToken(user *model.User, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"jti":      sessionID,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}
