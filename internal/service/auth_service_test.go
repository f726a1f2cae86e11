package service

import (
	"context"
	"testing"
	"time"

	"github.com/mnk3936/Highway-metals/internal/config"
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	s := &stubUserRepo{users: map[string]*model.User{}}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.Username] = u
	return nil
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessionWriter struct {
	put     map[string]uuid.UUID
	deleted []string
}

func newStubSessionWriter() *stubSessionWriter {
	return &stubSessionWriter{put: map[string]uuid.UUID{}}
}

func (s *stubSessionWriter) Put(_ context.Context, sessionID string, userID uuid.UUID, _ time.Duration) error {
	s.put[sessionID] = userID
	return nil
}

func (s *stubSessionWriter) Delete(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{SessionSecret: "test-secret", SessionTTLHours: 12}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterAndLogin(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionWriter()
	svc := NewAuthService(users, sessions, testConfig())

	created, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "operator",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "operator", created.Username)
	assert.False(t, created.IsAdmin)

	user, token, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operator",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	require.NotEmpty(t, token)
	require.Len(t, sessions.put, 1)

	// The cookie value is a signed token whose jti matches the stored session.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	jti, _ := claims["jti"].(string)
	_, stored := sessions.put[jti]
	assert.True(t, stored)
	assert.Equal(t, created.ID, claims["user_id"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newStubUserRepo(&model.User{ID: uuid.New(), Username: "operator"})
	svc := NewAuthService(users, newStubSessionWriter(), testConfig())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "operator",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo(&model.User{
		ID:           uuid.New(),
		Username:     "operator",
		PasswordHash: hashed(t, "correct"),
	})
	svc := NewAuthService(users, newStubSessionWriter(), testConfig())

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operator",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionWriter(), testConfig())

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newStubSessionWriter()
	svc := NewAuthService(newStubUserRepo(), sessions, testConfig())

	require.NoError(t, svc.Logout(context.Background(), "session-123"))
	assert.Equal(t, []string{"session-123"}, sessions.deleted)
}
