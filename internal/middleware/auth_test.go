package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubChecker struct {
	active map[string]bool
}

func (s *stubChecker) Active(_ context.Context, sessionID string) (bool, error) {
	return s.active[sessionID], nil
}

func signSession(t *testing.T, secret string, userID uuid.UUID, username string, isAdmin bool, jti string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"username": username,
		"is_admin": isAdmin,
		"jti":      jti,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authTestRouter(checker SessionChecker, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{SessionAuth(testSecret, checker)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		auth := GetAuth(c)
		c.JSON(http.StatusOK, gin.H{"username": auth.Username, "is_admin": auth.IsAdmin})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuthNoCookie(t *testing.T) {
	r := authTestRouter(&stubChecker{})
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthGarbageToken(t *testing.T) {
	r := authTestRouter(&stubChecker{})
	w := doRequest(r, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthWrongSecret(t *testing.T) {
	token := signSession(t, "other-secret", uuid.New(), "mallory", false, "jti-1")
	r := authTestRouter(&stubChecker{active: map[string]bool{"jti-1": true}})
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthValidToken(t *testing.T) {
	token := signSession(t, testSecret, uuid.New(), "operator", false, "jti-1")
	r := authTestRouter(&stubChecker{active: map[string]bool{"jti-1": true}})
	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operator")
}

func TestSessionAuthRevokedSession(t *testing.T) {
	token := signSession(t, testSecret, uuid.New(), "operator", false, "jti-1")
	r := authTestRouter(&stubChecker{active: map[string]bool{}}) // logged out
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"jti":     "jti-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	r := authTestRouter(&stubChecker{active: map[string]bool{"jti-1": true}})
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminForbidsRegularUser(t *testing.T) {
	token := signSession(t, testSecret, uuid.New(), "operator", false, "jti-1")
	r := authTestRouter(&stubChecker{active: map[string]bool{"jti-1": true}}, RequireAdmin())
	w := doRequest(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	token := signSession(t, testSecret, uuid.New(), "boss", true, "jti-1")
	r := authTestRouter(&stubChecker{active: map[string]bool{"jti-1": true}}, RequireAdmin())
	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}
