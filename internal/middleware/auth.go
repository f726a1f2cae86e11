package middleware

import (
	"context"
	"net/http"

	"github.com/mnk3936/Highway-metals/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session_token"

	authKey = "auth"
)

// AuthContext is the resolved caller identity, set by SessionAuth for every
// authenticated request. Handlers read it instead of touching the session
// mechanism directly.
type AuthContext struct {
	UserID    uuid.UUID
	Username  string
	IsAdmin   bool
	SessionID string
}

// SessionClaims are the custom claims embedded in every session token.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// SessionChecker reports whether a session id is still active. Logout
// deletes the id from the backing store, revoking the token immediately.
type SessionChecker interface {
	Active(ctx context.Context, sessionID string) (bool, error)
}

// SessionAuth validates the session cookie on every protected route.
func SessionAuth(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("invalid or expired session"))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("invalid or expired session"))
			return
		}

		active, err := sessions.Active(c.Request.Context(), claims.ID)
		if err != nil || !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("session expired or revoked"))
			return
		}

		c.Set(authKey, &AuthContext{
			UserID:    userID,
			Username:  claims.Username,
			IsAdmin:   claims.IsAdmin,
			SessionID: claims.ID,
		})
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin flag.
// Must run after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuth(c)
		if auth == nil || !auth.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("administrator privileges required"))
			return
		}
		c.Next()
	}
}

// GetAuth retrieves the typed auth context, nil when unauthenticated.
func GetAuth(c *gin.Context) *AuthContext {
	v, ok := c.Get(authKey)
	if !ok {
		return nil
	}
	auth, _ := v.(*AuthContext)
	return auth
}
