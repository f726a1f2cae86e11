package handler

import (
	"errors"
	"net/http"

	"github.com/mnk3936/Highway-metals/internal/apierror"
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/middleware"
	"github.com/mnk3936/Highway-metals/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary  Create a user account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterRequest true "credentials"
// @Success  201 {object} dto.UserResponse
// @Failure  400 {object} apierror.APIError
// @Router   /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, apierror.New("username already exists"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary  Log in and receive a session cookie
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginRequest true "credentials"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apierror.APIError
// @Router   /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apierror.New("invalid username or password"))
			return
		}
		_ = c.Error(err)
		return
	}

	maxAge := int(h.svc.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, dto.LoginResponse{Message: "login successful", User: *user})
}

// Logout revokes the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth := middleware.GetAuth(c)
	if auth != nil {
		if err := h.svc.Logout(c.Request.Context(), auth.SessionID); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckSession reports the caller's identity; runs behind SessionAuth so an
// invalid cookie never reaches it.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	auth := middleware.GetAuth(c)
	c.JSON(http.StatusOK, dto.SessionResponse{
		LoggedIn: true,
		Username: auth.Username,
		IsAdmin:  auth.IsAdmin,
	})
}
