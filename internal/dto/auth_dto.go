package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// SessionResponse is returned by GET /api/check-session.
type SessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
