package domain

// ============================================================
// Auth - request / response types (frontend API contract)
// ============================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
// Login never surfaces a raw provider error to the browser; failures come
// back as 401 with an inline message.
type LoginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"`
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	Profile      *Profile `json:"profile"`
	Role         Role     `json:"role"`
}

// RefreshRequest is the body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthUser is the identity returned by the auth provider. Owned and issued
// by GoTrue; this system only reads it.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenPair is what GoTrue hands back on a successful grant.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	User         *AuthUser `json:"user"`
}

// AuthEvent is a session-change notification: sign-in, sign-out or token
// refresh. The session watcher re-derives the profile on each one.
type AuthEvent struct {
	Type   string // signed_in | signed_out | token_refreshed
	UserID string
	Email  string
}
