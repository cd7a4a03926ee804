package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var sessionTracer = otel.Tracer("service/session")

// devLoginStore is the extra lookup DEV_AUTH mode needs. The Supabase
// adapter satisfies it.
type devLoginStore interface {
	GetDevLoginHash(ctx context.Context, email string) (userID, hash string, err error)
}

// SessionService owns the auth flows: login, refresh, logout, and deriving
// the caller's session from an access token.
type SessionService struct {
	auth      port.Authenticator
	profiles  port.ProfileStore
	devLogins devLoginStore
	cache     port.Cache[*domain.Profile]
	jwtSecret []byte
	devAuth   bool
	logger    *zap.Logger
	metrics   *observability.Metrics
	watcher   *SessionWatcher
}

// NewSessionService creates a session service. watcher may not be nil; the
// caller owns its lifecycle and must Close it on shutdown.
func NewSessionService(
	auth port.Authenticator,
	profiles port.ProfileStore,
	devLogins devLoginStore,
	cache port.Cache[*domain.Profile],
	jwtSecret string,
	devAuth bool,
	logger *zap.Logger,
	metrics *observability.Metrics,
	watcher *SessionWatcher,
) *SessionService {
	return &SessionService{
		auth:      auth,
		profiles:  profiles,
		devLogins: devLogins,
		cache:     cache,
		jwtSecret: []byte(jwtSecret),
		devAuth:   devAuth,
		logger:    logger,
		metrics:   metrics,
		watcher:   watcher,
	}
}

// ============================================================
// Login - POST /v1/auth/login
// ============================================================

// Login exchanges email+password for tokens and resolves the profile.
// Failures surface as typed errors (401 at the edge), never as a panic or
// a raw provider error.
func (s *SessionService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := sessionTracer.Start(ctx, "SessionService.Login")
	defer span.End()
	span.SetAttributes(attribute.String("email", req.Email))

	if req.Email == "" || req.Password == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email e senha são obrigatórios"}
	}

	if s.devAuth {
		return s.devLogin(ctx, req)
	}

	pair, err := s.auth.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		s.metrics.IncrLogin("failure")
		var unauthorized *domain.ErrUnauthorized
		if errors.As(err, &unauthorized) {
			s.logger.Warn("login rejected", zap.String("email", req.Email))
			return nil, unauthorized
		}
		return nil, err
	}
	s.metrics.IncrLogin("success")

	userID, email := pair.User.ID, pair.User.Email
	profile := s.loadProfile(ctx, userID, email)

	s.watcher.Publish(domain.AuthEvent{Type: "signed_in", UserID: userID, Email: email})
	s.logger.Info("user logged in",
		zap.String("user_id", userID),
		zap.String("role", string(profile.Role)),
	)

	return &domain.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		UserID:       userID,
		Email:        email,
		Profile:      profile,
		Role:         profile.Role,
	}, nil
}

// devLogin checks the password against a bcrypt hash in the dev_logins
// table instead of round-tripping GoTrue. Local development only.
func (s *SessionService) devLogin(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := sessionTracer.Start(ctx, "SessionService.devLogin")
	defer span.End()

	userID, hash, err := s.devLogins.GetDevLoginHash(ctx, req.Email)
	if err != nil {
		s.metrics.IncrLogin("failure")
		return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.metrics.IncrLogin("failure")
		return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas"}
	}
	s.metrics.IncrLogin("success")

	token, err := s.signDevToken(userID, req.Email)
	if err != nil {
		return nil, fmt.Errorf("sign dev token: %w", err)
	}

	profile := s.loadProfile(ctx, userID, req.Email)
	s.watcher.Publish(domain.AuthEvent{Type: "signed_in", UserID: userID, Email: req.Email})
	s.logger.Info("dev login", zap.String("user_id", userID))

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   3600,
		UserID:      userID,
		Email:       req.Email,
		Profile:     profile,
		Role:        profile.Role,
	}, nil
}

// signDevToken mints an HS256 token shaped like a GoTrue access token, so
// the middleware validates dev sessions with the same code path.
func (s *SessionService) signDevToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":        userID,
		"email":      email,
		"session_id": uuid.NewString(),
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ============================================================
// Refresh / Logout
// ============================================================

func (s *SessionService) Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error) {
	ctx, span := sessionTracer.Start(ctx, "SessionService.Refresh")
	defer span.End()

	if req.RefreshToken == "" {
		return nil, &domain.ErrValidation{Field: "refreshToken", Message: "refresh token é obrigatório"}
	}

	pair, err := s.auth.RefreshSession(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	userID, email := pair.User.ID, pair.User.Email
	profile := s.loadProfile(ctx, userID, email)
	s.watcher.Publish(domain.AuthEvent{Type: "token_refreshed", UserID: userID, Email: email})

	return &domain.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		UserID:       userID,
		Email:        email,
		Profile:      profile,
		Role:         profile.Role,
	}, nil
}

func (s *SessionService) Logout(ctx context.Context, accessToken string) error {
	ctx, span := sessionTracer.Start(ctx, "SessionService.Logout")
	defer span.End()

	claims, err := s.ValidateToken(accessToken)
	if err == nil {
		s.watcher.Publish(domain.AuthEvent{Type: "signed_out", UserID: claims.UserID, Email: claims.Email})
	}

	if s.devAuth {
		return nil // nothing to revoke, token just expires
	}
	return s.auth.SignOut(ctx, accessToken)
}

// ============================================================
// Token validation & session derivation
// ============================================================

// TokenClaims is what the middleware needs from a validated access token.
type TokenClaims struct {
	UserID string
	Email  string
}

// ValidateToken verifies a GoTrue HS256 access token locally against the
// project JWT secret. No network round trip per request.
func (s *SessionService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "token inválido ou expirado"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &domain.ErrUnauthorized{Message: "token inválido"}
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, &domain.ErrUnauthorized{Message: "token sem subject"}
	}
	email, _ := claims["email"].(string)

	return &TokenClaims{UserID: sub, Email: email}, nil
}

// CurrentSession derives the full session for a validated caller.
func (s *SessionService) CurrentSession(ctx context.Context, claims *TokenClaims) *domain.Session {
	ctx, span := sessionTracer.Start(ctx, "SessionService.CurrentSession")
	defer span.End()

	profile := s.loadProfile(ctx, claims.UserID, claims.Email)
	role := profile.Role

	return &domain.Session{
		UserID:          claims.UserID,
		Email:           claims.Email,
		Profile:         profile,
		Role:            role,
		IsAdmin:         role == domain.RoleAdmin,
		IsEditor:        role == domain.RoleEditor,
		IsSales:         role == domain.RoleSales,
		IsViewer:        role == domain.RoleViewer,
		IsAuthenticated: true,
		Sections:        VisibleSections(role),
	}
}

// loadProfile reads the profile through the cache. A missing row or an
// unreachable store both degrade to the synthesized viewer profile, so a
// signed-in user is never left without a session.
func (s *SessionService) loadProfile(ctx context.Context, userID, email string) *domain.Profile {
	if cached, ok := s.cache.Get(userID); ok {
		s.metrics.IncrCacheHit("profiles")
		return cached
	}
	s.metrics.IncrCacheMiss("profiles")

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			s.metrics.IncrExternalError("supabase/profiles")
		}
		s.logger.Warn("profile load failed, using fallback",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		fallback := domain.FallbackProfile(userID, email)
		// Cache the fallback too: a broken store should not be re-hit on
		// every request, and the watcher invalidates on auth events.
		s.cache.Set(userID, fallback)
		return fallback
	}

	profile.Role = domain.ParseRole(string(profile.Role))
	s.cache.Set(userID, profile)
	return profile
}
