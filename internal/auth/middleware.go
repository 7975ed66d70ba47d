package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "evently/internal/errors"
	"evently/internal/model"
)

// callerContextKey is the echo context key the resolved caller is stored under.
const callerContextKey = "caller"

// UserResolver fetches the live user row for a token's subject. The stored
// row, not the token payload, is authoritative for everything beyond id and
// role, so permission and verification changes take effect immediately.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Middleware resolves a caller identity from a bearer token before the route
// handler runs.
type Middleware struct {
	jwtService *JWTService
	users      UserResolver
}

// NewMiddleware creates auth middleware backed by the given token service
// and user resolver.
func NewMiddleware(jwtService *JWTService, users UserResolver) *Middleware {
	return &Middleware{jwtService: jwtService, users: users}
}

// Required rejects the request unless a valid token resolves to a live user:
// 401 with no token, 403 for an invalid or expired one, 404 when the
// referenced user no longer exists. The handler never runs on failure.
func (m *Middleware) Required(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "no token provided",
				Code:  "UNAUTHENTICATED",
			})
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "INVALID_TOKEN",
			})
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{
				Error: "user not found",
				Code:  "USER_NOT_FOUND",
			})
		}

		c.Set(callerContextKey, user)
		return next(c)
	}
}

// Optional runs the same resolution but proceeds anonymously on any failure.
// Used by routes that render differently for signed-in viewers without
// requiring sign-in.
func (m *Middleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return next(c)
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			return next(c)
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return next(c)
		}

		c.Set(callerContextKey, user)
		return next(c)
	}
}

// Caller returns the resolved caller identity, or nil for anonymous requests.
func Caller(c echo.Context) *model.User {
	user, _ := c.Get(callerContextKey).(*model.User)
	return user
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, empty string if absent or malformed.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
