package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/pkg/token"
)

// ContextKeyUser is where RequireAuth stashes the decoded claims.
const ContextKeyUser = "user"

// RequireAuth rejects requests without a valid credential. The token is
// read from the "token" cookie or the Authorization bearer header. Pure
// predicate over the token payload, no I/O.
func RequireAuth(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := extractToken(c)
			if tok == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			claims, err := tokens.Validate(tok)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token.")
			}

			c.Set(ContextKeyUser, claims)
			return next(c)
		}
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := CurrentUser(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin only.")
		}
		return next(c)
	}
}

// CurrentUser returns the claims set by RequireAuth, or nil.
func CurrentUser(c echo.Context) *token.UserClaims {
	claims, _ := c.Get(ContextKeyUser).(*token.UserClaims)
	return claims
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
