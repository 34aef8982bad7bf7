package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Context keys for storing auth data
const (
	ClaimsKey          = "auth_claims"
	IsAuthenticatedKey = "is_authenticated"
)

// Middleware verifies a bearer token when present and stores its claims in
// the echo context. Requests without a token pass through unauthenticated;
// route guards decide what actually requires auth.
func Middleware(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c.Request())
			if token == "" {
				c.Set(IsAuthenticatedKey, false)
				return next(c)
			}

			claims, err := svc.VerifyToken(token)
			if err != nil {
				slog.Debug("token verification failed", "error", err)
				c.Set(IsAuthenticatedKey, false)
				return next(c)
			}

			c.Set(ClaimsKey, claims)
			c.Set(IsAuthenticatedKey, true)
			return next(c)
		}
	}
}

// RequireAdmin only lets admin tokens through.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if claims.Role != RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// RequireClient lets a client token through for its own client id (path param
// "id"), and admins through for any client.
func RequireClient() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if claims.Role == RoleAdmin {
				return next(c)
			}
			if id := c.Param("id"); id != "" && id != claims.ClientID {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims stored on the context, or nil.
func ClaimsFrom(c echo.Context) *Claims {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	if !isAuth {
		return nil
	}
	claims, _ := c.Get(ClaimsKey).(*Claims)
	return claims
}

func extractBearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return auth
}
