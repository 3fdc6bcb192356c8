package middleware

import (
	"net/http"
	"strings"

	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/pkg/token"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// JWTAuthMiddleware checks for a valid JWT and stores the claims in the
// request context. Requests without a valid token are rejected.
func JWTAuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromHeader(c, tokens)
			if err != nil {
				return err
			}
			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware stores the claims when a valid token is present
// and lets anonymous requests through untouched. Read endpoints use it to
// personalize engagement attributes without requiring a login.
func OptionalAuthMiddleware(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := claimsFromHeader(c, tokens); err == nil {
				c.Set(userContextKey, claims)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user's claims, or nil for
// anonymous requests.
func CurrentUser(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(userContextKey).(*models.JwtCustomClaims)
	return claims
}

func claimsFromHeader(c echo.Context, tokens *token.Manager) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}

	claims, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}
