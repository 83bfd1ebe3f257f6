package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
)

// TokenVerifier is the pure access-token gate. No I/O happens behind it.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// Auth validates the bearer access token and injects the email claim into
// context. The failure modes stay distinguishable for clients: a missing
// header is 401, an expired token is 401 carrying the original expiry (so
// the client knows to refresh), anything else is 403.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			email, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				var expired *domain.TokenExpiredError
				if errors.As(err, &expired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error":     "token expired",
						"expiredAt": expired.ExpiredAt,
					})
				}
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set("email", email)
			return next(c)
		}
	}
}
