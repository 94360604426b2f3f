package httpapi

import (
	"net/http"

	"nofa-store-service/internal/app"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AdminPasswordHeader carries the shared admin secret. There are no
// sessions: every admin request re-supplies the credential.
const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth rejects requests whose credential does not pass the gate.
// The protected handler is never invoked on failure.
func AdminAuth(gate *app.AdminGate, logger zerolog.Logger) echo.MiddlewareFunc {
	log := logger.With().Str("component", "admin_auth").Logger()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			candidate := c.Request().Header.Get(AdminPasswordHeader)
			if !gate.Authenticate(candidate) {
				log.Warn().
					Str("path", c.Path()).
					Str("remote_addr", c.RealIP()).
					Msg("Admin request rejected")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or missing admin credential"})
			}
			return next(c)
		}
	}
}
