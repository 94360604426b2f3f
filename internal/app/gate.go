package app

import (
	"github.com/rs/zerolog"
)

// AdminGate checks the shared admin secret. The secret is loaded once at
// startup and injected here; there is no session or token issuance, every
// admin request must re-supply the credential.
type AdminGate struct {
	secret string
	logger zerolog.Logger
}

// NewAdminGate creates a gate around the configured admin secret
func NewAdminGate(secret string, logger zerolog.Logger) *AdminGate {
	return &AdminGate{
		secret: secret,
		logger: logger.With().Str("component", "admin_gate").Logger(),
	}
}

// Authenticate compares the candidate against the configured secret.
// An empty configured secret denies all admin access.
func (g *AdminGate) Authenticate(candidate string) bool {
	if g.secret == "" {
		g.logger.Warn().Msg("Admin password not configured, denying admin access")
		return false
	}
	return candidate == g.secret
}
