package config

import (
	"time"

	"main/utils"
)

// RateLimitConfig drives the admission middleware. Ceilings are counted
// over a full window that resets when it elapses, not a rolling decay.
type RateLimitConfig struct {
	Window         time.Duration
	OwnerLimit     int
	UserLimit      int
	AnonymousLimit int
	PaymentLimit   int

	// PerCaller keys counters by (role, caller identity) instead of the
	// default role-only keying, which makes every caller of a role share
	// one ceiling.
	PerCaller bool

	// BypassPaths are exact-match paths exempt from all rate checks.
	BypassPaths []string
}

func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Window:         utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		OwnerLimit:     utils.GetEnvAsInt("RATE_LIMIT_OWNER", 500),
		UserLimit:      utils.GetEnvAsInt("RATE_LIMIT_USER", 300),
		AnonymousLimit: utils.GetEnvAsInt("RATE_LIMIT_ANONYMOUS", 100),
		PaymentLimit:   utils.GetEnvAsInt("RATE_LIMIT_PAYMENT", 50),
		PerCaller:      utils.GetEnvAsBool("RATE_LIMIT_PER_CALLER", false),
		BypassPaths: []string{
			"/api/health",
			"/api/status",
			"/api/auth/validate-token",
			"/api/auth/google-callback",
		},
	}
}
