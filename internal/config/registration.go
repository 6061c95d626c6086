package config

import (
	"fmt"
	"time"
)

// DefaultEmailFrom is the sender identity used when integration.email_from is unset.
const DefaultEmailFrom = "Store <onboarding@resend.dev>"

// RegistrationConfig tunes the public customer registration endpoint.
type RegistrationConfig struct {
	// RateLimit is the number of registration attempts allowed per client IP
	// within RateWindow. Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// RateWindow is the fixed window length used by the rate limiter.
	RateWindow time.Duration `koanf:"rate_window"`

	// WelcomeEmail toggles the welcome email job after a successful registration.
	WelcomeEmail bool `koanf:"welcome_email"`
}

// DefaultRegistrationConfig returns the defaults used when no registration
// block is configured.
func DefaultRegistrationConfig() *RegistrationConfig {
	return &RegistrationConfig{
		RateLimit:    10,
		RateWindow:   time.Minute,
		WelcomeEmail: true,
	}
}

// Validate checks the registration settings.
func (c *RegistrationConfig) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("registration rate_limit must be non-negative")
	}
	if c.RateLimit > 0 && c.RateWindow < time.Second {
		return fmt.Errorf("registration rate_window must be at least 1s when rate_limit is set")
	}
	return nil
}
