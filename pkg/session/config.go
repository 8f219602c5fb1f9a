package session

import (
	"strings"
	"time"
)

// Config holds session layer configuration, populated from the environment
// via github.com/caarlos0/env tags.
type Config struct {
	// SecretKey signs session cookies. Comma-separated values enable key
	// rotation: the first key signs, all keys verify.
	SecretKey string `env:"SESSION_SECRET_KEY,required"`

	// CookieName is the name of the session cookie (default: "session")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	// TTL bounds the stored record's lifetime and the cookie's Max-Age.
	// Refreshed on every write (sliding expiration). Default: 14 days.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	// HTTPSOnly sets the Secure flag on session cookies. Must be enabled
	// behind TLS termination.
	HTTPSOnly bool `env:"SESSION_HTTPS_ONLY" envDefault:"false"`
}

// DefaultConfig returns default session configuration. SecretKey has no
// default; it is deployment-provided.
func DefaultConfig() Config {
	return Config{
		CookieName: "session",
		TTL:        14 * 24 * time.Hour,
		HTTPSOnly:  false,
	}
}

// secrets splits SecretKey into the signing key list.
func (c Config) secrets() []string {
	if c.SecretKey == "" {
		return nil
	}

	parts := strings.Split(c.SecretKey, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
