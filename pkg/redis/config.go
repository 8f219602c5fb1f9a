package redis

import "time"

type Config struct {
	// ConnectionURL is the store address in the form "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// RetryAttempts is the number of connection attempts made by Connect.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	// RetryInterval is the pause between connection attempts.
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	// ConnectTimeout bounds the whole Connect call, retries included.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the connection defaults used when no environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		ConnectionURL:  "redis://localhost:6379/0",
		RetryAttempts:  3,
		RetryInterval:  5 * time.Second,
		ConnectTimeout: 30 * time.Second,
	}
}
