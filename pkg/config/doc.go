// Package config loads typed configuration structs from environment
// variables, optionally seeded from .env files.
//
// Struct fields are annotated with github.com/caarlos0/env tags:
//
//	type SessionConfig struct {
//		SecretKey  string        `env:"SESSION_SECRET_KEY,required"`
//		CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
//		TTL        time.Duration `env:"SESSION_TTL" envDefault:"336h"`
//	}
//
// Load parses a struct once per type and caches the result for the life of
// the process, so the same config can be requested from multiple packages
// without re-reading the environment:
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
//
// A .env file in the working directory is applied automatically before the
// first Load; LoadEnv loads explicit files (later files win) for tests and
// non-standard layouts.
package config
