// Package config handles configuration loading, parsing, and validation
// from various sources (an optional .env file, an optional config.yaml and
// FLASHDECK_ prefixed environment variables). It provides type-safe access to
// application settings while keeping configuration details separate from
// business logic.
package config
