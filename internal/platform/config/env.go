package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag parsed through ParseEnv.
const EnvPrefix = "HEROSHEET_"

// ParseEnv loads configuration from HEROSHEET_-prefixed environment variables.
//
// Struct tags name the key without the prefix, so `env:"MCP_LOCALE"` reads
// HEROSHEET_MCP_LOCALE.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
