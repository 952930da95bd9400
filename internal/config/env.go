package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with SCB_* environment variables. A local .env
// file is loaded first when present; real environment variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SCB_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SCB_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SCB_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("SCB_VAULT_PASSPHRASE"); v != "" {
		cfg.VaultPassphrase = v
	}
	if v := os.Getenv("SCB_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenValidityDuration = d
		}
	}
	if v := os.Getenv("SCB_SIMULATED_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SimulatedLatency = d
		}
	}
	if v := os.Getenv("SCB_SINGLE_USER_FALLBACK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SingleUserFallback = b
		}
	}
	if v := os.Getenv("SCB_DISCARD_ENDS_SESSION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DiscardEndsSession = b
		}
	}
}
