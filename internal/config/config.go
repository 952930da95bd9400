// Package config handles configuration for the vault applications:
// defaults, an optional JSON overlay, environment variables (.env aware),
// and command-line flags, each later source overriding the earlier ones.
package config

import "time"

// Config holds runtime settings shared by the server and the CLI.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP shell boundary.
//   - DatabaseDSN: path of the SQLite file backing the key-value store.
//   - SecretKey: HMAC secret for signing bearer tokens (HS256). Do not use
//     the development default in production.
//   - AccessTokenValidityDuration: bearer token lifetime.
//   - VaultPassphrase: when non-empty, the vault blob is sealed at rest
//     under a key derived from it. Empty means plaintext at rest.
//   - SimulatedLatency: artificial delay on auth operations, approximating
//     the demo's fake network round trip. Zero disables it.
//   - SingleUserFallback: demo mode where get-current-user falls back to the
//     first vault record when no session is resolvable.
//   - DiscardEndsSession: couples discarding the shell snapshot to logout.
type Config struct {
	HTTPAddr                    string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	VaultPassphrase             string
	SimulatedLatency            time.Duration
	SingleUserFallback          bool
	DiscardEndsSession          bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = "scbvault.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.VaultPassphrase = ""
	c.SimulatedLatency = 0
	c.SingleUserFallback = true
	c.DiscardEndsSession = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
