package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/igwenababa1/scbvault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// specified as strings like "250ms" or "15m". Pointer fields distinguish
// "absent" from zero values for the booleans.
type JsonConfig struct {
	HTTPAddr            string `json:"http_addr"`
	DatabaseDSN         string `json:"database_dsn"`
	SecretKey           string `json:"secret_key"`
	AccessTokenValidity string `json:"access_token_validity"`
	VaultPassphrase     string `json:"vault_passphrase"`
	SimulatedLatency    string `json:"simulated_latency"`
	SingleUserFallback  *bool  `json:"single_user_fallback"`
	DiscardEndsSession  *bool  `json:"discard_ends_session"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. No flag means no JSON is loaded. Panics on read or
// unmarshal errors, matching flag-parse behavior.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}
	if err := applyJsonFile(cfg, jsonConfigFile); err != nil {
		panic(err)
	}
}

func applyJsonFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.HTTPAddr != "" {
		cfg.HTTPAddr = jc.HTTPAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.VaultPassphrase != "" {
		cfg.VaultPassphrase = jc.VaultPassphrase
	}
	if jc.AccessTokenValidity != "" {
		d, err := time.ParseDuration(jc.AccessTokenValidity)
		if err != nil {
			return err
		}
		cfg.AccessTokenValidityDuration = d
	}
	if jc.SimulatedLatency != "" {
		d, err := time.ParseDuration(jc.SimulatedLatency)
		if err != nil {
			return err
		}
		cfg.SimulatedLatency = d
	}
	if jc.SingleUserFallback != nil {
		cfg.SingleUserFallback = *jc.SingleUserFallback
	}
	if jc.DiscardEndsSession != nil {
		cfg.DiscardEndsSession = *jc.DiscardEndsSession
	}
	return nil
}
