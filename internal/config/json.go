package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akazarov/authgate/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given as plain integers (minutes / milliseconds) and converted into the
// runtime Config afterwards.
type jsonConfig struct {
	DatabaseDSN              string `json:"database_dsn"`
	SecretKey                string `json:"secret_key"`
	AccessTokenValidityMin   int    `json:"access_token_validity_minutes"`
	SimulatedLatencyMillis   int    `json:"simulated_latency_ms"`
	HealthCheckLatencyMillis int    `json:"health_check_latency_ms"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op; a file
// that cannot be read or parsed panics, since running with half-applied
// configuration is worse than not starting.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityMin > 0 {
		cfg.AccessTokenValidity = time.Duration(jc.AccessTokenValidityMin) * time.Minute
	}
	if jc.SimulatedLatencyMillis > 0 {
		cfg.SimulatedLatency = time.Duration(jc.SimulatedLatencyMillis) * time.Millisecond
	}
	if jc.HealthCheckLatencyMillis > 0 {
		cfg.HealthCheckLatency = time.Duration(jc.HealthCheckLatencyMillis) * time.Millisecond
	}
}
