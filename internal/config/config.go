// Package config handles runtime configuration: defaults, an optional JSON
// overlay, and command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for authgate.
//
// Fields:
//   - DatabaseDSN: kvstore location. A postgres:// DSN selects the Postgres
//     backend; anything else is a sqlite file path.
//   - SecretKey: HMAC secret used to sign access tokens (HS256). Tokens are
//     treated as opaque afterwards; nothing verifies them.
//   - AccessTokenValidity: expiry written into the access token. Never
//     enforced anywhere.
//   - SimulatedLatency: artificial delay on login/register/list calls.
//   - HealthCheckLatency: artificial delay on the health probe.
type Config struct {
	DatabaseDSN         string
	SecretKey           string
	AccessTokenValidity time.Duration
	SimulatedLatency    time.Duration
	HealthCheckLatency  time.Duration
}

// LoadDefaults populates c with development defaults.
// NOTE: the secret is insecure and should be overridden outside development.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "authgate.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidity = 5 * time.Minute
	c.SimulatedLatency = 800 * time.Millisecond
	c.HealthCheckLatency = 200 * time.Millisecond
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
