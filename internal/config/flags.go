package config

import (
	"flag"
	"os"
	"time"

	"github.com/akazarov/authgate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   kvstore DSN (sqlite path or postgres:// URL)
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-l int      simulated call latency, milliseconds
//
// os.Args is filtered through flagx.FilterArgs first so this flag set does
// not collide with the config-file flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidity.Minutes()), "access token validity (in minutes)")
	simulatedLatency := fs.Int("l", int(config.SimulatedLatency.Milliseconds()), "simulated call latency (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidity = time.Duration(*accessTokenValidity) * time.Minute
	config.SimulatedLatency = time.Duration(*simulatedLatency) * time.Millisecond
}
