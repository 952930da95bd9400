package config

import (
	"flag"
	"os"
	"time"

	"github.com/igwenababa1/scbvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address of the HTTP server
//	-d string   SQLite database path
//	-l int      simulated latency in milliseconds
//	-s          enable the single-user current-user fallback
//
// Only these flags are consumed here; os.Args is filtered through
// flagx.FilterArgs so other components can define their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port of the http server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database path")
	latencyMs := fs.Int("l", int(cfg.SimulatedLatency.Milliseconds()), "simulated latency (in milliseconds)")
	fs.BoolVar(&cfg.SingleUserFallback, "s", cfg.SingleUserFallback, "fall back to the first vault user when no session exists")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SimulatedLatency = time.Duration(*latencyMs) * time.Millisecond
}
