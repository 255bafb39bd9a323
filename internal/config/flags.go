package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/taskflow/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns; other arguments are
// ignored.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-d", "-s", "-l", "-v"}, "-l")

	fs := flag.NewFlagSet("taskflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StateDSN, "d", cfg.StateDSN, "session database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session token secret key")
	fs.BoolVar(&cfg.LatencyEnabled, "l", cfg.LatencyEnabled, "simulate backend latency")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(filtered)
}
