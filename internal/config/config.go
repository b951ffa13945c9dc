// Package config centralizes the two environment variables that control
// tick behavior: TICK_TIME and FORCE_TICK.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the resolved tick configuration for one node process.
type Config struct {
	TickTime  time.Duration
	ForceTick bool
}

// Load reads TICK_TIME (milliseconds) and FORCE_TICK from the environment,
// falling back to defaultTickTime on an absent or unparseable TICK_TIME,
// and to true for FORCE_TICK.
func Load(defaultTickTime time.Duration) Config {
	cfg := Config{
		TickTime:  defaultTickTime,
		ForceTick: true,
	}

	if raw, ok := os.LookupEnv("TICK_TIME"); ok {
		if ms, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && ms > 0 {
			cfg.TickTime = time.Duration(ms) * time.Millisecond
		}
	}

	if raw, ok := os.LookupEnv("FORCE_TICK"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			cfg.ForceTick = b
		}
	}

	return cfg
}
