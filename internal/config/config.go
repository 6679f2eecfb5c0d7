// Package config loads server settings from flags, falling back to
// FOGCHESS_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr    string
	Origins []string
	// LayoutFile holds a placement description; empty means the standard
	// starting position.
	LayoutFile    string
	BotDepth      int
	BotWidth      int
	SearchWorkers int
	Clock         time.Duration
	MatchInterval time.Duration
	Debug         bool
}

// Load parses args (without the program name) into a Config.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("fogchess", flag.ContinueOnError)
	var cfg Config
	var origins string

	fs.StringVar(&cfg.Addr, "addr", getenv("FOGCHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&origins, "origins", getenv("FOGCHESS_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	fs.StringVar(&cfg.LayoutFile, "layout", getenv("FOGCHESS_LAYOUT", ""), "placement file for new games")
	fs.IntVar(&cfg.BotDepth, "bot-depth", getenvi("FOGCHESS_BOT_DEPTH", 1), "search depth for the computer and hints")
	fs.IntVar(&cfg.BotWidth, "bot-width", getenvi("FOGCHESS_BOT_WIDTH", 3), "moves kept per ply by the search")
	fs.IntVar(&cfg.SearchWorkers, "search-workers", getenvi("FOGCHESS_SEARCH_WORKERS", runtime.NumCPU()), "parallel search workers")
	fs.DurationVar(&cfg.Clock, "clock", getenvd("FOGCHESS_CLOCK", 10*time.Minute), "time per side")
	fs.DurationVar(&cfg.MatchInterval, "match-interval", getenvd("FOGCHESS_MATCH_INTERVAL", time.Second), "matchmaking poll interval")
	fs.BoolVar(&cfg.Debug, "debug", getenb("FOGCHESS_DEBUG", false), "debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Origins = splitList(origins)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case len(c.Origins) == 0:
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	case c.BotDepth < 0:
		return fmt.Errorf("%w: bot depth %d", ErrInvalidConfig, c.BotDepth)
	case c.BotWidth < 1:
		return fmt.Errorf("%w: bot width %d", ErrInvalidConfig, c.BotWidth)
	case c.SearchWorkers < 1:
		return fmt.Errorf("%w: search workers %d", ErrInvalidConfig, c.SearchWorkers)
	case c.Clock <= 0:
		return fmt.Errorf("%w: clock %s", ErrInvalidConfig, c.Clock)
	case c.MatchInterval <= 0:
		return fmt.Errorf("%w: match interval %s", ErrInvalidConfig, c.MatchInterval)
	}
	return nil
}

// Layout reads the configured placement file and checks it parses.
func (c Config) Layout() (string, error) {
	if c.LayoutFile == "" {
		return engine.StandardLayout, nil
	}
	raw, err := os.ReadFile(c.LayoutFile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := engine.ParseLayoutString(string(raw)); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.LayoutFile, err)
	}
	return string(raw), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvd(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
