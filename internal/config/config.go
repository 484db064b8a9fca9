// Package config reads server settings from flags, with CHESS_* environment
// variables taking precedence.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	Origins       []string
	LogLevel      log.Level
	MatchInterval time.Duration
	Clock         time.Duration
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"fatal": log.LevelFatal,
	"panic": log.LevelPanic,
}

// Load parses args (without the program name) and then applies any
// environment overrides found through getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", ":3000", "listen address")
	origins := fs.String("origins", "http://localhost:5173", "comma separated CORS and websocket origins")
	level := fs.String("log-level", "info", "trace, debug, info, warn or error")
	interval := fs.Duration("match-interval", time.Second, "how often queued players are paired")
	clock := fs.Duration("clock", 10*time.Minute, "thinking time per side")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if v := getenv("CHESS_ADDR"); v != "" {
		*addr = v
	}
	if v := getenv("CHESS_ORIGINS"); v != "" {
		*origins = v
	}
	if v := getenv("CHESS_LOG_LEVEL"); v != "" {
		*level = v
	}
	for name, d := range map[string]*time.Duration{
		"CHESS_MATCH_INTERVAL": interval,
		"CHESS_CLOCK":          clock,
	} {
		v := getenv(name)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", name, err)
		}
		*d = parsed
	}

	cfg := Config{
		Addr:          *addr,
		MatchInterval: *interval,
		Clock:         *clock,
	}
	lvl, ok := levels[strings.ToLower(*level)]
	if !ok {
		return Config{}, fmt.Errorf("unknown log level %q", *level)
	}
	cfg.LogLevel = lvl
	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Origins = append(cfg.Origins, o)
		}
	}
	if cfg.MatchInterval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %s", cfg.MatchInterval)
	}
	return cfg, nil
}

// AllowOrigins joins the origins the way the CORS middleware expects them.
func (c Config) AllowOrigins() string {
	return strings.Join(c.Origins, ", ")
}
