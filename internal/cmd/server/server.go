// Package server wires configuration and startup for the task API service.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/taskhub/internal/api"
	"github.com/louisbranch/taskhub/internal/auth/token"
	"github.com/louisbranch/taskhub/internal/storage/sqlite"
)

// Config holds server command configuration.
type Config struct {
	HTTPAddr string
	DBPath   string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config. Environment values provide the
// defaults; flags override them.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr: envOrDefault(lookup, "TASKHUB_HTTP_ADDR", "localhost:8080"),
		DBPath:   envOrDefault(lookup, "TASKHUB_DB_PATH", "taskhub.db"),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The API HTTP server address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the sqlite database file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens storage, loads the token signing config, and serves HTTP until
// the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	tokens, err := token.LoadConfigFromEnv(time.Now)
	if err != nil {
		return fmt.Errorf("load token config: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	srv, err := api.NewServer(api.Config{
		HTTPAddr: cfg.HTTPAddr,
		Users:    store,
		Tasks:    store,
		Tokens:   tokens,
	})
	if err != nil {
		return fmt.Errorf("build api server: %w", err)
	}
	defer srv.Close()

	log.Printf("serving http on %s", cfg.HTTPAddr)
	return srv.ListenAndServe(ctx)
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
