// Package main provides a CLI for seeding the local development database
// with demo users and tasks.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/taskhub/internal/seed"
	"github.com/louisbranch/taskhub/internal/storage/sqlite"
)

func main() {
	dbPath := flag.String("db-path", "taskhub.db", "path to the sqlite database file")
	flag.Parse()

	log.SetPrefix("[SEED] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := seed.Run(ctx, store, seed.Config{Out: os.Stdout}); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
