package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/ingestion"
	"github.com/quickcart/recon_backend/models"
)

func main() {
	file := flag.String("file", "", "Path to the JSONL raw transaction log feed (required).")
	noLock := flag.Bool("no-lock", false, "Skip the redis ingest lock (single-operator runs only).")
	flag.Parse()

	if strings.TrimSpace(*file) == "" {
		fmt.Fprintln(os.Stderr, "usage: rawlog-ingest -file <feed.jsonl>")
		os.Exit(2)
	}

	ctx := context.Background()

	// Explicit DB connect (config does not connect in init()).
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	if !*noLock {
		config.ConnectRedisWithRetry()
	}

	// Ensure schema is up-to-date (creates raw_transaction_logs if missing).
	models.MigrateTable()

	ing := ingestion.NewIngester(db, config.GetLogger())
	stats, err := ing.IngestFile(ctx, *file)
	if err != nil {
		if errors.Is(err, ingestion.ErrIngestLocked) {
			fmt.Fprintln(os.Stderr, "another ingest run holds the lock; try again later")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("processed=%d skipped=%d archived=%d duplicates=%d inserted=%d failed=%d\n",
		stats.Processed, stats.Skipped, stats.Archived, stats.Duplicates, stats.Inserted, stats.Failed)

	if stats.Processed == 0 {
		fmt.Fprintln(os.Stderr, "no valid logs to process")
		os.Exit(1)
	}
}
