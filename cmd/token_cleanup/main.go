package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"crmboard/internal/database"
	"crmboard/internal/repository"
)

// Deactivates API tokens that have not authenticated a request for
// TOKEN_STALE_DAYS (default 90). Meant to run from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	staleDays := 90
	if v := os.Getenv("TOKEN_STALE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("invalid TOKEN_STALE_DAYS: %q", v)
		}
		staleDays = n
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -staleDays)
	deactivated, err := repository.NewApiTokenRepository(db).DeactivateStale(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("token cleanup failed: %v", err)
	}

	log.Printf("token cleanup completed: deactivated=%d cutoff=%s", deactivated, cutoff.Format(time.RFC3339))
}
