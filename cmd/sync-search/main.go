package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"unifest/internal/config"
	"unifest/internal/database"
	"unifest/internal/logger"
	"unifest/internal/repository"
	"unifest/internal/search"
)

func main() {
	var status string
	var pageSize int
	flag.StringVar(&status, "status", "", "Only reindex events with this status")
	flag.IntVar(&pageSize, "page-size", 100, "Events fetched per database page")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting search index synchronization", "status", status)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	esClient, err := search.NewElasticsearchClient(config.LoadElasticsearchConfig())
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	eventRepo := repository.NewEventRepository(db)

	if err := syncEvents(context.Background(), eventRepo, esClient, status, pageSize); err != nil {
		logger.Fatal("Search synchronization failed", "error", err)
	}

	slog.Info("Search index synchronization completed")
}

// syncEvents walks the events table page by page and reindexes every row.
// Indexing is an upsert, so a repeated run converges instead of duplicating.
func syncEvents(ctx context.Context, eventRepo *repository.EventRepository, esClient *search.ElasticsearchClient, status string, pageSize int) error {
	start := time.Now()
	total := 0
	failed := 0

	for page := 1; ; page++ {
		events, err := eventRepo.List(ctx, status, page, pageSize)
		if err != nil {
			return fmt.Errorf("failed to list events page %d: %w", page, err)
		}
		if len(events) == 0 {
			break
		}

		for i := range events {
			if err := esClient.IndexEvent(ctx, &events[i]); err != nil {
				slog.Error("Failed to index event",
					"event_id", events[i].ID,
					"error", err)
				failed++
				continue
			}
			total++
		}

		if len(events) < pageSize {
			break
		}
	}

	elapsed := time.Since(start)
	slog.Info("Reindex finished",
		"indexed", total,
		"failed", failed,
		"duration", elapsed.String())

	if failed > 0 {
		return fmt.Errorf("%d event(s) failed to index", failed)
	}
	return nil
}
