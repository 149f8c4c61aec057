package main

import (
	"context"
	"log"

	"ai-guide-assistant/internal/config"
	"ai-guide-assistant/pkg/database"
	"ai-guide-assistant/pkg/vectorstore"
)

// Creates the passage index and the search-log index. Existing indices are
// reported and left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	indices := []string{cfg.Retriever.GuideIndex, cfg.Retriever.SearchLogIndex}

	for _, index := range indices {
		store := vectorstore.NewPgvectorStore(db, index, cfg.Ai.EmbeddingDimension)
		created, err := store.EnsureIndex(ctx)
		if err != nil {
			log.Fatalf("Error: Failed to create index %s: %v", index, err)
		}
		if created {
			log.Printf("Created index %s (table %s, %d dimensions)", index, vectorstore.TableName(index), cfg.Ai.EmbeddingDimension)
		} else {
			log.Printf("Index %s already exists", index)
		}
	}

	log.Println("Success: vector indices are ready.")
}
