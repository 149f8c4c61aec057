package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"ai-guide-assistant/internal/bootstrap"
	"ai-guide-assistant/internal/config"
)

func main() {
	pattern := flag.String("glob", "docs/*.md", "files to index")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer container.Close()

	files, err := filepath.Glob(*pattern)
	if err != nil {
		log.Fatalf("Error: bad pattern %q: %v", *pattern, err)
	}
	if len(files) == 0 {
		log.Fatalf("Error: no files match %q", *pattern)
	}

	ctx := context.Background()
	total := 0
	for _, file := range files {
		n, err := container.IngestService.IngestFile(ctx, file)
		if err != nil {
			log.Fatalf("Error: ingest %s: %v", file, err)
		}
		log.Printf("Indexed %s (%d chunks)", file, n)
		total += n
	}
	log.Printf("Success: %d chunks from %d files in %s", total, len(files), cfg.Retriever.GuideIndex)
}
