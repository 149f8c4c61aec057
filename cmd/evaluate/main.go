package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-guide-assistant/internal/bootstrap"
	"ai-guide-assistant/internal/config"
	"ai-guide-assistant/pkg/evaluation"
	"ai-guide-assistant/pkg/rag"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	datasetPath := flag.String("dataset", cfg.Eval.DatasetPath, "YAML dataset (defaults to the built-in questions)")
	outPath := flag.String("out", cfg.Eval.OutputPath, "JSON report path")
	concurrency := flag.Int("concurrency", cfg.Eval.Concurrency, "questions evaluated in parallel")
	flag.Parse()

	items, err := loadItems(*datasetPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.StartSearchLog(ctx); err != nil {
		log.Printf("Warning: search logging unavailable: %v", err)
	}

	// Every question gets its own session so no history leaks between items.
	answer := func(ctx context.Context, question string) (string, []rag.Passage, error) {
		res, err := container.Orchestrator.Ask(ctx, uuid.NewString(), question)
		if err != nil {
			return "", nil, err
		}
		return res.Text, res.Passages, nil
	}

	runner := evaluation.NewRunner(answer, evaluation.RunnerConfig{
		MaxContexts:     cfg.Eval.MaxContexts,
		ContextMinScore: cfg.Eval.ContextMinScore,
		Concurrency:     *concurrency,
	}, container.Logger)
	runner.OnProgress(func(index, total int, result evaluation.Result) {
		evaluation.PrintItem(os.Stdout, index, total, result)
	})

	color.New(color.Bold).Printf("Evaluating %d questions\n", len(items))
	start := time.Now()

	report, err := runner.Run(ctx, items)
	if err != nil {
		log.Fatalf("Error: evaluation aborted: %v", err)
	}

	evaluation.PrintSummary(os.Stdout, report)

	if err := report.WriteJSON(*outPath); err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Printf("Report written to %s (%s)", *outPath, time.Since(start).Round(time.Second))
}

func loadItems(path string) ([]evaluation.Item, error) {
	if path == "" {
		return evaluation.DefaultDataset()
	}
	return evaluation.LoadDataset(path)
}
