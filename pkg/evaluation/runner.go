package evaluation

import (
	"context"
	"sync"
	"time"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/rag"

	"golang.org/x/sync/errgroup"
)

// AnswerFunc answers a question through the RAG pipeline and returns the
// passages it retrieved.
type AnswerFunc func(ctx context.Context, question string) (answer string, passages []rag.Passage, err error)

// ProgressFunc observes each scored item. Calls are serialized.
type ProgressFunc func(index, total int, result Result)

// Result is one scored item.
type Result struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	GroundTruth string   `json:"ground_truth"`
	Contexts    []string `json:"contexts"`
	Metrics     Metrics  `json:"metrics"`
	Error       string   `json:"error,omitempty"`
}

type RunnerConfig struct {
	MaxContexts     int
	ContextMinScore float64
	Concurrency     int
	Thresholds      map[string]Threshold
}

// Runner answers and scores a dataset.
type Runner struct {
	answer   AnswerFunc
	config   RunnerConfig
	progress ProgressFunc
	logger   logger.ILogger
}

func NewRunner(answer AnswerFunc, config RunnerConfig, log logger.ILogger) *Runner {
	if config.MaxContexts <= 0 {
		config.MaxContexts = 3
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.Thresholds == nil {
		config.Thresholds = DefaultThresholds
	}
	return &Runner{answer: answer, config: config, logger: log}
}

// OnProgress registers a callback invoked after each item.
func (r *Runner) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

// Run evaluates every item. A failing item is kept with zero metrics and the
// batch continues; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, items []Item) (*Report, error) {
	results := make([]Result, len(items))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := r.evaluate(gctx, item)
			results[i] = result

			if r.progress != nil {
				mu.Lock()
				r.progress(i+1, len(items), result)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildReport(results, r.config.Thresholds, time.Now()), nil
}

func (r *Runner) evaluate(ctx context.Context, item Item) Result {
	answer, passages, err := r.answer(ctx, item.Question)
	if err != nil {
		r.logger.Warn("Evaluation", "Item failed, scoring as zero", map[string]interface{}{
			"question": item.Question,
			"error":    err.Error(),
		})
		return Result{
			Question:    item.Question,
			GroundTruth: item.GroundTruth,
			Contexts:    []string{},
			Error:       err.Error(),
		}
	}

	contexts := r.selectContexts(passages)
	return Result{
		Question:    item.Question,
		Answer:      answer,
		GroundTruth: item.GroundTruth,
		Contexts:    contexts,
		Metrics:     Score(item.Question, answer, item.GroundTruth, contexts),
	}
}

// selectContexts keeps passages scoring above the minimum, up to MaxContexts.
func (r *Runner) selectContexts(passages []rag.Passage) []string {
	contexts := make([]string, 0, r.config.MaxContexts)
	for _, p := range passages {
		if len(contexts) == r.config.MaxContexts {
			break
		}
		if p.Score > r.config.ContextMinScore {
			contexts = append(contexts, p.Text)
		}
	}
	return contexts
}
