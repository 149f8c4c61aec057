package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	items, err := DefaultDataset()
	require.NoError(t, err)
	assert.Len(t, items, 53)
	for _, item := range items {
		assert.NotEmpty(t, item.Question)
		assert.NotEmpty(t, item.GroundTruth)
	}
}

func TestParseDatasetRejectsInvalid(t *testing.T) {
	_, err := ParseDataset([]byte("items: []"))
	assert.Error(t, err)

	_, err = ParseDataset([]byte("items:\n  - question: \"\"\n    ground_truth: x\n"))
	assert.Error(t, err)

	items, err := ParseDataset([]byte("items:\n  - question: q\n    ground_truth: a\n"))
	require.NoError(t, err)
	assert.Equal(t, []Item{{Question: "q", GroundTruth: "a"}}, items)
}

func TestRunnerScoresAndKeepsFailures(t *testing.T) {
	items := []Item{
		{Question: "What is the current ratio?", GroundTruth: "Current Assets divided by Current Liabilities"},
		{Question: "broken", GroundTruth: "anything"},
	}

	answer := func(ctx context.Context, question string) (string, []rag.Passage, error) {
		if question == "broken" {
			return "", nil, errors.New("llm unavailable")
		}
		return "current assets divided by current liabilities", []rag.Passage{
			{Text: "Current Assets divided by Current Liabilities", Score: 0.9},
			{Text: "too weak", Score: 0.3},
			{Text: "second", Score: 0.5},
			{Text: "third", Score: 0.4},
			{Text: "fourth", Score: 0.35},
		}, nil
	}

	var mu sync.Mutex
	var seen []int
	runner := NewRunner(answer, RunnerConfig{MaxContexts: 3, ContextMinScore: 0.3, Concurrency: 2}, logger.NewNopLogger())
	runner.OnProgress(func(index, total int, result Result) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, index)
		assert.Equal(t, 2, total)
	})

	report, err := runner.Run(context.Background(), items)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, seen)

	assert.Equal(t, 2, report.TotalQuestions)
	require.Len(t, report.DetailedResults, 2)

	ok := report.DetailedResults[0]
	assert.Equal(t, []string{"Current Assets divided by Current Liabilities", "second", "third"}, ok.Contexts)
	assert.Empty(t, ok.Error)
	assert.Greater(t, ok.Metrics.Faithfulness, 0.0)

	failed := report.DetailedResults[1]
	assert.Equal(t, Metrics{}, failed.Metrics)
	assert.Equal(t, []string{}, failed.Contexts)
	assert.Equal(t, "llm unavailable", failed.Error)

	assert.InDelta(t, ok.Metrics.Faithfulness/2, report.AverageMetrics.Faithfulness, 1e-9)
	assert.Len(t, report.QualityScores, len(MetricNames))
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(func(ctx context.Context, q string) (string, []rag.Passage, error) {
		return "a", nil, nil
	}, RunnerConfig{}, logger.NewNopLogger())

	_, err := runner.Run(ctx, []Item{{Question: "q"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportWriteJSON(t *testing.T) {
	results := []Result{{Question: "q", Answer: "a", GroundTruth: "g", Contexts: []string{}, Metrics: Metrics{AnswerRelevancy: 0.9}}}
	report := BuildReport(results, DefaultThresholds, fixedTime)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"timestamp", "total_questions", "average_metrics", "quality_scores", "thresholds", "recommendations", "detailed_results"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "Excellent", decoded["quality_scores"].(map[string]any)[AnswerRelevancy])
	assert.True(t, strings.HasPrefix(decoded["timestamp"].(string), "2024-03-01T10:30:00"))
}

func TestPrintSummaryListsRecommendations(t *testing.T) {
	report := BuildReport([]Result{{Metrics: Metrics{}}}, DefaultThresholds, fixedTime)

	var out strings.Builder
	PrintSummary(&out, report)
	assert.Contains(t, out.String(), "Total Questions: 1")
	assert.Contains(t, out.String(), "Document indexing and chunking strategy improvement needed")
}

var fixedTime = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
