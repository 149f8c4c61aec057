package evaluation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// Report is the persisted outcome of a run.
type Report struct {
	Timestamp       string               `json:"timestamp"`
	TotalQuestions  int                  `json:"total_questions"`
	AverageMetrics  Metrics              `json:"average_metrics"`
	QualityScores   map[string]Tier      `json:"quality_scores"`
	Thresholds      map[string]Threshold `json:"thresholds"`
	Recommendations []Recommendation     `json:"recommendations"`
	DetailedResults []Result             `json:"detailed_results"`
}

// BuildReport averages the results and rates each metric.
func BuildReport(results []Result, thresholds map[string]Threshold, at time.Time) *Report {
	avg := Average(results)
	ratings := Rate(avg, thresholds)

	recs := Recommendations(ratings)
	if recs == nil {
		recs = []Recommendation{}
	}

	return &Report{
		Timestamp:       at.Format(timestampLayout),
		TotalQuestions:  len(results),
		AverageMetrics:  avg,
		QualityScores:   ratings,
		Thresholds:      thresholds,
		Recommendations: recs,
		DetailedResults: results,
	}
}

// Average is the per-metric mean; an empty slice averages to zero.
func Average(results []Result) Metrics {
	if len(results) == 0 {
		return Metrics{}
	}

	var sum Metrics
	for _, r := range results {
		sum.AnswerRelevancy += r.Metrics.AnswerRelevancy
		sum.ContextPrecision += r.Metrics.ContextPrecision
		sum.ContextRecall += r.Metrics.ContextRecall
		sum.Faithfulness += r.Metrics.Faithfulness
		sum.AnswerCorrectness += r.Metrics.AnswerCorrectness
	}

	n := float64(len(results))
	return Metrics{
		AnswerRelevancy:   sum.AnswerRelevancy / n,
		ContextPrecision:  sum.ContextPrecision / n,
		ContextRecall:     sum.ContextRecall / n,
		Faithfulness:      sum.Faithfulness / n,
		AnswerCorrectness: sum.AnswerCorrectness / n,
	}
}

// WriteJSON stores the report as indented UTF-8 JSON.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

var tierColors = map[Tier]*color.Color{
	TierExcellent: color.New(color.FgGreen, color.Bold),
	TierGood:      color.New(color.FgGreen),
	TierFair:      color.New(color.FgYellow),
	TierPoor:      color.New(color.FgRed),
}

func tierColor(t Tier) *color.Color {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return color.New(color.Reset)
}

// PrintItem writes the metric lines of one scored item.
func PrintItem(w io.Writer, index, total int, r Result) {
	header := color.New(color.FgCyan)
	header.Fprintf(w, "(%d/%d) %s\n", index, total, r.Question)

	if r.Error != "" {
		color.New(color.FgRed).Fprintf(w, "   Error: %s\n", r.Error)
	}
	for _, name := range MetricNames {
		fmt.Fprintf(w, "   %s: %.3f\n", displayName(name), r.Metrics.Get(name))
	}
	fmt.Fprintf(w, "   Answer length: %d words\n", wordCount(r.Answer))
	fmt.Fprintf(w, "   Context count: %d\n", len(r.Contexts))
	if len(r.Contexts) > 0 {
		fmt.Fprintf(w, "   First context: %s...\n", truncate(r.Contexts[0], 100))
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
}

// PrintSummary writes averages, ratings and recommendations.
func PrintSummary(w io.Writer, r *Report) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	color.New(color.Bold).Fprintln(w, "Evaluation Results")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Questions: %d\n\n", r.TotalQuestions)

	fmt.Fprintln(w, "Performance by Metric:")
	for _, name := range MetricNames {
		tier := r.QualityScores[name]
		fmt.Fprintf(w, "   %s: %.3f (", name, r.AverageMetrics.Get(name))
		tierColor(tier).Fprint(w, string(tier))
		fmt.Fprintln(w, ")")
	}

	if len(r.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(w, "\nImprovement Recommendations:")
	for _, rec := range r.Recommendations {
		color.New(color.FgYellow).Fprintf(w, "   - %s: %s\n", rec.Metric, rec.Advice)
	}
}

func displayName(metric string) string {
	words := strings.Split(metric, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
