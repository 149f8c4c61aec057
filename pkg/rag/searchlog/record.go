// Package searchlog records every retrieval query as a side record in a
// dedicated vector index. It never affects the answer path.
package searchlog

import (
	"sort"
	"time"
)

// MaxTopScores is the number of highest scores kept per record.
const MaxTopScores = 3

// Entry is what a retrieval call reports.
type Entry struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	TopScores   []float64 `json:"top_scores"`
	SessionID   string    `json:"session_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Record is a stored entry. Its vector is the query embedding.
type Record struct {
	ID string `json:"id"`
	Entry
}

// Metadata is the non-vector part written to the log index.
func (r Record) Metadata() map[string]any {
	return map[string]any{
		"query":        r.Query,
		"result_count": r.ResultCount,
		"top_scores":   r.TopScores,
		"session_id":   r.SessionID,
		"timestamp":    r.Timestamp.UTC().Format(time.RFC3339),
	}
}

// TopScores returns at most MaxTopScores of the given scores, highest first.
func TopScores(scores []float64) []float64 {
	sorted := append([]float64(nil), scores...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if len(sorted) > MaxTopScores {
		sorted = sorted[:MaxTopScores]
	}
	return sorted
}

// NewEntry builds an entry from a query and the scores of its results.
func NewEntry(query string, scores []float64, sessionID string) Entry {
	return Entry{
		Query:       query,
		ResultCount: len(scores),
		TopScores:   TopScores(scores),
		SessionID:   sessionID,
		Timestamp:   time.Now(),
	}
}
