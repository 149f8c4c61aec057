package events

import "time"

// Event is anything published on the event bus. Payload must be JSON
// encodable.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

const TypeSearchLogged = "SEARCH_LOGGED"

// SearchLogged announces that a search-log record has been stored.
type SearchLogged struct {
	ID          string
	SessionID   string
	Query       string
	ResultCount int
	TopScores   []float64
	LoggedAt    time.Time
}

var _ Event = SearchLogged{}

func NewSearchLoggedEvent(id, sessionID, query string, resultCount int, topScores []float64, at time.Time) Event {
	return SearchLogged{
		ID:          id,
		SessionID:   sessionID,
		Query:       query,
		ResultCount: resultCount,
		TopScores:   topScores,
		LoggedAt:    at,
	}
}

func (e SearchLogged) EventType() string { return TypeSearchLogged }

func (e SearchLogged) Timestamp() time.Time { return e.LoggedAt }

func (e SearchLogged) Payload() map[string]interface{} {
	scores := e.TopScores
	if scores == nil {
		scores = []float64{}
	}
	return map[string]interface{}{
		"id":           e.ID,
		"session_id":   e.SessionID,
		"query":        e.Query,
		"result_count": e.ResultCount,
		"top_scores":   scores,
		"timestamp":    e.LoggedAt.UTC().Format(time.RFC3339),
	}
}
