package state

import (
	"fmt"

	"ai-guide-assistant/internal/pkg/logger"
)

// State is a stage of one answer request.
type State string

const (
	StateNew           State = "NEW"
	StateReformulating State = "REFORMULATING"
	StateRetrieving    State = "RETRIEVING"
	StateGenerating    State = "GENERATING"
	StateComplete      State = "COMPLETE"
	StateFailed        State = "FAILED"
	StateCancelled     State = "CANCELLED"
)

var transitions = map[State][]State{
	StateNew:           {StateReformulating, StateFailed, StateCancelled},
	StateReformulating: {StateRetrieving, StateFailed, StateCancelled},
	StateRetrieving:    {StateGenerating, StateFailed, StateCancelled},
	StateGenerating:    {StateComplete, StateFailed, StateCancelled},
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	_, ok := transitions[s]
	return !ok
}

// Manager tracks the state of a single request and logs each transition.
type Manager struct {
	sessionID string
	current   State
	logger    logger.ILogger
}

// NewManager starts a request in StateNew.
func NewManager(sessionID string, log logger.ILogger) *Manager {
	return &Manager{sessionID: sessionID, current: StateNew, logger: log}
}

func (m *Manager) Current() State { return m.current }

// Transition moves to next if the request lifecycle allows it.
func (m *Manager) Transition(next State) error {
	for _, allowed := range transitions[m.current] {
		if allowed == next {
			m.logger.Debug("Pipeline", "State transition", map[string]interface{}{
				"session_id": m.sessionID,
				"from":       string(m.current),
				"to":         string(next),
			})
			m.current = next
			return nil
		}
	}
	return fmt.Errorf("invalid state transition %s -> %s", m.current, next)
}
