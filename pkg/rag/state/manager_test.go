package state

import (
	"testing"

	"ai-guide-assistant/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestManagerHappyPath(t *testing.T) {
	m := NewManager("s", logger.NewNopLogger())
	assert.Equal(t, StateNew, m.Current())

	for _, next := range []State{StateReformulating, StateRetrieving, StateGenerating, StateComplete} {
		assert.NoError(t, m.Transition(next))
	}
	assert.True(t, m.Current().IsTerminal())
}

func TestManagerRejectsSkippedStages(t *testing.T) {
	m := NewManager("s", logger.NewNopLogger())

	assert.Error(t, m.Transition(StateGenerating))
	assert.Equal(t, StateNew, m.Current())
}

func TestManagerTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []State{StateComplete, StateFailed, StateCancelled} {
		t.Run(string(terminal), func(t *testing.T) {
			assert.True(t, terminal.IsTerminal())
		})
	}

	m := NewManager("s", logger.NewNopLogger())
	assert.NoError(t, m.Transition(StateFailed))
	assert.Error(t, m.Transition(StateReformulating))
}
