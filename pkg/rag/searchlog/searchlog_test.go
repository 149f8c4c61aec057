package searchlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/events"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constEmbedder struct{ err error }

func (e constEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{1, 0}, nil
}

func (e constEmbedder) Dimension() int { return 2 }

type capturePublisher struct {
	events []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func TestTopScores(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []float64
	}{
		{name: "empty", scores: nil, want: []float64{}},
		{name: "fewer than max", scores: []float64{0.4, 0.9}, want: []float64{0.9, 0.4}},
		{name: "truncated", scores: []float64{0.5, 0.8, 0.9, 0.7}, want: []float64{0.9, 0.8, 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopScores(tt.scores)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestTopScoresDoesNotMutateInput(t *testing.T) {
	scores := []float64{0.1, 0.9}
	TopScores(scores)
	assert.Equal(t, []float64{0.1, 0.9}, scores)
}

func TestLoggerRecord(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	publisher := &capturePublisher{}
	l := NewLogger(constEmbedder{}, store, publisher, logger.NewNopLogger())

	rec, err := l.Record(context.Background(), NewEntry("reset password", []float64{0.8, 0.75}, "s1"))
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 1, store.Len())

	matches, err := store.Query(context.Background(), []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, rec.ID, matches[0].ID)
	assert.Equal(t, "reset password", matches[0].Metadata["query"])
	assert.Equal(t, 2, matches[0].Metadata["result_count"])
	assert.Equal(t, "s1", matches[0].Metadata["session_id"])

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeSearchLogged, publisher.events[0].EventType())
}

func TestLoggerRecordDisabled(t *testing.T) {
	l := NewLogger(constEmbedder{}, nil, nil, logger.NewNopLogger())

	assert.False(t, l.Enabled())
	_, err := l.Record(context.Background(), NewEntry("q", nil, ""))
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestLoggerRecordEmbeddingFailure(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	l := NewLogger(constEmbedder{err: errors.New("down")}, store, nil, logger.NewNopLogger())

	_, err := l.Record(context.Background(), NewEntry("q", nil, ""))
	assert.ErrorIs(t, err, rag.ErrExternalService)
	assert.Equal(t, 0, store.Len())
}

func TestDispatcherStoresPublishedEntries(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	d := NewDispatcher(pubSub, NewLogger(constEmbedder{}, store, nil, logger.NewNopLogger()), logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, d.Consume(ctx))

	require.NoError(t, d.Publish(ctx, NewEntry("first", []float64{0.9}, "")))
	require.NoError(t, d.Publish(ctx, NewEntry("second", nil, "")))

	assert.Eventually(t, func() bool { return store.Len() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcherDisabled(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	defer pubSub.Close()

	d := NewDispatcher(pubSub, NewLogger(constEmbedder{}, nil, nil, logger.NewNopLogger()), logger.NewNopLogger())
	assert.ErrorIs(t, d.Publish(context.Background(), NewEntry("q", nil, "")), ErrDisabled)
}
