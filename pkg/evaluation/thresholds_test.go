package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	relevancy := DefaultThresholds[AnswerRelevancy]

	tests := []struct {
		value float64
		want  Tier
	}{
		{value: 1.0, want: TierExcellent},
		{value: 0.85, want: TierExcellent},
		{value: 0.84999, want: TierGood},
		{value: 0.70, want: TierGood},
		{value: 0.6999, want: TierFair},
		{value: 0.50, want: TierFair},
		{value: 0.4999, want: TierPoor},
		{value: 0, want: TierPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, relevancy.Classify(tt.value), "value %v", tt.value)
	}
}

func TestFaithfulnessIsStricter(t *testing.T) {
	assert.Equal(t, TierGood, DefaultThresholds[Faithfulness].Classify(0.85))
	assert.Equal(t, TierFair, DefaultThresholds[Faithfulness].Classify(0.70))
}

func TestRecommendationsForWeakMetrics(t *testing.T) {
	ratings := Rate(Metrics{
		AnswerRelevancy:   0.9,
		ContextPrecision:  0.6,
		ContextRecall:     0.2,
		Faithfulness:      0.95,
		AnswerCorrectness: 0.72,
	}, DefaultThresholds)

	recs := Recommendations(ratings)
	require.Len(t, recs, 2)
	assert.Equal(t, ContextPrecision, recs[0].Metric)
	assert.Equal(t, TierFair, recs[0].Tier)
	assert.Equal(t, "Search algorithm and embedding model improvement needed", recs[0].Advice)
	assert.Equal(t, ContextRecall, recs[1].Metric)
	assert.Equal(t, TierPoor, recs[1].Tier)
}
