package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsDegenerateInputsAreZero(t *testing.T) {
	tests := []struct {
		name        string
		question    string
		answer      string
		groundTruth string
		contexts    []string
	}{
		{name: "everything empty"},
		{name: "empty contexts", question: "What is ROE?", answer: "ROE = Net Income / Equity", groundTruth: "Net Income / Equity"},
		{name: "blank contexts", question: "What is ROE?", answer: "", groundTruth: "", contexts: []string{"", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.question, tt.answer, tt.groundTruth, tt.contexts)
			for _, name := range MetricNames {
				v := m.Get(name)
				assert.GreaterOrEqual(t, v, 0.0, name)
				assert.LessOrEqual(t, v, 1.0, name)
			}
			assert.Equal(t, 0.0, m.ContextPrecision)
			assert.Equal(t, 0.0, m.ContextRecall)
			assert.Equal(t, 0.0, m.Faithfulness)
		})
	}
}

func TestMetricsStayInRange(t *testing.T) {
	inputs := []struct {
		question, answer, groundTruth string
		contexts                      []string
	}{
		{
			question:    "How do you calculate the debt to equity ratio formula?",
			answer:      "Debt to equity ratio = Total Debt / Total Equity. The formula is calculated as debt divided by equity, e.g. 2 / 4 = 0.5, which shows leverage, profit, assets, revenue and liabilities.",
			groundTruth: "Debt to equity = Total Debt / Total Equity",
			contexts:    []string{"Debt to equity = Total Debt / Total Equity. 2024 formula divided by", "x"},
		},
		{question: "?", answer: "!!!", groundTruth: "...", contexts: []string{"---"}},
		{question: "¿Qué es?", answer: "日本語の回答 123", groundTruth: "回答", contexts: []string{"日本語の回答"}},
	}

	for _, in := range inputs {
		m := Score(in.question, in.answer, in.groundTruth, in.contexts)
		for _, name := range MetricNames {
			v := m.Get(name)
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
	}
}

func TestAnswerRelevancyFloor(t *testing.T) {
	assert.Equal(t, 0.0, ScoreAnswerRelevancy("What is the current ratio?", ""))

	// Short answers get no floor
	assert.Less(t, ScoreAnswerRelevancy("What is the current ratio?", "no idea"), 0.3)

	// Longer than 10 characters, no matching concept: floor applies
	assert.GreaterOrEqual(t, ScoreAnswerRelevancy("What is the current ratio?", "I cannot help with that"), 0.3)
}

func TestContextPrecisionEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, ScoreContextPrecision("What is the current ratio?", nil))
	assert.Equal(t, 0.0, ScoreContextPrecision("What is the current ratio?", []string{}))
}

func TestCurrentRatioScenario(t *testing.T) {
	question := "What is the current ratio?"
	passage := "The Current Ratio = Current Assets / Current Liabilities and it is a liquidity measure"
	groundTruth := "The current ratio is calculated as Current Assets divided by Current Liabilities"
	answer := "The current ratio = current assets / current liabilities"

	m := Score(question, answer, groundTruth, []string{passage})

	assert.Greater(t, m.ContextRecall, 0.3)
	assert.InDelta(t, 0.6, m.ContextRecall, 1e-9)
	assert.Equal(t, 1.0, m.Faithfulness)
	assert.Greater(t, m.AnswerRelevancy, 0.5)
	assert.Greater(t, m.ContextPrecision, 0.5)
}

func TestAnswerCorrectnessBonuses(t *testing.T) {
	gt := "net income divided by revenue"

	plain := ScoreAnswerCorrectness(gt, "net income")
	assert.InDelta(t, 2.0/5.0, plain, 1e-9)

	withFormula := ScoreAnswerCorrectness(gt, "net income divided by revenue")
	assert.Equal(t, 1.0, withFormula)

	withDigit := ScoreAnswerCorrectness(gt, "net income 10")
	assert.InDelta(t, 2.0/5.0+0.1, withDigit, 1e-9)
}

func TestKeywordScoreUsesSharedConcepts(t *testing.T) {
	// "determine" is a synonym of the calculate concept for both metrics
	q := "How do I determine the ratio?"
	text := "You compute the proportion"
	assert.Equal(t, 1.0, keywordScore(q, text))

	// Without concepts the score is word overlap
	assert.InDelta(t, 0.5, keywordScore("hello world", "hello there"), 1e-9)
}
