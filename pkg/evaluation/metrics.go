package evaluation

import "strings"

// Metric names as they appear in reports.
const (
	AnswerRelevancy   = "answer_relevancy"
	ContextPrecision  = "context_precision"
	ContextRecall     = "context_recall"
	Faithfulness      = "faithfulness"
	AnswerCorrectness = "answer_correctness"
)

// MetricNames lists every metric in report order.
var MetricNames = []string{AnswerRelevancy, ContextPrecision, ContextRecall, Faithfulness, AnswerCorrectness}

// Metrics holds the five scores of one item, or their averages.
type Metrics struct {
	AnswerRelevancy   float64 `json:"answer_relevancy"`
	ContextPrecision  float64 `json:"context_precision"`
	ContextRecall     float64 `json:"context_recall"`
	Faithfulness      float64 `json:"faithfulness"`
	AnswerCorrectness float64 `json:"answer_correctness"`
}

// Get returns the score for a metric name, or 0 for unknown names.
func (m Metrics) Get(name string) float64 {
	switch name {
	case AnswerRelevancy:
		return m.AnswerRelevancy
	case ContextPrecision:
		return m.ContextPrecision
	case ContextRecall:
		return m.ContextRecall
	case Faithfulness:
		return m.Faithfulness
	case AnswerCorrectness:
		return m.AnswerCorrectness
	}
	return 0
}

// Score computes all five metrics for one item.
func Score(question, answer, groundTruth string, contexts []string) Metrics {
	return Metrics{
		AnswerRelevancy:   ScoreAnswerRelevancy(question, answer),
		ContextPrecision:  ScoreContextPrecision(question, contexts),
		ContextRecall:     ScoreContextRecall(groundTruth, contexts),
		Faithfulness:      ScoreFaithfulness(answer, contexts),
		AnswerCorrectness: ScoreAnswerCorrectness(groundTruth, answer),
	}
}

var (
	professionalTerms   = []string{"ratio", "calculate", "formula", "assets", "liabilities", "revenue", "profit", "equity", "debt"}
	interrogatives      = []string{"what", "how", "why", "when", "which", "explain"}
	calculationCues     = []string{"calculate", "formula", "compute", "determine"}
	calculationAnswers  = []string{"formula", "calculated", "=", "/", "divided"}
	correctnessFormulae = []string{"formula", "calculated", "divided by"}
)

// ScoreAnswerRelevancy weighs concept coverage (0.5), answer structure (0.3)
// and fit to the question type (0.2). Non-trivial answers score at least 0.3.
func ScoreAnswerRelevancy(question, answer string) float64 {
	if len(wordSet(question)) == 0 || len(wordSet(answer)) == 0 {
		return 0
	}

	keyword := keywordScore(question, answer)
	structure := answerStructure(answer)
	questionFit := questionTypeFit(question, answer)

	relevancy := keyword*0.5 + min(structure, 1.0)*0.3 + questionFit*0.2
	if trimmedLen(answer) > 10 {
		relevancy = max(relevancy, 0.3)
	}
	return clamp01(relevancy)
}

func answerStructure(answer string) float64 {
	loweredA := lower(answer)
	score := 0.0

	if containsAny(loweredA, formulaMarkers) {
		score += 0.3
	}
	if hasDigit(answer) {
		score += 0.2
	}
	score += min(float64(countContained(loweredA, professionalTerms))*0.1, 0.3)

	switch words := wordCount(answer); {
	case words >= 20:
		score += 0.2
	case words >= 10:
		score += 0.1
	}
	return min(score, 1.0)
}

func questionTypeFit(question, answer string) float64 {
	loweredQ := lower(question)
	score := 0.0

	if containsAny(loweredQ, interrogatives) {
		score += 0.1
	}
	if containsAny(loweredQ, calculationCues) && containsAny(lower(answer), calculationAnswers) {
		score += 0.1
	}
	return score
}

// ScoreContextPrecision averages, over the non-empty passages, concept
// coverage (0.6) and passage quality (0.4). Passages longer than 20
// characters score at least 0.2.
func ScoreContextPrecision(question string, contexts []string) float64 {
	if len(contexts) == 0 {
		return 0
	}

	var scores []float64
	for _, ctx := range contexts {
		if len(wordSet(ctx)) == 0 {
			continue
		}

		precision := keywordScore(question, ctx)*0.6 + min(passageQuality(ctx), 1.0)*0.4
		if trimmedLen(ctx) > 20 {
			precision = max(precision, 0.2)
		}
		scores = append(scores, clamp01(precision))
	}
	return mean(scores)
}

func passageQuality(ctx string) float64 {
	score := 0.0

	switch words := wordCount(ctx); {
	case words >= 30:
		score += 0.2
	case words >= 15:
		score += 0.1
	}
	if hasDigit(ctx) {
		score += 0.1
	}
	if containsAny(lower(ctx), formulaMarkers) {
		score += 0.1
	}
	return score
}

// ScoreContextRecall averages, per non-empty passage, the share of
// ground-truth words the passage contains.
func ScoreContextRecall(groundTruth string, contexts []string) float64 {
	if len(contexts) == 0 {
		return 0
	}

	gtWords := wordSet(groundTruth)
	var scores []float64
	for _, ctx := range contexts {
		ctxWords := wordSet(ctx)
		if len(ctxWords) == 0 {
			continue
		}
		if len(gtWords) == 0 {
			scores = append(scores, 0)
			continue
		}
		scores = append(scores, float64(overlap(gtWords, ctxWords))/float64(len(gtWords)))
	}
	return clamp01(mean(scores))
}

// ScoreFaithfulness is the share of answer words found anywhere in the passages.
func ScoreFaithfulness(answer string, contexts []string) float64 {
	if len(contexts) == 0 || answer == "" {
		return 0
	}

	answerWords := wordSet(answer)
	if len(answerWords) == 0 {
		return 0
	}
	contextWords := wordSet(strings.Join(contexts, " "))
	return clamp01(float64(overlap(answerWords, contextWords)) / float64(len(answerWords)))
}

// ScoreAnswerCorrectness is ground-truth word recall in the answer, with a
// 0.1 bonus each for a numeral and for a formula phrase.
func ScoreAnswerCorrectness(groundTruth, answer string) float64 {
	if groundTruth == "" || answer == "" {
		return 0
	}

	gtWords := wordSet(groundTruth)
	correctness := 0.0
	if len(gtWords) > 0 {
		correctness = float64(overlap(gtWords, wordSet(answer))) / float64(len(gtWords))
	}

	if hasDigit(answer) {
		correctness += 0.1
	}
	if containsAny(lower(answer), correctnessFormulae) {
		correctness += 0.1
	}
	return clamp01(correctness)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
