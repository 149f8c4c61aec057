package evaluation

// Tier is the quality rating of an averaged metric.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierFair      Tier = "Fair"
	TierPoor      Tier = "Poor"
)

// Threshold holds the lower bounds of each tier. Bounds are inclusive; Poor
// mirrors Fair and is informational.
type Threshold struct {
	Excellent float64 `json:"excellent"`
	Good      float64 `json:"good"`
	Fair      float64 `json:"fair"`
	Poor      float64 `json:"poor"`
}

var standardThreshold = Threshold{Excellent: 0.85, Good: 0.70, Fair: 0.50, Poor: 0.50}

// DefaultThresholds are strict because financial answers must be accurate;
// faithfulness is held to a higher bar still.
var DefaultThresholds = map[string]Threshold{
	AnswerRelevancy:   standardThreshold,
	ContextPrecision:  standardThreshold,
	ContextRecall:     standardThreshold,
	Faithfulness:      {Excellent: 0.90, Good: 0.75, Fair: 0.60, Poor: 0.60},
	AnswerCorrectness: standardThreshold,
}

// Classify rates value against t.
func (t Threshold) Classify(value float64) Tier {
	switch {
	case value >= t.Excellent:
		return TierExcellent
	case value >= t.Good:
		return TierGood
	case value >= t.Fair:
		return TierFair
	default:
		return TierPoor
	}
}

// Rate classifies every averaged metric.
func Rate(avg Metrics, thresholds map[string]Threshold) map[string]Tier {
	ratings := make(map[string]Tier, len(MetricNames))
	for _, name := range MetricNames {
		t, ok := thresholds[name]
		if !ok {
			t = standardThreshold
		}
		ratings[name] = t.Classify(avg.Get(name))
	}
	return ratings
}

// Recommendation is improvement advice for a weak metric.
type Recommendation struct {
	Metric string `json:"metric"`
	Tier   Tier   `json:"tier"`
	Advice string `json:"advice"`
}

var advice = map[string]string{
	AnswerRelevancy:   "Answer generation prompt improvement needed",
	ContextPrecision:  "Search algorithm and embedding model improvement needed",
	ContextRecall:     "Document indexing and chunking strategy improvement needed",
	Faithfulness:      "Context utilization during answer generation improvement needed",
	AnswerCorrectness: "Ground truth data quality and answer accuracy improvement needed",
}

// Recommendations returns advice for every Fair or Poor metric, in report order.
func Recommendations(ratings map[string]Tier) []Recommendation {
	var recs []Recommendation
	for _, name := range MetricNames {
		tier := ratings[name]
		if tier != TierFair && tier != TierPoor {
			continue
		}
		recs = append(recs, Recommendation{Metric: name, Tier: tier, Advice: advice[name]})
	}
	return recs
}
