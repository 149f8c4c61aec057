package evaluation

// Concept is a financial notion and the words that signal it.
type Concept struct {
	Name     string
	Synonyms []string
}

// Concepts is the synonym table shared by answer relevancy and context
// precision. Order is significant only for reporting.
var Concepts = []Concept{
	{Name: "ratio", Synonyms: []string{"ratio", "rate", "percentage", "proportion", "multiple"}},
	{Name: "calculate", Synonyms: []string{"calculate", "computation", "formula", "equation", "compute", "determine"}},
	{Name: "profit", Synonyms: []string{"profit", "income", "earnings", "revenue", "net income", "gross profit"}},
	{Name: "assets", Synonyms: []string{"assets", "capital", "resources", "holdings", "property"}},
	{Name: "debt", Synonyms: []string{"debt", "liability", "obligation", "borrowing", "loan"}},
	{Name: "equity", Synonyms: []string{"equity", "ownership", "shareholder", "stock", "shares"}},
	{Name: "current", Synonyms: []string{"current", "short-term", "immediate", "liquid"}},
	{Name: "quick", Synonyms: []string{"quick", "acid-test", "immediate", "liquid"}},
	{Name: "margin", Synonyms: []string{"margin", "profitability", "efficiency", "return"}},
	{Name: "risk", Synonyms: []string{"risk", "volatility", "uncertainty", "variance"}},
	{Name: "value", Synonyms: []string{"value", "valuation", "worth", "price", "cost"}},
}

// conceptsIn returns the concepts whose name or a synonym occurs in lowered.
func conceptsIn(lowered string) []Concept {
	var found []Concept
	for _, c := range Concepts {
		if containsAny(lowered, []string{c.Name}) || containsAny(lowered, c.Synonyms) {
			found = append(found, c)
		}
	}
	return found
}

// keywordScore is the share of the question's concepts that the text covers.
// Without concepts it falls back to plain word overlap with the question.
func keywordScore(question, text string) float64 {
	loweredQ := lower(question)
	concepts := conceptsIn(loweredQ)
	if len(concepts) == 0 {
		qWords := wordSet(question)
		if len(qWords) == 0 {
			return 0
		}
		return float64(overlap(qWords, wordSet(text))) / float64(len(qWords))
	}

	loweredText := lower(text)
	matches := 0
	for _, c := range concepts {
		if containsAny(loweredText, c.Synonyms) {
			matches++
		}
	}
	return float64(matches) / float64(len(concepts))
}
