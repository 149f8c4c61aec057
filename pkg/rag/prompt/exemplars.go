package prompt

// Exemplar is a fixed question/answer pair shown to the model before the
// conversation to demonstrate the expected answer style.
type Exemplar struct {
	Input  string
	Answer string
}

// DefaultExemplars cover a policy lookup, a principle summary, a list of
// sources and a calculation-style answer.
var DefaultExemplars = []Exemplar{
	{
		Input: "What are the core principles of financial analysis at Unity Financial Group?",
		Answer: "According to section 1.2 of the Financial Analyst's Guide, our analysis is based on three core principles: Accuracy, Clarity, and Timeliness. " +
			"Accuracy means all data must be sourced from approved databases and verified against official company reports. " +
			"Clarity means analytical findings should be presented in a clear, concise manner. " +
			"Finally, Timeliness means analysis must be completed within specified deadlines to support critical business decisions.",
	},
	{
		Input: "What are the key liquidity ratios and how are they calculated?",
		Answer: "The Key Financial Ratios Quick Guide (Section 2) details two liquidity ratios. " +
			"The **Current Ratio** measures a company's ability to pay short-term obligations and is calculated as Current Assets / Current Liabilities. " +
			"The **Quick Ratio** (or Acid-Test Ratio) is similar but excludes inventory, and is calculated as (Current Assets - Inventories) / Current Liabilities.",
	},
	{
		Input: "What is the policy for Paid Time Off (PTO) for full-time employees?",
		Answer: "According to the Employee Handbook (Section 3.4), full-time employees accrue 15 days of Paid Time Off (PTO) annually. " +
			"PTO must be requested through the internal HR system at least two weeks in advance and is subject to manager approval. " +
			"You can also carry over a maximum of 5 unused PTO days to the next year.",
	},
	{
		Input: "What are the approved data sources for financial analysts?",
		Answer: "According to the Approved Data Sources & Tools section (Section 7), financial analysts at Unity Financial Group should use the following approved sources:\n\n" +
			"**Internal Databases**\n" +
			"* **FinHub**: The primary database for all company-specific financial data, including historical performance and internal projections.\n" +
			"* **Databank**: A repository for macroeconomic data, industry trends, and competitor analysis reports.\n\n" +
			"**External Feeds**\n" +
			"* **Bloomberg Terminal**: The primary tool for real-time market data, news, and external company reports.\n" +
			"* **Reuters Eikon**: A secondary source for market data and financial news.",
	},
}
