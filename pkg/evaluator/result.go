package evaluator

// ToolOutput is the raw structured payload produced by one internal tool
// call during a turn (e.g. the scoring persona's JSON).
type ToolOutput struct {
	ToolName string
	Output   string
}

// RawResult is everything a turn produced. FinalOutput is the tutor's
// conversational reply; ToolOutputs are the only trusted source of scores.
type RawResult struct {
	FinalOutput string
	ToolOutputs []ToolOutput
}

// Feedback is a validated sentence evaluation. Field names follow the wire
// format the frontend already consumes.
type Feedback struct {
	GrammarScore     float64  `json:"grammarScore"`
	UsageScore       float64  `json:"usageScore"`
	NaturalnessScore float64  `json:"naturalnessScore"`
	IsCorrect        bool     `json:"isCorrect"`
	Feedback         string   `json:"feedback"`
	Corrections      []string `json:"corrections"`
	Explanations     []string `json:"explanations"`
	ExampleSentences []string `json:"exampleSentences"`
}

// Summary is a validated end-of-session summary.
type Summary struct {
	SummaryText   string   `json:"summary_text"`
	MemoryUpdates []string `json:"mem0_updates"`
}
