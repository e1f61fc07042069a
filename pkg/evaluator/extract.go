package evaluator

import (
	"encoding/json"
	"regexp"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?\\s*```")
	braceSpanRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseJSONObject extracts a JSON object from text that may contain markdown
// fences or surrounding prose. Parsing order: direct parse, fenced code
// block, first brace-delimited span. Returns nil when nothing parses.
func ParseJSONObject(text string) map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err == nil {
		return data
	}

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &data); err == nil {
			return data
		}
	}

	if span := braceSpanRe.FindString(text); span != "" {
		if err := json.Unmarshal([]byte(span), &data); err == nil {
			return data
		}
	}

	return nil
}

// ExtractFeedback pulls validated feedback out of a turn's tool outputs.
// The tutor's conversational reply is never consulted: the learner's own
// text flows through it, so it cannot be trusted as a score source.
// Returns nil when no tool output holds valid feedback.
func ExtractFeedback(result *RawResult) *Feedback {
	if result == nil {
		return nil
	}
	for _, tool := range result.ToolOutputs {
		data := ParseJSONObject(tool.Output)
		if data == nil {
			continue
		}
		if fb := ValidateFeedback(data); fb != nil {
			return fb
		}
	}
	return nil
}

// ExtractSummary parses and validates a summary from the summarizer's reply.
func ExtractSummary(result *RawResult) *Summary {
	if result == nil {
		return nil
	}
	data := ParseJSONObject(result.FinalOutput)
	if data == nil {
		return nil
	}
	return ValidateSummary(data)
}

// ValidateFeedback checks the shape and ranges of a feedback object. All
// three scores must be numeric and within [1,10], and the correctness flag
// must be present; otherwise the whole object is rejected.
func ValidateFeedback(data map[string]interface{}) *Feedback {
	scores := make(map[string]float64, 3)
	for _, key := range []string{"grammarScore", "usageScore", "naturalnessScore"} {
		raw, ok := data[key]
		if !ok {
			return nil
		}
		score, ok := raw.(float64)
		if !ok || score < 1 || score > 10 {
			return nil
		}
		scores[key] = score
	}

	rawCorrect, ok := data["isCorrect"]
	if !ok {
		return nil
	}
	isCorrect, ok := rawCorrect.(bool)
	if !ok {
		return nil
	}

	return &Feedback{
		GrammarScore:     scores["grammarScore"],
		UsageScore:       scores["usageScore"],
		NaturalnessScore: scores["naturalnessScore"],
		IsCorrect:        isCorrect,
		Feedback:         stringValue(data, "feedback"),
		Corrections:      stringSlice(data, "corrections"),
		Explanations:     stringSlice(data, "explanations"),
		ExampleSentences: stringSlice(data, "exampleSentences"),
	}
}

// ValidateSummary requires a non-empty summary text; the memory update list
// defaults to empty when absent.
func ValidateSummary(data map[string]interface{}) *Summary {
	text, ok := data["summary_text"].(string)
	if !ok || text == "" {
		return nil
	}
	return &Summary{
		SummaryText:   text,
		MemoryUpdates: stringSlice(data, "mem0_updates"),
	}
}

func stringValue(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func stringSlice(data map[string]interface{}, key string) []string {
	out := []string{}
	raw, ok := data[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
