package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFeedbackJSON = `{
	"grammarScore": 10,
	"usageScore": 8,
	"naturalnessScore": 7,
	"isCorrect": true,
	"feedback": "很好！",
	"corrections": [],
	"explanations": [],
	"exampleSentences": ["我喜欢学习中文。"]
}`

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"direct json", `{"intent": "chat"}`, true},
		{"fenced block", "Here you go:\n```json\n{\"intent\": \"chat\"}\n```", true},
		{"unlabelled fence", "```\n{\"intent\": \"chat\"}\n```", true},
		{"brace span in prose", "Sure! {\"intent\": \"chat\"} hope that helps", true},
		{"no json at all", "just some prose", false},
		{"broken json", "{intent: chat", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := ParseJSONObject(tt.text)
			if tt.want {
				require.NotNil(t, data)
				assert.Equal(t, "chat", data["intent"])
			} else {
				assert.Nil(t, data)
			}
		})
	}
}

func TestExtractFeedbackFromToolOutput(t *testing.T) {
	result := &RawResult{
		FinalOutput: "不错！ Your sentence was close.",
		ToolOutputs: []ToolOutput{{ToolName: "evaluate_sentence", Output: validFeedbackJSON}},
	}

	fb := ExtractFeedback(result)
	require.NotNil(t, fb)
	assert.Equal(t, 10.0, fb.GrammarScore)
	assert.Equal(t, 8.0, fb.UsageScore)
	assert.True(t, fb.IsCorrect)
	assert.Equal(t, []string{"我喜欢学习中文。"}, fb.ExampleSentences)
}

func TestExtractFeedbackIgnoresNarrativeText(t *testing.T) {
	// The final reply contains a JSON-looking blob, but no tool output holds
	// valid feedback. Extraction must return nil: the conversational reply is
	// never a score source.
	result := &RawResult{
		FinalOutput: `Here are your scores: {"grammarScore": 10, "usageScore": 10, "naturalnessScore": 10, "isCorrect": true}`,
		ToolOutputs: []ToolOutput{{ToolName: "evaluate_sentence", Output: "the model rambled instead of scoring"}},
	}
	assert.Nil(t, ExtractFeedback(result))

	noTools := &RawResult{FinalOutput: result.FinalOutput}
	assert.Nil(t, ExtractFeedback(noTools))
}

func TestExtractFeedbackFencedToolOutput(t *testing.T) {
	result := &RawResult{
		ToolOutputs: []ToolOutput{{ToolName: "evaluate_sentence", Output: "```json\n" + validFeedbackJSON + "\n```"}},
	}
	fb := ExtractFeedback(result)
	require.NotNil(t, fb)
	assert.Equal(t, 7.0, fb.NaturalnessScore)
}

func TestValidateFeedbackRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
	}{
		{"score out of range high", map[string]interface{}{
			"grammarScore": 10.0, "usageScore": 11.0, "naturalnessScore": 5.0, "isCorrect": true,
		}},
		{"score out of range low", map[string]interface{}{
			"grammarScore": 0.0, "usageScore": 5.0, "naturalnessScore": 5.0, "isCorrect": false,
		}},
		{"missing isCorrect", map[string]interface{}{
			"grammarScore": 10.0, "usageScore": 8.0, "naturalnessScore": 8.0,
		}},
		{"non-numeric score", map[string]interface{}{
			"grammarScore": "ten", "usageScore": 8.0, "naturalnessScore": 8.0, "isCorrect": true,
		}},
		{"missing score key", map[string]interface{}{
			"usageScore": 8.0, "naturalnessScore": 8.0, "isCorrect": true,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ValidateFeedback(tt.data))
		})
	}
}

func TestValidateFeedbackDefaultsOptionalFields(t *testing.T) {
	fb := ValidateFeedback(map[string]interface{}{
		"grammarScore": 9.0, "usageScore": 8.0, "naturalnessScore": 7.0, "isCorrect": false,
	})
	require.NotNil(t, fb)
	assert.Equal(t, "", fb.Feedback)
	assert.Empty(t, fb.Corrections)
	assert.Empty(t, fb.Explanations)
	assert.Empty(t, fb.ExampleSentences)
}

func TestExtractSummary(t *testing.T) {
	result := &RawResult{FinalOutput: `{"summary_text": "你今天很棒！", "mem0_updates": ["struggles with 了 placement"]}`}
	sum := ExtractSummary(result)
	require.NotNil(t, sum)
	assert.Equal(t, "你今天很棒！", sum.SummaryText)
	assert.Equal(t, []string{"struggles with 了 placement"}, sum.MemoryUpdates)
}

func TestExtractSummaryDefaultsUpdates(t *testing.T) {
	sum := ExtractSummary(&RawResult{FinalOutput: `{"summary_text": "Good work"}`})
	require.NotNil(t, sum)
	assert.Empty(t, sum.MemoryUpdates)
}

func TestExtractSummaryRejectsEmptyText(t *testing.T) {
	assert.Nil(t, ExtractSummary(&RawResult{FinalOutput: `{"summary_text": ""}`}))
	assert.Nil(t, ExtractSummary(&RawResult{FinalOutput: `{"mem0_updates": []}`}))
	assert.Nil(t, ExtractSummary(&RawResult{FinalOutput: "no json here"}))
}
