package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-vocabcoach-be/pkg/llm"
	"ai-vocabcoach-be/pkg/practice"
	"ai-vocabcoach-be/pkg/transcript"
)

// fakeProvider scripts Chat and Generate responses in call order.
type fakeProvider struct {
	chatReplies  []string
	chatErrs     []error
	chatCalls    int
	chatMessages [][]llm.Message

	genReplies []string
	genErrs    []error
	genCalls   int
	genPrompts []string
}

func (f *fakeProvider) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	i := f.chatCalls
	f.chatCalls++
	f.chatMessages = append(f.chatMessages, messages)
	if i < len(f.chatErrs) && f.chatErrs[i] != nil {
		return "", f.chatErrs[i]
	}
	if i < len(f.chatReplies) {
		return f.chatReplies[i], nil
	}
	return "", errors.New("unscripted chat call")
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	i := f.genCalls
	f.genCalls++
	f.genPrompts = append(f.genPrompts, prompt)
	if i < len(f.genErrs) && f.genErrs[i] != nil {
		return "", f.genErrs[i]
	}
	if i < len(f.genReplies) {
		return f.genReplies[i], nil
	}
	return "", errors.New("unscripted generate call")
}

func newTestGateway(p llm.LLMProvider) (*Gateway, *[]time.Duration) {
	g := NewGateway(p, transcript.NewMemoryStore(), nil)
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func tutorContext() *practice.Context {
	wordId := uuid.New()
	return &practice.Context{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		CurrentWord: &practice.WordInfo{
			WordId: wordId, Word: "学习", Pinyin: "xuéxí", Meaning: "to study",
		},
		WordsTotal: 5,
	}
}

func TestRunTurnScoresSentenceAttempt(t *testing.T) {
	provider := &fakeProvider{
		genReplies:  []string{`{"intent": "sentence_attempt"}`, validFeedbackJSON},
		chatReplies: []string{"不错！你的句子很好。"},
	}
	g, slept := newTestGateway(provider)

	result, err := g.RunTurn(context.Background(), &TurnRequest{
		SessionKey: "sess-1",
		Persona:    PersonaTutor,
		Input:      "我每天学习中文。",
		Context:    tutorContext(),
	})
	require.NoError(t, err)
	assert.Empty(t, *slept)

	require.Len(t, result.ToolOutputs, 1)
	assert.Equal(t, "evaluate_sentence", result.ToolOutputs[0].ToolName)
	assert.Equal(t, "不错！你的句子很好。", result.FinalOutput)

	// The reply turn must see the structured tool result as a system message.
	msgs := provider.chatMessages[0]
	var sawToolResult bool
	for _, m := range msgs {
		if m.Role == "system" && len(m.Content) > 0 && m.Content != msgs[0].Content {
			sawToolResult = true
		}
	}
	assert.True(t, sawToolResult)

	fb := ExtractFeedback(result)
	require.NotNil(t, fb)
	assert.Equal(t, 10.0, fb.GrammarScore)
}

func TestRunTurnChatIntentSkipsScoring(t *testing.T) {
	provider := &fakeProvider{
		genReplies:  []string{`{"intent": "chat"}`},
		chatReplies: []string{"你好！我们开始吧。"},
	}
	g, _ := newTestGateway(provider)

	result, err := g.RunTurn(context.Background(), &TurnRequest{
		SessionKey: "sess-1",
		Persona:    PersonaTutor,
		Input:      "这个词是什么意思？",
		Context:    tutorContext(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.ToolOutputs)
	assert.Equal(t, 1, provider.genCalls)
}

func TestRunTurnIntentFailureDegradesToChat(t *testing.T) {
	provider := &fakeProvider{
		genErrs:     []error{errors.New("classifier down")},
		chatReplies: []string{"继续练习吧。"},
	}
	g, _ := newTestGateway(provider)

	result, err := g.RunTurn(context.Background(), &TurnRequest{
		Persona: PersonaTutor,
		Input:   "我学习。",
		Context: tutorContext(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.ToolOutputs)
}

func TestRunTurnRetriesWithBackoff(t *testing.T) {
	provider := &fakeProvider{
		chatErrs:    []error{errors.New("timeout"), errors.New("timeout"), nil},
		chatReplies: []string{"", "", "third time lucky"},
	}
	g, slept := newTestGateway(provider)

	ctx := &practice.Context{UserId: uuid.New(), SessionId: uuid.New(), SessionComplete: true}
	result, err := g.RunTurn(context.Background(), &TurnRequest{
		Persona: PersonaSummarizer,
		Input:   "Summarize the session.",
		Context: ctx,
	})
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", result.FinalOutput)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestRunTurnExhaustsRetries(t *testing.T) {
	boom := errors.New("model unavailable")
	provider := &fakeProvider{chatErrs: []error{boom, boom, boom}}
	g, slept := newTestGateway(provider)

	result, err := g.RunTurn(context.Background(), &TurnRequest{
		Persona: PersonaSummarizer,
		Input:   "Summarize the session.",
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, *slept, 2)
	assert.Equal(t, 3, provider.chatCalls)
}

func TestRunTurnPersistsTranscript(t *testing.T) {
	provider := &fakeProvider{chatReplies: []string{"first reply", "second reply"}}
	store := transcript.NewMemoryStore()
	g := NewGateway(provider, store, nil)
	g.sleep = func(time.Duration) {}

	req := &TurnRequest{SessionKey: "sess-7", Persona: PersonaSummarizer, Input: "hello"}
	_, err := g.RunTurn(context.Background(), req)
	require.NoError(t, err)

	req.Input = "again"
	_, err = g.RunTurn(context.Background(), req)
	require.NoError(t, err)

	// Second call must have replayed the first exchange into the prompt.
	msgs := provider.chatMessages[1]
	require.Len(t, msgs, 4) // system + 2 history + new user input
	assert.Equal(t, "hello", msgs[1].Content)
	assert.Equal(t, "first reply", msgs[2].Content)

	history, err := store.History(context.Background(), "sess-7")
	require.NoError(t, err)
	assert.Len(t, history, 4)
}
