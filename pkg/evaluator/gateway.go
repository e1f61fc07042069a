package evaluator

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/pkg/llm"
	"ai-vocabcoach-be/pkg/practice"
	"ai-vocabcoach-be/pkg/transcript"
)

const (
	maxTurnAttempts = 3

	intentSentenceAttempt = "sentence_attempt"
	intentChat            = "chat"
)

// TurnRequest describes one evaluator turn.
type TurnRequest struct {
	// SessionKey keys the conversation transcript. Empty disables history.
	SessionKey string
	Persona    Persona
	Input      string
	Context    *practice.Context
}

// Runner is the narrow surface the orchestrator depends on.
type Runner interface {
	RunTurn(ctx context.Context, req *TurnRequest) (*RawResult, error)
}

// Gateway invokes the LLM backend with retry and backoff, running the
// explicit two-step tutor pipeline: classify intent, then synchronously call
// the scoring persona and feed its structured result back into the tutor's
// reply turn. Scores only ever leave through ToolOutputs.
type Gateway struct {
	provider    llm.LLMProvider
	transcripts transcript.Store
	llmLogger   *log.Logger
	sleep       func(time.Duration)
}

var _ Runner = &Gateway{}

func NewGateway(provider llm.LLMProvider, transcripts transcript.Store, llmLogger *log.Logger) *Gateway {
	return &Gateway{
		provider:    provider,
		transcripts: transcripts,
		llmLogger:   llmLogger,
		sleep:       time.Sleep,
	}
}

// RunTurn executes the turn, retrying the whole pipeline up to 3 times with
// exponential backoff (1s, 2s) between failures. The last error is returned
// when every attempt fails.
func (g *Gateway) RunTurn(ctx context.Context, req *TurnRequest) (*RawResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxTurnAttempts; attempt++ {
		if attempt > 0 {
			g.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
		result, err := g.runOnce(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err
		g.logf("turn attempt %d/%d failed (persona=%s): %v", attempt+1, maxTurnAttempts, req.Persona, err)
	}
	return nil, lastErr
}

func (g *Gateway) runOnce(ctx context.Context, req *TurnRequest) (*RawResult, error) {
	history := g.loadHistory(ctx, req.SessionKey)

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: PromptFor(req.Persona, req.Context),
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: req.Input,
	})

	var tools []ToolOutput
	if req.Persona == PersonaTutor && req.Context != nil && req.Context.CurrentWord != nil {
		if g.classifyIntent(ctx, req) == intentSentenceAttempt {
			raw, err := g.evaluateSentence(ctx, req)
			if err != nil {
				return nil, err
			}
			tools = append(tools, ToolOutput{ToolName: "evaluate_sentence", Output: raw})
			messages = append(messages, llm.Message{
				Role:    constant.ChatMessageRoleSystem,
				Content: "evaluate_sentence tool result:\n" + raw,
			})
		}
	}

	reply, err := g.provider.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%s turn: %w", req.Persona, err)
	}

	g.appendHistory(ctx, req.SessionKey,
		transcript.Message{Role: constant.ChatMessageRoleUser, Content: req.Input, CreatedAt: time.Now()},
		transcript.Message{Role: constant.ChatMessageRoleAssistant, Content: reply, CreatedAt: time.Now()},
	)

	return &RawResult{FinalOutput: reply, ToolOutputs: tools}, nil
}

// classifyIntent decides whether the learner's message is a sentence attempt.
// Any failure degrades to "chat": the turn still succeeds, just unscored.
func (g *Gateway) classifyIntent(ctx context.Context, req *TurnRequest) string {
	raw, err := g.provider.Generate(ctx, intentPrompt(req.Context, req.Input), llm.WithTemperature(0.0))
	if err != nil {
		g.logf("intent classification failed: %v", err)
		return intentChat
	}
	data := ParseJSONObject(raw)
	if data == nil {
		return intentChat
	}
	if intent, ok := data["intent"].(string); ok && intent == intentSentenceAttempt {
		return intentSentenceAttempt
	}
	return intentChat
}

func (g *Gateway) evaluateSentence(ctx context.Context, req *TurnRequest) (string, error) {
	prompt := PromptFor(PersonaEvaluator, req.Context) + "\n\nStudent sentence:\n[DATA]" + req.Input + "[/DATA]"
	raw, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("evaluate sentence: %w", err)
	}
	return raw, nil
}

// Transcript access is best-effort: a dead history backend degrades the
// conversation, it never fails the turn.

func (g *Gateway) loadHistory(ctx context.Context, sessionKey string) []llm.Message {
	if g.transcripts == nil || sessionKey == "" {
		return nil
	}
	stored, err := g.transcripts.History(ctx, sessionKey)
	if err != nil {
		g.logf("transcript load failed (session=%s): %v", sessionKey, err)
		return nil
	}
	messages := make([]llm.Message, len(stored))
	for i, msg := range stored {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return messages
}

func (g *Gateway) appendHistory(ctx context.Context, sessionKey string, messages ...transcript.Message) {
	if g.transcripts == nil || sessionKey == "" {
		return
	}
	if err := g.transcripts.Append(ctx, sessionKey, messages...); err != nil {
		g.logf("transcript append failed (session=%s): %v", sessionKey, err)
	}
}

func (g *Gateway) logf(format string, args ...interface{}) {
	if g.llmLogger != nil {
		g.llmLogger.Printf(format, args...)
	}
}
