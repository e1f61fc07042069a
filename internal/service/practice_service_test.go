package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"ai-vocabcoach-be/internal/config"
	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/specification"
	"ai-vocabcoach-be/internal/repository/unitofwork"
	"ai-vocabcoach-be/pkg/evaluator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- In-memory repository fakes ----

type fakeState struct {
	users        map[uuid.UUID]*entity.User
	words        map[uuid.UUID]*entity.Word
	sessions     map[uuid.UUID]*entity.PracticeSession
	sessionWords []*entity.SessionWord
	attempts     []*entity.Attempt
}

func newFakeState() *fakeState {
	return &fakeState{
		users:    map[uuid.UUID]*entity.User{},
		words:    map[uuid.UUID]*entity.Word{},
		sessions: map[uuid.UUID]*entity.PracticeSession{},
	}
}

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return byId.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeUserRepo struct{ s *fakeState }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.s.users[id], nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return nil
}

func (r *fakeUserRepo) UpdatePreferences(ctx context.Context, userId uuid.UUID, preferredName *string, wordsPerSession *int) error {
	return nil
}

type fakeWordRepo struct{ s *fakeState }

func (r *fakeWordRepo) Create(ctx context.Context, word *entity.Word) error {
	r.s.words[word.Id] = word
	return nil
}

func (r *fakeWordRepo) CreateAll(ctx context.Context, words []*entity.Word) error {
	for _, w := range words {
		r.s.words[w.Id] = w
	}
	return nil
}

func (r *fakeWordRepo) Update(ctx context.Context, word *entity.Word) error {
	r.s.words[word.Id] = word
	return nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.words, id)
	return nil
}

func (r *fakeWordRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	var deleted int64
	for id, w := range r.s.words {
		if w.UserId == userId {
			delete(r.s.words, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeWordRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Word, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.s.words[id], nil
	}
	return nil, nil
}

func (r *fakeWordRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Word, error) {
	return nil, nil
}

func (r *fakeWordRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.s.words)), nil
}

func (r *fakeWordRepo) FindEligibleByUserId(ctx context.Context, userId uuid.UUID, masteryThreshold float64) ([]*entity.Word, error) {
	var eligible []*entity.Word
	for _, w := range r.s.words {
		if w.UserId == userId && w.ConfidenceScore < masteryThreshold {
			eligible = append(eligible, w)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].Word < eligible[j].Word })
	return eligible, nil
}

func (r *fakeWordRepo) UpdateConfidence(ctx context.Context, wordId uuid.UUID, score float64) error {
	w, ok := r.s.words[wordId]
	if !ok {
		return errors.New("word not found")
	}
	w.ConfidenceScore = score
	return nil
}

type fakeSessionRepo struct{ s *fakeState }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.PracticeSession) error {
	r.s.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PracticeSession, error) {
	id, ok := idFromSpecs(specs)
	if !ok {
		return nil, nil
	}
	session, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	for _, spec := range specs {
		if owned, ok := spec.(specification.SessionOwnedByUser); ok && session.UserId != owned.UserID {
			return nil, nil
		}
	}
	return session, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeSession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.s.sessions)), nil
}

func (r *fakeSessionRepo) Close(ctx context.Context, sessionId uuid.UUID, summaryText string, endedAt time.Time) (bool, error) {
	session, ok := r.s.sessions[sessionId]
	if !ok || session.EndedAt != nil {
		return false, nil
	}
	session.SummaryText = &summaryText
	session.EndedAt = &endedAt
	return true, nil
}

type fakeSessionWordRepo struct{ s *fakeState }

func (r *fakeSessionWordRepo) CreateAll(ctx context.Context, words []*entity.SessionWord) error {
	r.s.sessionWords = append(r.s.sessionWords, words...)
	return nil
}

func (r *fakeSessionWordRepo) FindAllBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionWord, error) {
	var out []*entity.SessionWord
	for _, sw := range r.s.sessionWords {
		if sw.SessionId == sessionId {
			sw.Word = r.s.words[sw.WordId]
			out = append(out, sw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WordOrder < out[j].WordOrder })
	return out, nil
}

func (r *fakeSessionWordRepo) FindOne(ctx context.Context, wordId, sessionId uuid.UUID) (*entity.SessionWord, error) {
	for _, sw := range r.s.sessionWords {
		if sw.WordId == wordId && sw.SessionId == sessionId {
			return sw, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionWordRepo) CompleteWord(ctx context.Context, wordId, sessionId uuid.UUID, scores contract.WordScores) (bool, error) {
	for _, sw := range r.s.sessionWords {
		if sw.WordId == wordId && sw.SessionId == sessionId {
			if sw.Status != constant.SessionWordPending {
				return false, nil
			}
			sw.Status = constant.SessionWordCompleted
			sw.GrammarScore = &scores.Grammar
			sw.UsageScore = &scores.Usage
			sw.NaturalnessScore = &scores.Naturalness
			sw.IsCorrect = &scores.IsCorrect
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSessionWordRepo) SkipWord(ctx context.Context, wordId, sessionId uuid.UUID) (bool, error) {
	for _, sw := range r.s.sessionWords {
		if sw.WordId == wordId && sw.SessionId == sessionId {
			if sw.Status != constant.SessionWordPending {
				return false, nil
			}
			sw.Status = constant.SessionWordSkipped
			sw.IsSkipped = true
			return true, nil
		}
	}
	return false, nil
}

type fakeAttemptRepo struct{ s *fakeState }

func (r *fakeAttemptRepo) Create(ctx context.Context, attempt *entity.Attempt) error {
	r.s.attempts = append(r.s.attempts, attempt)
	return nil
}

func (r *fakeAttemptRepo) FindAllByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) ([]*entity.Attempt, error) {
	var out []*entity.Attempt
	for _, a := range r.s.attempts {
		if a.WordId == wordId && a.SessionId == sessionId {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber < out[j].AttemptNumber })
	return out, nil
}

func (r *fakeAttemptRepo) CountByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) (int64, error) {
	all, _ := r.FindAllByWordAndSession(ctx, wordId, sessionId)
	return int64(len(all)), nil
}

type fakeMemoryRepo struct{ s *fakeState }

func (r *fakeMemoryRepo) Create(ctx context.Context, entry *entity.MemoryEntry) error { return nil }

func (r *fakeMemoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MemoryEntry, error) {
	return nil, nil
}

func (r *fakeMemoryRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	return nil
}

func (r *fakeMemoryRepo) SearchNearest(ctx context.Context, userId uuid.UUID, embedding []float32, limit int) ([]*entity.MemoryEntry, error) {
	return nil, nil
}

type fakeUow struct{ s *fakeState }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u.s} }
func (u *fakeUow) WordRepository() contract.WordRepository { return &fakeWordRepo{u.s} }
func (u *fakeUow) PracticeSessionRepository() contract.PracticeSessionRepository {
	return &fakeSessionRepo{u.s}
}
func (u *fakeUow) SessionWordRepository() contract.SessionWordRepository {
	return &fakeSessionWordRepo{u.s}
}
func (u *fakeUow) AttemptRepository() contract.AttemptRepository { return &fakeAttemptRepo{u.s} }
func (u *fakeUow) MemoryRepository() contract.MemoryRepository   { return &fakeMemoryRepo{u.s} }

type fakeFactory struct{ s *fakeState }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{f.s}
}

// ---- Scripted collaborators ----

type scriptedRunner struct {
	results  []*evaluator.RawResult
	errs     []error
	requests []*evaluator.TurnRequest
}

func (r *scriptedRunner) RunTurn(ctx context.Context, req *evaluator.TurnRequest) (*evaluator.RawResult, error) {
	r.requests = append(r.requests, req)
	idx := len(r.requests) - 1
	if idx < len(r.errs) && r.errs[idx] != nil {
		return nil, r.errs[idx]
	}
	if idx < len(r.results) {
		return r.results[idx], nil
	}
	return &evaluator.RawResult{FinalOutput: "ok"}, nil
}

type stubMemoryService struct {
	notes string
	added [][]string
}

func (m *stubMemoryService) Add(ctx context.Context, userId uuid.UUID, contents []string) {
	m.added = append(m.added, contents)
}

func (m *stubMemoryService) Recall(ctx context.Context, userId uuid.UUID, query string) string {
	return m.notes
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// ---- Fixture ----

type practiceFixture struct {
	state   *fakeState
	runner  *scriptedRunner
	memory  *stubMemoryService
	service IPracticeService
	userId  uuid.UUID
}

func newPracticeFixture(t *testing.T, wordTexts ...string) *practiceFixture {
	t.Helper()

	state := newFakeState()
	userId := uuid.New()
	state.users[userId] = &entity.User{
		Id:       userId,
		Username: "learner",
		Email:    "learner@example.com",
	}

	for _, text := range wordTexts {
		id := uuid.New()
		state.words[id] = &entity.Word{
			Id:              id,
			UserId:          userId,
			Word:            text,
			Pinyin:          "pinyin",
			Meaning:         "meaning",
			ConfidenceScore: 0.5,
		}
	}

	runner := &scriptedRunner{}
	memory := &stubMemoryService{}

	svc := NewPracticeService(
		&fakeFactory{state},
		runner,
		memory,
		nil,
		config.PracticeConfig{DefaultWordsPerSession: 5, MemoryRecallLimit: 5},
		nopLogger{},
	)
	// Deterministic word order: eligible words arrive sorted by text.
	svc.(*practiceService).shuffle = func(words []*entity.Word) {}

	return &practiceFixture{
		state:   state,
		runner:  runner,
		memory:  memory,
		service: svc,
		userId:  userId,
	}
}

func (f *practiceFixture) startSession(t *testing.T, req *dto.StartSessionRequest) *dto.StartSessionResponse {
	t.Helper()
	res, err := f.service.StartSession(context.Background(), f.userId, req)
	require.NoError(t, err)
	return res
}

const scoredAttemptJSON = `{
	"grammarScore": 10,
	"usageScore": 8,
	"naturalnessScore": 8.5,
	"isCorrect": true,
	"feedback": "Solid sentence.",
	"corrections": [],
	"explanations": ["Word order is natural here."],
	"exampleSentences": ["我喜欢学习中文。"]
}`

func scoredTurn(reply string) *evaluator.RawResult {
	return &evaluator.RawResult{
		FinalOutput: reply,
		ToolOutputs: []evaluator.ToolOutput{
			{ToolName: "evaluate_sentence", Output: scoredAttemptJSON},
		},
	}
}

// ---- Tests ----

func TestStartSessionNoEligibleWords(t *testing.T) {
	f := newPracticeFixture(t)

	_, err := f.service.StartSession(context.Background(), f.userId, nil)

	assert.ErrorIs(t, err, ErrNoEligibleWords)
	assert.Empty(t, f.state.sessions)
}

func TestStartSessionTruncatesToRequestedCount(t *testing.T) {
	f := newPracticeFixture(t, "一", "三", "二", "四", "五")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "你好! Let's look at the first word."}}

	res := f.startSession(t, &dto.StartSessionRequest{WordCount: 2})

	assert.Equal(t, 2, res.WordsTotal)
	assert.Equal(t, "你好! Let's look at the first word.", res.Greeting)
	require.NotNil(t, res.CurrentWord)
	assert.Equal(t, "一", res.CurrentWord.Word)
	assert.Len(t, f.state.sessionWords, 2)
}

func TestStartSessionGreetingFailurePropagates(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.errs = []error{errors.New("backend down")}

	_, err := f.service.StartSession(context.Background(), f.userId, nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "greeting turn")
	// Session rows persist; the learner can retry via the session state.
	assert.Len(t, f.state.sessions, 1)
}

func TestSendMessageRecordsScoredAttempt(t *testing.T) {
	f := newPracticeFixture(t, "学习")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		scoredTurn("Great job!"),
		scoredTurn("Even better!"),
	}
	start := f.startSession(t, nil)

	res, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "我每天学习中文。",
	})
	require.NoError(t, err)

	assert.Equal(t, "Great job!", res.Reply)
	assert.Equal(t, 1, res.AttemptNumber)
	require.NotNil(t, res.Feedback)
	assert.Equal(t, 10.0, res.Feedback.GrammarScore)
	assert.Equal(t, 8.5, res.Feedback.NaturalnessScore)
	assert.True(t, res.Feedback.IsCorrect)

	res2, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "学习很有意思。",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res2.AttemptNumber)
	assert.Len(t, f.state.attempts, 2)
}

func TestSendMessageChatOnlyRecordsNothing(t *testing.T) {
	f := newPracticeFixture(t, "学习")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		{FinalOutput: "It means to study."},
	}
	start := f.startSession(t, nil)

	res, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "What does this word mean?",
	})
	require.NoError(t, err)

	assert.Nil(t, res.Feedback)
	assert.Zero(t, res.AttemptNumber)
	assert.Empty(t, f.state.attempts)
}

func TestSendMessageWithoutActiveWord(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	// All words resolved but the session row was left open.
	f.state.sessionWords[0].Status = constant.SessionWordCompleted

	_, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "还有别的词吗?",
	})

	assert.ErrorIs(t, err, ErrNoActiveWord)
	// The tutor never ran for the rejected message.
	assert.Len(t, f.runner.requests, 1)
}

func TestAdvanceWordSkipLeavesConfidenceUntouched(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	res, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	require.NotNil(t, res.AdvancedWord)
	assert.True(t, res.AdvancedWord.Skipped)
	assert.Zero(t, res.AdvancedWord.Attempts)
	assert.Nil(t, res.AdvancedWord.IsCorrect)
	assert.Equal(t, 0.5, res.AdvancedWord.ConfidenceScore)
	assert.Equal(t, 1, res.WordsSkipped)
	assert.Equal(t, 0, res.WordsPracticed)
	require.NotNil(t, res.CurrentWord)
	assert.Equal(t, "二", res.CurrentWord.Word)
	assert.False(t, res.SessionComplete)
}

func TestAdvanceWordCompletesAndUpdatesConfidence(t *testing.T) {
	f := newPracticeFixture(t, "学习")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		scoredTurn("Nice!"),
	}
	start := f.startSession(t, nil)

	_, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "我每天学习中文。",
	})
	require.NoError(t, err)

	res, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	require.NotNil(t, res.AdvancedWord)
	assert.False(t, res.AdvancedWord.Skipped)
	assert.Equal(t, 1, res.AdvancedWord.Attempts)
	require.NotNil(t, res.AdvancedWord.IsCorrect)
	assert.True(t, *res.AdvancedWord.IsCorrect)
	require.NotNil(t, res.AdvancedWord.GrammarScore)
	assert.Equal(t, 10.0, *res.AdvancedWord.GrammarScore)
	require.NotNil(t, res.AdvancedWord.NaturalnessScore)
	assert.Equal(t, 8.5, *res.AdvancedWord.NaturalnessScore)
	// 0.5 + 1.0 * ((0.4*10 + 0.4*8 + 0.2*8.5) / 10) * 0.1
	assert.InDelta(t, 0.589, res.AdvancedWord.ConfidenceScore, 1e-9)
	assert.Equal(t, 1, res.WordsPracticed)
	assert.True(t, res.SessionComplete)
	// The roster is exhausted, so there is no next word to introduce.
	assert.Empty(t, res.Reply)
}

func TestAdvanceWordIntroducesNextWord(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		{FinalOutput: "下一个词是二。"},
	}
	start := f.startSession(t, nil)

	res, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	assert.Equal(t, "下一个词是二。", res.Reply)
	require.Len(t, f.runner.requests, 2)
	intro := f.runner.requests[1]
	assert.Equal(t, evaluator.PersonaTutor, intro.Persona)
	assert.Contains(t, intro.Input, "二")
}

func TestAdvanceWordNextWordTurnFailure(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	f.runner.errs = []error{nil, errors.New("backend down")}
	start := f.startSession(t, nil)

	_, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)

	require.Error(t, err)
	assert.ErrorContains(t, err, "next word turn")
	// The status transition already landed; retrying advances past it.
	assert.Equal(t, constant.SessionWordSkipped, f.state.sessionWords[0].Status)
}

func TestAdvanceWordWithoutActiveWord(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	_, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	// The roster completed above, so the session auto-closed.
	_, err = f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestSendMessageAfterCompletion(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	_, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	_, err = f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestCompleteSessionStoresSummaryAndMemories(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		scoredTurn("Nice!"),
		{FinalOutput: "下一个词是二。"},
		{FinalOutput: `{"summary_text": "One practiced, one pending.", "mem0_updates": ["Struggles with measure words"]}`},
	}
	start := f.startSession(t, nil)

	_, err := f.service.SendMessage(context.Background(), f.userId, start.SessionId, &dto.SendMessageRequest{
		Message: "一个人在家。",
	})
	require.NoError(t, err)
	_, err = f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	res, err := f.service.CompleteSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	assert.Equal(t, "One practiced, one pending.", res.SummaryText)
	assert.Equal(t, 1, res.WordsPracticed)
	assert.Equal(t, 0, res.WordsSkipped)
	assert.Equal(t, 2, res.WordsTotal)
	require.Len(t, res.WordResults, 2)
	require.Len(t, f.memory.added, 1)
	assert.Equal(t, []string{"Struggles with measure words"}, f.memory.added[0])

	practiced := res.WordResults[0]
	require.NotNil(t, practiced.GrammarScore)
	assert.Equal(t, 10.0, *practiced.GrammarScore)
	require.NotNil(t, practiced.UsageScore)
	assert.Equal(t, 8.0, *practiced.UsageScore)
	require.NotNil(t, practiced.NaturalnessScore)
	assert.Equal(t, 8.5, *practiced.NaturalnessScore)
	// The untouched word carries no scores.
	assert.Nil(t, res.WordResults[1].GrammarScore)
}

func TestCompleteSessionSummaryFallback(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	f.runner.errs = []error{nil, errors.New("backend down")}
	start := f.startSession(t, nil)

	res, err := f.service.CompleteSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	assert.Equal(t, "Session completed. Keep practicing!", res.SummaryText)
	assert.Empty(t, f.memory.added)
}

func TestCompleteSessionIsIdempotent(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{
		{FinalOutput: "greeting"},
		{FinalOutput: `{"summary_text": "Done."}`},
	}
	start := f.startSession(t, nil)

	first, err := f.service.CompleteSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	second, err := f.service.CompleteSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	assert.Equal(t, first.SummaryText, second.SummaryText)
	assert.Equal(t, first.EndedAt, second.EndedAt)
	// The summariser ran exactly once.
	assert.Len(t, f.runner.requests, 2)
}

func TestCompleteSessionKeepsResultsForDeletedWords(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	// The learner pruned a word from their list mid-session.
	removedId := f.state.sessionWords[1].WordId
	delete(f.state.words, removedId)

	res, err := f.service.CompleteSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	require.Len(t, res.WordResults, 2)
	assert.Equal(t, removedId, res.WordResults[1].WordId)
	assert.Empty(t, res.WordResults[1].Word)
}

func TestGetSessionRejectsForeignUser(t *testing.T) {
	f := newPracticeFixture(t, "一")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	stranger := uuid.New()
	f.state.users[stranger] = &entity.User{Id: stranger, Username: "stranger"}

	_, err := f.service.GetSession(context.Background(), stranger, start.SessionId)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionReflectsProgress(t *testing.T) {
	f := newPracticeFixture(t, "一", "二")
	f.runner.results = []*evaluator.RawResult{{FinalOutput: "greeting"}}
	start := f.startSession(t, nil)

	_, err := f.service.AdvanceWord(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	res, err := f.service.GetSession(context.Background(), f.userId, start.SessionId)
	require.NoError(t, err)

	assert.Equal(t, 1, res.WordsSkipped)
	assert.Equal(t, 0, res.WordsPracticed)
	assert.Equal(t, 2, res.WordsTotal)
	require.NotNil(t, res.CurrentWord)
	assert.Equal(t, "二", res.CurrentWord.Word)
	assert.False(t, res.SessionComplete)
}
