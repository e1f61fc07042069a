package practice

import (
	"testing"

	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWords(statuses ...int) []*entity.SessionWord {
	sessionId := uuid.New()
	words := make([]*entity.SessionWord, len(statuses))
	for i, status := range statuses {
		wordId := uuid.New()
		words[i] = &entity.SessionWord{
			WordId:    wordId,
			SessionId: sessionId,
			WordOrder: i,
			Status:    status,
			Word:      &entity.Word{Id: wordId, Word: "你好", Pinyin: "nǐ hǎo", Meaning: "hello"},
		}
	}
	return words
}

func TestCurrentWordFirstPendingByOrder(t *testing.T) {
	words := sessionWords(constant.SessionWordCompleted, constant.SessionWordPending, constant.SessionWordPending)

	// Shuffle input order; CurrentWord must still honour word_order.
	shuffled := []*entity.SessionWord{words[2], words[0], words[1]}
	current := CurrentWord(shuffled)
	require.NotNil(t, current)
	assert.Equal(t, 1, current.WordOrder)
}

func TestCurrentWordNilWhenAllResolved(t *testing.T) {
	words := sessionWords(constant.SessionWordCompleted, constant.SessionWordSkipped)
	assert.Nil(t, CurrentWord(words))
}

func TestIsCompleteFlipsOnLastResolution(t *testing.T) {
	words := sessionWords(constant.SessionWordPending, constant.SessionWordPending, constant.SessionWordPending)

	for i := range words {
		assert.False(t, IsComplete(words), "should be incomplete with %d pending", len(words)-i)
		words[i].Status = constant.SessionWordCompleted
	}
	assert.True(t, IsComplete(words))
}

func TestIsCompleteEmptySessionIsNotComplete(t *testing.T) {
	assert.False(t, IsComplete(nil))
}

func TestCountStatuses(t *testing.T) {
	words := sessionWords(
		constant.SessionWordCompleted,
		constant.SessionWordSkipped,
		constant.SessionWordCompleted,
		constant.SessionWordPending,
	)
	tally := CountStatuses(words)
	assert.Equal(t, 2, tally.Practiced)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 4, tally.Total)
}

func TestAverages(t *testing.T) {
	attempts := []*entity.Attempt{
		{GrammarScore: 10, UsageScore: 9, NaturalnessScore: 8},
		{GrammarScore: 10, UsageScore: 7, NaturalnessScore: 9},
	}
	g, u, n := Averages(attempts)
	assert.Equal(t, 10.0, g)
	assert.Equal(t, 8.0, u)
	assert.Equal(t, 8.5, n)
}

func TestBuildContextClassifiesWords(t *testing.T) {
	user := &entity.User{Id: uuid.New(), Username: "learner"}
	words := sessionWords(
		constant.SessionWordCompleted,
		constant.SessionWordPending,
		constant.SessionWordPending,
	)
	session := &entity.PracticeSession{Id: words[0].SessionId, UserId: user.Id, WordsPerSession: len(words)}

	ctx := BuildContext(user, session, words, "prefers short examples")

	require.NotNil(t, ctx.CurrentWord)
	assert.Equal(t, words[1].WordId, ctx.CurrentWord.WordId)
	assert.Equal(t, 1, ctx.WordsPracticed)
	assert.Equal(t, 0, ctx.WordsSkipped)
	assert.Equal(t, 3, ctx.WordsTotal)
	assert.False(t, ctx.SessionComplete)
	assert.Equal(t, "learner", ctx.PreferredName)
	assert.Equal(t, "prefers short examples", ctx.MemoryNotes)
	assert.Len(t, ctx.Roster, 3)
}

func TestBuildContextPreferredNameFallback(t *testing.T) {
	name := "小明"
	user := &entity.User{Id: uuid.New(), Username: "acct", PreferredName: &name}
	words := sessionWords(constant.SessionWordPending)
	session := &entity.PracticeSession{Id: words[0].SessionId, UserId: user.Id, WordsPerSession: 1}

	ctx := BuildContext(user, session, words, "")
	assert.Equal(t, "小明", ctx.PreferredName)
}
