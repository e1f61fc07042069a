package practice

import (
	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/internal/entity"

	"github.com/google/uuid"
)

// WordInfo is the slice of word data the evaluator needs per turn.
type WordInfo struct {
	WordId  uuid.UUID `json:"word_id"`
	Word    string    `json:"word"`
	Pinyin  string    `json:"pinyin"`
	Meaning string    `json:"meaning"`
}

// Context is the point-in-time projection of a session handed to the
// evaluator on every turn. It is rebuilt fresh from durable state and never
// persisted, so it cannot drift from ground truth.
type Context struct {
	UserId          uuid.UUID
	SessionId       uuid.UUID
	PreferredName   string
	CurrentWord     *WordInfo
	WordStatuses    map[uuid.UUID]int
	WordsPracticed  int
	WordsSkipped    int
	WordsTotal      int
	SessionComplete bool
	MemoryNotes     string
	Roster          []WordInfo
}

// BuildContext assembles the session snapshot from the learner, the session
// row and its session words. memoryNotes may be empty when the long-term
// memory lookup failed or returned nothing.
func BuildContext(user *entity.User, session *entity.PracticeSession, words []*entity.SessionWord, memoryNotes string) *Context {
	sorted := SortByOrder(words)

	roster := make([]WordInfo, 0, len(sorted))
	statuses := make(map[uuid.UUID]int, len(sorted))
	var current *WordInfo
	practiced, skipped := 0, 0

	for _, sw := range sorted {
		info := wordInfo(sw)
		roster = append(roster, info)
		statuses[sw.WordId] = sw.Status

		switch sw.Status {
		case constant.SessionWordCompleted:
			practiced++
		case constant.SessionWordSkipped:
			skipped++
		case constant.SessionWordPending:
			if current == nil {
				w := info
				current = &w
			}
		}
	}

	return &Context{
		UserId:          user.Id,
		SessionId:       session.Id,
		PreferredName:   user.DisplayName(),
		CurrentWord:     current,
		WordStatuses:    statuses,
		WordsPracticed:  practiced,
		WordsSkipped:    skipped,
		WordsTotal:      session.WordsPerSession,
		SessionComplete: IsComplete(sorted),
		MemoryNotes:     memoryNotes,
		Roster:          roster,
	}
}

func wordInfo(sw *entity.SessionWord) WordInfo {
	info := WordInfo{WordId: sw.WordId}
	if sw.Word != nil {
		info.Word = sw.Word.Word
		info.Pinyin = sw.Word.Pinyin
		info.Meaning = sw.Word.Meaning
	}
	return info
}
