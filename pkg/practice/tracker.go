package practice

import (
	"sort"

	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/internal/entity"
)

// Tally holds the resolved-word counts for a session.
type Tally struct {
	Practiced int
	Skipped   int
	Total     int
}

// SortByOrder returns the session words sorted ascending by word order.
// The input slice is not modified.
func SortByOrder(words []*entity.SessionWord) []*entity.SessionWord {
	sorted := make([]*entity.SessionWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WordOrder < sorted[j].WordOrder
	})
	return sorted
}

// CurrentWord returns the first pending word by word order, or nil when every
// word has been resolved. At most one word is "current" at a time: advancing
// only ever resolves the first pending entry.
func CurrentWord(words []*entity.SessionWord) *entity.SessionWord {
	for _, sw := range SortByOrder(words) {
		if sw.Status == constant.SessionWordPending {
			return sw
		}
	}
	return nil
}

// IsComplete reports whether no word is still pending. A session with zero
// words is vacuously incomplete; word selection guarantees at least one row.
func IsComplete(words []*entity.SessionWord) bool {
	if len(words) == 0 {
		return false
	}
	for _, sw := range words {
		if sw.Status == constant.SessionWordPending {
			return false
		}
	}
	return true
}

// CountStatuses tallies completed and skipped words.
func CountStatuses(words []*entity.SessionWord) Tally {
	tally := Tally{Total: len(words)}
	for _, sw := range words {
		switch sw.Status {
		case constant.SessionWordCompleted:
			tally.Practiced++
		case constant.SessionWordSkipped:
			tally.Skipped++
		}
	}
	return tally
}

// Averages computes the arithmetic means of the attempt sub-scores. Attempts
// with a missing sub-score are skipped for that score; validated attempts
// always carry all three.
func Averages(attempts []*entity.Attempt) (avgGrammar, avgUsage, avgNaturalness float64) {
	if len(attempts) == 0 {
		return 0, 0, 0
	}
	var g, u, n float64
	for _, a := range attempts {
		g += a.GrammarScore
		u += a.UsageScore
		n += a.NaturalnessScore
	}
	count := float64(len(attempts))
	return g / count, u / count, n / count
}
