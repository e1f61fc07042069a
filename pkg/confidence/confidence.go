package confidence

import "ai-vocabcoach-be/internal/constant"

// MasteryThreshold is the confidence level above which a word is considered
// mastered and excluded from new practice sessions.
const MasteryThreshold = 0.9

const (
	learningRate    = 0.1
	penaltySoftener = -0.5
)

// Update applies the confidence formula to a prior confidence score and the
// averaged scores of one practiced word. The step size is bounded by the
// learning rate so a single word cannot swing mastery by more than 0.1.
// Correct answers always move confidence up; incorrect answers penalise
// proportionally to how competent the attempt was, at half weight.
func Update(prior, avgGrammar, avgUsage, avgNaturalness float64, isCorrect bool) float64 {
	correctnessFactor := 1.0
	if !isCorrect {
		correctnessFactor = penaltySoftener
	}
	qualityMultiplier := (0.4*avgGrammar + 0.4*avgUsage + 0.2*avgNaturalness) / 10.0
	return clamp(prior+correctnessFactor*qualityMultiplier*learningRate, 0.0, 1.0)
}

// IsCorrect derives overall correctness from averaged scores. Grammar must be
// flawless (exactly 10); usage has slack down to 8.
func IsCorrect(avgGrammar, avgUsage float64) bool {
	return avgGrammar == 10 && avgUsage >= 8
}

// StatusFor maps a confidence score onto its categorical mastery label.
func StatusFor(score float64) string {
	switch {
	case score > 0.9:
		return constant.WordStatusMastered
	case score > 0.7:
		return constant.WordStatusReviewing
	case score > 0.3:
		return constant.WordStatusLearning
	default:
		return constant.WordStatusNeedsRevision
	}
}

// IsValid reports whether a value is a usable confidence score.
func IsValid(score float64) bool {
	return score >= 0 && score <= 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
