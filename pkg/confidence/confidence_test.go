package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatePerfectCorrectAttempt(t *testing.T) {
	// All sub-scores at 10 give quality multiplier 1.0, so a correct attempt
	// moves confidence up by exactly the learning rate.
	priors := []float64{0.0, 0.1, 0.5, 0.85}
	for _, p := range priors {
		got := Update(p, 10, 10, 10, true)
		assert.InDelta(t, p+0.1, got, 1e-9)
		assert.GreaterOrEqual(t, got, p)
	}
}

func TestUpdateClampsAtOne(t *testing.T) {
	score := 0.95
	for i := 0; i < 5; i++ {
		score = Update(score, 10, 10, 10, true)
	}
	assert.Equal(t, 1.0, score)
}

func TestUpdateClampsAtZero(t *testing.T) {
	score := 0.05
	for i := 0; i < 5; i++ {
		score = Update(score, 1, 1, 1, false)
		assert.GreaterOrEqual(t, score, 0.0)
	}
}

func TestUpdateIncorrectPenalisesProportionally(t *testing.T) {
	nearMiss := Update(0.5, 9, 9, 9, false)
	wayOff := Update(0.5, 2, 2, 2, false)
	assert.Less(t, nearMiss, 0.5)
	assert.Less(t, wayOff, 0.5)
	// Closer-to-competent attempts are penalised harder.
	assert.Less(t, nearMiss, wayOff)
}

func TestIsCorrectBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		avgGrammar float64
		avgUsage   float64
		want       bool
	}{
		{"grammar 10 usage 8", 10, 8, true},
		{"grammar just below 10", 9.99, 10, false},
		{"usage just below 8", 10, 7.99, false},
		{"both perfect", 10, 10, true},
		{"both low", 5, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.avgGrammar, tt.avgUsage))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "Mastered", StatusFor(0.95))
	assert.Equal(t, "Reviewing", StatusFor(0.8))
	assert.Equal(t, "Learning", StatusFor(0.5))
	assert.Equal(t, "Needs Revision", StatusFor(0.2))
	// Boundary values fall into the lower bucket.
	assert.Equal(t, "Reviewing", StatusFor(0.9))
	assert.Equal(t, "Learning", StatusFor(0.7))
	assert.Equal(t, "Needs Revision", StatusFor(0.3))
}
