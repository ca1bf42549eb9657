package service

import (
	"errors"
	"testing"

	"github.com/questline/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mathQuestions(n int) []model.DiagnosticQuestion {
	questions := make([]model.DiagnosticQuestion, n)
	for i := 0; i < n; i++ {
		questions[i] = model.DiagnosticQuestion{
			ID:            uint(i + 1),
			Area:          model.AreaMathematics,
			CorrectOption: 2,
			OrderInArea:   i + 1,
		}
	}
	return questions
}

// answersWithCorrect marks the first k questions correct and the rest wrong.
func answersWithCorrect(questions []model.DiagnosticQuestion, k int) map[uint]int {
	answers := make(map[uint]int)
	for i, q := range questions {
		if i < k {
			answers[q.ID] = q.CorrectOption
		} else {
			answers[q.ID] = q.CorrectOption + 1
		}
	}
	return answers
}

func TestScoreArea(t *testing.T) {
	scoring := NewScoringService()

	cases := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{"all correct", 10, 10, 100},
		{"none correct", 10, 0, 0},
		{"eight of ten", 10, 8, 80},
		{"one of three rounds down", 3, 1, 33},
		{"two of three rounds up", 3, 2, 67},
		{"one of eight rounds half up", 8, 1, 13},
		{"single question correct", 1, 1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions := mathQuestions(tc.total)
			score, err := scoring.ScoreArea(answersWithCorrect(questions, tc.correct), questions)
			require.NoError(t, err)
			assert.Equal(t, tc.want, score)
		})
	}
}

func TestScoreArea_UnansweredCountsIncorrect(t *testing.T) {
	scoring := NewScoringService()
	questions := mathQuestions(4)

	// Two answered correctly, two never answered at all.
	answers := map[uint]int{
		questions[0].ID: questions[0].CorrectOption,
		questions[1].ID: questions[1].CorrectOption,
	}

	score, err := scoring.ScoreArea(answers, questions)
	require.NoError(t, err)
	assert.Equal(t, 50, score)
}

func TestScoreArea_EmptyArea(t *testing.T) {
	scoring := NewScoringService()

	_, err := scoring.ScoreArea(map[uint]int{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyArea))
}

func TestClassifyDifficulty_Boundaries(t *testing.T) {
	scoring := NewScoringService()

	assert.Equal(t, TierIntroductory, scoring.ClassifyDifficulty(0))
	assert.Equal(t, TierIntroductory, scoring.ClassifyDifficulty(49))
	assert.Equal(t, TierIntermediate, scoring.ClassifyDifficulty(50))
	assert.Equal(t, TierIntermediate, scoring.ClassifyDifficulty(79))
	assert.Equal(t, TierAdvanced, scoring.ClassifyDifficulty(80))
	assert.Equal(t, TierAdvanced, scoring.ClassifyDifficulty(100))
}

func TestClassifyDifficulty_Monotonic(t *testing.T) {
	scoring := NewScoringService()

	previous := scoring.ClassifyDifficulty(0)
	for score := 1; score <= 100; score++ {
		tier := scoring.ClassifyDifficulty(score)
		assert.GreaterOrEqual(t, tier, previous, "tier dropped at score %d", score)
		previous = tier
	}
}

// Eight of ten math questions correct places the learner at the advanced tier.
func TestScoringPlacement_EightOfTen(t *testing.T) {
	scoring := NewScoringService()
	questions := mathQuestions(10)

	score, err := scoring.ScoreArea(answersWithCorrect(questions, 8), questions)
	require.NoError(t, err)
	assert.Equal(t, 80, score)
	assert.Equal(t, TierAdvanced, scoring.ClassifyDifficulty(score))
}
