package service

import (
	"math"

	"github.com/questline/backend/internal/model"
)

// Difficulty tiers produced by the diagnostic.
const (
	TierIntroductory = 1
	TierIntermediate = 2
	TierAdvanced     = 3
)

// Tier boundaries, inclusive on the lower bound of each tier.
const (
	advancedThreshold     = 80
	intermediateThreshold = 50
)

// ScoringService holds the pure scoring rules for diagnostic areas.
type ScoringService interface {
	ScoreArea(answers map[uint]int, questions []model.DiagnosticQuestion) (int, error)
	ClassifyDifficulty(scorePercent int) int
}

type scoringServiceImpl struct{}

func NewScoringService() ScoringService {
	return &scoringServiceImpl{}
}

// ScoreArea compares the learner's selected option for every question in the
// area against the correct option. Unanswered questions count as incorrect.
// Returns round(correct/total*100), half-up.
func (s *scoringServiceImpl) ScoreArea(answers map[uint]int, questions []model.DiagnosticQuestion) (int, error) {
	total := len(questions)
	if total == 0 {
		return 0, ErrEmptyArea
	}

	correct := 0
	for _, q := range questions {
		selected, answered := answers[q.ID]
		if answered && selected == q.CorrectOption {
			correct++
		}
	}

	return int(math.Round(float64(correct) / float64(total) * 100)), nil
}

// ClassifyDifficulty maps a score percentage to a difficulty tier. Total
// function; higher score never yields a lower tier.
func (s *scoringServiceImpl) ClassifyDifficulty(scorePercent int) int {
	switch {
	case scorePercent >= advancedThreshold:
		return TierAdvanced
	case scorePercent >= intermediateThreshold:
		return TierIntermediate
	default:
		return TierIntroductory
	}
}
