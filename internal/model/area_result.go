package model

import (
	"time"
)

// AreaResult is one scored diagnostic area for one learner. Rows are append-only:
// a later diagnostic run appends new rows rather than updating old ones.
type AreaResult struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	LearnerID             uint      `json:"learner_id" gorm:"not null;index"`
	Area                  Area      `json:"area" gorm:"not null"`
	ScorePercent          int       `json:"score_percent" gorm:"not null"`
	RecommendedDifficulty int       `json:"recommended_difficulty" gorm:"not null"` // tier 1-3
	CreatedAt             time.Time `json:"created_at"`
}
