package model

import (
	"time"

	"gorm.io/gorm"
)

// ProgressRecord tracks one learner's attempts on one mission. The composite
// unique index enforces at most one row per (learner, mission) pair; restarting
// a mission increments Attempts on the existing row.
type ProgressRecord struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	LearnerID   uint           `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_mission"`
	MissionID   uint           `json:"mission_id" gorm:"not null;uniqueIndex:idx_learner_mission"`
	Mission     Mission        `json:"mission,omitempty" gorm:"foreignKey:MissionID"`
	Completed   bool           `json:"completed" gorm:"not null;default:false"`
	Score       *int           `json:"score,omitempty"` // 0-100, set on completion
	Attempts    int            `json:"attempts" gorm:"not null;default:1"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
