package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CriteriaMissionsCompletedInArea = "missions_completed_in_area"
	CriteriaMissionsCompletedTotal  = "missions_completed_total"
	CriteriaMinScoreAnyMission      = "min_score_any_mission"
	CriteriaTotalXp                 = "total_xp"
	CriteriaDiagnosticTier          = "diagnostic_tier_reached"
)

type Achievement struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null;uniqueIndex"`
	Description  string         `json:"description,omitempty"`
	Area         *Area          `json:"area,omitempty" gorm:"index"` // nil means area-agnostic
	CriteriaType string         `json:"criteria_type" gorm:"not null"`
	Threshold    int            `json:"threshold" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
