package model

import (
	"time"
)

// AchievementGrant records that a learner earned an achievement. Grants are
// never duplicated or revoked; the composite unique index absorbs re-grants.
type AchievementGrant struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	LearnerID     uint        `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_achievement"`
	AchievementID uint        `json:"achievement_id" gorm:"not null;uniqueIndex:idx_learner_achievement"`
	Achievement   Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
	EarnedAt      time.Time   `json:"earned_at" gorm:"autoCreateTime"`
}
