package model

import (
	"time"

	"gorm.io/gorm"
)

type Mission struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `json:"title" gorm:"not null"`
	Area       Area           `json:"area" gorm:"not null;index"`
	Difficulty int            `json:"difficulty" gorm:"not null;default:1"` // tier 1-3
	XpReward   int            `json:"xp_reward" gorm:"not null"`
	PathID     uint           `json:"path_id" gorm:"index"`
	Sequence   int            `json:"sequence" gorm:"not null"` // position within the path
	Steps      []MissionStep  `json:"steps,omitempty" gorm:"foreignKey:MissionID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
