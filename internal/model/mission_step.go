package model

import (
	"time"

	"gorm.io/gorm"
)

type MissionStep struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	MissionID      uint           `json:"mission_id" gorm:"not null;index"`
	OrderInMission int            `json:"order_in_mission" gorm:"not null"`
	Type           string         `json:"type" gorm:"not null"` // "multiple_choice", "free_text"
	Prompt         string         `json:"prompt" gorm:"type:text;not null"`
	Options        *string        `json:"options,omitempty" gorm:"type:text"` // JSON-encoded []string, multiple_choice only
	CorrectOption  *int           `json:"correct_option,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
