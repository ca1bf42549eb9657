package model

import (
	"time"

	"gorm.io/gorm"
)

type DiagnosticQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Area          Area           `json:"area" gorm:"not null;index"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	Options       string         `json:"options" gorm:"type:text;not null"` // JSON-encoded []string
	CorrectOption int            `json:"correct_option" gorm:"not null"`    // index into Options
	Difficulty    int            `json:"difficulty" gorm:"not null;default:1"`
	OrderInArea   int            `json:"order_in_area" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
