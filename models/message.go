package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatMessage is one exchange with the AI assistant. Append-only.
type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	TripID *uint `gorm:"column:trip_id;index" json:"trip_id,omitempty"`

	Message  string `gorm:"type:text;not null" json:"message"`
	Response string `gorm:"type:text;not null" json:"response"`

	Suggestions datatypes.JSON `gorm:"column:suggestions" json:"suggestions,omitempty"`
}
