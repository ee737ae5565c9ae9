// services/chat_service.go
package services

import (
	"encoding/json"
	"fmt"

	"flexitrip-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatService stores the append-only chat log.
type ChatService struct {
	DB *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db}
}

// SaveMessage appends one user/assistant exchange, optionally linked
// to a trip.
func (s *ChatService) SaveMessage(message, response string, suggestions []string, tripID *uint) error {
	if message == "" || response == "" {
		return fmt.Errorf("validation: message and response are required")
	}

	var encoded datatypes.JSON
	if len(suggestions) > 0 {
		raw, err := json.Marshal(suggestions)
		if err != nil {
			return fmt.Errorf("failed to encode suggestions: %w", err)
		}
		encoded = datatypes.JSON(raw)
	}

	row := models.ChatMessage{
		TripID:      tripID,
		Message:     message,
		Response:    response,
		Suggestions: encoded,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// History returns the most recent exchanges, newest first.
func (s *ChatService) History(limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ChatMessage
	if err := s.DB.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve chat history: %w", err)
	}
	return rows, nil
}
