package repository

import (
	"fmt"

	"gorm.io/gorm"

	"cvboost/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

// ListBySessionID returns the session's messages in chronological order.
// A non-positive limit returns the full transcript; a positive limit returns
// the newest limit rows, capped at 200.
func (r *MessageRepository) ListBySessionID(sessionID string, limit int) ([]model.Message, error) {
	var messages []model.Message

	if limit <= 0 {
		if err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&messages).Error; err != nil {
			return nil, fmt.Errorf("list messages failed: %w", err)
		}
		return messages, nil
	}

	if limit > 200 {
		limit = 200
	}
	if err := r.db.Where("session_id = ?", sessionID).Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
