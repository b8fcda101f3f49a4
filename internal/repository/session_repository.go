package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cvboost/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

// LatestActiveByUserID returns the most recently created active session for
// the user, or nil when none exists.
func (r *SessionRepository) LatestActiveByUserID(userID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.SessionActive).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) GetByIDAndUserID(sessionID string, userID uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

// UpdateText overwrites the stored text unconditionally. Concurrent editors
// of the same session therefore resolve last-write-wins.
func (r *SessionRepository) UpdateText(sessionID, text string) error {
	if err := r.db.Model(&model.Session{}).Where("id = ?", sessionID).Update("text_content", text).Error; err != nil {
		return fmt.Errorf("update session text failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) UpdateDraftURL(sessionID, draftURL string) error {
	if err := r.db.Model(&model.Session{}).Where("id = ?", sessionID).Update("draft_url", draftURL).Error; err != nil {
		return fmt.Errorf("update session draft url failed: %w", err)
	}
	return nil
}
