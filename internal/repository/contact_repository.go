package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"cvboost/internal/model"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(submission *model.ContactSubmission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("create contact submission failed: %w", err)
	}
	return nil
}

func (r *ContactRepository) MarkDispatched(id uint, at time.Time) error {
	if err := r.db.Model(&model.ContactSubmission{}).Where("id = ?", id).Update("dispatched_at", at).Error; err != nil {
		return fmt.Errorf("mark contact dispatched failed: %w", err)
	}
	return nil
}
