package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cvboost/internal/model"
)

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(request *model.ConsultationRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("create consultation request failed: %w", err)
	}
	return nil
}

func (r *ConsultationRepository) GetByID(id uint) (*model.ConsultationRequest, error) {
	var request model.ConsultationRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consultation request failed: %w", err)
	}
	return &request, nil
}

func (r *ConsultationRepository) ListAll() ([]model.ConsultationRequest, error) {
	var requests []model.ConsultationRequest
	if err := r.db.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list consultation requests failed: %w", err)
	}
	return requests, nil
}

func (r *ConsultationRepository) UpdateStatus(id uint, status model.ConsultationStatus) error {
	if err := r.db.Model(&model.ConsultationRequest{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return fmt.Errorf("update consultation status failed: %w", err)
	}
	return nil
}

func (r *ConsultationRepository) MarkDispatched(id uint, at time.Time) error {
	if err := r.db.Model(&model.ConsultationRequest{}).Where("id = ?", id).Update("dispatched_at", at).Error; err != nil {
		return fmt.Errorf("mark consultation dispatched failed: %w", err)
	}
	return nil
}
