package repository

import (
	"context"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, status *models.MessageStatus, limit int) ([]models.ContactMessage, error)
	FindByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) List(ctx context.Context, status *models.MessageStatus, limit int) ([]models.ContactMessage, error) {
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if limit <= 0 {
		limit = 100
	}

	var messages []models.ContactMessage
	if err := q.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *contactRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	return result.RowsAffected, result.Error
}

func (r *contactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&count).Error
	return count, err
}

func (r *contactRepository) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
