package repository

import (
	"context"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Subscribe upserts the email; a duplicate subscription is a silent no-op.
// The bool reports whether a new row was created.
func (r *newsletterRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	sub := models.NewsletterSubscriber{Email: email}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&sub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *newsletterRepository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (r *newsletterRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.NewsletterSubscriber{}, id)
	return result.RowsAffected, result.Error
}
