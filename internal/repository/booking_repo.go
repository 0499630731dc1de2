package repository

import (
	"context"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.Booking, error)
	ConfirmBySessionID(ctx context.Context, sessionID string) (int64, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Package.Destination").
		Preload("User").
		Where("stripe_session_id = ?", sessionID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBySessionID applies the single idempotent status transition. The
// status guard in the WHERE clause keeps a repeat application a no-op and
// lets the caller detect the first transition via the affected-row count,
// so the poll and webhook paths can race without a lock.
func (r *bookingRepository) ConfirmBySessionID(ctx context.Context, sessionID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("stripe_session_id = ? AND status <> ?", sessionID, models.StatusConfirmed).
		Updates(map[string]any{
			"status":         models.StatusConfirmed,
			"payment_status": models.PaymentPaid,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Package.Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("User").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
