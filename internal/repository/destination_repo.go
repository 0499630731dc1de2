package repository

import (
	"context"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/gorm"
)

type DestinationFilter struct {
	Featured *bool
	Country  string
	Search   string
	Limit    int
}

// IsZero reports whether the filter matches the default unfiltered listing,
// which is the only shape served from cache.
func (f DestinationFilter) IsZero() bool {
	return f.Featured == nil && f.Country == "" && f.Search == "" && (f.Limit == 0 || f.Limit == DefaultListLimit)
}

const DefaultListLimit = 50

type DestinationRepository interface {
	List(ctx context.Context, filter DestinationFilter) ([]models.Destination, error)
	FindByID(ctx context.Context, id uint) (*models.Destination, error)
	Create(ctx context.Context, dest *models.Destination) error
	Update(ctx context.Context, dest *models.Destination) error
	Delete(ctx context.Context, id uint) (int64, error)
	Countries(ctx context.Context) ([]string, error)
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) List(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	q := r.db.WithContext(ctx).Model(&models.Destination{})

	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR country ILIKE ?", term, term, term)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var destinations []models.Destination
	if err := q.Order("created_at DESC").Limit(limit).Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) FindByID(ctx context.Context, id uint) (*models.Destination, error) {
	var dest models.Destination
	if err := r.db.WithContext(ctx).First(&dest, id).Error; err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *destinationRepository) Create(ctx context.Context, dest *models.Destination) error {
	return r.db.WithContext(ctx).Create(dest).Error
}

func (r *destinationRepository) Update(ctx context.Context, dest *models.Destination) error {
	return r.db.WithContext(ctx).Save(dest).Error
}

func (r *destinationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Destination{}, id)
	return result.RowsAffected, result.Error
}

func (r *destinationRepository) Countries(ctx context.Context) ([]string, error) {
	var countries []string
	err := r.db.WithContext(ctx).
		Model(&models.Destination{}).
		Distinct("country").
		Order("country").
		Pluck("country", &countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}
