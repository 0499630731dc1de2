package repository

import (
	"context"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"gorm.io/gorm"
)

type PackageFilter struct {
	Featured      *bool
	DestinationID uint
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	Limit         int
}

func (f PackageFilter) IsZero() bool {
	return f.Featured == nil && f.DestinationID == 0 && f.MinPrice == nil &&
		f.MaxPrice == nil && f.Search == "" && (f.Limit == 0 || f.Limit == DefaultListLimit)
}

type PackageRepository interface {
	List(ctx context.Context, filter PackageFilter) ([]models.Package, error)
	FindByID(ctx context.Context, id uint) (*models.Package, error)
	FindRelated(ctx context.Context, destinationID, excludeID uint, limit int) ([]models.Package, error)
	FindByDestinationID(ctx context.Context, destinationID uint) ([]models.Package, error)
	CountByDestination(ctx context.Context, destinationID uint) (int64, error)
	Create(ctx context.Context, pkg *models.Package) error
	Update(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) List(ctx context.Context, filter PackageFilter) ([]models.Package, error) {
	q := r.db.WithContext(ctx).Model(&models.Package{}).Joins("Destination")

	if filter.Featured != nil {
		q = q.Where("packages.featured = ?", *filter.Featured)
	}
	if filter.DestinationID != 0 {
		q = q.Where("packages.destination_id = ?", filter.DestinationID)
	}
	if filter.MinPrice != nil {
		q = q.Where("packages.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("packages.price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where(`packages.title ILIKE ? OR packages.description ILIKE ? OR "Destination".name ILIKE ?`, term, term, term)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var packages []models.Package
	if err := q.Order("packages.created_at DESC").Limit(limit).Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).Preload("Destination").First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) FindRelated(ctx context.Context, destinationID, excludeID uint, limit int) ([]models.Package, error) {
	var packages []models.Package
	err := r.db.WithContext(ctx).
		Where("destination_id = ? AND id <> ?", destinationID, excludeID).
		Limit(limit).
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) FindByDestinationID(ctx context.Context, destinationID uint) ([]models.Package, error) {
	var packages []models.Package
	err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) CountByDestination(ctx context.Context, destinationID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Package{}).
		Where("destination_id = ?", destinationID).
		Count(&count).Error
	return count, err
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) Update(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *packageRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Package{}, id)
	return result.RowsAffected, result.Error
}
