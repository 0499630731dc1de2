package service

import (
	"context"
	"errors"

	"github.com/travelxplore/travelxplore-api/internal/cache"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrDestinationInUse    = errors.New("destination has packages referencing it")
)

// DestinationInput carries create/update fields. Empty strings and nil
// pointers mean "keep the current value" on update.
type DestinationInput struct {
	Name             string
	Country          string
	Description      string
	ShortDescription string
	Price            *float64
	Rating           *float64
	Featured         *bool
	Image            *string
}

type PackageInput struct {
	DestinationID *uint
	Title         string
	Description   string
	DurationDays  *int
	Price         *float64
	Inclusions    string
	Exclusions    string
	Rating        *float64
	MaxGuests     *int
	Featured      *bool
	Image         *string
}

type CatalogService interface {
	ListDestinations(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error)
	GetDestination(ctx context.Context, id uint) (*models.Destination, []models.Package, error)
	CreateDestination(ctx context.Context, input DestinationInput) (*models.Destination, error)
	UpdateDestination(ctx context.Context, id uint, input DestinationInput) error
	DeleteDestination(ctx context.Context, id uint) error
	Countries(ctx context.Context) ([]string, error)

	ListPackages(ctx context.Context, filter repository.PackageFilter) ([]models.Package, error)
	GetPackage(ctx context.Context, id uint) (*models.Package, []models.Package, error)
	CreatePackage(ctx context.Context, input PackageInput) (*models.Package, error)
	UpdatePackage(ctx context.Context, id uint, input PackageInput) error
	DeletePackage(ctx context.Context, id uint) error
	PackagesByDestination(ctx context.Context, destinationID uint) ([]models.Package, error)
}

type catalogService struct {
	destinations repository.DestinationRepository
	packages     repository.PackageRepository
	cache        *cache.CatalogCache
}

func NewCatalogService(
	destinations repository.DestinationRepository,
	packages repository.PackageRepository,
	catalogCache *cache.CatalogCache,
) CatalogService {
	return &catalogService{
		destinations: destinations,
		packages:     packages,
		cache:        catalogCache,
	}
}

func (s *catalogService) ListDestinations(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error) {
	// Only the unfiltered listing is cached; cache failures fall through
	// to the database.
	if filter.IsZero() {
		if cached, err := s.cache.GetDestinations(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	destinations, err := s.destinations.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsZero() {
		_ = s.cache.SetDestinations(ctx, destinations)
	}
	return destinations, nil
}

func (s *catalogService) GetDestination(ctx context.Context, id uint) (*models.Destination, []models.Package, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDestinationNotFound
		}
		return nil, nil, err
	}

	packages, err := s.packages.FindByDestinationID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return dest, packages, nil
}

func (s *catalogService) CreateDestination(ctx context.Context, input DestinationInput) (*models.Destination, error) {
	dest := &models.Destination{
		Name:             input.Name,
		Country:          input.Country,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Image:            input.Image,
		Rating:           5.0,
	}
	if input.Price != nil {
		dest.Price = *input.Price
	}
	if input.Rating != nil {
		dest.Rating = *input.Rating
	}
	if input.Featured != nil {
		dest.Featured = *input.Featured
	}

	if err := s.destinations.Create(ctx, dest); err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(ctx)
	return dest, nil
}

func (s *catalogService) UpdateDestination(ctx context.Context, id uint, input DestinationInput) error {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}

	if input.Name != "" {
		dest.Name = input.Name
	}
	if input.Country != "" {
		dest.Country = input.Country
	}
	if input.Description != "" {
		dest.Description = input.Description
	}
	if input.ShortDescription != "" {
		dest.ShortDescription = input.ShortDescription
	}
	if input.Price != nil {
		dest.Price = *input.Price
	}
	if input.Rating != nil {
		dest.Rating = *input.Rating
	}
	if input.Featured != nil {
		dest.Featured = *input.Featured
	}
	if input.Image != nil {
		dest.Image = input.Image
	}

	if err := s.destinations.Update(ctx, dest); err != nil {
		return err
	}

	_ = s.cache.Invalidate(ctx)
	return nil
}

// DeleteDestination refuses to remove a destination that packages still
// reference, rather than cascading or leaving dangling rows.
func (s *catalogService) DeleteDestination(ctx context.Context, id uint) error {
	count, err := s.packages.CountByDestination(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDestinationInUse
	}

	affected, err := s.destinations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDestinationNotFound
	}

	_ = s.cache.Invalidate(ctx)
	return nil
}

func (s *catalogService) Countries(ctx context.Context) ([]string, error) {
	if cached, err := s.cache.GetCountries(ctx); err == nil && cached != nil {
		return cached, nil
	}

	countries, err := s.destinations.Countries(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetCountries(ctx, countries)
	return countries, nil
}

func (s *catalogService) ListPackages(ctx context.Context, filter repository.PackageFilter) ([]models.Package, error) {
	if filter.IsZero() {
		if cached, err := s.cache.GetPackages(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	packages, err := s.packages.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsZero() {
		_ = s.cache.SetPackages(ctx, packages)
	}
	return packages, nil
}

func (s *catalogService) GetPackage(ctx context.Context, id uint) (*models.Package, []models.Package, error) {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPackageNotFound
		}
		return nil, nil, err
	}

	related, err := s.packages.FindRelated(ctx, pkg.DestinationID, pkg.ID, 4)
	if err != nil {
		return nil, nil, err
	}
	return pkg, related, nil
}

func (s *catalogService) CreatePackage(ctx context.Context, input PackageInput) (*models.Package, error) {
	if input.DestinationID == nil {
		return nil, ErrDestinationNotFound
	}
	if _, err := s.destinations.FindByID(ctx, *input.DestinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	pkg := &models.Package{
		DestinationID: *input.DestinationID,
		Title:         input.Title,
		Description:   input.Description,
		Inclusions:    input.Inclusions,
		Exclusions:    input.Exclusions,
		Image:         input.Image,
		Rating:        5.0,
		MaxGuests:     10,
	}
	if input.DurationDays != nil {
		pkg.DurationDays = *input.DurationDays
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.Rating != nil {
		pkg.Rating = *input.Rating
	}
	if input.MaxGuests != nil {
		pkg.MaxGuests = *input.MaxGuests
	}
	if input.Featured != nil {
		pkg.Featured = *input.Featured
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}

	_ = s.cache.Invalidate(ctx)
	return pkg, nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, id uint, input PackageInput) error {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPackageNotFound
		}
		return err
	}

	if input.DestinationID != nil {
		pkg.DestinationID = *input.DestinationID
	}
	if input.Title != "" {
		pkg.Title = input.Title
	}
	if input.Description != "" {
		pkg.Description = input.Description
	}
	if input.DurationDays != nil {
		pkg.DurationDays = *input.DurationDays
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.Inclusions != "" {
		pkg.Inclusions = input.Inclusions
	}
	if input.Exclusions != "" {
		pkg.Exclusions = input.Exclusions
	}
	if input.Rating != nil {
		pkg.Rating = *input.Rating
	}
	if input.MaxGuests != nil {
		pkg.MaxGuests = *input.MaxGuests
	}
	if input.Featured != nil {
		pkg.Featured = *input.Featured
	}
	if input.Image != nil {
		pkg.Image = input.Image
	}

	// Save would also write the preloaded association; detach it first
	pkg.Destination = nil

	if err := s.packages.Update(ctx, pkg); err != nil {
		return err
	}

	_ = s.cache.Invalidate(ctx)
	return nil
}

func (s *catalogService) DeletePackage(ctx context.Context, id uint) error {
	affected, err := s.packages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPackageNotFound
	}

	_ = s.cache.Invalidate(ctx)
	return nil
}

func (s *catalogService) PackagesByDestination(ctx context.Context, destinationID uint) ([]models.Package, error) {
	return s.packages.FindByDestinationID(ctx, destinationID)
}
