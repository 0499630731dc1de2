package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelxplore/travelxplore-api/internal/models"
)

const (
	destinationsKey = "cache:destinations"
	packagesKey     = "cache:packages"
	countriesKey    = "cache:countries"
)

// CatalogCache holds the hot, unfiltered catalog reads. A nil *CatalogCache
// is valid and behaves as a permanent miss, so callers never branch on
// whether caching is configured.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(addr, password string, db int, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

func (c *CatalogCache) GetDestinations(ctx context.Context) ([]models.Destination, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, destinationsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var destinations []models.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (c *CatalogCache) SetDestinations(ctx context.Context, destinations []models.Destination) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(destinations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, destinationsKey, payload, c.ttl).Err()
}

func (c *CatalogCache) GetPackages(ctx context.Context) ([]models.Package, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, packagesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var packages []models.Package
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (c *CatalogCache) SetPackages(ctx context.Context, packages []models.Package) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(packages)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, packagesKey, payload, c.ttl).Err()
}

func (c *CatalogCache) GetCountries(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, countriesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var countries []string
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *CatalogCache) SetCountries(ctx context.Context, countries []string) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(countries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, countriesKey, payload, c.ttl).Err()
}

// Invalidate drops every catalog key. Called after any admin write.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, destinationsKey, packagesKey, countriesKey).Err()
}
