package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPrefix = "catalog:service:"
	cacheTTL       = 5 * time.Minute
)

// Catalog wraps the repository with a redis cache-aside layer.
// A nil redis client degrades to direct database reads.
type Catalog struct {
	repo  Repository
	cache *redis.Client
}

func NewCatalog(repo Repository, cache *redis.Client) *Catalog {
	return &Catalog{repo: repo, cache: cache}
}

// GetService returns a service by id, served from cache when possible
func (c *Catalog) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKeyPrefix+id.String()).Bytes(); err == nil {
			var svc Service
			if err := json.Unmarshal(raw, &svc); err == nil {
				return &svc, nil
			}
		}
	}

	svc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if c.cache != nil {
		if raw, err := json.Marshal(svc); err == nil {
			if err := c.cache.Set(ctx, cacheKeyPrefix+id.String(), raw, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache service")
			}
		}
	}
	return svc, nil
}

func (c *Catalog) ListServices(ctx context.Context, activeOnly bool) ([]*Service, error) {
	return c.repo.List(ctx, activeOnly)
}

func (c *Catalog) CreateService(ctx context.Context, svc *Service) error {
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	if svc.Status == "" {
		svc.Status = StatusActive
	}
	return c.repo.Create(ctx, svc)
}

func (c *Catalog) UpdateService(ctx context.Context, svc *Service) error {
	if err := c.repo.Update(ctx, svc); err != nil {
		return err
	}
	c.invalidate(ctx, svc.ID)
	return nil
}

func (c *Catalog) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// BulkAdjustFees applies a fee adjustment across every variation of every
// service. Returns the number of services touched.
func (c *Catalog) BulkAdjustFees(ctx context.Context, mode AdjustMode, value float64) (int, error) {
	services, err := c.repo.List(ctx, false)
	if err != nil {
		return 0, err
	}

	for _, svc := range services {
		AdjustVariationFees(svc.Variations, mode, value)
		if err := c.repo.Update(ctx, svc); err != nil {
			return 0, err
		}
		c.invalidate(ctx, svc.ID)
	}
	return len(services), nil
}

func (c *Catalog) invalidate(ctx context.Context, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Del(ctx, cacheKeyPrefix+id.String()).Err(); err != nil {
		log.Warn().Err(err).Str("service_id", id.String()).Msg("Failed to invalidate service cache")
	}
}
