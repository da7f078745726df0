package product

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopfrontdev/shopfront-backend/pkg/db"
	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
)

type catalogRepo interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListAttributes(ctx context.Context) ([]models.Attribute, error)
}

// catalogCache is the slice of the redis client the service uses. Nil cache
// means every read hits the database.
type catalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(parts ...string) string
}

// Service exposes catalog reads for the storefront.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Info, error)
	ListProducts(ctx context.Context) ([]Info, error)
	ListAttributes(ctx context.Context) ([]AttributeDTO, error)
}

type service struct {
	repo     catalogRepo
	cache    catalogCache
	cacheTTL time.Duration
}

// NewService builds a catalog service. cache may be nil.
func NewService(repo catalogRepo, cache catalogCache, cacheTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL}, nil
}

// GetProduct returns the read-model for one product, serving from the cache
// when a fresh entry exists.
func (s *service) GetProduct(ctx context.Context, id string) (*Info, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	info := toInfo(row)
	s.cacheSet(ctx, id, info)
	return info, nil
}

// ListProducts returns the whole catalog as read-models. The list path skips
// the cache; it is an admin/storefront browse query, not a hot path.
func (s *service) ListProducts(ctx context.Context) ([]Info, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	infos := make([]Info, 0, len(rows))
	for i := range rows {
		infos = append(infos, *toInfo(&rows[i]))
	}
	return infos, nil
}

// ListAttributes returns the global attribute catalog.
func (s *service) ListAttributes(ctx context.Context) ([]AttributeDTO, error) {
	rows, err := s.repo.ListAttributes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attributes")
	}
	dtos := make([]AttributeDTO, 0, len(rows))
	for _, row := range rows {
		dto := AttributeDTO{Name: row.Name, Values: make([]string, 0, len(row.Items))}
		for _, item := range row.Items {
			dto.Values = append(dto.Values, item.Value)
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// The cache is best effort: a miss, a decode failure, or a redis outage all
// degrade to a database read.
func (s *service) cacheGet(ctx context.Context, id string) *Info {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey("product", id))
	if err != nil {
		return nil
	}
	var info Info
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil
	}
	return &info
}

func (s *service) cacheSet(ctx context.Context, id string, info *Info) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(info)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, s.cache.CatalogKey("product", id), string(encoded), s.cacheTTL)
}
