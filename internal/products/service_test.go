package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopfrontdev/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
)

type stubRepo struct {
	products   map[string]*models.Product
	attributes []models.Attribute
	findErr    error
	findCalls  int
}

func (s *stubRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	row, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubRepo) List(_ context.Context) ([]models.Product, error) {
	rows := make([]models.Product, 0, len(s.products))
	for _, row := range s.products {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *stubRepo) ListAttributes(_ context.Context) ([]models.Attribute, error) {
	return s.attributes, nil
}

type stubCache struct {
	entries map[string]string
	getErr  error
	sets    int
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if s.entries == nil {
		s.entries = map[string]string{}
	}
	s.entries[key] = value.(string)
	s.sets++
	return nil
}

func (s *stubCache) CatalogKey(parts ...string) string {
	key := "sf:catalog"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func catalogProduct() *models.Product {
	return &models.Product{
		ID:      "apple-imac-2021",
		Name:    "iMac 2021",
		Brand:   "Apple",
		InStock: true,
		Prices:  []models.Price{{Amount: decimal.RequireFromString("1688.03"), Currency: "USD"}},
		Gallery: []models.GalleryImage{{ImageURL: "https://cdn.example.com/imac-front.png", Position: 0}},
		Attributes: []models.Attribute{
			{Name: "Color", Items: []models.AttributeItem{{Value: "Blue"}, {Value: "Silver"}}},
			{Name: "Capacity", Items: []models.AttributeItem{{Value: "256GB"}, {Value: "512GB"}}},
		},
	}
}

func TestGetProductBuildsReadModel(t *testing.T) {
	repo := &stubRepo{products: map[string]*models.Product{"apple-imac-2021": catalogProduct()}}
	svc, err := NewService(repo, nil, time.Minute)
	require.NoError(t, err)

	info, err := svc.GetProduct(context.Background(), "apple-imac-2021")
	require.NoError(t, err)
	require.Equal(t, "iMac 2021", info.Name)
	require.Equal(t, "Apple", info.Brand)
	require.True(t, info.Price.Equal(decimal.RequireFromString("1688.03")))
	require.Equal(t, "https://cdn.example.com/imac-front.png", info.ImageURL)
	require.Equal(t, []string{"Blue", "Silver"}, info.Attributes["Color"])
}

func TestGetProductNotFound(t *testing.T) {
	svc, err := NewService(&stubRepo{}, nil, time.Minute)
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "missing")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestGetProductRejectsBlankID(t *testing.T) {
	svc, err := NewService(&stubRepo{}, nil, time.Minute)
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "   ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestGetProductCachesReadModel(t *testing.T) {
	repo := &stubRepo{products: map[string]*models.Product{"apple-imac-2021": catalogProduct()}}
	cache := &stubCache{}
	svc, err := NewService(repo, cache, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := svc.GetProduct(ctx, "apple-imac-2021")
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	second, err := svc.GetProduct(ctx, "apple-imac-2021")
	require.NoError(t, err)
	require.Equal(t, 1, repo.findCalls, "second read should be served from cache")
	require.Equal(t, first.Name, second.Name)
	require.True(t, first.Price.Equal(second.Price))
}

func TestGetProductSurvivesCacheFailure(t *testing.T) {
	repo := &stubRepo{products: map[string]*models.Product{"apple-imac-2021": catalogProduct()}}
	cache := &stubCache{getErr: errors.New("connection refused")}
	svc, err := NewService(repo, cache, time.Minute)
	require.NoError(t, err)

	info, err := svc.GetProduct(context.Background(), "apple-imac-2021")
	require.NoError(t, err)
	require.Equal(t, "iMac 2021", info.Name)
}

func TestGetProductIgnoresCorruptCacheEntry(t *testing.T) {
	repo := &stubRepo{products: map[string]*models.Product{"apple-imac-2021": catalogProduct()}}
	cache := &stubCache{entries: map[string]string{"sf:catalog:product:apple-imac-2021": "{not json"}}
	svc, err := NewService(repo, cache, time.Minute)
	require.NoError(t, err)

	info, err := svc.GetProduct(context.Background(), "apple-imac-2021")
	require.NoError(t, err)
	require.Equal(t, 1, repo.findCalls)
	require.Equal(t, "iMac 2021", info.Name)
}

func TestListAttributes(t *testing.T) {
	repo := &stubRepo{attributes: []models.Attribute{
		{Name: "Color", Items: []models.AttributeItem{{Value: "Blue"}, {Value: "Silver"}}},
	}}
	svc, err := NewService(repo, nil, time.Minute)
	require.NoError(t, err)

	attrs, err := svc.ListAttributes(context.Background())
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	require.Equal(t, "Color", attrs[0].Name)
	require.Equal(t, []string{"Blue", "Silver"}, attrs[0].Values)
}

func TestInfoRoundTripsThroughJSON(t *testing.T) {
	info := toInfo(catalogProduct())
	encoded, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded Info
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, info.ID, decoded.ID)
	require.True(t, info.Price.Equal(decoded.Price))
	require.Equal(t, info.Attributes, decoded.Attributes)
}
