package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shopfrontdev/shopfront-backend/api/controllers/graphql"
	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	"github.com/shopfrontdev/shopfront-backend/internal/orders"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	"github.com/shopfrontdev/shopfront-backend/pkg/config"
	"github.com/google/uuid"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

type noopCart struct{}

func (noopCart) AddToCart(context.Context, cart.AddInput) (*cart.Line, error) { return nil, nil }
func (noopCart) ListCart(context.Context) ([]cart.Line, error)                { return nil, nil }
func (noopCart) UpdateQuantity(context.Context, uuid.UUID, int) (*cart.Line, error) {
	return nil, nil
}
func (noopCart) Remove(context.Context, uuid.UUID) (*cart.Line, error) { return nil, nil }
func (noopCart) Clear(context.Context) (int64, error)                  { return 0, nil }

type noopProducts struct{}

func (noopProducts) GetProduct(context.Context, string) (*product.Info, error)     { return nil, nil }
func (noopProducts) ListProducts(context.Context) ([]product.Info, error)          { return nil, nil }
func (noopProducts) ListAttributes(context.Context) ([]product.AttributeDTO, error) { return nil, nil }

type noopOrders struct{}

func (noopOrders) PlaceOrder(context.Context, *string) (*orders.Result, error) {
	return &orders.Result{Success: false, Message: orders.MessageEmptyCart}, nil
}

func testRouter(t *testing.T, dbHealthy bool) http.Handler {
	t.Helper()
	gql, err := graphql.NewHandler(noopCart{}, noopProducts{}, noopOrders{}, nil, nil)
	if err != nil {
		t.Fatalf("building handler: %v", err)
	}
	cfg := &config.Config{}
	cfg.App.Env = "test"
	var dbP interface{ Ping(context.Context) error } = okPinger{}
	if !dbHealthy {
		dbP = failingPinger{}
	}
	return NewRouter(cfg, nil, dbP, nil, gql, prometheus.NewRegistry())
}

func TestRouterHealthLive(t *testing.T) {
	r := testRouter(t, true)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterHealthReadyReportsFailure(t *testing.T) {
	r := testRouter(t, false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	r := testRouter(t, true)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterGraphQLRoute(t *testing.T) {
	r := testRouter(t, true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"mutation { placeOrder { success } }"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
