package graphql

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shopfrontdev/shopfront-backend/api/responses"
	"github.com/shopfrontdev/shopfront-backend/api/validators"
	"github.com/shopfrontdev/shopfront-backend/internal/cart"
	"github.com/shopfrontdev/shopfront-backend/internal/orders"
	product "github.com/shopfrontdev/shopfront-backend/internal/products"
	pkgerrors "github.com/shopfrontdev/shopfront-backend/pkg/errors"
	"github.com/shopfrontdev/shopfront-backend/pkg/logger"
	"github.com/shopfrontdev/shopfront-backend/pkg/metrics"
)

// Handler dispatches storefront operations posted to /graphql.
type Handler struct {
	cart     cart.Service
	products product.Service
	orders   orders.Service
	logg     *logger.Logger
	metrics  *metrics.OperationMetrics
}

// NewHandler wires the dispatch table. metrics may be nil.
func NewHandler(cartSvc cart.Service, productSvc product.Service, orderSvc orders.Service, logg *logger.Logger, m *metrics.OperationMetrics) (*Handler, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if productSvc == nil {
		return nil, fmt.Errorf("product service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &Handler{
		cart:     cartSvc,
		products: productSvc,
		orders:   orderSvc,
		logg:     logg,
		metrics:  m,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Request
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteErrors(ctx, h.logg, w, err)
		return
	}

	op := Infer(&req)
	if op == "" {
		op = "unknown"
	}
	if h.logg != nil {
		ctx = h.logg.WithOperation(ctx, op)
	}

	start := time.Now()
	payload, err := h.dispatch(ctx, op, req.Variables)
	h.metrics.ObserveDuration(op, time.Since(start))

	if err != nil {
		h.metrics.IncFailure(op)
		responses.WriteErrors(ctx, h.logg, w, err)
		return
	}

	if businessFailure(payload) {
		h.metrics.IncFailure(op)
	} else {
		h.metrics.IncSuccess(op)
	}
	responses.WriteData(w, op, payload)
}

// businessFailure reports payloads that travelled as transport successes but
// failed in the domain, like placeOrder against an empty cart.
func businessFailure(payload any) bool {
	p, ok := payload.(OrderPayload)
	return ok && !p.Success
}

func (h *Handler) dispatch(ctx context.Context, op string, vars map[string]any) (any, error) {
	switch op {
	case OpProduct:
		info, err := h.products.GetProduct(ctx, stringVar(vars, "id"))
		if err != nil {
			return nil, err
		}
		return newProductPayload(info), nil

	case OpProducts:
		infos, err := h.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		payloads := make([]ProductPayload, 0, len(infos))
		for i := range infos {
			payloads = append(payloads, newProductPayload(&infos[i]))
		}
		return payloads, nil

	case OpAttributes:
		if id := stringVar(vars, "id"); id != "" {
			info, err := h.products.GetProduct(ctx, id)
			if err != nil {
				return nil, err
			}
			return attributePayloads(info.Attributes), nil
		}
		return h.products.ListAttributes(ctx)

	case OpAddToCart:
		line, err := h.cart.AddToCart(ctx, cart.AddInput{
			ProductID:  stringVar(vars, "productId"),
			Quantity:   intVar(vars, "quantity"),
			Attributes: attributesVar(vars, "attributes"),
		})
		if err != nil {
			return nil, err
		}
		return newCartLinePayload(line), nil

	case OpCart:
		lines, err := h.cart.ListCart(ctx)
		if err != nil {
			return nil, err
		}
		return newCartPayload(lines), nil

	case OpUpdateCart:
		lineID, err := lineIDVar(vars)
		if err != nil {
			return nil, err
		}
		line, err := h.cart.UpdateQuantity(ctx, lineID, intVar(vars, "quantityChange"))
		if err != nil {
			return nil, err
		}
		if line == nil {
			// The delta removed the line; updateCart resolves to null.
			return nil, nil
		}
		return newCartLinePayload(line), nil

	case OpRemoveFromCart:
		lineID, err := lineIDVar(vars)
		if err != nil {
			return nil, err
		}
		line, err := h.cart.Remove(ctx, lineID)
		if err != nil {
			return nil, err
		}
		return newCartLinePayload(line), nil

	case OpPlaceOrder:
		name := stringPtrVar(vars, "customerName")
		if name == nil {
			name = stringPtrVar(vars, "name")
		}
		result, err := h.orders.PlaceOrder(ctx, name)
		if err != nil && h.logg != nil {
			h.logg.Error(ctx, "order placement degraded", err)
		}
		if result == nil {
			return nil, err
		}
		if result.Success {
			h.metrics.IncOrdersPlaced()
		}
		return newOrderPayload(result), nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown operation")
	}
}

func lineIDVar(vars map[string]any) (uuid.UUID, error) {
	raw := stringVar(vars, "itemId")
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "itemId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "itemId must be a valid id")
	}
	return id, nil
}

func attributePayloads(catalog map[string][]string) []product.AttributeDTO {
	dtos := make([]product.AttributeDTO, 0, len(catalog))
	for name, values := range catalog {
		dtos = append(dtos, product.AttributeDTO{Name: name, Values: values})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Name < dtos[j].Name })
	return dtos
}
