package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/cart"
	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/pricing"
)

type CartHandler struct {
	responder
	ledger  *cart.Ledger
	catalog *catalog.Catalog
	timeout time.Duration
}

func NewCartHandler(ledger *cart.Ledger, c *catalog.Catalog, timeout time.Duration, log *zap.Logger) *CartHandler {
	return &CartHandler{
		responder: responder{log: log},
		ledger:    ledger,
		catalog:   c,
		timeout:   timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"product_id"`
	FabricID  string  `json:"fabric_id"`
	Quantity  flexInt `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity flexInt `json:"quantity"`
}

type CartResponseDTO struct {
	Items          []domain.LineItem `json:"items"`
	Count          int               `json:"count"`
	Total          int64             `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
}

func (h *CartHandler) snapshot() CartResponseDTO {
	items := h.ledger.Items()
	count := 0
	for _, it := range items {
		count += it.Qty
	}
	total := domain.ItemsTotal(items)
	return CartResponseDTO{
		Items:          items,
		Count:          count,
		Total:          total,
		TotalFormatted: pricing.FormatPrice(total),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.snapshot())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	fabricID := strings.TrimSpace(req.FabricID)
	if fabricID == "" {
		if f, ok := p.Fabrics.Default(); ok {
			fabricID = f.ID
		}
	}

	// a failed write leaves the item in the cart; the ledger has already logged it
	_ = h.ledger.Add(ctx, p, fabricID, cart.ParseQuantity(string(req.Quantity)))
	h.respondJSON(w, http.StatusCreated, h.snapshot())
}

// PUT /api/v1/cart/items/{key}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	_ = h.ledger.SetQuantity(ctx, chi.URLParam(r, "key"), cart.ParseQuantity(string(req.Quantity)))
	h.respondJSON(w, http.StatusOK, h.snapshot())
}

// DELETE /api/v1/cart/items/{key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	_ = h.ledger.Remove(ctx, chi.URLParam(r, "key"))
	h.respondJSON(w, http.StatusOK, h.snapshot())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	_ = h.ledger.Clear(ctx)
	h.respondJSON(w, http.StatusOK, h.snapshot())
}
