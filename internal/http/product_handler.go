package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/pricing"
)

type ProductHandler struct {
	responder
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog, log *zap.Logger) *ProductHandler {
	return &ProductHandler{responder: responder{log: log}, catalog: c}
}

type ProductDTO struct {
	*domain.Product
	PriceFormatted    string `json:"priceFormatted"`
	OldPriceFormatted string `json:"oldPriceFormatted,omitempty"`
}

type ProductDetailDTO struct {
	ProductDTO
	DefaultFabric string `json:"defaultFabric"`
}

type PriceResponseDTO struct {
	ProductID string `json:"product_id"`
	FabricID  string `json:"fabric_id,omitempty"`
	Price     int64  `json:"price"`
	Formatted string `json:"formatted"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	dto := ProductDTO{Product: p, PriceFormatted: pricing.FormatPrice(p.Price)}
	if p.HasDiscount() {
		dto.OldPriceFormatted = pricing.FormatPrice(p.OriginalPrice)
	}
	return dto
}

// GET /api/v1/products?category=&sort=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products := h.catalog.List(q.Get("category"), catalog.SortOrder(q.Get("sort")))

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"products": out, "count": len(out)})
}

// GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}
	dto := ProductDetailDTO{ProductDTO: toProductDTO(p)}
	if f, found := p.Fabrics.Default(); found {
		dto.DefaultFabric = f.ID
	}
	h.respondJSON(w, http.StatusOK, dto)
}

// GET /api/v1/products/{id}/price?fabric=
func (h *ProductHandler) Price(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}
	fabricID := r.URL.Query().Get("fabric")
	price := pricing.EffectivePrice(p, fabricID)
	h.respondJSON(w, http.StatusOK, PriceResponseDTO{
		ProductID: p.ID,
		FabricID:  fabricID,
		Price:     price,
		Formatted: pricing.FormatPrice(price),
	})
}

func (h *ProductHandler) product(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	p, err := h.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return nil, false
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return nil, false
	}
	return p, true
}
