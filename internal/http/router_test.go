package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/checkout"
	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/simulated"
	"github.com/boofmebel/boofmebel/internal/storage"
	"github.com/boofmebel/boofmebel/internal/storefront"
)

type declining struct{}

func (declining) PickStatus() string { return simulated.StatusDeclined }

func newTestServer(t *testing.T, payment checkout.PaymentGateway) (http.Handler, *storefront.App) {
	t.Helper()
	if payment == nil {
		payment = simulated.NewPayment(0, nil, nil)
	}
	app, err := storefront.New(context.Background(), storefront.Options{
		Store:    storage.NewMemoryStore(),
		Catalog:  catalog.Builtin(),
		Checkout: checkout.Config{StageTimeout: time.Second},
		Payment:  payment,
		Booker:   simulated.NewBooker(0, nil),
		Quotes:   simulated.NewQuoter(0),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return NewRouter(app, DefaultRouterConfig(), nil), app
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestProducts_ListFilterAndSort(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/v1/products?category=armchair&sort=price-desc", "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[struct {
		Products []struct {
			ID             string `json:"id"`
			Category       string `json:"category"`
			Price          int64  `json:"price"`
			PriceFormatted string `json:"priceFormatted"`
		} `json:"products"`
		Count int `json:"count"`
	}](t, rr)

	require.NotEmpty(t, body.Products)
	assert.Equal(t, len(body.Products), body.Count)
	for i, p := range body.Products {
		assert.Equal(t, "armchair", p.Category)
		assert.Contains(t, p.PriceFormatted, "₽")
		if i > 0 {
			assert.LessOrEqual(t, p.Price, body.Products[i-1].Price)
		}
	}
}

func TestProducts_GetAndPrice(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/v1/products/soho", "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[map[string]any](t, rr)
	assert.Equal(t, "soho", detail["id"])
	assert.Equal(t, "linen-ice", detail["defaultFabric"])
	assert.NotEmpty(t, detail["oldPriceFormatted"])

	rr = do(t, h, http.MethodGet, "/api/v1/products/soho/price?fabric=vel-soft", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(93000), decode[PriceResponseDTO](t, rr).Price)

	rr = do(t, h, http.MethodGet, "/api/v1/products/soho/price?fabric=unknown", "")
	assert.Equal(t, int64(89000), decode[PriceResponseDTO](t, rr).Price)

	rr = do(t, h, http.MethodGet, "/api/v1/products/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "product_not_found", decode[ErrorResponse](t, rr).Code)
}

func TestCart_Lifecycle(t *testing.T) {
	h, app := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"soho","fabric_id":"vel-soft","quantity":2}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	c := decode[CartResponseDTO](t, rr)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(186000), c.Total)
	assert.Equal(t, 2, c.Count)

	// same key merges, quantity as a string
	rr = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"soho","fabric_id":"vel-soft","quantity":"3"}`)
	c = decode[CartResponseDTO](t, rr)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Qty)

	rr = do(t, h, http.MethodPut, "/api/v1/cart/items/soho-vel-soft", `{"quantity":-5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[CartResponseDTO](t, rr).Items[0].Qty)

	rr = do(t, h, http.MethodDelete, "/api/v1/cart/items/missing", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[CartResponseDTO](t, rr).Items, 1)

	rr = do(t, h, http.MethodDelete, "/api/v1/cart/items/soho-vel-soft", "")
	assert.Empty(t, decode[CartResponseDTO](t, rr).Items)

	do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"cozy-chair","quantity":"abc"}`)
	rr = do(t, h, http.MethodDelete, "/api/v1/cart", "")
	c = decode[CartResponseDTO](t, rr)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, app.Cart.Len())
}

func TestCart_AddDefaultsFabricAndQuantity(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"cozy-chair","quantity":"abc"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	c := decode[CartResponseDTO](t, rr)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "cozy-chair-boucle-milk", c.Items[0].Key)
	assert.Equal(t, 1, c.Items[0].Qty)
}

func TestCart_AddErrors(t *testing.T) {
	h, _ := newTestServer(t, nil)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/cart/items", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/cart/items", `{"quantity":1}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"nope"}`).Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/v1/checkout", `{"name":"Иван","phone":"1","address":"Москва"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode[map[string]any](t, rr)
	assert.Equal(t, string(domain.CheckoutStageFailed), body["stage"])
	assert.Equal(t, "Корзина пуста", body["status"].(map[string]any)["message"])
	assert.Equal(t, "empty_cart", body["error"].(map[string]any)["code"])
}

func TestCheckout_Success(t *testing.T) {
	h, app := newTestServer(t, nil)
	do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"soho","fabric_id":"vel-soft","quantity":2}`)

	rr := do(t, h, http.MethodPost, "/api/v1/checkout", `{"name":"Иван","phone":"+7900","address":"Москва","pay":"card"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	res := decode[checkout.Result](t, rr)
	assert.Equal(t, domain.CheckoutStageSucceeded, res.Stage)
	require.NotNil(t, res.Booking)
	assert.Equal(t, int64(186000), res.Payment.Amount)
	assert.Len(t, res.Events, 3)
	assert.Zero(t, app.Cart.Len())

	rr = do(t, h, http.MethodGet, "/api/v1/checkout/status", "")
	status := decode[map[string]any](t, rr)
	assert.Equal(t, false, status["in_flight"])
	assert.NotNil(t, status["last"])
}

func TestCheckout_Declined(t *testing.T) {
	h, app := newTestServer(t, simulated.NewPayment(0, declining{}, nil))
	do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"soho","quantity":1}`)

	rr := do(t, h, http.MethodPost, "/api/v1/checkout", `{"name":"Иван","phone":"+7900","address":"Москва"}`)

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Equal(t, 1, app.Cart.Len())
}

func TestCheckout_InvalidForm(t *testing.T) {
	h, _ := newTestServer(t, nil)
	do(t, h, http.MethodPost, "/api/v1/cart/items", `{"product_id":"soho","quantity":1}`)

	rr := do(t, h, http.MethodPost, "/api/v1/checkout", `{"name":"Иван"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_form", decode[map[string]any](t, rr)["error"].(map[string]any)["code"])
}

func TestCheckoutErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{checkout.ErrEmptyCart, http.StatusBadRequest},
		{checkout.ErrInvalidForm, http.StatusBadRequest},
		{checkout.ErrPaymentDeclined, http.StatusPaymentRequired},
		{checkout.ErrTimedOut, http.StatusGatewayTimeout},
		{checkout.ErrCheckoutFailed, http.StatusBadGateway},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		got, _ := checkoutErrorStatus(tt.err)
		assert.Equal(t, tt.want, got, tt.err.Error())
	}
}

func TestDeliveryQuote(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/v1/delivery/quote", `{"address":"   "}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode[QuoteResponseDTO](t, rr)
	assert.Nil(t, body.Quote)
	assert.Equal(t, domain.SeverityError, body.Status.Severity)

	rr = do(t, h, http.MethodPost, "/api/v1/delivery/quote", `{"address":"Москва"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode[QuoteResponseDTO](t, rr)
	require.NotNil(t, body.Quote)
	assert.Equal(t, int64(2400), body.Quote.Price)
	assert.Contains(t, body.Status.Message, "срок")
}

func TestReviews(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/v1/reviews", `{"author":"Ольга","rating":"x","text":"Супер"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[ReviewResponseDTO](t, rr)
	require.NotNil(t, created.Review)
	assert.Equal(t, 5, created.Review.Rating)

	rr = do(t, h, http.MethodGet, "/api/v1/reviews", "")
	list := decode[struct {
		Reviews []domain.Review `json:"reviews"`
	}](t, rr)
	require.Len(t, list.Reviews, 9)
	assert.Equal(t, "Ольга", list.Reviews[0].Author)

	rr = do(t, h, http.MethodPost, "/api/v1/reviews", `{"author":"","rating":4,"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestThemeToggle(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/v1/preferences/theme", "")
	assert.Equal(t, domain.ThemeLight, decode[ThemeResponseDTO](t, rr).Theme)

	rr = do(t, h, http.MethodPost, "/api/v1/preferences/theme/toggle", "")
	assert.Equal(t, domain.ThemeDark, decode[ThemeResponseDTO](t, rr).Theme)

	rr = do(t, h, http.MethodGet, "/api/v1/preferences/theme", "")
	assert.Equal(t, domain.ThemeDark, decode[ThemeResponseDTO](t, rr).Theme)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want flexInt
	}{
		{`{"q":3}`, "3"},
		{`{"q":"4"}`, "4"},
		{`{"q":2.5}`, "2.5"},
		{`{"q":null}`, ""},
		{`{"q":true}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var v struct {
			Q flexInt `json:"q"`
		}
		require.NoError(t, json.Unmarshal([]byte(tt.in), &v), tt.in)
		assert.Equal(t, tt.want, v.Q, tt.in)
	}
}
