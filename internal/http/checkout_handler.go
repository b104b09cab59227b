package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/checkout"
	"github.com/boofmebel/boofmebel/internal/delivery"
	"github.com/boofmebel/boofmebel/internal/domain"
)

type CheckoutHandler struct {
	responder
	orchestrator *checkout.Orchestrator
	quotes       *delivery.Estimator
	timeout      time.Duration
}

func NewCheckoutHandler(o *checkout.Orchestrator, quotes *delivery.Estimator, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		responder:    responder{log: log},
		orchestrator: o,
		quotes:       quotes,
		timeout:      timeout,
	}
}

type CheckoutResponseDTO struct {
	*checkout.Result
	Error *ErrorResponse `json:"error,omitempty"`
}

type QuoteRequestDTO struct {
	Address string `json:"address"`
}

type QuoteResponseDTO struct {
	Quote  *domain.Quote `json:"quote,omitempty"`
	Status domain.Status `json:"status"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var form domain.CheckoutForm
	if err := decodeJSON(r, &form); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.orchestrator.Submit(ctx, form)
	if errors.Is(err, checkout.ErrCheckoutInProgress) {
		h.respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
		return
	}
	if err != nil {
		status, code := checkoutErrorStatus(err)
		h.respondJSON(w, status, CheckoutResponseDTO{
			Result: res,
			Error:  &ErrorResponse{Error: res.Status.Message, Code: code, Details: err.Error()},
		})
		return
	}
	h.respondJSON(w, http.StatusCreated, CheckoutResponseDTO{Result: res})
}

func checkoutErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusBadRequest, "empty_cart"
	case errors.Is(err, checkout.ErrInvalidForm):
		return http.StatusBadRequest, "invalid_form"
	case errors.Is(err, checkout.ErrPaymentDeclined):
		return http.StatusPaymentRequired, "payment_declined"
	case errors.Is(err, checkout.ErrTimedOut):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, checkout.ErrCheckoutFailed):
		return http.StatusBadGateway, "checkout_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// GET /api/v1/checkout/status
func (h *CheckoutHandler) Status(w http.ResponseWriter, _ *http.Request) {
	event, ok := h.orchestrator.LastStatus()
	body := map[string]any{"in_flight": h.orchestrator.InFlight()}
	if ok {
		body["last"] = event
	}
	h.respondJSON(w, http.StatusOK, body)
}

// POST /api/v1/delivery/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req QuoteRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	q, err := h.quotes.Estimate(ctx, req.Address)
	switch {
	case errors.Is(err, delivery.ErrEmptyAddress):
		h.respondJSON(w, http.StatusBadRequest, QuoteResponseDTO{Status: delivery.ErrorStatus(err)})
	case errors.Is(err, context.DeadlineExceeded):
		h.respondJSON(w, http.StatusGatewayTimeout, QuoteResponseDTO{Status: delivery.ErrorStatus(err)})
	case err != nil:
		h.respondJSON(w, http.StatusBadGateway, QuoteResponseDTO{Status: delivery.ErrorStatus(err)})
	default:
		h.respondJSON(w, http.StatusOK, QuoteResponseDTO{Quote: &q, Status: delivery.StatusFor(q)})
	}
}
