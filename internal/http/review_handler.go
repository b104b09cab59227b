package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/reviews"
)

type ReviewHandler struct {
	responder
	board *reviews.Board
}

func NewReviewHandler(board *reviews.Board, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{responder: responder{log: log}, board: board}
}

type ReviewRequestDTO struct {
	Author string  `json:"author"`
	Rating flexInt `json:"rating"`
	Text   string  `json:"text"`
}

type ReviewResponseDTO struct {
	Review *domain.Review `json:"review,omitempty"`
	Status domain.Status  `json:"status"`
}

// GET /api/v1/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{"reviews": h.board.List()})
}

// POST /api/v1/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	review, err := h.board.Submit(reviews.Form{Author: req.Author, Rating: string(req.Rating), Text: req.Text})
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, ReviewResponseDTO{Status: reviews.StatusFor(err)})
		return
	}
	h.respondJSON(w, http.StatusCreated, ReviewResponseDTO{Review: &review, Status: reviews.StatusFor(nil)})
}
