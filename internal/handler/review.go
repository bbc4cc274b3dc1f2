package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// ReviewHandler handles review listing and owner-only mutations.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// HandleListByMovie lists a title's reviews, newest first.
// GET /api/movies/{imdbID}/reviews
// Response: {"reviews": [...]}
func (h *ReviewHandler) HandleListByMovie(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByMovie(r.Context(), r.PathValue("imdbID"))
	if err != nil {
		slog.Error("list movie reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reviews": toMovieReviewDTOs(reviews)})
}

// HandleCreate adds a review for a title.
// POST /api/movies/{imdbID}/reviews
// Request:  {"rating": 1-10, "text": "..."}
// Response: {"review": {...}}
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	review, err := h.reviews.Add(r.Context(), user.ID, r.PathValue("imdbID"), req.Rating, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No such movie.")
			return
		}
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusBadGateway, "Movie data is temporarily unavailable.")
			return
		}
		slog.Error("create review", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"review": toReviewDTO(review)})
}

// HandleUpdate rewrites a review. Only the author may update it.
// PUT /api/reviews/{id}
// Request:  {"rating": 1-10, "text": "..."}
// Response: {"review": {...}}
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	reviewID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid review id.")
		return
	}

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	review, err := h.reviews.Update(r.Context(), user.ID, reviewID, req.Rating, req.Text)
	if err != nil {
		h.writeMutationError(w, err, "update review")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"review": toReviewDTO(review)})
}

// HandleDelete removes a review. Only the author may delete it.
// DELETE /api/reviews/{id}
// Response: 204 No Content
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	reviewID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid review id.")
		return
	}

	if err := h.reviews.Delete(r.Context(), user.ID, reviewID); err != nil {
		h.writeMutationError(w, err, "delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) writeMutationError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No such review.")
		return
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		writeError(w, http.StatusForbidden, "You can only change your own reviews.")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
}
