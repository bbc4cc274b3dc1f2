package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// RequestHandler takes movie requests from members.
type RequestHandler struct {
	requests *service.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// HandleCreate submits a movie request to the site admin.
// POST /api/movie-requests
// Request:  {"title":"...","year":"...","info":"..."}
// Response: 202 Accepted
func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
		Year  string `json:"year"`
		Info  string `json:"info"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.requests.Submit(r.Context(), user, req.Title, req.Year, req.Info); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("submit movie request", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "Thanks! We received your movie request.",
	})
}
