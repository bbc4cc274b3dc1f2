package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// FavoriteHandler handles the user's favorites list.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// HandleList returns the user's favorite titles, most recently added
// first.
// GET /api/favorites
// Response: {"movies": [...]}
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	movies, err := h.favorites.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": toMovieDTOs(movies)})
}

// HandleAdd marks a title as a favorite. Adding twice is a no-op.
// PUT /api/movies/{imdbID}/favorite
// Response: 204 No Content
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.favorites.Add(r.Context(), user.ID, r.PathValue("imdbID")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No such movie.")
			return
		}
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusBadGateway, "Movie data is temporarily unavailable.")
			return
		}
		slog.Error("add favorite", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove unmarks a favorite.
// DELETE /api/movies/{imdbID}/favorite
// Response: 204 No Content
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.favorites.Remove(r.Context(), user.ID, r.PathValue("imdbID")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "That title is not in your favorites.")
			return
		}
		slog.Error("remove favorite", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
