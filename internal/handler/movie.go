package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// MovieHandler serves catalog browsing, search and playback.
type MovieHandler struct {
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	history   *service.HistoryService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(catalog *service.CatalogService, favorites *service.FavoriteService, history *service.HistoryService) *MovieHandler {
	return &MovieHandler{catalog: catalog, favorites: favorites, history: history}
}

// HandleRecent lists available titles, newest release first.
// GET /api/movies?page=N
// Response: {"movies": [...], "page": n, "totalPages": m}
func (h *MovieHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.catalog.Recent(r.Context(), page)
	if err != nil {
		slog.Error("list recent movies", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"movies":     toMovieDTOs(result.Movies),
		"page":       result.Page,
		"totalPages": result.TotalPages,
	})
}

// HandleAvailable lists every available title, ordered by name.
// GET /api/movies/available
func (h *MovieHandler) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Available(r.Context())
	if err != nil {
		slog.Error("list available movies", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": toMovieDTOs(movies)})
}

// HandleRandom returns a shuffled sample of available titles.
// GET /api/movies/random
func (h *MovieHandler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Random(r.Context())
	if err != nil {
		slog.Error("list random movies", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": toMovieDTOs(movies)})
}

// HandleSearch searches the external API. By default only titles in
// the local catalog are returned; ?include=all lists every annotated
// hit.
// GET /api/movies/search?q=...&include=all
// Response: {"results": [...]}
func (h *MovieHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	includeAll := r.URL.Query().Get("include") == "all"

	results, err := h.catalog.Search(r.Context(), query, includeAll)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": toSearchResultDTOs(results)})
}

// HandleSuggest returns the top hits for realtime search boxes.
// GET /api/movies/suggest?q=...
func (h *MovieHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalog.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": toSearchResultDTOs(results)})
}

func (h *MovieHandler) writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "A search query is required.")
		return
	}
	if errors.Is(err, domain.ErrUnavailable) {
		writeError(w, http.StatusBadGateway, "Movie search is temporarily unavailable.")
		return
	}
	slog.Error("search movies", "error", err)
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

// HandleDetail returns full metadata for one title, merged with
// catalog availability and the local rating summary. Signed-in viewers
// also see whether the title is in their favorites.
// GET /api/movies/{imdbID}
// Response: {"movie": {...}}
func (h *MovieHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	details, err := h.catalog.Details(r.Context(), r.PathValue("imdbID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No such movie.")
			return
		}
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusBadGateway, "Movie data is temporarily unavailable.")
			return
		}
		slog.Error("get movie details", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	dto := toMovieDetailDTO(details)
	if user := UserFromContext(r.Context()); user != nil {
		fav, err := h.favorites.Has(r.Context(), user.ID, details.IMDbID)
		if err != nil {
			slog.Error("check favorite state", "error", err)
		}
		dto.Favorite = fav
	}

	writeJSON(w, http.StatusOK, map[string]any{"movie": dto})
}

// HandlePlayer returns the video link for an available title and
// records the watch.
// GET /api/movies/{imdbID}/player
// Response: {"videoLink": "..."}
func (h *MovieHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	link, err := h.history.Player(r.Context(), user.ID, r.PathValue("imdbID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "This title is not available to watch.")
			return
		}
		slog.Error("resolve player link", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"videoLink": link})
}

// HandleHistory lists the user's watch history, newest first.
// GET /api/history
func (h *MovieHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	watched, err := h.history.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list watch history", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": toWatchedMovieDTOs(watched)})
}

// HandleFacets returns the catalog's genres, actors and directors for
// the recommendation filters.
// GET /api/recommendations/facets
func (h *MovieHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.Facets(r.Context())
	if err != nil {
		slog.Error("list recommendation facets", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toFacetsDTO(facets))
}

// HandleRecommendations returns top-rated titles matching the filters,
// excluding the user's favorites.
// GET /api/recommendations?genre=&actor=&director=
func (h *MovieHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	q := r.URL.Query()

	movies, err := h.catalog.Recommendations(r.Context(), user.ID, q.Get("genre"), q.Get("actor"), q.Get("director"))
	if err != nil {
		slog.Error("list recommendations", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": toMovieDTOs(movies)})
}
