package handler

import (
	"net/http"

	"github.com/vibescine/cinevibes/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. uploadsDir
// enables static serving of disk-stored profile pictures; pass "" when
// pictures live in an object bucket.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	catalog *service.CatalogService,
	reviews *service.ReviewService,
	favorites *service.FavoriteService,
	history *service.HistoryService,
	requests *service.RequestService,
	limiter *service.TokenBucket,
	cookieSecure bool,
	uploadsDir string,
) {
	authHandler := NewAuthHandler(auth, limiter, cookieSecure)
	profileHandler := NewProfileHandler(auth, reviews)
	movieHandler := NewMovieHandler(catalog, favorites, history)
	reviewHandler := NewReviewHandler(reviews)
	favoriteHandler := NewFavoriteHandler(favorites)
	requestHandler := NewRequestHandler(requests)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Accounts.
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/verify", authHandler.HandleVerify)
	mux.HandleFunc("POST /api/auth/resend-code", authHandler.HandleResendCode)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))

	// Profiles.
	mux.HandleFunc("GET /api/users/{id}", profileHandler.HandleGetUser)
	mux.Handle("GET /api/profile", protected(profileHandler.HandleGetProfile))
	mux.Handle("PUT /api/profile", protected(profileHandler.HandleUpdateProfile))
	mux.Handle("PUT /api/profile/picture", protected(profileHandler.HandleUploadPicture))
	mux.Handle("DELETE /api/profile/picture", protected(profileHandler.HandleDeletePicture))

	// Movies.
	mux.HandleFunc("GET /api/movies", movieHandler.HandleRecent)
	mux.HandleFunc("GET /api/movies/available", movieHandler.HandleAvailable)
	mux.HandleFunc("GET /api/movies/random", movieHandler.HandleRandom)
	mux.HandleFunc("GET /api/movies/search", movieHandler.HandleSearch)
	mux.HandleFunc("GET /api/movies/suggest", movieHandler.HandleSuggest)
	mux.Handle("GET /api/movies/{imdbID}", OptionalAuth(auth, http.HandlerFunc(movieHandler.HandleDetail)))
	mux.Handle("GET /api/movies/{imdbID}/player", protected(movieHandler.HandlePlayer))
	mux.Handle("GET /api/history", protected(movieHandler.HandleHistory))

	// Reviews.
	mux.HandleFunc("GET /api/movies/{imdbID}/reviews", reviewHandler.HandleListByMovie)
	mux.Handle("POST /api/movies/{imdbID}/reviews", protected(reviewHandler.HandleCreate))
	mux.Handle("PUT /api/reviews/{id}", protected(reviewHandler.HandleUpdate))
	mux.Handle("DELETE /api/reviews/{id}", protected(reviewHandler.HandleDelete))

	// Favorites.
	mux.Handle("GET /api/favorites", protected(favoriteHandler.HandleList))
	mux.Handle("PUT /api/movies/{imdbID}/favorite", protected(favoriteHandler.HandleAdd))
	mux.Handle("DELETE /api/movies/{imdbID}/favorite", protected(favoriteHandler.HandleRemove))

	// Recommendations.
	mux.Handle("GET /api/recommendations/facets", protected(movieHandler.HandleFacets))
	mux.Handle("GET /api/recommendations", protected(movieHandler.HandleRecommendations))

	// Movie requests.
	mux.Handle("POST /api/movie-requests", protected(requestHandler.HandleCreate))

	// Profile pictures on disk storage.
	if uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	// Everything else is a JSON 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
}
