package handler

import (
	"time"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// UserDTO is the JSON representation of the authenticated user's own
// account.
type UserDTO struct {
	ID         int64  `json:"id"`
	Nickname   string `json:"nickname"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
	ProfilePic string `json:"profilePic"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Nickname:   u.Nickname,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
}

// PublicUserDTO is the JSON representation of someone else's profile.
// It omits the email address.
type PublicUserDTO struct {
	ID         int64  `json:"id"`
	Nickname   string `json:"nickname"`
	ProfilePic string `json:"profilePic"`
	CreatedAt  string `json:"createdAt"`
}

func toPublicUserDTO(u *domain.User) PublicUserDTO {
	return PublicUserDTO{
		ID:         u.ID,
		Nickname:   u.Nickname,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

// MovieDTO is the JSON representation of a catalog title.
type MovieDTO struct {
	ID          int64   `json:"id"`
	IMDbID      string  `json:"imdbID"`
	Title       string  `json:"title"`
	Year        string  `json:"year"`
	Poster      string  `json:"poster"`
	Plot        string  `json:"plot"`
	Director    string  `json:"director"`
	Actors      string  `json:"actors"`
	Genres      string  `json:"genres"`
	IMDbRating  float64 `json:"imdbRating"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Runtime     string  `json:"runtime"`
	Language    string  `json:"language"`
	Country     string  `json:"country"`
	Awards      string  `json:"awards"`
	Available   bool    `json:"available"`
}

func toMovieDTO(m domain.Movie) MovieDTO {
	dto := MovieDTO{
		ID:         m.ID,
		IMDbID:     m.IMDbID,
		Title:      m.Title,
		Year:       m.Year,
		Poster:     m.Poster,
		Plot:       m.Plot,
		Director:   m.Director,
		Actors:     m.Actors,
		Genres:     m.Genres,
		IMDbRating: m.IMDbRating,
		Runtime:    m.Runtime,
		Language:   m.Language,
		Country:    m.Country,
		Awards:     m.Awards,
		Available:  m.Available,
	}
	if !m.ReleaseDate.IsZero() {
		dto.ReleaseDate = m.ReleaseDate.Format("2006-01-02")
	}
	return dto
}

func toMovieDTOs(movies []domain.Movie) []MovieDTO {
	dtos := make([]MovieDTO, len(movies))
	for i, m := range movies {
		dtos[i] = toMovieDTO(m)
	}
	return dtos
}

// SearchResultDTO is one annotated hit of an external title search.
type SearchResultDTO struct {
	Title     string `json:"title"`
	Year      string `json:"year"`
	IMDbID    string `json:"imdbID"`
	Poster    string `json:"poster"`
	Available bool   `json:"available"`
}

func toSearchResultDTO(r service.SearchResult) SearchResultDTO {
	return SearchResultDTO{
		Title:     r.Title,
		Year:      r.Year,
		IMDbID:    r.IMDbID,
		Poster:    r.Poster,
		Available: r.Available,
	}
}

func toSearchResultDTOs(results []service.SearchResult) []SearchResultDTO {
	dtos := make([]SearchResultDTO, len(results))
	for i, r := range results {
		dtos[i] = toSearchResultDTO(r)
	}
	return dtos
}

// RatingSummaryDTO is the local review summary for a title.
type RatingSummaryDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MovieDetailDTO is the JSON representation of a full title record,
// external metadata merged with catalog state.
type MovieDetailDTO struct {
	Title      string           `json:"title"`
	Year       string           `json:"year"`
	Released   string           `json:"released"`
	Runtime    string           `json:"runtime"`
	Genres     string           `json:"genres"`
	Director   string           `json:"director"`
	Actors     string           `json:"actors"`
	Plot       string           `json:"plot"`
	Language   string           `json:"language"`
	Country    string           `json:"country"`
	Awards     string           `json:"awards"`
	Poster     string           `json:"poster"`
	IMDbRating string           `json:"imdbRating"`
	IMDbID     string           `json:"imdbID"`
	Available  bool             `json:"available"`
	VideoLink  string           `json:"videoLink,omitempty"`
	Favorite   bool             `json:"favorite"`
	Rating     RatingSummaryDTO `json:"rating"`
}

func toMovieDetailDTO(d *service.MovieDetails) MovieDetailDTO {
	return MovieDetailDTO{
		Title:      d.Title,
		Year:       d.Year,
		Released:   d.Released,
		Runtime:    d.Runtime,
		Genres:     d.Genre,
		Director:   d.Director,
		Actors:     d.Actors,
		Plot:       d.Plot,
		Language:   d.Language,
		Country:    d.Country,
		Awards:     d.Awards,
		Poster:     d.Poster,
		IMDbRating: d.IMDbRating,
		IMDbID:     d.IMDbID,
		Available:  d.Available,
		VideoLink:  d.VideoLink,
		Rating: RatingSummaryDTO{
			Average: d.Rating.Average,
			Count:   d.Rating.Count,
		},
	}
}

// ReviewDTO is the JSON representation of a review.
type ReviewDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	MovieID   string `json:"movieId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

func toReviewDTO(r *domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// MovieReviewDTO is a review with its author attached, for movie pages.
type MovieReviewDTO struct {
	ReviewDTO
	Nickname   string `json:"nickname"`
	ProfilePic string `json:"profilePic"`
}

func toMovieReviewDTOs(reviews []domain.MovieReview) []MovieReviewDTO {
	dtos := make([]MovieReviewDTO, len(reviews))
	for i := range reviews {
		dtos[i] = MovieReviewDTO{
			ReviewDTO:  toReviewDTO(&reviews[i].Review),
			Nickname:   reviews[i].Nickname,
			ProfilePic: reviews[i].ProfilePic,
		}
	}
	return dtos
}

// UserReviewDTO is a review with its movie attached, for profile pages.
type UserReviewDTO struct {
	ReviewDTO
	MovieTitle  string `json:"movieTitle"`
	MoviePoster string `json:"moviePoster"`
	MovieYear   string `json:"movieYear"`
}

func toUserReviewDTOs(reviews []domain.UserReview) []UserReviewDTO {
	dtos := make([]UserReviewDTO, len(reviews))
	for i := range reviews {
		dtos[i] = UserReviewDTO{
			ReviewDTO:   toReviewDTO(&reviews[i].Review),
			MovieTitle:  reviews[i].MovieTitle,
			MoviePoster: reviews[i].MoviePoster,
			MovieYear:   reviews[i].MovieYear,
		}
	}
	return dtos
}

// WatchedMovieDTO is a catalog title with the time it was watched.
type WatchedMovieDTO struct {
	MovieDTO
	WatchedAt string `json:"watchedAt"`
}

func toWatchedMovieDTOs(watched []domain.WatchedMovie) []WatchedMovieDTO {
	dtos := make([]WatchedMovieDTO, len(watched))
	for i, w := range watched {
		dtos[i] = WatchedMovieDTO{
			MovieDTO:  toMovieDTO(w.Movie),
			WatchedAt: w.WatchedAt.Format(time.RFC3339),
		}
	}
	return dtos
}

// FacetsDTO lists the catalog's filter values.
type FacetsDTO struct {
	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Directors []string `json:"directors"`
}

func toFacetsDTO(f *service.Facets) FacetsDTO {
	return FacetsDTO{
		Genres:    f.Genres,
		Actors:    f.Actors,
		Directors: f.Directors,
	}
}
