package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/service"
)

// ProfileHandler serves user profiles and profile edits.
type ProfileHandler struct {
	auth    *service.AuthService
	reviews *service.ReviewService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(auth *service.AuthService, reviews *service.ReviewService) *ProfileHandler {
	return &ProfileHandler{auth: auth, reviews: reviews}
}

// HandleGetProfile returns the authenticated user's profile with their
// reviews.
// GET /api/profile
// Response: {"user": {...}, "reviews": [...], "reviewCount": n}
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	reviews, count, ok := h.loadReviews(w, r, user.ID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        toUserDTO(user),
		"reviews":     toUserReviewDTOs(reviews),
		"reviewCount": count,
	})
}

// HandleGetUser returns another member's public profile with their
// reviews.
// GET /api/users/{id}
// Response: {"user": {...}, "reviews": [...], "reviewCount": n}
func (h *ProfileHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No such user.")
			return
		}
		slog.Error("get user profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	reviews, count, ok := h.loadReviews(w, r, user.ID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        toPublicUserDTO(user),
		"reviews":     toUserReviewDTOs(reviews),
		"reviewCount": count,
	})
}

func (h *ProfileHandler) loadReviews(w http.ResponseWriter, r *http.Request, userID int64) ([]domain.UserReview, int, bool) {
	reviews, err := h.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list reviews for profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return nil, 0, false
	}
	count, err := h.reviews.CountByUser(r.Context(), userID)
	if err != nil {
		slog.Error("count reviews for profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return nil, 0, false
	}
	return reviews, count, true
}

// HandleUpdateProfile changes nickname, email and optionally the
// password.
// PUT /api/profile
// Request: {"nickname":"...","email":"...","password":"...","confirmPassword":"..."}
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Nickname        string `json:"nickname"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.ID, req.Nickname, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with that email already exists.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("update profile", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(updated),
	})
}

// HandleUploadPicture stores a new profile picture from a multipart
// form field named "picture".
// PUT /api/profile/picture
func (h *ProfileHandler) HandleUploadPicture(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	// Cap the whole form a little above the picture limit so the
	// service can report oversize uploads itself.
	maxForm := int64(domain.MaxPictureSize + (512 << 10))
	r.Body = http.MaxBytesReader(w, r.Body, maxForm)
	if err := r.ParseMultipartForm(maxForm); err != nil {
		writeError(w, http.StatusBadRequest, "Upload too large or malformed.")
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No picture file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read picture upload", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	// Detect content type from file bytes (more reliable than multipart header).
	contentType := http.DetectContentType(data)

	updated, err := h.auth.UpdateProfilePicture(r.Context(), user.ID, header.Filename, contentType, data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("upload profile picture", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(updated),
	})
}

// HandleDeletePicture removes the stored profile picture.
// DELETE /api/profile/picture
func (h *ProfileHandler) HandleDeletePicture(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	updated, err := h.auth.RemoveProfilePicture(r.Context(), user.ID)
	if err != nil {
		slog.Error("remove profile picture", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(updated),
	})
}
