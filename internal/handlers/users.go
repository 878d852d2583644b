package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/services"
)

// UsersLister defines the listing operations the users endpoints need.
type UsersLister interface {
	List(ctx context.Context) ([]models.UserSummary, error)
	ListFull(ctx context.Context) ([]models.UserProfile, error)
}

// UserGetter defines the single-profile lookup the users endpoints need.
type UserGetter interface {
	Get(ctx context.Context, username string) (*models.UserProfile, error)
}

// UsersResponse wraps the public user listing
// swagger:model UsersResponse
type UsersResponse struct {
	Users []models.UserSummary `json:"users"`
}

// AdminUsersResponse wraps the admin user listing
// swagger:model AdminUsersResponse
type AdminUsersResponse struct {
	Users []models.UserProfile `json:"users"`
}

// UserResponse wraps a single full profile
// swagger:model UserResponse
type UserResponse struct {
	User models.UserProfile `json:"user"`
}

// NewListUsersHandler returns an HTTP handler listing all user summaries.
// @Summary List users
// @Description Public profile summaries for every registered user.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UsersResponse
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /users [get]
func NewListUsersHandler(svc UsersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if users == nil {
			users = []models.UserSummary{}
		}

		writeJSON(w, http.StatusOK, UsersResponse{Users: users})
	}
}

// NewAdminListUsersHandler returns an HTTP handler listing full profiles,
// including join and last-login timestamps.
// @Summary List users with timestamps (admin)
// @Description Full profiles for every registered user. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.AdminUsersResponse
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Admin access required"
// @Router /admin/users [get]
func NewAdminListUsersHandler(svc UsersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListFull(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if users == nil {
			users = []models.UserProfile{}
		}

		writeJSON(w, http.StatusOK, AdminUsersResponse{Users: users})
	}
}

// NewGetUserHandler returns an HTTP handler for a single full profile.
// @Summary Get user
// @Description Full profile for a username. Only the user themselves may read it.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Access denied"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{username} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := svc.Get(r.Context(), username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "user not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{User: *user})
	}
}
