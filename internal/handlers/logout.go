package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// example: logged out
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler that revokes the current token.
// @Summary Log out
// @Description Revokes the current session token until its natural expiry.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.LogoutResponse "Token revoked"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if err := svc.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, LogoutResponse{Message: "logged out"})
	}
}
