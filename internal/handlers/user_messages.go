package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
)

// MessageBoxProvider defines the outbox/inbox listings for a user.
type MessageBoxProvider interface {
	MessagesFrom(ctx context.Context, username string) ([]models.OutboxItem, error)
	MessagesTo(ctx context.Context, username string) ([]models.InboxItem, error)
}

// OutboxResponse wraps the messages sent by a user
// swagger:model OutboxResponse
type OutboxResponse struct {
	Messages []models.OutboxItem `json:"messages"`
}

// InboxResponse wraps the messages received by a user
// swagger:model InboxResponse
type InboxResponse struct {
	Messages []models.InboxItem `json:"messages"`
}

// NewMessagesFromHandler returns an HTTP handler for a user's outbox.
// @Summary Messages sent by a user
// @Description Every message sent by the user, with recipient profiles resolved.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} handlers.OutboxResponse
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Access denied"
// @Router /users/{username}/from [get]
func NewMessagesFromHandler(svc MessageBoxProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		messages, err := svc.MessagesFrom(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if messages == nil {
			messages = []models.OutboxItem{}
		}

		writeJSON(w, http.StatusOK, OutboxResponse{Messages: messages})
	}
}

// NewMessagesToHandler returns an HTTP handler for a user's inbox.
// @Summary Messages received by a user
// @Description Every message received by the user, with sender profiles resolved.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} handlers.InboxResponse
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Access denied"
// @Router /users/{username}/to [get]
func NewMessagesToHandler(svc MessageBoxProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		messages, err := svc.MessagesTo(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if messages == nil {
			messages = []models.InboxItem{}
		}

		writeJSON(w, http.StatusOK, InboxResponse{Messages: messages})
	}
}
