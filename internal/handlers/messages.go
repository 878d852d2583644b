package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/middlewares"
	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/services"
)

// MessageSender defines the send operation the message endpoints need.
type MessageSender interface {
	Send(ctx context.Context, fromUsername, toUsername, body string) (*models.MessageDB, error)
}

// MessageGetter defines the detail lookup the message endpoints need.
type MessageGetter interface {
	Get(ctx context.Context, id uuid.UUID, caller string) (*models.MessageDetail, error)
}

// ReadMarker defines the read-marking operation the message endpoints need.
type ReadMarker interface {
	MarkRead(ctx context.Context, id uuid.UUID, caller string) (*models.ReadReceipt, error)
}

// SendMessageRequest represents the JSON body for sending a message
// swagger:model SendMessageRequest
type SendMessageRequest struct {
	// Recipient username
	// required: true
	// example: bob
	ToUsername string `json:"to_username"`

	// Message body
	// required: true
	// example: hi bob
	Body string `json:"body"`
}

// SendMessageResponse wraps the created message
// swagger:model SendMessageResponse
type SendMessageResponse struct {
	Message models.MessageDB `json:"message"`
}

// MessageDetailResponse wraps a message with resolved participants
// swagger:model MessageDetailResponse
type MessageDetailResponse struct {
	Message models.MessageDetail `json:"message"`
}

// ReadReceiptResponse wraps the read receipt
// swagger:model ReadReceiptResponse
type ReadReceiptResponse struct {
	Message models.ReadReceipt `json:"message"`
}

// NewSendMessageHandler returns an HTTP handler that creates a message.
// The sender identity is always taken from the session, never the body.
// @Summary Send a message
// @Description Creates a message from the authenticated user to the named recipient.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sendMessageRequest body handlers.SendMessageRequest true "Message to send"
// @Success 201 {object} handlers.SendMessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Recipient does not exist"
// @Router /messages [post]
func NewSendMessageHandler(svc MessageSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		msg, err := svc.Send(r.Context(), claims.Username, req.ToUsername, req.Body)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "missing required fields")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "recipient does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, SendMessageResponse{Message: *msg})
	}
}

// NewGetMessageHandler returns an HTTP handler for message detail.
// @Summary Get a message
// @Description Message detail with both participant profiles. Participants only.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 200 {object} handlers.MessageDetailResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid message id"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{id} [get]
func NewGetMessageHandler(svc MessageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid message id")
			return
		}

		msg, err := svc.Get(r.Context(), id, claims.Username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMessageNotFound):
				writeError(w, http.StatusNotFound, "message not found")
			case errors.Is(err, services.ErrNotParticipant):
				writeError(w, http.StatusForbidden, "access denied")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageDetailResponse{Message: *msg})
	}
}

// NewMarkReadHandler returns an HTTP handler that marks a message read.
// @Summary Mark a message read
// @Description Sets read_at on the message. Recipient only; repeated marks keep the first timestamp.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message id"
// @Success 200 {object} handlers.ReadReceiptResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid message id"
// @Failure 401 {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} handlers.ErrorResponse "Caller is not the recipient"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{id}/read [post]
func NewMarkReadHandler(svc ReadMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid message id")
			return
		}

		receipt, err := svc.MarkRead(r.Context(), id, claims.Username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMessageNotFound):
				writeError(w, http.StatusNotFound, "message not found")
			case errors.Is(err, services.ErrNotRecipient):
				writeError(w, http.StatusForbidden, "only the recipient can mark a message read")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, ReadReceiptResponse{Message: *receipt})
	}
}
