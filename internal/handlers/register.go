package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/services"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, firstName, lastName, phone string) (*models.UserProfile, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// First name
	// required: true
	// example: Alice
	FirstName string `json:"first_name"`

	// Last name
	// required: true
	// example: Anderson
	LastName string `json:"last_name"`

	// Phone
	// required: true
	// example: +15551234567
	Phone string `json:"phone"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Session token for the new user
	// example: JWT_TOKEN
	Token string `json:"token"`

	// Created profile
	User models.UserProfile `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account, hashes the password before storing and logs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing required fields / invalid request"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Username, req.Password, req.FirstName, req.LastName, req.Phone)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "missing required fields")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "username already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Token: token,
			User:  *user,
		})
	}
}
