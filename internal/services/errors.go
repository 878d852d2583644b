package services

import "errors"

// Error variables shared by the service layer. Each maps to exactly one
// HTTP status in the handlers.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotParticipant     = errors.New("caller is not a participant of the message")
	ErrNotRecipient       = errors.New("caller is not the recipient of the message")
)
