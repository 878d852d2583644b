package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageDB represents a message record in the database
type MessageDB struct {
	ID           uuid.UUID  `json:"id" db:"id"`                       // Primary key
	FromUsername string     `json:"from_username" db:"from_username"` // Sender
	ToUsername   string     `json:"to_username" db:"to_username"`     // Recipient
	Body         string     `json:"body" db:"body"`                   // Text payload
	SentAt       time.Time  `json:"sent_at" db:"sent_at"`             // Creation timestamp, immutable
	ReadAt       *time.Time `json:"read_at" db:"read_at"`             // Set once when the recipient reads
}

// MessageDetail is a single message with both participant profiles resolved.
type MessageDetail struct {
	ID       uuid.UUID   `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserSummary `json:"from_user"`
	ToUser   UserSummary `json:"to_user"`
}

// OutboxItem is a sent message with the recipient profile resolved.
type OutboxItem struct {
	ID     uuid.UUID   `json:"id"`
	ToUser UserSummary `json:"to_user"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
}

// InboxItem is a received message with the sender profile resolved.
type InboxItem struct {
	ID       uuid.UUID   `json:"id"`
	FromUser UserSummary `json:"from_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}

// ReadReceipt is the result of marking a message read.
type ReadReceipt struct {
	ID     uuid.UUID `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// Event types published to the message events topic.
const (
	EventMessageSent = "message.sent"
	EventMessageRead = "message.read"
)

// MessageEvent is the payload published to Kafka after a successful write.
type MessageEvent struct {
	Type         string    `json:"type"`
	MessageID    uuid.UUID `json:"message_id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	At           time.Time `json:"at"`
}
