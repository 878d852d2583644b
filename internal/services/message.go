package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/repositories"
)

// MessageReader defines read operations for messages.
type MessageReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error)   // Joined message detail, nil when absent
	ListFrom(ctx context.Context, username string) ([]models.OutboxItem, error) // Messages sent by a user
	ListTo(ctx context.Context, username string) ([]models.InboxItem, error)    // Messages received by a user
}

// MessageWriter defines write operations for messages.
type MessageWriter interface {
	Save(ctx context.Context, id uuid.UUID, fromUsername, toUsername, body string) (*models.MessageDB, error)
	MarkRead(ctx context.Context, id uuid.UUID) (time.Time, bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// MessageService handles sending, reading and listing messages, and
// publishes notification events to Kafka.
type MessageService struct {
	readRepo  MessageReader
	writeRepo MessageWriter
	users     UserReader
	events    KafkaWriter
}

// NewMessageService creates a new MessageService. A nil events writer
// disables publishing.
func NewMessageService(readRepo MessageReader, writeRepo MessageWriter, users UserReader, events KafkaWriter) *MessageService {
	return &MessageService{
		readRepo:  readRepo,
		writeRepo: writeRepo,
		users:     users,
		events:    events,
	}
}

// publishEvent publishes a message event to Kafka. Best effort: failures
// are logged and never fail the originating request.
func (svc *MessageService) publishEvent(ctx context.Context, event models.MessageEvent) {
	if svc.events == nil {
		logger.Log.Debugw("kafka writer not configured, skipping publishing", "type", event.Type, "message_id", event.MessageID)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal message event", "type", event.Type, "err", err)
		return
	}

	err = svc.events.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.MessageID.String()),
		Value: value,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish message event", "type", event.Type, "message_id", event.MessageID, "err", err)
	}
}

// Send creates a message from one user to another. The recipient is
// pre-checked against the user directory so an unknown recipient surfaces
// as ErrUserNotFound rather than a raw constraint error; the foreign key
// stays as backstop for the race.
func (svc *MessageService) Send(ctx context.Context, fromUsername, toUsername, body string) (*models.MessageDB, error) {
	if toUsername == "" || body == "" {
		return nil, ErrMissingFields
	}

	recipient, err := svc.users.GetByUsername(ctx, toUsername)
	if err != nil {
		logger.Log.Errorw("failed to check recipient", "to", toUsername, "err", err)
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}

	msg, err := svc.writeRepo.Save(ctx, uuid.New(), fromUsername, toUsername, body)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to save message", "from", fromUsername, "to", toUsername, "err", err)
		return nil, err
	}

	svc.publishEvent(ctx, models.MessageEvent{
		Type:         models.EventMessageSent,
		MessageID:    msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		At:           msg.SentAt,
	})

	return msg, nil
}

// Get returns the joined message detail. Only the sender or the recipient
// may read a message.
func (svc *MessageService) Get(ctx context.Context, id uuid.UUID, caller string) (*models.MessageDetail, error) {
	detail, err := svc.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get message", "id", id, "err", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrMessageNotFound
	}

	if caller != detail.FromUser.Username && caller != detail.ToUser.Username {
		return nil, ErrNotParticipant
	}

	return detail, nil
}

// MarkRead marks a message read on behalf of the caller, who must be the
// recipient. The transition is one-way and idempotent: a repeated mark
// returns the original read_at unchanged and publishes nothing.
func (svc *MessageService) MarkRead(ctx context.Context, id uuid.UUID, caller string) (*models.ReadReceipt, error) {
	detail, err := svc.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get message", "id", id, "err", err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrMessageNotFound
	}
	if caller != detail.ToUser.Username {
		return nil, ErrNotRecipient
	}

	readAt, updated, err := svc.writeRepo.MarkRead(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to mark message read", "id", id, "err", err)
		return nil, err
	}

	if !updated {
		// Lost the race or already read: the stored timestamp wins.
		if detail.ReadAt != nil {
			return &models.ReadReceipt{ID: id, ReadAt: *detail.ReadAt}, nil
		}
		refreshed, err := svc.readRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if refreshed == nil || refreshed.ReadAt == nil {
			return nil, ErrMessageNotFound
		}
		return &models.ReadReceipt{ID: id, ReadAt: *refreshed.ReadAt}, nil
	}

	svc.publishEvent(ctx, models.MessageEvent{
		Type:         models.EventMessageRead,
		MessageID:    id,
		FromUsername: detail.FromUser.Username,
		ToUsername:   detail.ToUser.Username,
		At:           readAt,
	})

	return &models.ReadReceipt{ID: id, ReadAt: readAt}, nil
}

// MessagesFrom returns every message sent by the user, with recipient
// profiles resolved.
func (svc *MessageService) MessagesFrom(ctx context.Context, username string) ([]models.OutboxItem, error) {
	return svc.readRepo.ListFrom(ctx, username)
}

// MessagesTo returns every message received by the user, with sender
// profiles resolved.
func (svc *MessageService) MessagesTo(ctx context.Context, username string) ([]models.InboxItem, error) {
	return svc.readRepo.ListTo(ctx, username)
}
