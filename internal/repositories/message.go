package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
)

// messageDetailRow is the flat scan target for the participant join.
type messageDetailRow struct {
	ID            uuid.UUID  `db:"id"`
	Body          string     `db:"body"`
	SentAt        time.Time  `db:"sent_at"`
	ReadAt        *time.Time `db:"read_at"`
	FromUsername  string     `db:"from_username"`
	FromFirstName string     `db:"from_first_name"`
	FromLastName  string     `db:"from_last_name"`
	FromPhone     string     `db:"from_phone"`
	ToUsername    string     `db:"to_username"`
	ToFirstName   string     `db:"to_first_name"`
	ToLastName    string     `db:"to_last_name"`
	ToPhone       string     `db:"to_phone"`
}

func (row *messageDetailRow) toDetail() *models.MessageDetail {
	return &models.MessageDetail{
		ID:     row.ID,
		Body:   row.Body,
		SentAt: row.SentAt,
		ReadAt: row.ReadAt,
		FromUser: models.UserSummary{
			Username:  row.FromUsername,
			FirstName: row.FromFirstName,
			LastName:  row.FromLastName,
			Phone:     row.FromPhone,
		},
		ToUser: models.UserSummary{
			Username:  row.ToUsername,
			FirstName: row.ToFirstName,
			LastName:  row.ToLastName,
			Phone:     row.ToPhone,
		},
	}
}

// counterpartyRow is the flat scan target for outbox/inbox joins.
type counterpartyRow struct {
	ID        uuid.UUID  `db:"id"`
	Body      string     `db:"body"`
	SentAt    time.Time  `db:"sent_at"`
	ReadAt    *time.Time `db:"read_at"`
	Username  string     `db:"username"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Phone     string     `db:"phone"`
}

func (row *counterpartyRow) summary() models.UserSummary {
	return models.UserSummary{
		Username:  row.Username,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Phone:     row.Phone,
	}
}

// MessageReadRepository handles message read operations.
type MessageReadRepository struct {
	db *sqlx.DB
}

func NewMessageReadRepository(db *sqlx.DB) *MessageReadRepository {
	return &MessageReadRepository{db: db}
}

// GetByID returns the message with both participant profiles resolved, or
// (nil, nil) when absent.
func (r *MessageReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MessageDetail, error) {
	const query = `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       f.username AS from_username, f.first_name AS from_first_name,
		       f.last_name AS from_last_name, f.phone AS from_phone,
		       t.username AS to_username, t.first_name AS to_first_name,
		       t.last_name AS to_last_name, t.phone AS to_phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		JOIN users AS t ON m.to_username = t.username
		WHERE m.id = $1
	`

	var row messageDetailRow
	err := r.db.GetContext(ctx, &row, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toDetail(), nil
}

// ListFrom returns every message sent by the user, joined against the
// recipient profile, in insertion order.
func (r *MessageReadRepository) ListFrom(ctx context.Context, username string) ([]models.OutboxItem, error) {
	const query = `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.to_username = u.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at
	`

	var rows []counterpartyRow
	err := r.db.SelectContext(ctx, &rows, query, username)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	items := make([]models.OutboxItem, 0, len(rows))
	for i := range rows {
		items = append(items, models.OutboxItem{
			ID:     rows[i].ID,
			ToUser: rows[i].summary(),
			Body:   rows[i].Body,
			SentAt: rows[i].SentAt,
			ReadAt: rows[i].ReadAt,
		})
	}

	return items, nil
}

// ListTo returns every message received by the user, joined against the
// sender profile, in insertion order.
func (r *MessageReadRepository) ListTo(ctx context.Context, username string) ([]models.InboxItem, error) {
	const query = `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.from_username = u.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at
	`

	var rows []counterpartyRow
	err := r.db.SelectContext(ctx, &rows, query, username)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	items := make([]models.InboxItem, 0, len(rows))
	for i := range rows {
		items = append(items, models.InboxItem{
			ID:       rows[i].ID,
			FromUser: rows[i].summary(),
			Body:     rows[i].Body,
			SentAt:   rows[i].SentAt,
			ReadAt:   rows[i].ReadAt,
		})
	}

	return items, nil
}

// MessageWriteRepository handles message write operations.
type MessageWriteRepository struct {
	db *sqlx.DB
}

func NewMessageWriteRepository(db *sqlx.DB) *MessageWriteRepository {
	return &MessageWriteRepository{db: db}
}

// Save inserts a new message and returns the stored row. A missing
// participant surfaces as ErrForeignKeyViolation.
func (r *MessageWriteRepository) Save(ctx context.Context, id uuid.UUID, fromUsername, toUsername, body string) (*models.MessageDB, error) {
	const query = `
		INSERT INTO messages (id, from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, from_username, to_username, body, sent_at, read_at
	`
	args := []any{id, fromUsername, toUsername, body}

	var msg models.MessageDB
	err := r.db.GetContext(ctx, &msg, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, translateConstraint(err)
	}

	return &msg, nil
}

// MarkRead sets read_at on an unread message. The WHERE clause makes the
// transition one-way: an already-read message is left untouched and
// (time.Time{}, false, nil) is returned. sql.ErrNoRows is folded into that
// same result, so callers must distinguish "absent" from "already read"
// themselves.
func (r *MessageWriteRepository) MarkRead(ctx context.Context, id uuid.UUID) (time.Time, bool, error) {
	const query = `
		UPDATE messages
		SET read_at = NOW()
		WHERE id = $1 AND read_at IS NULL
		RETURNING read_at
	`

	var readAt time.Time
	err := r.db.GetContext(ctx, &readAt, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	return readAt, true, nil
}
