package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
)

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsername returns the full user row, or (nil, nil) when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT username, password, first_name, last_name, phone, is_admin, join_at, last_login_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns public profile summaries for every user, in storage order.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserSummary, error) {
	const query = `
		SELECT username, first_name, last_name, phone
		FROM users
	`

	var users []models.UserSummary
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListFull returns every user row, including timestamps left out of List.
func (r *UserReadRepository) ListFull(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT username, password, first_name, last_name, phone, is_admin, join_at, last_login_at
		FROM users
	`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored row. A duplicate username
// surfaces as ErrUniqueViolation.
func (r *UserWriteRepository) Save(ctx context.Context, username, hashedPassword, firstName, lastName, phone string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, password, first_name, last_name, phone, join_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING username, password, first_name, last_name, phone, is_admin, join_at, last_login_at
	`
	args := []any{username, hashedPassword, firstName, lastName, phone}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, firstName, lastName, phone},
		"error", err,
	)

	if err != nil {
		return nil, translateConstraint(err)
	}

	return &user, nil
}

// TouchLogin sets last_login_at to the current time and returns the new
// value. Returns sql.ErrNoRows when the username does not exist.
func (r *UserWriteRepository) TouchLogin(ctx context.Context, username string) (time.Time, error) {
	const query = `
		UPDATE users
		SET last_login_at = NOW()
		WHERE username = $1
		RETURNING last_login_at
	`

	var lastLogin time.Time
	err := r.db.GetContext(ctx, &lastLogin, query, username)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if err != nil {
		return time.Time{}, err
	}

	return lastLogin, nil
}
