package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
)

// UserLister defines listing operations for users.
type UserLister interface {
	List(ctx context.Context) ([]models.UserSummary, error)
	ListFull(ctx context.Context) ([]models.UserDB, error)
}

// LoginToucher updates the last-login timestamp for a user.
type LoginToucher interface {
	TouchLogin(ctx context.Context, username string) (time.Time, error)
}

// UserService exposes the user directory.
type UserService struct {
	reader  UserReader
	lister  UserLister
	toucher LoginToucher
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, lister UserLister, toucher LoginToucher) *UserService {
	return &UserService{
		reader:  reader,
		lister:  lister,
		toucher: toucher,
	}
}

// List returns public profile summaries for every user.
func (svc *UserService) List(ctx context.Context) ([]models.UserSummary, error) {
	return svc.lister.List(ctx)
}

// ListFull returns full profiles for every user. Intended for the admin
// surface only.
func (svc *UserService) ListFull(ctx context.Context) ([]models.UserProfile, error) {
	users, err := svc.lister.ListFull(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// Get returns the full profile for a username.
func (svc *UserService) Get(ctx context.Context, username string) (*models.UserProfile, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := user.Profile()
	return &profile, nil
}

// UpdateLoginTimestamp sets last_login_at for the user to the current time.
func (svc *UserService) UpdateLoginTimestamp(ctx context.Context, username string) error {
	_, err := svc.toucher.TouchLogin(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}
