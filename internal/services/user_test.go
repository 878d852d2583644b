package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/services"
)

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockLister := services.NewMockUserLister(ctrl)
	mockToucher := services.NewMockLoginToucher(ctrl)

	svc := services.NewUserService(mockReader, mockLister, mockToucher)

	summaries := []models.UserSummary{
		{Username: "alice", FirstName: "Alice", LastName: "Anderson", Phone: "+15551234567"},
		{Username: "bob", FirstName: "Bob", LastName: "Brown", Phone: "+15557654321"},
	}
	mockLister.EXPECT().List(gomock.Any()).Return(summaries, nil)

	got, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, summaries, got)
}

func TestUserService_ListFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockLister := services.NewMockUserLister(ctrl)
	mockToucher := services.NewMockLoginToucher(ctrl)

	svc := services.NewUserService(mockReader, mockLister, mockToucher)

	joinAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lastLogin := joinAt.Add(48 * time.Hour)

	mockLister.EXPECT().ListFull(gomock.Any()).Return([]models.UserDB{
		{Username: "alice", Password: "hash", FirstName: "Alice", LastName: "Anderson", Phone: "+15551234567", JoinAt: joinAt, LastLoginAt: &lastLogin},
	}, nil)

	got, err := svc.ListFull(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, joinAt, got[0].JoinAt)
	assert.Equal(t, &lastLogin, got[0].LastLoginAt)
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	joinAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		username  string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name:     "found",
			username: "alice",
			user:     &models.UserDB{Username: "alice", Password: "hash", FirstName: "Alice", LastName: "Anderson", Phone: "+15551234567", JoinAt: joinAt},
		},
		{
			name:     "not found",
			username: "ghost",
			wantErr:  services.ErrUserNotFound,
		},
		{
			name:      "reader error",
			username:  "alice",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockLister := services.NewMockUserLister(ctrl)
			mockToucher := services.NewMockLoginToucher(ctrl)

			svc := services.NewUserService(mockReader, mockLister, mockToucher)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.user, tt.readerErr)

			profile, err := svc.Get(context.Background(), tt.username)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user.Username, profile.Username)
				assert.Equal(t, tt.user.JoinAt, profile.JoinAt)
			}
		})
	}
}

func TestUserService_UpdateLoginTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		username   string
		toucherErr error
		wantErr    error
	}{
		{name: "known user", username: "alice"},
		{name: "unknown user", username: "ghost", toucherErr: sql.ErrNoRows, wantErr: services.ErrUserNotFound},
		{name: "storage failure", username: "alice", toucherErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockLister := services.NewMockUserLister(ctrl)
			mockToucher := services.NewMockLoginToucher(ctrl)

			svc := services.NewUserService(mockReader, mockLister, mockToucher)

			mockToucher.EXPECT().
				TouchLogin(gomock.Any(), tt.username).
				Return(time.Time{}, tt.toucherErr)

			err := svc.UpdateLoginTimestamp(context.Background(), tt.username)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
