package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/repositories"
	"github.com/messagely/messagely/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	joinAt := time.Now()

	tests := []struct {
		name      string
		username  string
		password  string
		firstName string
		lastName  string
		phone     string
		saveErr   error
		wantErr   error
	}{
		{
			name:      "successful registration",
			username:  "alice",
			password:  "secret123",
			firstName: "Alice",
			lastName:  "Anderson",
			phone:     "+15551234567",
		},
		{
			name:      "missing username",
			username:  "",
			password:  "secret123",
			firstName: "Alice",
			lastName:  "Anderson",
			phone:     "+15551234567",
			wantErr:   services.ErrMissingFields,
		},
		{
			name:      "missing phone",
			username:  "alice",
			password:  "secret123",
			firstName: "Alice",
			lastName:  "Anderson",
			phone:     "",
			wantErr:   services.ErrMissingFields,
		},
		{
			name:      "username taken",
			username:  "bob",
			password:  "secret123",
			firstName: "Bob",
			lastName:  "Brown",
			phone:     "+15557654321",
			saveErr:   repositories.ErrUniqueViolation,
			wantErr:   services.ErrUserAlreadyExists,
		},
		{
			name:      "storage failure",
			username:  "carol",
			password:  "secret123",
			firstName: "Carol",
			lastName:  "Clark",
			phone:     "+15550001111",
			saveErr:   errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			mockRevoker := services.NewMockTokenRevoker(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockRevoker, bcrypt.MinCost)

			if tt.wantErr == nil || tt.saveErr != nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.username, gomock.Not(tt.password), tt.firstName, tt.lastName, tt.phone).
					DoAndReturn(func(_ context.Context, username, hashed, firstName, lastName, phone string) (*models.UserDB, error) {
						if tt.saveErr != nil {
							return nil, tt.saveErr
						}
						// Stored hash must verify against the plaintext and never equal it.
						assert.NotEqual(t, tt.password, hashed)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte(tt.password)))
						return &models.UserDB{
							Username:  username,
							Password:  hashed,
							FirstName: firstName,
							LastName:  lastName,
							Phone:     phone,
							JoinAt:    joinAt,
						}, nil
					})
			}
			if tt.wantErr == nil {
				mockWriter.EXPECT().
					TouchLogin(gomock.Any(), tt.username).
					Return(time.Now(), nil)
				mockTokens.EXPECT().
					Generate(gomock.Any(), tt.username, false).
					Return("token", nil)
			}

			profile, token, err := svc.Register(context.Background(), tt.username, tt.password, tt.firstName, tt.lastName, tt.phone)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, profile)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "token", token)
				assert.Equal(t, tt.username, profile.Username)
				assert.Equal(t, tt.firstName, profile.FirstName)
				assert.NotNil(t, profile.LastLoginAt)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	alice := &models.UserDB{Username: "alice", Password: string(hash)}

	tests := []struct {
		name      string
		username  string
		password  string
		user      *models.UserDB
		readerErr error
		wantToken string
		wantErr   error
	}{
		{
			name:      "correct password",
			username:  "alice",
			password:  "correct-password",
			user:      alice,
			wantToken: "token",
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong-password",
			user:     alice,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "mallory",
			password: "anything",
			user:     nil,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "missing fields",
			username: "",
			password: "anything",
			wantErr:  services.ErrMissingFields,
		},
		{
			name:      "reader error",
			username:  "alice",
			password:  "correct-password",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			mockRevoker := services.NewMockTokenRevoker(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockRevoker, bcrypt.MinCost)

			if !errors.Is(tt.wantErr, services.ErrMissingFields) {
				mockReader.EXPECT().
					GetByUsername(gomock.Any(), tt.username).
					Return(tt.user, tt.readerErr)
			}
			if tt.wantErr == nil {
				mockWriter.EXPECT().
					TouchLogin(gomock.Any(), tt.username).
					Return(time.Now(), nil)
				mockTokens.EXPECT().
					Generate(gomock.Any(), tt.username, false).
					Return("token", nil)
			}

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockRevoker := services.NewMockTokenRevoker(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockRevoker, bcrypt.MinCost)

	expiresAt := time.Now().Add(time.Hour)
	mockRevoker.EXPECT().
		Revoke(gomock.Any(), "token-id", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
			assert.Greater(t, ttl, 59*time.Minute)
			return nil
		})

	err := svc.Logout(context.Background(), "token-id", expiresAt)
	assert.NoError(t, err)
}
