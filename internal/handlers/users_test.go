package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/services"
)

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	summaries := []models.UserSummary{
		{Username: "alice", FirstName: "Alice", LastName: "Anderson", Phone: "+15551234567"},
		{Username: "bob", FirstName: "Bob", LastName: "Brown", Phone: "+15557654321"},
	}

	tests := []struct {
		name          string
		mockSetup     func(m *MockUsersLister)
		expectedCode  int
		expectedUsers []models.UserSummary
		expectedError string
	}{
		{
			name: "success",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().List(gomock.Any()).Return(summaries, nil)
			},
			expectedCode:  http.StatusOK,
			expectedUsers: summaries,
		},
		{
			name: "empty listing",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			expectedCode:  http.StatusOK,
			expectedUsers: []models.UserSummary{},
		},
		{
			name: "internal server error",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().List(gomock.Any()).Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUsersLister(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewListUsersHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp UsersResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedUsers, resp.Users)
		})
	}
}

func TestAdminListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	joinAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lastLogin := joinAt.Add(24 * time.Hour)
	profiles := []models.UserProfile{
		{Username: "alice", FirstName: "Alice", LastName: "Anderson", Phone: "+15551234567", JoinAt: joinAt, LastLoginAt: &lastLogin},
		{Username: "bob", FirstName: "Bob", LastName: "Brown", Phone: "+15557654321", JoinAt: joinAt},
	}

	tests := []struct {
		name          string
		mockSetup     func(m *MockUsersLister)
		expectedCode  int
		expectedUsers []models.UserProfile
		expectedError string
	}{
		{
			name: "success",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().ListFull(gomock.Any()).Return(profiles, nil)
			},
			expectedCode:  http.StatusOK,
			expectedUsers: profiles,
		},
		{
			name: "empty listing",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().ListFull(gomock.Any()).Return(nil, nil)
			},
			expectedCode:  http.StatusOK,
			expectedUsers: []models.UserProfile{},
		},
		{
			name: "internal server error",
			mockSetup: func(m *MockUsersLister) {
				m.EXPECT().ListFull(gomock.Any()).Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUsersLister(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewAdminListUsersHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp AdminUsersResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedUsers, resp.Users)
		})
	}
}

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	joinAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	profile := models.UserProfile{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Anderson",
		Phone:     "+15551234567",
		JoinAt:    joinAt,
	}

	tests := []struct {
		name          string
		username      string
		mockSetup     func(m *MockUserGetter)
		expectedCode  int
		expectedError string
	}{
		{
			name:     "success",
			username: "alice",
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().Get(gomock.Any(), "alice").Return(&profile, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:     "user not found",
			username: "ghost",
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().Get(gomock.Any(), "ghost").Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "user not found",
		},
		{
			name:     "internal server error",
			username: "alice",
			mockSetup: func(m *MockUserGetter) {
				m.EXPECT().Get(gomock.Any(), "alice").Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockUserGetter(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewGetUserHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.username, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("username", tt.username)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp UserResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, profile, resp.User)
		})
	}
}
