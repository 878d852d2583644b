package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/messagely/messagely/internal/jwt"
	"github.com/messagely/messagely/internal/middlewares"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := &jwt.Claims{
		Username:  "alice",
		TokenID:   "token-id",
		ExpiresAt: expiresAt,
	}

	tests := []struct {
		name          string
		claims        *jwt.Claims
		mockSetup     func(m *MockLogouter)
		expectedCode  int
		expectedError string
	}{
		{
			name:   "success",
			claims: claims,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().
					Logout(gomock.Any(), "token-id", expiresAt).
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "no claims",
			claims:        nil,
			expectedCode:  http.StatusUnauthorized,
			expectedError: "authentication required",
		},
		{
			name:   "internal server error",
			claims: claims,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().
					Logout(gomock.Any(), "token-id", expiresAt).
					Return(errors.New("redis failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLogouter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLogoutHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.claims != nil {
				req = req.WithContext(middlewares.WithClaims(req.Context(), tt.claims))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp LogoutResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "logged out", resp.Message)
		})
	}
}
