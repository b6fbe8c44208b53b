package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	libjwt "github.com/luxurywheels/rental-service/internal/lib/jwt"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, rawPassword string) (int, error) {
	args := m.Called(ctx, name, email, rawPassword)
	return args.Int(0), args.Error(1)
}

type TokenParserMock struct{ mock.Mock }

func (m *TokenParserMock) ParseToken(tokenStr string) (*libjwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*libjwt.CustomClaims), args.Error(1)
}

type SessionCheckerMock struct{ mock.Mock }

func (m *SessionCheckerMock) SessionAlive(ctx context.Context, userID int, sessionID string) (bool, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock, new(TokenParserMock), new(SessionCheckerMock))

	tests := []struct {
		name           string
		requestBody    interface{}
		mockID         int
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Name:            "Maria",
				Email:           "maria@example.com",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			mockID:         7,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "passwords do not match",
			requestBody: Request{
				Name:            "Maria",
				Email:           "maria@example.com",
				Password:        "password123",
				ConfirmPassword: "password456",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field ConfirmPassword must match Password",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing email",
			requestBody: Request{
				Name:            "Maria",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Email is a required field",
			wantStatus:     "Error",
		},
		{
			name: "duplicate email",
			requestBody: Request{
				Name:            "Maria",
				Email:           "maria@example.com",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			mockErr:        models.ErrDuplicateEmail,
			callsService:   true,
			wantStatusCode: http.StatusConflict,
			wantError:      "email already registered, try another one",
			wantStatus:     "Error",
		},
		{
			name: "storage error",
			requestBody: Request{
				Name:            "Maria",
				Email:           "maria@example.com",
				Password:        "password123",
				ConfirmPassword: "password123",
			},
			mockErr:        errors.New("storage error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.callsService {
				authMock.On("Register", mock.Anything,
					mock.Anything,
					mock.Anything,
					mock.Anything,
				).Return(tt.mockID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(tt.mockID), data["id"])
			}

			authMock.AssertExpectations(t)
		})
	}
}

func TestRegisterHandler_AuthenticatedCaller(t *testing.T) {
	claims := &libjwt.CustomClaims{
		UserID:    5,
		Name:      "Maria",
		Email:     "maria@example.com",
		SessionID: "session-abc",
	}
	body, err := json.Marshal(Request{
		Name:            "Maria",
		Email:           "maria@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)

	t.Run("live session gets informational answer", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		parser := new(TokenParserMock)
		sessions := new(SessionCheckerMock)
		handler := New(newNoopLogger(), authMock, parser, sessions)

		parser.On("ParseToken", "sometoken").Return(claims, nil).Once()
		sessions.On("SessionAlive", mock.Anything, 5, "session-abc").Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer sometoken")
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got["status"])
		assert.Equal(t, "info", got["severity"])
		assert.Equal(t, "already signed in", got["message"])

		assert.Empty(t, authMock.Calls)
		parser.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("terminated session registers as usual", func(t *testing.T) {
		authMock := new(AuthServiceMock)
		parser := new(TokenParserMock)
		sessions := new(SessionCheckerMock)
		handler := New(newNoopLogger(), authMock, parser, sessions)

		parser.On("ParseToken", "sometoken").Return(claims, nil).Once()
		sessions.On("SessionAlive", mock.Anything, 5, "session-abc").Return(false, nil).Once()
		authMock.On("Register", mock.Anything, "Maria", "maria@example.com", "password123").
			Return(7, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer sometoken")
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "success", got["severity"])

		authMock.AssertExpectations(t)
	})
}
