package cancel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Мок сервиса с методом Cancel
type RentalServiceMock struct {
	mock.Mock
}

func (m *RentalServiceMock) Cancel(ctx context.Context, userID, id int) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCancelHandler_ServeHTTP(t *testing.T) {
	rentalMock := new(RentalServiceMock)
	logger := newNoopLogger()

	handler := New(logger, rentalMock)

	tests := []struct {
		name           string
		urlID          string
		withUser       bool
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid cancel",
			urlID:          "11",
			withUser:       true,
			callsService:   true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing user in context",
			urlID:          "11",
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "invalid reservation id",
			urlID:          "abc",
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid reservation id",
		},
		{
			name:           "reservation of another user",
			urlID:          "11",
			withUser:       true,
			mockErr:        models.ErrNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "reservation not found",
		},
		{
			name:           "storage error",
			urlID:          "11",
			withUser:       true,
			mockErr:        errors.New("storage error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to cancel reservation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rentalMock.ExpectedCalls = nil
			rentalMock.Calls = nil

			if tt.callsService {
				rentalMock.On("Cancel", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/cancelar_reserva/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserID, 5)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				assert.Equal(t, "success", got["severity"])
			}

			rentalMock.AssertExpectations(t)
		})
	}
}
