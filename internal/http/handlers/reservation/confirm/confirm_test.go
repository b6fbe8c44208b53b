package confirm

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

	"github.com/luxurywheels/rental-service/internal/models"
)

// Мок сервиса с методом Confirm
type RentalServiceMock struct {
	mock.Mock
}

func (m *RentalServiceMock) Confirm(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestConfirmHandler_ServeHTTP(t *testing.T) {
	rentalMock := new(RentalServiceMock)
	logger := newNoopLogger()

	handler := New(logger, rentalMock)

	tests := []struct {
		name           string
		urlID          string
		mockChanged    bool
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantSeverity   string
		wantMessage    string
		wantError      string
	}{
		{
			name:           "pending reservation confirmed",
			urlID:          "11",
			mockChanged:    true,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantSeverity:   "success",
			wantMessage:    "reservation confirmed",
		},
		{
			name:           "already confirmed",
			urlID:          "11",
			mockChanged:    false,
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantSeverity:   "info",
			wantMessage:    "reservation was already confirmed",
		},
		{
			name:           "invalid reservation id",
			urlID:          "abc",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid reservation id",
		},
		{
			name:           "reservation not found",
			urlID:          "99",
			mockErr:        models.ErrNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "reservation not found",
		},
		{
			name:           "storage error",
			urlID:          "11",
			mockErr:        errors.New("storage error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to confirm reservation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rentalMock.ExpectedCalls = nil
			rentalMock.Calls = nil

			if tt.callsService {
				rentalMock.On("Confirm", mock.Anything, mock.Anything).
					Return(tt.mockChanged, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/confirmar_reserva/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
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
				assert.Equal(t, tt.wantSeverity, got["severity"])
				assert.Equal(t, tt.wantMessage, got["message"])
			}

			rentalMock.AssertExpectations(t)
		})
	}
}
