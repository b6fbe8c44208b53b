package create

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luxurywheels/rental-service/internal/http/middlewarectx"
	"github.com/luxurywheels/rental-service/internal/lib/daterange"
	"github.com/luxurywheels/rental-service/internal/models"
)

// Мок сервиса с методом Create
type RentalServiceMock struct {
	mock.Mock
}

func (m *RentalServiceMock) Create(ctx context.Context, userID, vehicleID int, req models.DummyReservation) (int, error) {
	args := m.Called(ctx, userID, vehicleID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	rentalMock := new(RentalServiceMock)
	logger := newNoopLogger()

	handler := New(logger, rentalMock)

	validBody := models.DummyReservation{
		StartDate:     "2026-09-10",
		EndDate:       "2026-09-13",
		PaymentMethod: "card",
	}

	tests := []struct {
		name           string
		urlID          string
		withUser       bool
		requestBody    interface{}
		mockID         int
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "valid reservation",
			urlID:          "3",
			withUser:       true,
			requestBody:    validBody,
			mockID:         11,
			callsService:   true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing user in context",
			urlID:          "3",
			withUser:       false,
			requestBody:    validBody,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:           "invalid vehicle id",
			urlID:          "abc",
			withUser:       true,
			requestBody:    validBody,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid vehicle id",
		},
		{
			name:           "invalid json body",
			urlID:          "3",
			withUser:       true,
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:     "validation error - missing dates",
			urlID:    "3",
			withUser: true,
			requestBody: models.DummyReservation{
				PaymentMethod: "card",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field StartDate is a required field, field EndDate is a required field",
		},
		{
			name:           "vehicle not found",
			urlID:          "99",
			withUser:       true,
			requestBody:    validBody,
			mockErr:        models.ErrNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "vehicle not found",
		},
		{
			name:           "vehicle already reserved",
			urlID:          "3",
			withUser:       true,
			requestBody:    validBody,
			mockErr:        models.ErrVehicleNotAvailable,
			callsService:   true,
			wantStatusCode: http.StatusConflict,
			wantError:      "vehicle is not available",
		},
		{
			name:     "unknown payment method",
			urlID:    "3",
			withUser: true,
			requestBody: models.DummyReservation{
				StartDate:     "2026-09-10",
				EndDate:       "2026-09-13",
				PaymentMethod: "cash",
			},
			mockErr:        models.ErrInvalidPaymentMethod,
			callsService:   true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "unknown payment method",
		},
		{
			name:     "bad date format",
			urlID:    "3",
			withUser: true,
			requestBody: models.DummyReservation{
				StartDate:     "10/09/2026",
				EndDate:       "13/09/2026",
				PaymentMethod: "card",
			},
			mockErr:        daterange.ErrFormat,
			callsService:   true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "dates must use the YYYY-MM-DD format",
		},
		{
			name:     "end before start",
			urlID:    "3",
			withUser: true,
			requestBody: models.DummyReservation{
				StartDate:     "2026-09-13",
				EndDate:       "2026-09-10",
				PaymentMethod: "card",
			},
			mockErr:        daterange.ErrRange,
			callsService:   true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "end date must be after start date",
		},
		{
			name:           "storage error",
			urlID:          "3",
			withUser:       true,
			requestBody:    validBody,
			mockErr:        errors.New("storage error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to create reservation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rentalMock.ExpectedCalls = nil
			rentalMock.Calls = nil

			if tt.callsService {
				rentalMock.On("Create", mock.Anything,
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

			req := httptest.NewRequest(http.MethodPost, "/reservar/"+tt.urlID, bytes.NewReader(bodyBytes))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("vehicleId", tt.urlID)
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
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				assert.Equal(t, "success", got["severity"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(tt.mockID), data["id"])
			}

			rentalMock.AssertExpectations(t)
		})
	}
}
