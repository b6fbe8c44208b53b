package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
	"github.com/luxurywheels/rental-service/internal/models"
)

// SessionRestorer восстанавливает идентичность пользователя по его ID.
type SessionRestorer interface {
	RestoreSession(ctx context.Context, userID int) (*models.SessionUser, error)
}

// SessionLoaderMiddleware восстанавливает облегчённую идентичность
// пользователя на каждый запрос и кладёт её в контекст под ключом User.
// Если пользователя больше не существует, запрос отклоняется с 401.
func SessionLoaderMiddleware(auth SessionRestorer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionLoaderMiddleware"

			userID, ok := r.Context().Value(UserID).(int)
			if !ok {
				log.Error("user identification missing", slog.String("op", op))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := auth.RestoreSession(r.Context(), userID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					log.Error("user no longer exists", slog.String("op", op), slog.Int("user_id", userID))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("unknown user"))
					return
				}
				log.Error("failed to restore session", slog.String("op", op), sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
