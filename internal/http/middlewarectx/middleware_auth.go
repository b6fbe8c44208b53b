// Package middlewarectx содержит HTTP middleware аутентификации.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке
// Authorization и живость сессии из токена: выход из аккаунта удаляет
// сессию, после чего токен перестаёт приниматься.
//
// SessionLoaderMiddleware восстанавливает облегчённую идентичность
// пользователя на каждый запрос и кладёт её в контекст.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/luxurywheels/rental-service/internal/http/response"
	"github.com/luxurywheels/rental-service/internal/lib/jwt"
	"github.com/luxurywheels/rental-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// SessionID — ключ для идентификатора сессии в контексте
	SessionID Key = "session_id"
	// User — ключ для восстановленной идентичности пользователя в контексте
	User Key = "user"
)

// TokenParser описывает парсинг и проверку JWT токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// SessionChecker проверяет, что сессия из токена всё ещё жива.
type SessionChecker interface {
	SessionAlive(ctx context.Context, userID int, sessionID string) (bool, error)
}

// Authenticated сообщает, несёт ли запрос валидный Bearer-токен с живой
// сессией. Для открытых конечных точек, меняющих поведение при
// аутентифицированном вызове. Любая ошибка трактуется как "не аутентифицирован".
func Authenticated(r *http.Request, parser TokenParser, sessions SessionChecker) bool {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return false
	}
	alive, err := sessions.SessionAlive(r.Context(), claims.UserID, claims.SessionID)
	return err == nil && alive
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization и живость сессии.
//
// Если токен валиден и сессия жива, кладёт идентификаторы пользователя
// и сессии в контекст запроса, иначе возвращает 401 Unauthorized.
func JWTMiddleware(parser TokenParser, sessions SessionChecker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			alive, err := sessions.SessionAlive(r.Context(), claims.UserID, claims.SessionID)
			if err != nil {
				log.Error("failed to check session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !alive {
				log.Error("session terminated")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session terminated, please login again"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, SessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
