// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luxurywheels/rental-service/internal/lib/jwt"
	"github.com/luxurywheels/rental-service/internal/lib/password"
	"github.com/luxurywheels/rental-service/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или models.ErrNotFound.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// SessionStore описывает хранилище активных сессий.
// Токен без живой сессии считается отозванным — так работает Logout.
type SessionStore interface {
	Set(key string, value any, expiration time.Duration) error
	Exists(key string) (bool, error)
	Invalidate(key string) error
}

// AuthService отвечает за регистрацию, вход, выход и восстановление сессии.
type AuthService struct {
	users      UserRepository
	sessions   SessionStore
	jwtMaker   jwt.Maker
	sessionTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, jwtMaker jwt.Maker, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtMaker:   jwtMaker,
		sessionTTL: sessionTTL,
	}
}

// sessionKey строит ключ сессии в redis.
func sessionKey(userID int, sessionID string) string {
	return fmt.Sprintf("session:%d:%s", userID, sessionID)
}

// Register создает нового пользователя с хэшированием пароля.
// Возвращает models.ErrDuplicateEmail, если email уже зарегистрирован.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (int, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return 0, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrNotFound) {
		return 0, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, регистрирует сессию и выдаёт JWT.
// Неизвестный email и неверный пароль неразличимы: оба дают
// models.ErrInvalidCredentials, сессия не создаётся.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", models.ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	if err := s.sessions.Set(sessionKey(user.ID, sessionID), true, s.sessionTTL); err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(user.ID, user.Name, user.Email, sessionID)
}

// Logout безусловно завершает сессию аутентифицированного пользователя.
func (s *AuthService) Logout(_ context.Context, userID int, sessionID string) error {
	return s.sessions.Invalidate(sessionKey(userID, sessionID))
}

// SessionAlive сообщает, жива ли сессия из токена.
func (s *AuthService) SessionAlive(_ context.Context, userID int, sessionID string) (bool, error) {
	return s.sessions.Exists(sessionKey(userID, sessionID))
}

// RestoreSession восстанавливает облегчённую идентичность пользователя
// на каждый запрос. Если пользователя больше нет — models.ErrNotFound.
func (s *AuthService) RestoreSession(ctx context.Context, userID int) (*models.SessionUser, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}
