// Package models содержит доменные структуры проката автомобилей:
// пользователей, автомобили и брони, а также вспомогательные типы
// для приёма данных из внешних источников (например, JSON-запросов).
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// SessionUser — облегчённая идентичность пользователя, восстанавливаемая
// на каждый запрос по идентификатору из токена. Хэш пароля наружу не выносится.
type SessionUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
