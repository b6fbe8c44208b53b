// Package sl содержит мелкие помощники для структурированного логгера slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут slog с ключом "error", чтобы текст
// ошибок во всех обработчиках выводился единообразно.
//
// Пример:
//
//	log.Error("failed to list vehicles", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
