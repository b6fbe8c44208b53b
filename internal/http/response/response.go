// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Мутационные операции
// сопровождаются сообщением пользователю с уровнем важности
// (success | danger | info) — аналог одноразовых статусных сообщений
// интерфейса после редиректа.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Severity — уровень сообщения пользователю (success | danger | info).
// Поле Message — одноразовое сообщение пользователю (опционально).
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status   string `json:"status"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status   string `json:"status" example:"Error"`
	Severity string `json:"severity" example:"danger"`
	Error    string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Уровни сообщений пользователю.
const (
	SeveritySuccess = "success"
	SeverityDanger  = "danger"
	SeverityInfo    = "info"
)

// OK возвращает успешный Response с сообщением пользователю.
func OK(msg string) Response {
	return Response{
		Status:   StatusOK,
		Severity: SeveritySuccess,
		Message:  msg,
	}
}

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// OKWithData возвращает успешный Response с сообщением и данными.
func OKWithData(msg string, data any) Response {
	return Response{
		Status:   StatusOK,
		Severity: SeveritySuccess,
		Message:  msg,
		Data:     data,
	}
}

// Info возвращает успешный Response с информационным сообщением —
// для no-op исходов вроде повторного подтверждения брони.
func Info(msg string) Response {
	return Response{
		Status:   StatusOK,
		Severity: SeverityInfo,
		Message:  msg,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:   StatusError,
		Severity: SeverityDanger,
		Error:    msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "eqfield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must match %s", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status:   StatusError,
		Severity: SeverityDanger,
		Error:    strings.Join(errsMsgs, ", "),
	}
}
