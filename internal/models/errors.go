package models

import "errors"

// Ошибки доменного уровня. Все они терминальны для запроса:
// на границе HTTP переводятся в сообщение пользователю и код ответа.
var (
	// ErrNotFound — бронь или автомобиль не существует либо не принадлежит вызывающему.
	ErrNotFound = errors.New("not found")
	// ErrVehicleNotAvailable — автомобиль отсутствует или уже забронирован.
	ErrVehicleNotAvailable = errors.New("vehicle not available")
	// ErrDuplicateEmail — пользователь с таким email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPaymentMethod — форма оплаты вне допустимого перечня.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
