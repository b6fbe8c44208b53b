package models

import "time"

// Статусы брони. Отмена статусом не является — отменённая бронь удаляется.
const (
	// StatusPending — бронь только что создана.
	StatusPending = "pending"
	// StatusConfirmed — бронь подтверждена явным действием, обратного перехода нет.
	StatusConfirmed = "confirmed"
)

// Допустимые формы оплаты. Форма оплаты — текстовая метка,
// интеграции с платёжным шлюзом нет.
const (
	PaymentMethodCard          = "card"
	PaymentMethodDigitalWallet = "digital_wallet"
)

// ValidPaymentMethod сообщает, входит ли метка в перечень допустимых форм оплаты.
func ValidPaymentMethod(method string) bool {
	return method == PaymentMethodCard || method == PaymentMethodDigitalWallet
}

// Reservation представляет бронь автомобиля пользователем.
// Инварианты: StartDate строго раньше EndDate;
// TotalPrice = (EndDate − StartDate в целых сутках) × Vehicle.DailyRate,
// пересчитывается при каждом изменении дат.
type Reservation struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`        // Владелец брони
	VehicleID     int       `json:"vehicle_id"`     // Забронированный автомобиль
	StartDate     time.Time `json:"start_date"`     // Дата начала аренды
	EndDate       time.Time `json:"end_date"`       // Дата окончания аренды
	TotalPrice    float64   `json:"total_price"`    // Итоговая стоимость
	PaymentMethod string    `json:"payment_method"` // Форма оплаты
	Status        string    `json:"status"`         // pending или confirmed
	CreatedAt     time.Time `json:"created_at"`
}

// ReservationWithVehicle — бронь вместе с маркой и моделью автомобиля,
// как её видит пользователь в списке своих броней.
type ReservationWithVehicle struct {
	Reservation
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// DummyReservation используется для приёма данных брони из JSON-запроса.
// Даты приходят строками в формате 2006-01-02, чтобы их можно было
// валидировать и парсить один раз на границе.
type DummyReservation struct {
	StartDate     string `json:"start_date" validate:"required"`     // Дата начала в формате 2006-01-02
	EndDate       string `json:"end_date" validate:"required"`       // Дата окончания в формате 2006-01-02
	PaymentMethod string `json:"payment_method" validate:"required"` // card или digital_wallet
}
