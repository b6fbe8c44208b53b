package models

// Vehicle представляет автомобиль автопарка.
// Флаг Available — единственное изменяемое поле, связанное с бронями:
// сбрасывается при создании брони и восстанавливается при её отмене.
type Vehicle struct {
	ID           int     `json:"id"`
	Brand        string  `json:"brand"`         // Марка
	Model        string  `json:"model"`         // Модель
	Category     string  `json:"category"`      // Категория (эконом, люкс и т.д.)
	Transmission string  `json:"transmission"`  // Коробка передач
	Type         string  `json:"type"`          // Тип кузова
	DailyRate    float64 `json:"daily_rate"`    // Стоимость аренды за сутки
	Capacity     int     `json:"capacity"`      // Количество мест
	Available    bool    `json:"available"`     // Доступен ли для брони
}

// VehicleFilter — параметры фильтрации каталога, передаваемые в слой
// доступа к данным. Незаполненные поля (nil) не накладывают ограничений.
type VehicleFilter struct {
	Category     *string  // Точное совпадение категории
	Transmission *string  // Точное совпадение коробки передач
	Type         *string  // Точное совпадение типа кузова
	MaxDailyRate *float64 // Верхняя граница стоимости за сутки (включительно)
	MinCapacity  *int     // Нижняя граница количества мест (включительно)
}

// DummyVehicleFilter используется для приёма фильтра из JSON-запроса
// или query-параметров до преобразования в VehicleFilter.
type DummyVehicleFilter struct {
	Category     string  `json:"category,omitempty" validate:"omitempty"`
	Transmission string  `json:"transmission,omitempty" validate:"omitempty"`
	Type         string  `json:"type,omitempty" validate:"omitempty"`
	MaxDailyRate float64 `json:"max_daily_rate,omitempty" validate:"omitempty,gt=0"`
	MinCapacity  int     `json:"min_capacity,omitempty" validate:"omitempty,gt=0"`
}

// ToFilter преобразует DummyVehicleFilter в VehicleFilter,
// превращая нулевые значения в отсутствие ограничения.
func (d DummyVehicleFilter) ToFilter() VehicleFilter {
	var f VehicleFilter
	if d.Category != "" {
		f.Category = &d.Category
	}
	if d.Transmission != "" {
		f.Transmission = &d.Transmission
	}
	if d.Type != "" {
		f.Type = &d.Type
	}
	if d.MaxDailyRate > 0 {
		f.MaxDailyRate = &d.MaxDailyRate
	}
	if d.MinCapacity > 0 {
		f.MinCapacity = &d.MinCapacity
	}
	return f
}
