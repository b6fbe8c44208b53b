// Package daterange реализует период аренды как валидируемый тип-значение.
// Строковые даты парсятся один раз на границе запроса; дальше бизнес-логика
// работает только с готовым Range и его длиной в целых сутках.
package daterange

import (
	"errors"
	"time"
)

// Layout — формат календарной даты во внешних запросах.
const Layout = "2006-01-02"

var (
	// ErrFormat — дата не распарсилась как календарная.
	ErrFormat = errors.New("invalid date format")
	// ErrRange — дата начала не раньше даты окончания.
	ErrRange = errors.New("start date must be before end date")
)

// Range — проверенный период аренды: начало строго раньше конца.
type Range struct {
	Start time.Time
	End   time.Time
}

// Parse разбирает пару строковых дат и возвращает Range.
// Возвращает ErrFormat, если хотя бы одна дата не парсится,
// и ErrRange, если начало не раньше конца.
func Parse(start, end string) (Range, error) {
	startDate, err := time.Parse(Layout, start)
	if err != nil {
		return Range{}, ErrFormat
	}
	endDate, err := time.Parse(Layout, end)
	if err != nil {
		return Range{}, ErrFormat
	}
	if !startDate.Before(endDate) {
		return Range{}, ErrRange
	}
	return Range{Start: startDate, End: endDate}, nil
}

// Days возвращает длину периода в целых сутках.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// TotalPrice считает стоимость аренды за период по суточной ставке.
func (r Range) TotalPrice(dailyRate float64) float64 {
	return float64(r.Days()) * dailyRate
}
