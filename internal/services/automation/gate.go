package automation

import (
	"fmt"
	"slices"
	"time"
)

// BusinessHours описывает окно отправки уведомлений: полуинтервал часов
// [StartHour, EndHour) и набор рабочих дней недели.
type BusinessHours struct {
	StartHour int            `json:"start_hour"`
	EndHour   int            `json:"end_hour"`
	WorkDays  []time.Weekday `json:"work_days"`
}

// Validate проверяет согласованность окна.
func (b BusinessHours) Validate() error {
	if b.StartHour < 0 || b.StartHour > 23 {
		return fmt.Errorf("start hour out of range: %d", b.StartHour)
	}
	if b.EndHour < 1 || b.EndHour > 24 {
		return fmt.Errorf("end hour out of range: %d", b.EndHour)
	}
	if b.StartHour >= b.EndHour {
		return fmt.Errorf("start hour %d is not before end hour %d", b.StartHour, b.EndHour)
	}
	if len(b.WorkDays) == 0 {
		return fmt.Errorf("work days must not be empty")
	}
	return nil
}

// Contains сообщает, попадает ли момент t в рабочее окно.
func (b BusinessHours) Contains(t time.Time) bool {
	if !slices.Contains(b.WorkDays, t.Weekday()) {
		return false
	}
	return t.Hour() >= b.StartHour && t.Hour() < b.EndHour
}

// NextOpen возвращает ближайшее начало рабочего окна после t:
// следующий день в StartHour, с пропуском нерабочих дней.
// Повторной попытки в тот же день не предусмотрено.
func (b BusinessHours) NextOpen(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), b.StartHour, 0, 0, 0, t.Location())
	next = next.AddDate(0, 0, 1)
	for !slices.Contains(b.WorkDays, next.Weekday()) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
