package usage

import "time"

// DayWindow returns the half-open interval [start of day, start of next day)
// containing t, in t's location.
func DayWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open interval [first of month, first of next
// month) containing t, in t's location.
func MonthWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

// NextDayStart returns the first moment of the day after t.
func NextDayStart(t time.Time) time.Time {
	_, to := DayWindow(t)
	return to
}

// NextMonthStart returns the first moment of the month after t.
func NextMonthStart(t time.Time) time.Time {
	_, to := MonthWindow(t)
	return to
}

// TrailingWindow returns the half-open interval [t - days, t).
func TrailingWindow(t time.Time, days int) (from, to time.Time) {
	return t.AddDate(0, 0, -days), t
}
