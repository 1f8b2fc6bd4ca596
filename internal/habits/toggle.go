package habits

import (
	"errors"
	"fmt"
	"slices"

	"momentum-backend/internal/dates"
)

// FutureDateError rejects marking a habit done on a day that has not happened
// yet. It is returned before any mutation takes place.
type FutureDateError struct {
	Date  string
	Today string
}

func (e FutureDateError) Error() string {
	return fmt.Sprintf("cannot toggle future date %s (today is %s)", e.Date, e.Today)
}

var (
	ErrBlankName = errors.New("habit name must not be blank")
	ErrBadDate   = errors.New("date must be a YYYY-MM-DD calendar day")
)

// ToggleDates flips membership of date in completed: present becomes absent
// and vice versa. Calendar-day strings compare lexicographically, so the
// future check needs no time parsing beyond format validation. The input
// slice is not modified. Applying the same toggle twice restores the
// original set.
func ToggleDates(completed []string, date, today string) ([]string, error) {
	if !dates.Valid(date) {
		return nil, ErrBadDate
	}
	if date > today {
		return nil, FutureDateError{Date: date, Today: today}
	}

	if i := slices.Index(completed, date); i >= 0 {
		out := make([]string, 0, len(completed)-1)
		out = append(out, completed[:i]...)
		return append(out, completed[i+1:]...), nil
	}

	out := make([]string, 0, len(completed)+1)
	out = append(out, completed...)
	return append(out, date), nil
}
