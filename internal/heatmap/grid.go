package heatmap

import (
	"fmt"
	"time"
)

const (
	CellSpacer = "spacer"
	CellDay    = "day"
)

// Cell is one square of the grid. Spacer cells pad a month's first week so
// day cells land in their weekday column (rows are Sun..Sat).
type Cell struct {
	Type  string `json:"type"`
	Date  string `json:"date,omitempty"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

type Month struct {
	Name string `json:"name"`
	Days []Cell `json:"days"`
}

// Thresholds returns the four ascending level boundaries for a mode. A habit
// day is binary, so every non-zero count saturates at level 4.
func Thresholds(mode ViewMode) [4]int {
	switch mode.kind {
	case kindFocus:
		return [4]int{15, 30, 60, 120}
	case kindJournal:
		return [4]int{1, 1, 2, 3}
	case kindHabit:
		return [4]int{1, 1, 1, 1}
	default:
		return [4]int{1, 3, 5, 8}
	}
}

// LevelFor buckets a count into intensity 0..4.
func LevelFor(count int, t [4]int) int {
	switch {
	case count >= t[3]:
		return 4
	case count >= t[2]:
		return 3
	case count >= t[1]:
		return 2
	case count >= t[0]:
		return 1
	default:
		return 0
	}
}

// WindowStart returns the date key of the first day of the 12-month window
// ending in today's month.
func WindowStart(today time.Time) string {
	first := time.Date(today.Year(), today.Month()-11, 1, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01-02")
}

// BuildGrid lays out exactly 12 months, ending with today's month. Dates
// outside the window simply never get a cell, however sparse or far-flung
// the count map is.
func BuildGrid(counts map[string]int, mode ViewMode, today time.Time) []Month {
	thresholds := Thresholds(mode)
	months := make([]Month, 0, 12)

	for i := 11; i >= 0; i-- {
		first := time.Date(today.Year(), today.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		year, month := first.Year(), first.Month()
		daysInMonth := first.AddDate(0, 1, -1).Day()

		days := make([]Cell, 0, int(first.Weekday())+daysInMonth)
		for s := 0; s < int(first.Weekday()); s++ {
			days = append(days, Cell{Type: CellSpacer})
		}

		for day := 1; day <= daysInMonth; day++ {
			dateKey := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
			count := counts[dateKey]
			days = append(days, Cell{
				Type:  CellDay,
				Date:  dateKey,
				Count: count,
				Level: LevelFor(count, thresholds),
			})
		}

		months = append(months, Month{Name: first.Format("Jan"), Days: days})
	}

	return months
}
