// Package heatmap turns raw task/journal/focus/habit records into the
// 12-month calendar heatmap: a per-day count map under a view mode's
// weighting rule, then a grid of day cells with discrete intensity levels.
package heatmap

import (
	"fmt"
	"strconv"
	"strings"
)

type modeKind int

const (
	kindOverview modeKind = iota
	kindTasks
	kindFocus
	kindJournal
	kindHabit
)

// ViewMode is the aggregation lens: overview, one record type, or a single
// habit. It is a closed set; anything else fails at parse time instead of
// silently acting like overview.
type ViewMode struct {
	kind    modeKind
	habitID int
}

var (
	Overview = ViewMode{kind: kindOverview}
	Tasks    = ViewMode{kind: kindTasks}
	Focus    = ViewMode{kind: kindFocus}
	Journal  = ViewMode{kind: kindJournal}
)

func HabitMode(habitID int) ViewMode {
	return ViewMode{kind: kindHabit, habitID: habitID}
}

// HabitID returns the selected habit and whether this is a habit mode.
func (m ViewMode) HabitID() (int, bool) {
	return m.habitID, m.kind == kindHabit
}

func (m ViewMode) String() string {
	switch m.kind {
	case kindOverview:
		return "all"
	case kindTasks:
		return "tasks"
	case kindFocus:
		return "focus"
	case kindJournal:
		return "journal"
	case kindHabit:
		return "habit:" + strconv.Itoa(m.habitID)
	default:
		return "unknown"
	}
}

// ParseViewMode accepts "all" (or "overview"), "tasks", "focus", "journal"
// and "habit:<id>".
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "all", "overview":
		return Overview, nil
	case "tasks":
		return Tasks, nil
	case "focus":
		return Focus, nil
	case "journal":
		return Journal, nil
	}

	if rest, ok := strings.CutPrefix(strings.TrimSpace(s), "habit:"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil || id <= 0 {
			return ViewMode{}, fmt.Errorf("invalid habit id in view mode %q", s)
		}
		return HabitMode(id), nil
	}

	return ViewMode{}, fmt.Errorf("unknown view mode %q", s)
}
