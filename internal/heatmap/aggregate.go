package heatmap

// Input records carry only what aggregation needs. Handlers map storage rows
// into these; tests build them directly.

type TaskRecord struct {
	Date      string
	Completed bool
}

type JournalRecord struct {
	Date string
}

// FocusDay is a pre-aggregated day of focus work, as served by GET /focus.
type FocusDay struct {
	Date         string
	TotalMinutes int
}

type HabitRecord struct {
	ID             int
	CompletedDates []string
}

type Records struct {
	Tasks    []TaskRecord
	Journals []JournalRecord
	Focus    []FocusDay
	Habits   []HabitRecord
}

// Summary is the derived aggregate for one view mode. CountsByDate is built
// fresh on every call and never persisted.
type Summary struct {
	CountsByDate map[string]int
	Total        int
	Label        string
}

// Overview weights. A journal entry counts triple, and every full 15 minutes
// of focus adds a point.
const (
	overviewJournalWeight    = 3
	overviewFocusMinutesStep = 15
)

// Aggregate folds records into a date->count map under the mode's weighting
// rule. Records without a date are skipped; Aggregate never errors.
func Aggregate(recs Records, mode ViewMode) Summary {
	counts := map[string]int{}
	total := 0

	switch mode.kind {
	case kindTasks:
		for _, t := range recs.Tasks {
			if !t.Completed || t.Date == "" {
				continue
			}
			counts[t.Date]++
			total++
		}
		return Summary{CountsByDate: counts, Total: total, Label: "Tasks"}

	case kindJournal:
		for _, j := range recs.Journals {
			if j.Date == "" {
				continue
			}
			counts[j.Date]++
			total++
		}
		return Summary{CountsByDate: counts, Total: total, Label: "Entries"}

	case kindFocus:
		for _, f := range recs.Focus {
			if f.Date == "" || f.TotalMinutes <= 0 {
				continue
			}
			counts[f.Date] += f.TotalMinutes
			total += f.TotalMinutes
		}
		return Summary{CountsByDate: counts, Total: total, Label: "Minutes"}

	case kindHabit:
		for _, h := range recs.Habits {
			if h.ID != mode.habitID {
				continue
			}
			for _, d := range h.CompletedDates {
				if d == "" {
					continue
				}
				counts[d]++
				total++
			}
		}
		return Summary{CountsByDate: counts, Total: total, Label: "Days"}

	default: // overview
		for _, t := range recs.Tasks {
			if t.Completed && t.Date != "" {
				counts[t.Date]++
			}
		}
		for _, j := range recs.Journals {
			if j.Date != "" {
				counts[j.Date] += overviewJournalWeight
			}
		}
		for _, f := range recs.Focus {
			if f.Date != "" && f.TotalMinutes > 0 {
				counts[f.Date] += f.TotalMinutes / overviewFocusMinutesStep
			}
		}
		for _, h := range recs.Habits {
			for _, d := range h.CompletedDates {
				if d != "" {
					counts[d]++
				}
			}
		}
		for _, c := range counts {
			total += c
		}
		return Summary{CountsByDate: counts, Total: total, Label: "Score"}
	}
}
