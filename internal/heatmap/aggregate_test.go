package heatmap

import "testing"

func TestAggregateTasksCountsOnlyCompletedDated(t *testing.T) {
	recs := Records{
		Tasks: []TaskRecord{
			{Date: "2024-06-01", Completed: true},
			{Date: "2024-06-01", Completed: true},
			{Date: "2024-06-02", Completed: false},
			{Date: "", Completed: true}, // dateless, skipped
		},
	}

	sum := Aggregate(recs, Tasks)
	if sum.Label != "Tasks" {
		t.Fatalf("label = %q, want Tasks", sum.Label)
	}
	if sum.Total != 2 {
		t.Fatalf("total = %d, want 2", sum.Total)
	}
	if got := sum.CountsByDate["2024-06-01"]; got != 2 {
		t.Fatalf("count[2024-06-01] = %d, want 2", got)
	}
	if got := sum.CountsByDate["2024-06-02"]; got != 0 {
		t.Fatalf("count[2024-06-02] = %d, want 0", got)
	}
}

func TestAggregateJournalMode(t *testing.T) {
	recs := Records{
		Journals: []JournalRecord{
			{Date: "2024-06-01"},
			{Date: "2024-06-01"},
			{Date: "2024-06-03"},
			{Date: ""},
		},
	}

	sum := Aggregate(recs, Journal)
	if sum.Label != "Entries" {
		t.Fatalf("label = %q, want Entries", sum.Label)
	}
	if sum.Total != 3 {
		t.Fatalf("total = %d, want 3", sum.Total)
	}
	if got := sum.CountsByDate["2024-06-01"]; got != 2 {
		t.Fatalf("count[2024-06-01] = %d, want 2", got)
	}
}

func TestAggregateFocusModeSumsMinutes(t *testing.T) {
	recs := Records{
		Focus: []FocusDay{
			{Date: "2024-06-01", TotalMinutes: 45},
			{Date: "2024-06-02", TotalMinutes: 30},
		},
	}

	sum := Aggregate(recs, Focus)
	if sum.Label != "Minutes" {
		t.Fatalf("label = %q, want Minutes", sum.Label)
	}
	if sum.Total != 75 {
		t.Fatalf("total = %d, want 75", sum.Total)
	}
	if got := sum.CountsByDate["2024-06-01"]; got != 45 {
		t.Fatalf("count[2024-06-01] = %d, want 45", got)
	}
}

func TestAggregateOverviewCombinesWeights(t *testing.T) {
	// one completed task (+1) and one journal entry (+3) on the same day
	recs := Records{
		Tasks:    []TaskRecord{{Date: "2024-06-01", Completed: true}},
		Journals: []JournalRecord{{Date: "2024-06-01"}},
	}

	sum := Aggregate(recs, Overview)
	if sum.Label != "Score" {
		t.Fatalf("label = %q, want Score", sum.Label)
	}
	if got := sum.CountsByDate["2024-06-01"]; got != 4 {
		t.Fatalf("count[2024-06-01] = %d, want 4", got)
	}
	if sum.Total != 4 {
		t.Fatalf("total = %d, want 4", sum.Total)
	}
}

func TestAggregateOverviewFocusStep(t *testing.T) {
	recs := Records{
		Focus: []FocusDay{
			{Date: "2024-06-01", TotalMinutes: 44}, // floor(44/15) = 2
			{Date: "2024-06-02", TotalMinutes: 14}, // below one step
		},
		Habits: []HabitRecord{
			{ID: 1, CompletedDates: []string{"2024-06-01"}},
		},
	}

	sum := Aggregate(recs, Overview)
	if got := sum.CountsByDate["2024-06-01"]; got != 3 {
		t.Fatalf("count[2024-06-01] = %d, want 3 (2 focus points + 1 habit)", got)
	}
	if got := sum.CountsByDate["2024-06-02"]; got != 0 {
		t.Fatalf("count[2024-06-02] = %d, want 0", got)
	}
}

func TestAggregateSingleHabit(t *testing.T) {
	recs := Records{
		Habits: []HabitRecord{
			{ID: 1, CompletedDates: []string{"2024-06-01", "2024-06-02"}},
			{ID: 2, CompletedDates: []string{"2024-06-03"}},
		},
	}

	sum := Aggregate(recs, HabitMode(1))
	if sum.Label != "Days" {
		t.Fatalf("label = %q, want Days", sum.Label)
	}
	if sum.Total != 2 {
		t.Fatalf("total = %d, want 2", sum.Total)
	}
	if got := sum.CountsByDate["2024-06-03"]; got != 0 {
		t.Fatalf("other habit's date leaked into counts: %d", got)
	}
}

func TestAggregateUnknownHabitYieldsEmpty(t *testing.T) {
	recs := Records{
		Habits: []HabitRecord{{ID: 1, CompletedDates: []string{"2024-06-01"}}},
	}

	sum := Aggregate(recs, HabitMode(99))
	if sum.Total != 0 || len(sum.CountsByDate) != 0 {
		t.Fatalf("expected empty summary, got total=%d counts=%v", sum.Total, sum.CountsByDate)
	}
}
