package habits

import (
	"errors"
	"slices"
	"testing"
)

const today = "2024-06-15"

func TestToggleAddsAndRemoves(t *testing.T) {
	out, err := ToggleDates(nil, "2024-06-01", today)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !slices.Contains(out, "2024-06-01") {
		t.Fatalf("date not added: %v", out)
	}

	out, err = ToggleDates(out, "2024-06-01", today)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("double toggle should restore the empty set, got %v", out)
	}
}

func TestDoubleToggleRestoresOriginalSet(t *testing.T) {
	orig := []string{"2024-05-01", "2024-05-03", "2024-05-09"}

	once, err := ToggleDates(orig, "2024-05-03", today)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	twice, err := ToggleDates(once, "2024-05-03", today)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	slices.Sort(twice)
	if !slices.Equal(twice, orig) {
		t.Fatalf("double toggle = %v, want %v", twice, orig)
	}
}

func TestToggleRejectsFutureDates(t *testing.T) {
	orig := []string{"2024-06-01"}

	_, err := ToggleDates(orig, "2099-01-01", today)
	var fde FutureDateError
	if !errors.As(err, &fde) {
		t.Fatalf("err = %v, want FutureDateError", err)
	}
	if fde.Date != "2099-01-01" {
		t.Fatalf("error date = %q", fde.Date)
	}
	// tomorrow counts as future too
	if _, err := ToggleDates(orig, "2024-06-16", today); err == nil {
		t.Fatal("tomorrow accepted, want FutureDateError")
	}
	// the input set is untouched on failure
	if !slices.Equal(orig, []string{"2024-06-01"}) {
		t.Fatalf("input mutated: %v", orig)
	}
}

func TestToggleAcceptsToday(t *testing.T) {
	out, err := ToggleDates(nil, today, today)
	if err != nil {
		t.Fatalf("toggling today: %v", err)
	}
	if !slices.Contains(out, today) {
		t.Fatalf("today not added: %v", out)
	}
}

func TestToggleRejectsMalformedDates(t *testing.T) {
	for _, bad := range []string{"", "yesterday", "2024-13-01", "2024-6-1", "01-06-2024"} {
		if _, err := ToggleDates(nil, bad, today); !errors.Is(err, ErrBadDate) {
			t.Fatalf("ToggleDates(%q) err = %v, want ErrBadDate", bad, err)
		}
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	orig := []string{"2024-06-01", "2024-06-02"}
	snapshot := slices.Clone(orig)

	if _, err := ToggleDates(orig, "2024-06-01", today); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := ToggleDates(orig, "2024-06-03", today); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !slices.Equal(orig, snapshot) {
		t.Fatalf("input mutated: %v", orig)
	}
}
