package heatmap

import "testing"

func TestParseViewMode(t *testing.T) {
	cases := []struct {
		in   string
		want ViewMode
	}{
		{"", Overview},
		{"all", Overview},
		{"overview", Overview},
		{"ALL", Overview},
		{"tasks", Tasks},
		{"focus", Focus},
		{"journal", Journal},
		{"habit:12", HabitMode(12)},
	}

	for _, tc := range cases {
		got, err := ParseViewMode(tc.in)
		if err != nil {
			t.Fatalf("ParseViewMode(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseViewMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseViewModeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"everything", "habit:", "habit:zero", "habit:-3", "tasks2"} {
		if _, err := ParseViewMode(in); err == nil {
			t.Fatalf("ParseViewMode(%q) accepted, want error", in)
		}
	}
}

func TestViewModeString(t *testing.T) {
	if got := HabitMode(7).String(); got != "habit:7" {
		t.Fatalf("String() = %q, want habit:7", got)
	}
	if got := Overview.String(); got != "all" {
		t.Fatalf("String() = %q, want all", got)
	}
}
