package journal

import "testing"

func TestImportEntryUsable(t *testing.T) {
	cases := []struct {
		name  string
		entry ImportEntry
		want  bool
	}{
		{"complete row", ImportEntry{Date: "2024-06-01", Content: "shipped the thing"}, true},
		{"missing content", ImportEntry{Date: "2024-06-01"}, false},
		{"whitespace content", ImportEntry{Date: "2024-06-01", Content: "   "}, false},
		{"missing date", ImportEntry{Content: "text"}, false},
		{"malformed date", ImportEntry{Date: "June 1st", Content: "text"}, false},
		{"no title is fine", ImportEntry{Date: "2024-06-01", Content: "text"}, true},
	}

	for _, tc := range cases {
		if got := tc.entry.Usable(); got != tc.want {
			t.Errorf("%s: Usable() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestImportBatchSkipCount(t *testing.T) {
	// 10 rows, 2 unusable: the other 8 import
	batch := make([]ImportEntry, 0, 10)
	for i := 0; i < 8; i++ {
		batch = append(batch, ImportEntry{Date: "2024-06-01", Content: "day log"})
	}
	batch = append(batch, ImportEntry{Date: "2024-06-02"}, ImportEntry{Content: "dateless"})

	usable := 0
	for _, e := range batch {
		if e.Usable() {
			usable++
		}
	}
	if usable != 8 {
		t.Fatalf("usable = %d, want 8", usable)
	}
}
