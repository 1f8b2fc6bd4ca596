package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"momentum-backend/internal/habits"
)

func seededStore(api *Client, h Habit) *HabitStore {
	s := NewHabitStore(api)
	s.byID[h.ID] = h
	return s
}

func TestToggleOptimisticSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/habits/1/toggle" {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Habit{
			ID:             1,
			Name:           "Read",
			CompletedDates: []string{"2024-06-01"},
		})
	}))
	defer srv.Close()

	store := seededStore(New(srv.URL, "tok"), Habit{ID: 1, Name: "Read", CompletedDates: []string{}})

	got, err := store.Toggle(context.Background(), 1, "2024-06-01")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !slices.Contains(got.CompletedDates, "2024-06-01") {
		t.Fatalf("date missing after toggle: %v", got.CompletedDates)
	}
}

func TestToggleRollsBackOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	orig := Habit{ID: 1, Name: "Read", CompletedDates: []string{"2024-05-01"}}
	store := seededStore(New(srv.URL, "tok"), orig)

	_, err := store.Toggle(context.Background(), 1, "2024-05-02")
	if err == nil {
		t.Fatal("expected error from failed persistence")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("err = %v, want 500 APIError", err)
	}

	// local copy rolled back, no silent drift
	local, _ := store.Get(1)
	if !slices.Equal(local.CompletedDates, orig.CompletedDates) {
		t.Fatalf("local state drifted: %v, want %v", local.CompletedDates, orig.CompletedDates)
	}
}

func TestToggleRollsBackOnNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	orig := Habit{ID: 1, Name: "Read", CompletedDates: []string{"2024-05-01"}}
	store := seededStore(New(srv.URL, "tok"), orig)

	_, err := store.Toggle(context.Background(), 1, "2024-05-02")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure surfaced as APIError: %v", err)
	}

	local, _ := store.Get(1)
	if !slices.Equal(local.CompletedDates, orig.CompletedDates) {
		t.Fatalf("local state drifted: %v", local.CompletedDates)
	}
}

func TestToggleFutureDateNeverHitsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called for a future date")
	}))
	defer srv.Close()

	store := seededStore(New(srv.URL, "tok"), Habit{ID: 1, Name: "Read", CompletedDates: []string{}})

	_, err := store.Toggle(context.Background(), 1, "2099-01-01")
	var fde habits.FutureDateError
	if !errors.As(err, &fde) {
		t.Fatalf("err = %v, want FutureDateError", err)
	}

	local, _ := store.Get(1)
	if len(local.CompletedDates) != 0 {
		t.Fatalf("local state mutated despite precondition failure: %v", local.CompletedDates)
	}
}

func TestRefreshReplacesByIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Habit{
			{ID: 1, Name: "Read", CompletedDates: []string{"2024-06-01"}},
			{ID: 2, Name: "Run", CompletedDates: []string{}},
		})
	}))
	defer srv.Close()

	store := seededStore(New(srv.URL, "tok"), Habit{ID: 1, Name: "Read", CompletedDates: []string{}})
	store.byID[3] = Habit{ID: 3, Name: "Gone"} // deleted server-side

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if _, ok := store.Get(3); ok {
		t.Fatal("habit deleted on the server survived refresh")
	}
	h1, _ := store.Get(1)
	if !slices.Contains(h1.CompletedDates, "2024-06-01") {
		t.Fatalf("habit 1 not reconciled: %v", h1.CompletedDates)
	}
	if _, ok := store.Get(2); !ok {
		t.Fatal("new habit not picked up")
	}
}

func TestRefreshKeepsPendingToggles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// stale list: does not yet include the optimistic toggle
		_ = json.NewEncoder(w).Encode([]Habit{
			{ID: 1, Name: "Read", CompletedDates: []string{}},
		})
	}))
	defer srv.Close()

	store := seededStore(New(srv.URL, "tok"), Habit{ID: 1, Name: "Read", CompletedDates: []string{"2024-06-01"}})
	store.pending[1] = 1 // toggle in flight

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	h, _ := store.Get(1)
	if !slices.Contains(h.CompletedDates, "2024-06-01") {
		t.Fatal("stale list response overwrote a pending optimistic toggle")
	}
}
