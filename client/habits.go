package client

import (
	"context"
	"sync"

	"momentum-backend/internal/dates"
	"momentum-backend/internal/habits"
)

// HabitStore is the client-side copy of the user's habits. Toggles apply
// locally first so the UI answers immediately, then persist; if persistence
// fails the local flip is rolled back and the error returned, so the local
// copy never drifts from what the server holds.
type HabitStore struct {
	api *Client

	mu      sync.Mutex
	byID    map[int]Habit
	pending map[int]int // habit id -> in-flight toggles
}

func NewHabitStore(api *Client) *HabitStore {
	return &HabitStore{
		api:     api,
		byID:    map[int]Habit{},
		pending: map[int]int{},
	}
}

// Refresh pulls the server's habit list. Reconciliation is by identity: a
// habit with a toggle still in flight keeps its local state, so a slow list
// response cannot clobber a newer optimistic flip.
func (s *HabitStore) Refresh(ctx context.Context) error {
	list, err := s.api.Habits(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int]bool{}
	for _, h := range list {
		seen[h.ID] = true
		if s.pending[h.ID] > 0 {
			continue
		}
		s.byID[h.ID] = h
	}
	for id := range s.byID {
		if !seen[id] && s.pending[id] == 0 {
			delete(s.byID, id)
		}
	}
	return nil
}

// Habits returns the local snapshot.
func (s *HabitStore) Habits() []Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Habit, 0, len(s.byID))
	for _, h := range s.byID {
		out = append(out, h)
	}
	return out
}

func (s *HabitStore) Get(id int) (Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	return h, ok
}

// Create registers a habit server-side and adds it locally.
func (s *HabitStore) Create(ctx context.Context, name string) (Habit, error) {
	h, err := s.api.CreateHabit(ctx, name)
	if err != nil {
		return Habit{}, err
	}
	s.mu.Lock()
	s.byID[h.ID] = h
	s.mu.Unlock()
	return h, nil
}

// Delete removes a habit. Deletion is irreversible, so the UI must have
// confirmed with the user before calling this.
func (s *HabitStore) Delete(ctx context.Context, id int) error {
	if err := s.api.DeleteHabit(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	return nil
}

// Toggle flips one date's membership. The future-date precondition is checked
// locally before anything mutates, mirroring the server's.
func (s *HabitStore) Toggle(ctx context.Context, habitID int, date string) (Habit, error) {
	s.mu.Lock()
	prev, ok := s.byID[habitID]
	if !ok {
		s.mu.Unlock()
		return Habit{}, &APIError{Status: 404, Message: "habit not found"}
	}

	next, err := habits.ToggleDates(prev.CompletedDates, date, dates.Today())
	if err != nil {
		s.mu.Unlock()
		return Habit{}, err
	}

	// optimistic apply
	optimistic := prev
	optimistic.CompletedDates = next
	s.byID[habitID] = optimistic
	s.pending[habitID]++
	s.mu.Unlock()

	confirmed, err := s.api.ToggleHabit(ctx, habitID, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[habitID]--

	if err != nil {
		// roll back to the pre-toggle state and surface the failure
		s.byID[habitID] = prev
		return Habit{}, err
	}

	// reconcile with the server's copy only if it is for this habit
	if confirmed.ID == habitID {
		s.byID[habitID] = confirmed
	}
	return s.byID[habitID], nil
}

// ToggleToday is Toggle for the current calendar day.
func (s *HabitStore) ToggleToday(ctx context.Context, habitID int) (Habit, error) {
	return s.Toggle(ctx, habitID, dates.Today())
}
