package client

import (
	"errors"
	"sync"
	"testing"
	"time"

	"momentum-backend/internal/dates"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeNotifier) Send(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("notification daemon unreachable")
	}
	f.sent = append(f.sent, title)
	return nil
}

func (f *fakeNotifier) titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func schedulerAt(n Notifier, sess Session) *Scheduler {
	return NewScheduler(n, func() Session { return sess })
}

func TestTickAlertsTaskDueInFiveMinutes(t *testing.T) {
	now := time.Date(2024, time.June, 15, 9, 55, 0, 0, time.UTC)
	sess := Session{
		CachedTasks: []Task{
			{ID: 1, Text: "standup", Date: dates.Day(now), Time: "10:00"},
		},
	}
	n := &fakeNotifier{}
	s := schedulerAt(n, sess)

	s.Tick(now)
	if got := n.titles(); len(got) != 1 || got[0] != "Upcoming: standup" {
		t.Fatalf("sent = %v, want one standup alert", got)
	}

	// same minute again: no duplicate
	s.Tick(now)
	if got := n.titles(); len(got) != 1 {
		t.Fatalf("duplicate alert sent: %v", got)
	}
}

func TestTickSkipsIneligibleTasks(t *testing.T) {
	now := time.Date(2024, time.June, 15, 9, 55, 0, 0, time.UTC)
	sess := Session{
		CachedTasks: []Task{
			{ID: 1, Text: "done already", Date: dates.Day(now), Time: "10:00", Completed: true},
			{ID: 2, Text: "no time set", Date: dates.Day(now)},
			{ID: 3, Text: "tomorrow", Date: "2024-06-16", Time: "10:00"},
			{ID: 4, Text: "too far out", Date: dates.Day(now), Time: "11:00"},
			{ID: 5, Text: "already started", Date: dates.Day(now), Time: "09:50"},
		},
	}
	n := &fakeNotifier{}
	schedulerAt(n, sess).Tick(now)

	if got := n.titles(); len(got) != 0 {
		t.Fatalf("unexpected alerts: %v", got)
	}
}

func TestTickStreakReminders(t *testing.T) {
	eight := time.Date(2024, time.June, 15, 20, 0, 0, 0, time.UTC)

	// nothing logged today -> reminder
	n := &fakeNotifier{}
	schedulerAt(n, Session{LastActivityDate: "2024-06-14"}).Tick(eight)
	if got := n.titles(); len(got) != 1 {
		t.Fatalf("sent = %v, want one streak reminder", got)
	}

	// already logged today -> quiet
	n = &fakeNotifier{}
	schedulerAt(n, Session{LastActivityDate: dates.Day(eight)}).Tick(eight)
	if got := n.titles(); len(got) != 0 {
		t.Fatalf("unexpected reminder: %v", got)
	}

	// off the hour mark -> quiet
	n = &fakeNotifier{}
	schedulerAt(n, Session{LastActivityDate: "2024-06-14"}).Tick(eight.Add(7 * time.Minute))
	if got := n.titles(); len(got) != 0 {
		t.Fatalf("reminder fired off the hour: %v", got)
	}

	// 22:00 urgent warning
	n = &fakeNotifier{}
	schedulerAt(n, Session{LastActivityDate: ""}).Tick(eight.Add(2 * time.Hour))
	if got := n.titles(); len(got) != 1 {
		t.Fatalf("sent = %v, want urgent warning", got)
	}
}

func TestTickSurvivesNotifierFailure(t *testing.T) {
	now := time.Date(2024, time.June, 15, 20, 0, 0, 0, time.UTC)
	n := &fakeNotifier{fail: true}

	// must not panic or propagate
	schedulerAt(n, Session{LastActivityDate: ""}).Tick(now)
}

func TestStartStopLifecycle(t *testing.T) {
	n := &fakeNotifier{}
	s := schedulerAt(n, Session{})
	s.Interval = time.Millisecond

	s.Start(t.Context())
	s.Start(t.Context()) // second start is a no-op
	time.Sleep(5 * time.Millisecond)
	s.Stop()
	s.Stop() // second stop is a no-op
}
