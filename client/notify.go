package client

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"momentum-backend/internal/dates"
)

// Notifier delivers one local notification. Implementations may talk to the
// OS, a tray daemon, or a test double; a failed send is never fatal.
type Notifier interface {
	Send(title, body string) error
}

// Scheduler is the reminder loop: once a minute it scans the cached task
// snapshot for tasks due in five minutes, and at 20:00/22:00 nudges the user
// if nothing was logged today. It has an explicit start/stop lifecycle tied
// to the session, not a side effect of some widget mounting.
type Scheduler struct {
	Notifier Notifier
	Session  func() Session   // snapshot provider
	Now      func() time.Time // clock, swappable in tests
	Interval time.Duration

	mu       sync.Mutex
	notified map[string]bool // "taskID-date" already alerted
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(n Notifier, session func() Session) *Scheduler {
	return &Scheduler{
		Notifier: n,
		Session:  session,
		Now:      time.Now,
		Interval: time.Minute,
		notified: map[string]bool{},
	}
}

// Start launches the loop. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(s.Now())
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Tick runs one scan. Exported so tests can drive the clock directly.
func (s *Scheduler) Tick(now time.Time) {
	sess := s.Session()
	today := dates.Day(now)

	for _, t := range sess.CachedTasks {
		mins, ok := minutesUntil(t, now)
		if !ok || mins != 5 {
			continue
		}
		key := fmt.Sprintf("%d-%s", t.ID, today)
		s.mu.Lock()
		already := s.notified[key]
		if !already {
			s.notified[key] = true
		}
		s.mu.Unlock()
		if already {
			continue
		}
		s.send("Upcoming: "+t.Text, "Starting in 5 minutes! Get ready to focus.")
	}

	// general streak alerts only on the hour
	if now.Minute() != 0 {
		return
	}
	loggedToday := sess.LastActivityDate == today

	if now.Hour() == 20 && !loggedToday {
		s.send("Keep your streak alive!",
			"You haven't logged any progress today. Take 5 minutes to record your wins.")
	}
	if now.Hour() == 22 && !loggedToday {
		s.send("Streak Risk: 2 Hours Left",
			"Don't break the chain! Log something now to maintain your productive streak.")
	}
}

func (s *Scheduler) send(title, body string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(title, body); err != nil {
		log.Printf("[WARN] notification send failed: %v", err)
	}
}

// minutesUntil computes whole minutes from now until a task's clock time,
// for tasks dated today with a time set and not yet completed.
func minutesUntil(t Task, now time.Time) (int, bool) {
	if t.Completed || t.Time == "" || t.Date != dates.Day(now) {
		return 0, false
	}
	clock, err := time.Parse("15:04", t.Time)
	if err != nil {
		return 0, false
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	return int(math.Floor(due.Sub(now).Minutes())), true
}
