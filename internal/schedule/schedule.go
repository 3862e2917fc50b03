// Package schedule runs fire-and-forget callbacks after a fixed delay.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled callback. Cancel is a no-op: once scheduled, a task
// always runs.
type Task interface {
	Cancel()
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

type noopTask struct{}

func (noopTask) Cancel() {}

// TimerScheduler schedules callbacks on the runtime timer. Callbacks run on
// their own goroutine.
type TimerScheduler struct{}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// After implements Scheduler.
func (s *TimerScheduler) After(d time.Duration, fn func()) Task {
	time.AfterFunc(d, fn)
	return noopTask{}
}

// Manual is a Scheduler driven by an explicit clock. Tests use it to step
// through delayed UI transitions deterministically.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	entries []manualEntry
}

type manualEntry struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.entries = append(m.entries, manualEntry{at: m.now + d, seq: m.seq, fn: fn})
	return noopTask{}
}

// Advance moves the clock forward by d and runs every callback that became
// due, in due order. Callbacks run on the caller's goroutine without the
// scheduler lock held, so they may schedule further work.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.SliceStable(m.entries, func(i, j int) bool {
			if m.entries[i].at == m.entries[j].at {
				return m.entries[i].seq < m.entries[j].seq
			}
			return m.entries[i].at < m.entries[j].at
		})
		if len(m.entries) == 0 || m.entries[0].at > target {
			m.now = target
			m.mu.Unlock()
			return
		}
		next := m.entries[0]
		m.entries = m.entries[1:]
		m.now = next.at
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of callbacks not yet run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
