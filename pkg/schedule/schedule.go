// Package schedule runs registered tasks at fixed intervals.
//
//	schedule.Every(24 * time.Hour).Name("due-reminders").Run(scanDueOrders)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/priyadarshi/darzi/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	id       string
	interval time.Duration
	task     Task
	lastRun  time.Time
	running  bool
	mu       sync.Mutex
}

// Schedule is a fluent builder for one entry.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a builder for a task running at the given interval.
func Every(interval time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: interval}}
}

// Name gives the entry an identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Call Start to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn

	regMu.Lock()
	defer regMu.Unlock()
	entries = append(entries, s.e)
}

// Start launches the dispatcher goroutine. It ticks once a minute and
// fires every entry whose interval has elapsed; a run still in progress
// is never overlapped.
func Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				dispatch(now)
			}
		}
	}()
}

func dispatch(now time.Time) {
	regMu.Lock()
	due := make([]*entry, 0, len(entries))
	for _, e := range entries {
		if now.Sub(e.lastRun) >= e.interval {
			due = append(due, e)
		}
	}
	regMu.Unlock()

	for _, e := range due {
		e.mu.Lock()
		if e.running {
			e.mu.Unlock()
			continue
		}
		e.running = true
		e.lastRun = now
		e.mu.Unlock()

		go func(e *entry) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("schedule: task panicked", "task", e.id, "error", r)
				}
				e.mu.Lock()
				e.running = false
				e.mu.Unlock()
			}()
			logger.Debug("schedule: running", "task", e.id)
			e.task()
		}(e)
	}
}

// Flush clears the registry. Used by tests.
func Flush() {
	regMu.Lock()
	defer regMu.Unlock()
	entries = nil
}
