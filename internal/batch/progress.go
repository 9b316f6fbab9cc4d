package batch

import (
	"fmt"
	"sync"
	"time"
)

// ProgressFunc receives one event per finished file. Calls are serialized.
type ProgressFunc func(ProgressEvent)

// ProgressEvent describes a finished file
type ProgressEvent struct {
	Current int
	Total   int
	File    string
	Err     error
	ETA     string
}

// ProgressTracker counts finished files across workers
type ProgressTracker struct {
	total     int
	current   int
	startTime time.Time
	notify    ProgressFunc
	mu        sync.Mutex
}

// NewProgressTracker creates a tracker for total files. notify may be nil.
func NewProgressTracker(total int, notify ProgressFunc) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
		notify:    notify,
	}
}

// Done records one finished file and notifies the listener
func (p *ProgressTracker) Done(file string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	if p.notify != nil {
		p.notify(ProgressEvent{
			Current: p.current,
			Total:   p.total,
			File:    file,
			Err:     err,
			ETA:     p.eta(),
		})
	}
}

// Current returns the number of finished files
func (p *ProgressTracker) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *ProgressTracker) eta() string {
	if p.current == 0 || p.total == 0 {
		return "calculating..."
	}
	if p.current >= p.total {
		return "done"
	}

	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	if rate == 0 {
		return "calculating..."
	}

	remaining := float64(p.total-p.current) / rate
	switch {
	case remaining < 60:
		return fmt.Sprintf("%.0f seconds", remaining)
	case remaining < 3600:
		return fmt.Sprintf("%.1f minutes", remaining/60)
	default:
		return fmt.Sprintf("%.1f hours", remaining/3600)
	}
}
