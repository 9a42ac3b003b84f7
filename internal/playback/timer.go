package playback

import (
	"sync"
	"time"

	"stellarsiege/client/internal/dispatch"
)

// Timer is the one-shot timer driving the display cadence. Schedule re-arms
// it; the callback fires on the controller's goroutine.
type Timer interface {
	Schedule(d time.Duration)
	Stop()
}

// dispatcherTimer posts its callback onto a dispatcher so it runs serialized
// with everything else on the owning goroutine.
type dispatcherTimer struct {
	mu         sync.Mutex
	dispatcher dispatch.Dispatcher
	fn         func()
	pending    *time.Timer
}

// NewTimer returns a Timer whose callback runs on the given dispatcher.
func NewTimer(d dispatch.Dispatcher, fn func()) Timer {
	return &dispatcherTimer{dispatcher: d, fn: fn}
}

func (t *dispatcherTimer) Schedule(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(d, func() {
		t.dispatcher.PostRunnable(t.fn)
	})
}

func (t *dispatcherTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
