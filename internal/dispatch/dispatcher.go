// Package dispatch implements the cross-thread request runtime: thread-affine
// dispatchers, typed object-affine senders and receivers with death-safe
// posting, per-session slave objects, and a debounced change notifier.
//
// Every goroutine that owns mutable state runs exactly one dispatcher; other
// goroutines reach that state only by posting requests through a Sender.
package dispatch

import (
	"context"
	"sync"
)

// Runnable is a unit of work queued on a Dispatcher.
type Runnable func()

// Dispatcher accepts runnables for execution on its owning goroutine.
// Runnables run in FIFO order of posting and never concurrently with each
// other on the same Dispatcher.
type Dispatcher interface {
	// PostRunnable enqueues r. It is callable from any goroutine and never
	// blocks. A nil runnable is ignored.
	PostRunnable(r Runnable)
}

// QueueDispatcher is a Dispatcher backed by an in-memory queue. One
// goroutine pumps it, via Run, RunUntil or ExecuteAll; posting is allowed
// from any goroutine.
type QueueDispatcher struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Runnable
	closed bool
}

// NewQueueDispatcher returns an empty, open dispatcher.
func NewQueueDispatcher() *QueueDispatcher {
	d := &QueueDispatcher{}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// PostRunnable implements Dispatcher.
func (d *QueueDispatcher) PostRunnable(r Runnable) {
	if r == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.queue = append(d.queue, r)
		d.cond.Broadcast()
	}
	d.mu.Unlock()
}

// ExecuteAll drains the queue without blocking, including runnables posted
// by the runnables themselves. Intended for single-threaded tests and
// cooperative loops.
func (d *QueueDispatcher) ExecuteAll() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		batch := d.queue
		d.queue = nil
		d.mu.Unlock()
		for _, r := range batch {
			r()
		}
	}
}

// RunUntil pumps the queue, blocking while it is empty, until done reports
// true or the dispatcher is closed. done is evaluated on the pumping
// goroutine between runnables. Reentrant use from inside a runnable is
// permitted; that is how synchronous waits pump their own event loop.
func (d *QueueDispatcher) RunUntil(done func() bool) {
	for !done() {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		r := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		r()
	}
}

// Run pumps the queue until ctx is cancelled, then drains what is left and
// returns. This is the long-running loop of a worker goroutine.
func (d *QueueDispatcher) Run(ctx context.Context) {
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			d.Close()
		case <-stop:
		}
	}()
	d.RunUntil(func() bool { return false })
	close(stop)
	d.ExecuteAll()
}

// Close marks the dispatcher closed. Pending runnables still run on the
// pumping goroutine; further posts are dropped.
func (d *QueueDispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
}
