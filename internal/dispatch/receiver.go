package dispatch

import "sync/atomic"

// Receiver binds a live object to its owning goroutine's Dispatcher and
// hands out Senders for other goroutines. Construct and Close it on the
// owning goroutine.
type Receiver[T any] struct {
	link *receiverLink[T]
}

// receiverLink is the small shared structure between a Receiver and its
// Senders; the alive flag is the only cross-goroutine state.
type receiverLink[T any] struct {
	dispatcher Dispatcher
	target     *T
	alive      atomic.Bool
}

func (l *receiverLink[T]) post(req Request[T]) {
	//1.- Wrap the request so the liveness check happens on the target
	// goroutine; a dead receiver turns the runnable into cleanup only.
	l.dispatcher.PostRunnable(func() {
		if l.alive.Load() {
			req(l.target)
		}
	})
}

func (l *receiverLink[T]) connected() bool {
	return l.alive.Load()
}

// NewReceiver binds target to the given dispatcher. The dispatcher must
// outlive the last request posted through any derived Sender.
func NewReceiver[T any](d Dispatcher, target *T) *Receiver[T] {
	link := &receiverLink[T]{dispatcher: d, target: target}
	link.alive.Store(true)
	return &Receiver[T]{link: link}
}

// Sender returns a handle for posting requests to the receiver's object
// from any goroutine.
func (r *Receiver[T]) Sender() Sender[T] {
	return Sender[T]{impl: r.link}
}

// Object returns the bound target.
func (r *Receiver[T]) Object() *T {
	return r.link.target
}

// Close marks the target dead. Requests already enqueued still run as
// no-ops; future posts keep enqueueing no-ops. Safe to call more than once.
func (r *Receiver[T]) Close() {
	r.link.alive.Store(false)
}
