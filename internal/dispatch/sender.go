package dispatch

import (
	"go.uber.org/zap"
)

// Request is a one-shot operation against an object of type T. It is created
// on the sending goroutine, moved to the receiving goroutine, and invoked at
// most once against the live target.
type Request[T any] func(target *T)

// postImpl is the shared link behind a Sender. Implementations route a
// request to the goroutine owning the eventual target.
type postImpl[T any] interface {
	post(req Request[T])
	connected() bool
}

// Sender posts requests to the object behind a Receiver. Senders are cheap
// value types, freely copyable, and may outlive their Receiver: posting to a
// dead receiver enqueues a runnable that cleans up without invoking the
// request. The zero Sender discards all requests.
type Sender[T any] struct {
	impl postImpl[T]
}

// Post hands the request to the target's dispatcher. Callable from any
// goroutine; never blocks.
func (s Sender[T]) Post(req Request[T]) {
	if s.impl == nil || req == nil {
		return
	}
	s.impl.post(req)
}

// Connected reports whether the sender currently leads to a live target.
// The answer is advisory; the target may die between the check and a Post.
func (s Sender[T]) Connected() bool {
	return s.impl != nil && s.impl.connected()
}

// Convert derives a Sender[U] that reaches a sub-object of T. For each
// posted request the converter runs on the target goroutine; a converter
// error discards the request without invoking it and leaves the sender
// usable.
func Convert[T, U any](s Sender[T], conv func(*T) (*U, error)) Sender[U] {
	return Sender[U]{impl: &convertImpl[T, U]{parent: s, conv: conv}}
}

// MakeTemporary derives a Sender[U] that allocates a fresh U per posted
// request on the target goroutine, runs the request against it, and lets it
// go. Used for transient adapter objects bound to a single interaction. A
// factory error discards the request.
func MakeTemporary[T, U any](s Sender[T], factory func(*T) (*U, error)) Sender[U] {
	return Sender[U]{impl: &convertImpl[T, U]{parent: s, conv: factory}}
}

type convertImpl[T, U any] struct {
	parent Sender[T]
	conv   func(*T) (*U, error)
}

func (c *convertImpl[T, U]) post(req Request[U]) {
	c.parent.Post(func(t *T) {
		//1.- Resolve the sub-object on the target goroutine; failures are
		// recovered locally so the request simply never runs.
		u, err := c.conv(t)
		if err != nil || u == nil {
			zap.L().Debug("request dropped by converter", zap.Error(err))
			return
		}
		req(u)
	})
}

func (c *convertImpl[T, U]) connected() bool {
	return c.parent.Connected()
}
