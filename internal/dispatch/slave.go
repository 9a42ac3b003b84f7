package dispatch

import "sync/atomic"

// SlaveObject is a temporary sub-object paired with a master of type T. It
// is constructed on any goroutine, transferred to the master's goroutine,
// and lives there between Init and Done.
type SlaveObject[T any] interface {
	// Init pairs the slave with its master. Runs on the master's
	// goroutine, before the first request is handled.
	Init(master *T)
	// Done unpairs the slave. Runs on the master's goroutine, after the
	// last request was handled.
	Done(master *T)
}

// SlaveRequest is a one-shot operation against a master/slave pair.
type SlaveRequest[T any, S SlaveObject[T]] func(master *T, slave S)

// SlaveSender owns a slave object living on a master object's goroutine.
// Construction schedules Init, Close schedules Done; requests posted in
// between run against the pair, in order. If the master is already dead,
// none of Init, the requests, or Done ever run.
type SlaveSender[T any, S SlaveObject[T]] struct {
	sender Sender[T]
	slave  S
	closed atomic.Bool
}

// NewSlaveSender transfers the newly-allocated slave to the master's
// goroutine and schedules its Init call there.
func NewSlaveSender[T any, S SlaveObject[T]](sender Sender[T], slave S) *SlaveSender[T, S] {
	ss := &SlaveSender[T, S]{sender: sender, slave: slave}
	sender.Post(func(t *T) {
		slave.Init(t)
	})
	return ss
}

// Post schedules req against the master/slave pair. Requests posted after
// Close are dropped, keeping the init-handle-done ordering intact.
func (ss *SlaveSender[T, S]) Post(req SlaveRequest[T, S]) {
	if req == nil || ss.closed.Load() {
		return
	}
	ss.sender.Post(func(t *T) {
		req(t, ss.slave)
	})
}

// Close schedules the slave's Done call on the master's goroutine. Only the
// first call has an effect.
func (ss *SlaveSender[T, S]) Close() {
	if ss.closed.Swap(true) {
		return
	}
	ss.sender.Post(func(t *T) {
		ss.slave.Done(t)
	})
}
