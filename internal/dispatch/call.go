package dispatch

// Call performs a synchronous round trip: it posts fn to the target's
// goroutine and pumps the caller's own dispatcher until the reply lands, so
// UI updates keep flowing during the wait. The reply always arrives after fn
// returned, on ui's goroutine.
//
// Call must run on the goroutine pumping ui. It returns false without
// running fn when the sender is no longer connected; if the target dies
// while the request is in flight, the pump keeps running until the
// dispatcher is closed.
func Call[T, R any](ui *QueueDispatcher, s Sender[T], fn func(*T) R) (R, bool) {
	type waiter struct {
		result R
		done   bool
	}
	var w waiter
	if !s.Connected() {
		return w.result, false
	}

	//1.- Bind a short-lived reply target to the caller's dispatcher.
	rx := NewReceiver(ui, &w)
	defer rx.Close()
	reply := rx.Sender()

	s.Post(func(t *T) {
		result := fn(t)
		reply.Post(func(w *waiter) {
			w.result = result
			w.done = true
		})
	})

	//2.- Pump our own event loop until the termination runnable posts.
	ui.RunUntil(func() bool { return w.done })
	return w.result, w.done
}
