package proxy

import (
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
)

// PrefsProxy bridges the session's preference editor to the UI goroutine.
// Reads are synchronous against a local cache; writes post through the
// session; remote changes are picked up through a debounced notifier and
// refresh the cache asynchronously.
type PrefsProxy struct {
	ui       *dispatch.QueueDispatcher
	session  dispatch.Sender[game.Session]
	receiver *dispatch.Receiver[PrefsProxy]
	slave    *dispatch.SlaveSender[game.Session, *prefsTrampoline]
	notifier *dispatch.ChangeNotifier

	values []game.PrefItem

	// OnChange, when set, runs on the UI goroutine after the cache was
	// refreshed because of a remote change.
	OnChange func(items []game.PrefItem)
}

// prefsTrampoline is the per-proxy slave holding the listener registration
// on the game goroutine.
type prefsTrampoline struct {
	notifier *dispatch.ChangeNotifier
	remove   func()
}

func (t *prefsTrampoline) Init(s *game.Session) {
	t.remove = s.Prefs.AddListener(func() {
		t.notifier.Trigger()
	})
}

func (t *prefsTrampoline) Done(s *game.Session) {
	if t.remove != nil {
		t.remove()
		t.remove = nil
	}
}

// NewPrefsProxy installs the trampoline on the session and binds change
// delivery to the UI dispatcher.
func NewPrefsProxy(ui *dispatch.QueueDispatcher, session dispatch.Sender[game.Session]) *PrefsProxy {
	p := &PrefsProxy{ui: ui, session: session}
	p.receiver = dispatch.NewReceiver(ui, p)
	p.notifier = dispatch.NewChangeNotifier(ui, p.refresh)
	p.slave = dispatch.NewSlaveSender[game.Session](session, &prefsTrampoline{notifier: p.notifier})
	return p
}

// LoadValues synchronously fetches the preference list and installs it as
// the local cache. It pumps the UI dispatcher while waiting.
func (p *PrefsProxy) LoadValues() bool {
	items, ok := dispatch.Call(p.ui, p.session, func(s *game.Session) []game.PrefItem {
		return s.Prefs.Items()
	})
	if ok {
		p.values = items
	}
	return ok
}

// Values returns the cached preference list.
func (p *PrefsProxy) Values() []game.PrefItem {
	return p.values
}

// SetValue asynchronously updates one preference. The local cache follows
// once the change notification arrives.
func (p *PrefsProxy) SetValue(key, value string) {
	p.slave.Post(func(s *game.Session, t *prefsTrampoline) {
		s.Prefs.SetValue(key, value)
	})
}

// Close tears down the trampoline and stops change delivery.
func (p *PrefsProxy) Close() {
	p.slave.Close()
	p.notifier.Close()
	p.receiver.Close()
}

// refresh runs on the UI goroutine after a change notification; it re-reads
// the full list asynchronously, as notifications are debounced and carry no
// payload.
func (p *PrefsProxy) refresh() {
	reply := p.receiver.Sender()
	p.session.Post(func(s *game.Session) {
		items := s.Prefs.Items()
		reply.Post(func(self *PrefsProxy) {
			self.values = items
			if self.OnChange != nil {
				self.OnChange(items)
			}
		})
	})
}
