package proxy

import (
	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
	"stellarsiege/client/internal/instructionlist"
)

// EventsHandler receives each event bundle on the UI goroutine. The list is
// the handler's to consume; finish reports the end of the fight.
type EventsHandler func(list *instructionlist.StringInstructionList, finish bool)

// PlayerProxy is the UI-side handle on a Player slave. It satisfies the
// playback controller's Producer contract: requests go out asynchronously,
// replies arrive through the events handler on the UI dispatcher.
type PlayerProxy struct {
	receiver *dispatch.Receiver[PlayerProxy]
	slave    *dispatch.SlaveSender[game.Session, *Player]
	onEvents EventsHandler
}

// NewPlayerProxy attaches a fresh Player to the session and routes its
// replies onto the given UI dispatcher.
func NewPlayerProxy(ui dispatch.Dispatcher, session dispatch.Sender[game.Session], onEvents EventsHandler) *PlayerProxy {
	p := &PlayerProxy{onEvents: onEvents}
	p.receiver = dispatch.NewReceiver(ui, p)
	p.slave = dispatch.NewSlaveSender[game.Session](session, NewPlayer(p.receiver.Sender()))
	return p
}

// RequestInit selects the battle to play and fetches the unit placements.
func (p *PlayerProxy) RequestInit(index int) {
	p.slave.Post(func(s *game.Session, pl *Player) {
		pl.initRequest(s, index)
	})
}

// RequestEvents fetches the next bundle. Implements playback.Producer.
func (p *PlayerProxy) RequestEvents() {
	p.slave.Post(func(s *game.Session, pl *Player) {
		pl.eventRequest(s)
	})
}

// RequestJump fetches events starting at the given time, preceded by a
// state resynchronization. Implements playback.Producer.
func (p *PlayerProxy) RequestJump(t battle.Time) {
	p.slave.Post(func(s *game.Session, pl *Player) {
		pl.jumpRequest(s, t)
	})
}

// Close detaches the proxy; in-flight replies are dropped.
func (p *PlayerProxy) Close() {
	p.slave.Close()
	p.receiver.Close()
}

func (p *PlayerProxy) deliver(list *instructionlist.StringInstructionList, finish bool) {
	if p.onEvents != nil {
		p.onEvents(list, finish)
	}
}
