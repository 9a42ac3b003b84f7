// Package proxy contains the UI-side proxies that reach the game session
// across the thread boundary: the combat event player and the preference
// editor bridge.
package proxy

import (
	"go.uber.org/zap"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/dispatch"
	"stellarsiege/client/internal/game"
	"stellarsiege/client/internal/instructionlist"
)

// TimePerRequest is the number of battle ticks delivered per event bundle.
// A busy tick can produce a few hundred events, keeping a bundle of this
// size comfortably within one transport frame.
const TimePerRequest = 100

// Player is the per-playback slave object living on the game goroutine. It
// streams a battle tape in bundles, answering each request by posting the
// recorded events plus a finish flag back through the reply sender.
type Player struct {
	reply    dispatch.Sender[PlayerProxy]
	battle   *game.Battle
	nextTime battle.Time
}

// NewPlayer builds the slave; it starts producing once paired with the
// session and told which battle to play.
func NewPlayer(reply dispatch.Sender[PlayerProxy]) *Player {
	return &Player{reply: reply}
}

// Init implements dispatch.SlaveObject.
func (p *Player) Init(s *game.Session) {}

// Done implements dispatch.SlaveObject.
func (p *Player) Done(s *game.Session) {
	p.battle = nil
}

// initRequest selects a battle and answers with the unit placements.
func (p *Player) initRequest(s *game.Session, index int) {
	b, ok := s.Battle(index)
	if !ok {
		s.Log.Warn("playback init for unknown battle", zap.Int("index", index))
		p.battle = nil
		p.send(battle.NewEventRecorder(), true)
		return
	}
	p.battle = b
	p.nextTime = 0

	//1.- The initial reply sets up the units but does not fight yet.
	response := battle.NewEventRecorder()
	window := game.NewTickWindow(response, 0, 0, true, nil)
	b.Replay(window)
	p.send(response, b.LastTime() == 0)
}

// eventRequest answers with the next TimePerRequest ticks.
func (p *Player) eventRequest(s *game.Session) {
	if p.battle == nil {
		p.send(battle.NewEventRecorder(), true)
		return
	}
	from := p.nextTime
	to := from + TimePerRequest
	response := battle.NewEventRecorder()
	window := game.NewTickWindow(response, from, to, false, nil)
	p.battle.Replay(window)
	p.nextTime = to
	p.send(response, to > p.battle.LastTime())
}

// jumpRequest rebuilds state at the target time and answers with the
// resynchronization prologue followed by events from there.
func (p *Player) jumpRequest(s *game.Session, target battle.Time) {
	if p.battle == nil {
		p.send(battle.NewEventRecorder(), true)
		return
	}
	if target < 0 {
		target = 0
	}
	from := target
	to := from + TimePerRequest

	//1.- Scan the tape once: pre-window ticks rebuild the tracker, the
	// window itself lands in a staging recorder.
	tracker := game.NewStateTracker()
	staged := battle.NewEventRecorder()
	window := game.NewTickWindow(staged, from, to, false, tracker)
	p.battle.Replay(window)

	//2.- The reply opens with placements and absolute state, then the
	// window content.
	response := battle.NewEventRecorder()
	tracker.EmitState(response)
	var stagedList instructionlist.StringInstructionList
	staged.SwapContent(&stagedList)
	battle.ReplayList(&stagedList, response)

	p.nextTime = to
	p.send(response, to > p.battle.LastTime())
}

func (p *Player) send(response *battle.EventRecorder, finish bool) {
	var list instructionlist.StringInstructionList
	response.SwapContent(&list)
	p.reply.Post(func(proxy *PlayerProxy) {
		proxy.deliver(&list, finish)
	})
}
