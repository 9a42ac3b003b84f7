// Package game hosts the game-thread side of the client: the session master
// object that receivers bind to, recorded battles, and the bookkeeping
// needed to stream and resume their playback.
package game

import (
	"go.uber.org/zap"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/instructionlist"
)

// Session is the master object living on the game goroutine. UI-side
// proxies reach it through a Sender; per-dialog state attaches to it as
// slave objects.
type Session struct {
	Log   *zap.Logger
	Prefs *PrefsEditor

	battles []*Battle
}

// NewSession returns an empty session.
func NewSession(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		Log:   log.Named("session"),
		Prefs: NewPrefsEditor(),
	}
}

// AddBattle registers a recorded battle and returns its index.
func (s *Session) AddBattle(b *Battle) int {
	s.battles = append(s.battles, b)
	return len(s.battles) - 1
}

// NumBattles returns the number of registered battles.
func (s *Session) NumBattles() int {
	return len(s.battles)
}

// Battle returns the battle at the given index.
func (s *Session) Battle(index int) (*Battle, bool) {
	if index < 0 || index >= len(s.battles) {
		return nil, false
	}
	return s.battles[index], true
}

// Battle is a finished combat recording: the master tape of every event the
// combat algorithm reported, plus the derived time range.
type Battle struct {
	master   instructionlist.StringInstructionList
	lastTime battle.Time
}

// RecordBattle runs the given combat script against a recorder and keeps
// the resulting tape. It fails when the recording aborted.
func RecordBattle(script func(battle.EventListener)) (*Battle, error) {
	recorder := battle.NewEventRecorder()
	script(recorder)
	if err := recorder.Err(); err != nil {
		return nil, err
	}

	b := &Battle{}
	recorder.SwapContent(&b.master)

	//1.- Derive the final tick so producers know when the tape ends.
	var probe timeProbe
	battle.ReplayList(&b.master, &probe)
	b.lastTime = probe.last
	return b, nil
}

// LoadBattle wraps an already-serialized tape, as read from a replay
// archive or received over the wire.
func LoadBattle(list *instructionlist.StringInstructionList) *Battle {
	b := &Battle{}
	b.master.Swap(list)
	var probe timeProbe
	battle.ReplayList(&b.master, &probe)
	b.lastTime = probe.last
	return b
}

// LastTime returns the time of the final battle tick.
func (b *Battle) LastTime() battle.Time {
	return b.lastTime
}

// Replay scans the whole tape into the listener without consuming it.
func (b *Battle) Replay(listener battle.EventListener) {
	battle.ReplayList(&b.master, listener)
}

// Tape exposes the underlying recording for persistence.
func (b *Battle) Tape() *instructionlist.StringInstructionList {
	return &b.master
}

// timeProbe extracts the last tick time from a tape.
type timeProbe struct {
	NullListener
	last battle.Time
}

func (p *timeProbe) UpdateTime(time battle.Time, distance int32) {
	p.last = time
}
