package game

import (
	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/instructionlist"
)

// TickWindow slices a battle tape by time. Events of ticks inside
// [from, to) are forwarded to out; ticks before the window go to the
// optional pre listener (typically a StateTracker rebuilding context);
// ticks at or past the window end are dropped.
//
// Events precede the UpdateTime call closing their tick, so each tick is
// buffered until its time is known.
type TickWindow struct {
	out        battle.EventListener
	pre        battle.EventListener
	from, to   battle.Time
	placements bool

	buf       *battle.EventRecorder
	delivered int
	lastSeen  battle.Time
}

// NewTickWindow builds a window over [from, to). When placements is true,
// unit placements are forwarded to out; otherwise they go to pre.
func NewTickWindow(out battle.EventListener, from, to battle.Time, placements bool, pre battle.EventListener) *TickWindow {
	return &TickWindow{
		out:        out,
		pre:        pre,
		from:       from,
		to:         to,
		placements: placements,
		buf:        battle.NewEventRecorder(),
	}
}

// Delivered returns the number of ticks forwarded to out.
func (w *TickWindow) Delivered() int {
	return w.delivered
}

// LastSeen returns the last tick time encountered on the tape.
func (w *TickWindow) LastSeen() battle.Time {
	return w.lastSeen
}

func (w *TickWindow) PlaceObject(side battle.Side, info battle.UnitInfo) {
	if w.placements {
		w.out.PlaceObject(side, info)
	} else if w.pre != nil {
		w.pre.PlaceObject(side, info)
	}
}

// UpdateTime closes the buffered tick and routes it.
func (w *TickWindow) UpdateTime(time battle.Time, distance int32) {
	w.lastSeen = time
	switch {
	case time < w.from:
		if w.pre != nil {
			w.flushTo(w.pre)
			w.pre.UpdateTime(time, distance)
		} else {
			w.discard()
		}
	case time < w.to:
		w.flushTo(w.out)
		w.out.UpdateTime(time, distance)
		w.delivered++
	default:
		w.discard()
	}
}

func (w *TickWindow) flushTo(target battle.EventListener) {
	var list instructionlist.StringInstructionList
	w.buf.SwapContent(&list)
	battle.ReplayList(&list, target)
}

func (w *TickWindow) discard() {
	var list instructionlist.StringInstructionList
	w.buf.SwapContent(&list)
}

// The remaining callbacks buffer into the current tick.

func (w *TickWindow) StartFighter(side battle.Side, track, position, distance, fighterDiff int) {
	w.buf.StartFighter(side, track, position, distance, fighterDiff)
}

func (w *TickWindow) LandFighter(side battle.Side, track, fighterDiff int) {
	w.buf.LandFighter(side, track, fighterDiff)
}

func (w *TickWindow) KillFighter(side battle.Side, track int) {
	w.buf.KillFighter(side, track)
}

func (w *TickWindow) FireBeam(side battle.Side, track, target, hit, damage, kill int, effect battle.HitEffect) {
	w.buf.FireBeam(side, track, target, hit, damage, kill, effect)
}

func (w *TickWindow) FireTorpedo(side battle.Side, hit, launcher, torpedoDiff int, effect battle.HitEffect) {
	w.buf.FireTorpedo(side, hit, launcher, torpedoDiff, effect)
}

func (w *TickWindow) UpdateBeam(side battle.Side, slot, value int) {
	w.buf.UpdateBeam(side, slot, value)
}

func (w *TickWindow) UpdateLauncher(side battle.Side, slot, value int) {
	w.buf.UpdateLauncher(side, slot, value)
}

func (w *TickWindow) MoveObject(side battle.Side, position int) {
	w.buf.MoveObject(side, position)
}

func (w *TickWindow) MoveFighter(side battle.Side, track, position, distance int, status battle.FighterStatus) {
	w.buf.MoveFighter(side, track, position, distance, status)
}

func (w *TickWindow) KillObject(side battle.Side) {
	w.buf.KillObject(side)
}

func (w *TickWindow) UpdateObject(side battle.Side, damage, crew, shield int) {
	w.buf.UpdateObject(side, damage, crew, shield)
}

func (w *TickWindow) UpdateAmmo(side battle.Side, numTorpedoes, numFighters int) {
	w.buf.UpdateAmmo(side, numTorpedoes, numFighters)
}

func (w *TickWindow) UpdateFighter(side battle.Side, track, position, distance int, status battle.FighterStatus) {
	w.buf.UpdateFighter(side, track, position, distance, status)
}

func (w *TickWindow) SetResult(result battle.ResultSet) {
	w.buf.SetResult(result)
}

func (w *TickWindow) RemoveAnimations() {
	w.buf.RemoveAnimations()
}
