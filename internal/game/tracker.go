package game

import (
	"sort"

	"stellarsiege/client/internal/battle"
)

// trackedFighter is one live fighter track.
type trackedFighter struct {
	position int
	distance int
	status   battle.FighterStatus
}

// trackedUnit accumulates one side's observable state.
type trackedUnit struct {
	placed   bool
	info     battle.UnitInfo
	damage   int
	crew     int
	shield   int
	torps    int
	fighters int
	position int
	tracks   map[int]*trackedFighter
}

// StateTracker consumes combat events and maintains the state a viewer
// would observe, so that a producer landing after a jump can resynchronize
// the consumer with absolute values.
type StateTracker struct {
	units [2]trackedUnit
	time  battle.Time
}

// NewStateTracker returns a tracker with no units placed yet.
func NewStateTracker() *StateTracker {
	t := &StateTracker{}
	for i := range t.units {
		t.units[i].tracks = make(map[int]*trackedFighter)
	}
	return t
}

// Time returns the last tick the tracker has consumed.
func (t *StateTracker) Time() battle.Time {
	return t.time
}

// Placed reports whether the side's unit has been placed.
func (t *StateTracker) Placed(side battle.Side) bool {
	return t.unit(side).placed
}

// EmitState replays the tracked state into a listener as a placement
// followed by the resync callbacks reserved for discontinuities.
func (t *StateTracker) EmitState(listener battle.EventListener) {
	for _, side := range []battle.Side{battle.LeftSide, battle.RightSide} {
		u := t.unit(side)
		if !u.placed {
			continue
		}
		info := u.info
		info.Position = u.position
		listener.PlaceObject(side, info)
		listener.UpdateObject(side, u.damage, u.crew, u.shield)
		listener.UpdateAmmo(side, u.torps, u.fighters)
		tracks := make([]int, 0, len(u.tracks))
		for track := range u.tracks {
			tracks = append(tracks, track)
		}
		sort.Ints(tracks)
		for _, track := range tracks {
			f := u.tracks[track]
			listener.UpdateFighter(side, track, f.position, f.distance, f.status)
		}
	}
}

func (t *StateTracker) unit(side battle.Side) *trackedUnit {
	return &t.units[side&1]
}

// EventListener implementation.

func (t *StateTracker) PlaceObject(side battle.Side, info battle.UnitInfo) {
	u := t.unit(side)
	u.placed = true
	u.info = info
	u.damage = info.Damage
	u.crew = info.Crew
	u.shield = info.Shield
	u.torps = info.NumTorpedoes
	u.fighters = info.NumFighters
	u.position = info.Position
	u.tracks = make(map[int]*trackedFighter)
}

func (t *StateTracker) UpdateTime(time battle.Time, distance int32) {
	t.time = time
}

func (t *StateTracker) StartFighter(side battle.Side, track, position, distance, fighterDiff int) {
	u := t.unit(side)
	u.fighters += fighterDiff
	u.tracks[track] = &trackedFighter{position: position, distance: distance, status: battle.FighterAttacks}
}

func (t *StateTracker) LandFighter(side battle.Side, track, fighterDiff int) {
	u := t.unit(side)
	u.fighters += fighterDiff
	delete(u.tracks, track)
}

func (t *StateTracker) KillFighter(side battle.Side, track int) {
	delete(t.unit(side).tracks, track)
}

func (t *StateTracker) FireBeam(side battle.Side, track, target, hit, damage, kill int, effect battle.HitEffect) {
	//1.- Only a hit against the opposing unit changes observable state.
	if hit >= 0 && target < 0 {
		t.applyHit(side.Opposite(), effect)
	}
}

func (t *StateTracker) FireTorpedo(side battle.Side, hit, launcher, torpedoDiff int, effect battle.HitEffect) {
	u := t.unit(side)
	u.torps += torpedoDiff
	if hit >= 0 {
		t.applyHit(side.Opposite(), effect)
	}
}

func (t *StateTracker) UpdateBeam(side battle.Side, slot, value int)     {}
func (t *StateTracker) UpdateLauncher(side battle.Side, slot, value int) {}

func (t *StateTracker) MoveObject(side battle.Side, position int) {
	t.unit(side).position = position
}

func (t *StateTracker) MoveFighter(side battle.Side, track, position, distance int, status battle.FighterStatus) {
	if f, ok := t.unit(side).tracks[track]; ok {
		f.position = position
		f.distance = distance
		f.status = status
	}
}

func (t *StateTracker) KillObject(side battle.Side) {}

func (t *StateTracker) UpdateObject(side battle.Side, damage, crew, shield int) {
	u := t.unit(side)
	u.damage = damage
	u.crew = crew
	u.shield = shield
}

func (t *StateTracker) UpdateAmmo(side battle.Side, numTorpedoes, numFighters int) {
	u := t.unit(side)
	u.torps = numTorpedoes
	u.fighters = numFighters
}

func (t *StateTracker) UpdateFighter(side battle.Side, track, position, distance int, status battle.FighterStatus) {
	u := t.unit(side)
	if status == battle.FighterIdle {
		delete(u.tracks, track)
		return
	}
	u.tracks[track] = &trackedFighter{position: position, distance: distance, status: status}
}

func (t *StateTracker) SetResult(result battle.ResultSet) {}
func (t *StateTracker) RemoveAnimations()                 {}

func (t *StateTracker) applyHit(side battle.Side, effect battle.HitEffect) {
	u := t.unit(side)
	u.damage += effect.DamageDone
	u.crew -= effect.CrewKilled
	u.shield -= effect.ShieldLost
	if u.shield < 0 {
		u.shield = 0
	}
	if u.crew < 0 {
		u.crew = 0
	}
}
