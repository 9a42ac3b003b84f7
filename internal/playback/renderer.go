// Package playback drives combat visualization: it buffers scheduled events
// arriving from the game goroutine and replays them against an animation
// engine under a state machine that handles buffering, jumps, and the end of
// the fight.
package playback

import "stellarsiege/client/internal/battle"

// Renderer is the animation engine the controller feeds. Implementations
// draw; the controller never assumes anything about their internals beyond
// the animation-id bookkeeping.
type Renderer interface {
	// Ready reports whether the renderer can accept placements. It is
	// checked when a reply arrives in the controller's initial state: while
	// it reports false, the controller stays in that state, unless the reply
	// is final, which starts draining.
	Ready() bool

	PlaceObject(side battle.Side, info battle.UnitInfo)
	UpdateTime(time battle.Time)
	UpdateDistance(distance int32)
	MoveObject(side battle.Side, position int32)

	StartFighter(side battle.Side, track, position, distance int32)
	RemoveFighter(side battle.Side, track int32)
	MoveFighter(side battle.Side, track, position, distance, status int32)
	UpdateFighter(side battle.Side, track, position, distance, status int32)
	ExplodeFighter(side battle.Side, track, animID int32)

	FireBeamShipFighter(side battle.Side, targetTrack, beamSlot, animID int32)
	FireBeamShipShip(side battle.Side, beamSlot, animID int32)
	FireBeamFighterShip(side battle.Side, track, animID int32)
	FireBeamFighterFighter(side battle.Side, track, targetTrack, animID int32)
	FireTorpedo(side battle.Side, launcher, hit, animID, duration int32)

	HitObject(side battle.Side, damageDone, crewKilled, shieldLost, animID int32)
	SetResult(result battle.ResultSet)
	SetResultVisible(visible bool)

	// HasAnimation reports whether the animation is still running. An
	// unknown id reports false so waits never deadlock.
	HasAnimation(id int32) bool
	// RemoveAnimations revokes every not-yet-presented animation whose id
	// lies in the inclusive range.
	RemoveAnimations(from, to int32)
	// Tick advances and flushes the animation engine by one display frame.
	Tick()
}
