package battle

// EventListener receives combat progress from the combat algorithm. The
// callbacks are self-contained: each carries everything an implementation
// needs to act without querying other state.
//
// A regular battle tick is a number of event callbacks followed by
// UpdateTime. PlaceObject is called exactly once per side at the start;
// UpdateObject, UpdateAmmo and UpdateFighter only appear after a
// discontinuity such as a jump, never during normal forward playback.
type EventListener interface {
	// PlaceObject opens the battle for one side.
	PlaceObject(side Side, info UnitInfo)

	// UpdateTime ends one battle tick.
	UpdateTime(time Time, distance int32)

	// StartFighter launches a fighter onto a track. fighterDiff is the
	// delta to the owning side's fighter count, typically -1.
	StartFighter(side Side, track, position, distance, fighterDiff int)

	// LandFighter returns a fighter to its base. fighterDiff is typically +1.
	LandFighter(side Side, track, fighterDiff int)

	// KillFighter destroys the fighter on the given track.
	KillFighter(side Side, track int)

	// FireBeam covers all four beam firings (unit/fighter at unit/fighter).
	// track >= 0 is a firing fighter's track; track < 0 encodes the firing
	// unit's beam slot as -1-track. target >= 0 is a fighter track on the
	// other side; target < 0 is the opposing unit. hit < 0 is a miss.
	// effect applies to the opposing side when a unit is hit.
	FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect)

	// FireTorpedo reports a torpedo launch; hit < 0 is a miss. effect
	// applies to the opposing side on a hit.
	FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect)

	// UpdateBeam reports a beam charge level in [0, 100].
	UpdateBeam(side Side, slot, value int)

	// UpdateLauncher reports a launcher charge level in [0, 100].
	UpdateLauncher(side Side, slot, value int)

	// MoveObject moves a unit.
	MoveObject(side Side, position int)

	// MoveFighter moves a fighter along its track.
	MoveFighter(side Side, track, position, distance int, status FighterStatus)

	// KillObject destroys a unit.
	KillObject(side Side)

	// UpdateObject resynchronizes unit status after a discontinuity.
	UpdateObject(side Side, damage, crew, shield int)

	// UpdateAmmo resynchronizes ammunition counts after a discontinuity.
	UpdateAmmo(side Side, numTorpedoes, numFighters int)

	// UpdateFighter resynchronizes one fighter track after a discontinuity;
	// FighterIdle marks the track unoccupied.
	UpdateFighter(side Side, track, position, distance int, status FighterStatus)

	// SetResult reports the final outcome; at most once per battle.
	SetResult(result ResultSet)

	// RemoveAnimations revokes any animation the listener has scheduled but
	// not yet presented, for use around discontinuities.
	RemoveAnimations()
}
