package battle

import "testing"

// eventCollector records everything a scheduler pushes.
type eventCollector struct {
	placements []Side
	events     []ScheduledEvent
	removed    [][2]int32
}

func (c *eventCollector) PlaceObject(side Side, info UnitInfo) {
	c.placements = append(c.placements, side)
}

func (c *eventCollector) PushEvent(e ScheduledEvent) {
	c.events = append(c.events, e)
}

func (c *eventCollector) RemoveAnimations(from, to int32) {
	c.removed = append(c.removed, [2]int32{from, to})
}

func checkEvents(t *testing.T, got []ScheduledEvent, want []ScheduledEvent) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTraditionalBeamShipShip(t *testing.T) {
	var sink eventCollector
	s := NewTraditionalScheduler(&sink)

	//1.- A ship beam from slot 9 (track -10) hitting the opposing unit.
	s.FireBeam(RightSide, -10, -3, 50, 10, 10, HitEffect{DamageDone: 2, CrewKilled: 3, ShieldLost: 4})
	s.UpdateTime(500, 3000)

	const anim = traditionalAnimationID
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(FireBeamShipShip, RightSide, 9, anim),
		Event(WaitAnimation, RightSide, anim),
		Event(HitObject, LeftSide, 2, 3, 4, anim),
		Event(WaitAnimation, LeftSide, anim),
		Event(UpdateTime, LeftSide, 500),
		Event(UpdateDistance, LeftSide, 3000),
		Event(WaitTick, LeftSide),
	})
}

func TestTraditionalBeamMissSkipsHit(t *testing.T) {
	var sink eventCollector
	s := NewTraditionalScheduler(&sink)

	s.FireBeam(LeftSide, -1, -1, -1, 10, 10, HitEffect{})

	const anim = traditionalAnimationID
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(FireBeamShipShip, LeftSide, 0, anim),
		Event(WaitAnimation, LeftSide, anim),
	})
}

func TestTraditionalWaitPerWeaponEvent(t *testing.T) {
	var sink eventCollector
	s := NewTraditionalScheduler(&sink)

	//1.- Every weapon event carries exactly one wait; hits add their own.
	s.FireBeam(LeftSide, 3, 5, -1, 1, 1, HitEffect{})
	s.FireTorpedo(RightSide, 10, 2, -1, HitEffect{DamageDone: 1})

	waits := 0
	for _, e := range sink.events {
		if e.Type == WaitAnimation {
			waits++
		}
	}
	// One for the fighter beam, one for the torpedo, one for its hit.
	if waits != 3 {
		t.Fatalf("expected 3 waits, got %d (%v)", waits, sink.events)
	}
}

func TestTraditionalFighterLifecycle(t *testing.T) {
	var sink eventCollector
	s := NewTraditionalScheduler(&sink)

	s.StartFighter(LeftSide, 4, 100, 20, -1)
	s.LandFighter(LeftSide, 4, 1)
	s.KillFighter(RightSide, 2)

	const anim = traditionalAnimationID
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(StartFighter, LeftSide, 4, 100, 20),
		Event(UpdateNumFighters, LeftSide, -1),
		Event(RemoveFighter, LeftSide, 4),
		Event(UpdateNumFighters, LeftSide, 1),
		Event(ExplodeFighter, RightSide, 2, anim),
		Event(RemoveFighter, RightSide, 2),
		Event(WaitAnimation, RightSide, anim),
	})
}

func TestTraditionalRemoveAnimations(t *testing.T) {
	var sink eventCollector
	s := NewTraditionalScheduler(&sink)
	s.RemoveAnimations()
	if len(sink.removed) != 1 || sink.removed[0] != [2]int32{traditionalAnimationID, traditionalAnimationID} {
		t.Fatalf("expected the single shared id revoked, got %v", sink.removed)
	}
}

func TestStandardBatchesPerTick(t *testing.T) {
	var sink eventCollector
	s := NewStandardScheduler(&sink)

	//1.- Both sides fire within the same tick; firings group before the
	// effects, with one wait per group.
	effect := HitEffect{DamageDone: 2, CrewKilled: 3, ShieldLost: 4}
	s.FireBeam(RightSide, -10, -1, 50, 10, 10, effect)
	s.FireBeam(LeftSide, -1, -1, 50, 10, 10, effect)
	s.UpdateTime(500, 3000)

	const anim = standardAnimationID
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(FireBeamShipShip, RightSide, 9, anim),
		Event(FireBeamShipShip, LeftSide, 0, anim),
		Event(WaitAnimation, LeftSide, anim),
		Event(HitObject, LeftSide, 2, 3, 4, anim),
		Event(HitObject, RightSide, 2, 3, 4, anim),
		Event(WaitAnimation, LeftSide, anim),
		Event(UpdateTime, LeftSide, 500),
		Event(UpdateDistance, LeftSide, 3000),
		Event(WaitTick, LeftSide),
	})
}

func TestStandardQuietTickHasNoWaits(t *testing.T) {
	var sink eventCollector
	s := NewStandardScheduler(&sink)

	s.UpdateTime(1, 5000)
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(UpdateTime, LeftSide, 1),
		Event(UpdateDistance, LeftSide, 5000),
		Event(WaitTick, LeftSide),
	})
}

func TestStandardBuffersClearBetweenTicks(t *testing.T) {
	var sink eventCollector
	s := NewStandardScheduler(&sink)

	s.MoveObject(LeftSide, 7)
	s.UpdateTime(1, 100)
	sink.events = nil

	//1.- The second tick must not replay the first tick's move.
	s.UpdateTime(2, 100)
	checkEvents(t, sink.events, []ScheduledEvent{
		Event(UpdateTime, LeftSide, 2),
		Event(UpdateDistance, LeftSide, 100),
		Event(WaitTick, LeftSide),
	})
}

func TestInterleavedTorpedoPipeline(t *testing.T) {
	var sink eventCollector
	s := NewInterleavedScheduler(&sink)

	//1.- One torpedo, then drain the ring via the final result.
	s.FireTorpedo(RightSide, 10, 5, -1, HitEffect{DamageDone: 20, CrewKilled: 30, ShieldLost: 40})
	s.UpdateTime(500, 3000)
	s.SetResult(ResultSetOf(LeftDestroyed))
	s.UpdateTime(501, 3000)

	checkEvents(t, sink.events, []ScheduledEvent{
		// The torpedo group was parked three frames ahead, so it
		// surfaces first: the weapon visibly fires early.
		Event(FireTorpedo, RightSide, 5, 10, 1, torpedoFlightTicks),
		Event(UpdateNumTorpedoes, RightSide, -1),
		Event(BlockLauncher, RightSide, 5),
		// Three shifts later the present catches up: wait for the
		// flight, recharge, and land the hit.
		Event(WaitAnimation, RightSide, 1),
		Event(UnblockLauncher, RightSide, 5),
		Event(HitObject, LeftSide, 20, 30, 40, 2),
		Event(UpdateTime, LeftSide, 500),
		Event(UpdateDistance, LeftSide, 3000),
		Event(WaitTick, LeftSide),
		Event(SetResult, LeftSide, ResultSetOf(LeftDestroyed).Encode()),
		Event(UpdateTime, LeftSide, 501),
		Event(UpdateDistance, LeftSide, 3000),
		Event(WaitTick, LeftSide),
		// The hit's wait was parked in the most-future frame and drains
		// last.
		Event(WaitAnimation, LeftSide, 2),
	})
}

func TestInterleavedShipBeamLeadsByTwoFrames(t *testing.T) {
	var sink eventCollector
	s := NewInterleavedScheduler(&sink)

	s.FireBeam(LeftSide, -3, -1, -1, 10, 10, HitEffect{})
	s.SetResult(ResultSetOf(RightDestroyed))
	s.UpdateTime(9, 100)

	checkEvents(t, sink.events, []ScheduledEvent{
		Event(FireBeamShipShip, LeftSide, 2, 1),
		Event(BlockBeam, LeftSide, 2),
		Event(WaitAnimation, LeftSide, 1),
		Event(UnblockBeam, LeftSide, 2),
		Event(SetResult, LeftSide, ResultSetOf(RightDestroyed).Encode()),
		Event(UpdateTime, LeftSide, 9),
		Event(UpdateDistance, LeftSide, 100),
		Event(WaitTick, LeftSide),
	})
}

func TestInterleavedRemoveAnimationsResetsCounter(t *testing.T) {
	var sink eventCollector
	s := NewInterleavedScheduler(&sink)

	s.FireTorpedo(LeftSide, 1, 0, -1, HitEffect{DamageDone: 1})
	s.KillFighter(RightSide, 3)
	s.RemoveAnimations()

	//1.- Three ids were issued; the revocation covers them all at once.
	if len(sink.removed) != 1 || sink.removed[0] != [2]int32{FirstAnimationID, 3} {
		t.Fatalf("expected range [1,3] revoked, got %v", sink.removed)
	}

	//2.- The counter restarts, so the next animation reuses the first id.
	sink.removed = nil
	s.KillFighter(RightSide, 4)
	s.RemoveAnimations()
	if len(sink.removed) != 1 || sink.removed[0] != [2]int32{FirstAnimationID, FirstAnimationID} {
		t.Fatalf("expected range [1,1] after reset, got %v", sink.removed)
	}
}

func TestInterleavedRemoveAnimationsWithoutIssuedIds(t *testing.T) {
	var sink eventCollector
	s := NewInterleavedScheduler(&sink)
	s.RemoveAnimations()
	if len(sink.removed) != 0 {
		t.Fatalf("nothing was issued, nothing to revoke: %v", sink.removed)
	}
}

func TestSchedulersForwardPlacement(t *testing.T) {
	info := UnitInfo{Name: "Bird of Prey"}
	for _, build := range []func(ScheduledEventConsumer) EventListener{
		func(c ScheduledEventConsumer) EventListener { return NewTraditionalScheduler(c) },
		func(c ScheduledEventConsumer) EventListener { return NewStandardScheduler(c) },
		func(c ScheduledEventConsumer) EventListener { return NewInterleavedScheduler(c) },
	} {
		var sink eventCollector
		s := build(&sink)
		s.PlaceObject(LeftSide, info)
		s.PlaceObject(RightSide, info)
		if len(sink.placements) != 2 || sink.placements[0] != LeftSide || sink.placements[1] != RightSide {
			t.Fatalf("placement must be forwarded as-is, got %v", sink.placements)
		}
		if len(sink.events) != 0 {
			t.Fatalf("placement must not push events, got %v", sink.events)
		}
	}
}
