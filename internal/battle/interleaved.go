package battle

const (
	// numFrames is the depth of the scheduling ring. Lower indices are
	// further in the future: index 0 is the most-future frame, and each
	// shift flushes index numFrames-1 and moves every frame one index up.
	numFrames = 10

	// frameNow is "the present" inside the ring, two frames behind the
	// most-future frame 0 where the waits are parked.
	frameNow = 2

	// FirstAnimationID is where the interleaved id counter starts.
	FirstAnimationID = 1
)

// frame holds the two ordered event lists of one ring slot.
type frame struct {
	pre  []ScheduledEvent
	post []ScheduledEvent
}

// InterleavedScheduler shuffles events across time to increase apparent
// activity density: weapons visibly fire ahead of their effect, so a torpedo
// launched now reaches its target a few ticks later without the consumer
// knowing any trajectory physics. Fresh animation ids pair each firing with
// the wait that stalls on its visual.
type InterleavedScheduler struct {
	consumer         ScheduledEventConsumer
	queue            [numFrames]frame
	animationCounter int32
	finished         bool
}

// NewInterleavedScheduler attaches the scheduler to its consumer.
func NewInterleavedScheduler(consumer ScheduledEventConsumer) *InterleavedScheduler {
	return &InterleavedScheduler{consumer: consumer, animationCounter: FirstAnimationID}
}

func (s *InterleavedScheduler) nextAnimation() int32 {
	id := s.animationCounter
	s.animationCounter++
	return id
}

func (s *InterleavedScheduler) PlaceObject(side Side, info UnitInfo) {
	s.finished = false
	s.consumer.PlaceObject(side, info)
}

func (s *InterleavedScheduler) UpdateTime(time Time, distance int32) {
	now := &s.queue[frameNow]
	now.post = append(now.post, Event(UpdateTime, LeftSide, time))
	now.post = append(now.post, Event(UpdateDistance, LeftSide, distance))
	now.post = append(now.post, Event(WaitTick, LeftSide))
	s.shift()
}

func (s *InterleavedScheduler) StartFighter(side Side, track, position, distance, fighterDiff int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(StartFighter, side, int32(track), int32(position), int32(distance)))
	now.pre = append(now.pre, Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *InterleavedScheduler) LandFighter(side Side, track, fighterDiff int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(RemoveFighter, side, int32(track)))
	now.pre = append(now.pre, Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *InterleavedScheduler) KillFighter(side Side, track int) {
	//1.- The explosion renders now; the wait that keeps it on screen is
	// parked in the most-future frame to defer the visible disappearance.
	id := s.nextAnimation()
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(ExplodeFighter, side, int32(track), id))
	now.pre = append(now.pre, Event(RemoveFighter, side, int32(track)))
	s.queue[0].pre = append(s.queue[0].pre, Event(WaitAnimation, side, id))
}

func (s *InterleavedScheduler) FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect) {
	if track < 0 {
		beamSlot := int32(-1 - track)
		if target < 0 {
			id := s.nextAnimation()
			ahead := &s.queue[frameNow+2]
			ahead.pre = append(ahead.pre, Event(FireBeamShipShip, side, beamSlot, id))
			ahead.pre = append(ahead.pre, Event(BlockBeam, side, beamSlot))
			now := &s.queue[frameNow]
			now.pre = append(now.pre, Event(WaitAnimation, side, id))
			now.pre = append(now.pre, Event(UnblockBeam, side, beamSlot))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			id := s.nextAnimation()
			ahead := &s.queue[frameNow+2]
			ahead.pre = append(ahead.pre, Event(FireBeamShipFighter, side, int32(target), beamSlot, id))
			ahead.pre = append(ahead.pre, Event(BlockBeam, side, beamSlot))
			now := &s.queue[frameNow]
			now.pre = append(now.pre, Event(WaitAnimation, side, id))
			now.pre = append(now.pre, Event(UnblockBeam, side, beamSlot))
		}
	} else {
		// Fighter-fired beams queue one frame closer than ship-fired
		// ones; fighters themselves only appear at the present, so their
		// beams cannot lead as far.
		if target < 0 {
			id := s.nextAnimation()
			ahead := &s.queue[frameNow+1]
			ahead.pre = append(ahead.pre, Event(FireBeamFighterShip, side, int32(track), id))
			s.queue[frameNow].pre = append(s.queue[frameNow].pre, Event(WaitAnimation, side, id))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			id := s.nextAnimation()
			ahead := &s.queue[frameNow+1]
			ahead.pre = append(ahead.pre, Event(FireBeamFighterFighter, side, int32(track), int32(target), id))
			s.queue[frameNow].pre = append(s.queue[frameNow].pre, Event(WaitAnimation, side, id))
		}
	}
}

func (s *InterleavedScheduler) FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect) {
	id := s.nextAnimation()
	ahead := &s.queue[frameNow+3]
	ahead.pre = append(ahead.pre, Event(FireTorpedo, side, int32(launcher), int32(hit), id, torpedoFlightTicks))
	ahead.pre = append(ahead.pre, Event(UpdateNumTorpedoes, side, int32(torpedoDiff)))
	ahead.pre = append(ahead.pre, Event(BlockLauncher, side, int32(launcher)))
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(WaitAnimation, side, id))
	now.pre = append(now.pre, Event(UnblockLauncher, side, int32(launcher)))
	s.renderHit(side.Opposite(), effect)
}

func (s *InterleavedScheduler) UpdateBeam(side Side, slot, value int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(UpdateBeam, side, int32(slot), int32(value)))
}

func (s *InterleavedScheduler) UpdateLauncher(side Side, slot, value int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(UpdateLauncher, side, int32(slot), int32(value)))
}

func (s *InterleavedScheduler) MoveObject(side Side, position int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(MoveObject, side, int32(position)))
}

func (s *InterleavedScheduler) MoveFighter(side Side, track, position, distance int, status FighterStatus) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(MoveFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

// KillObject is deliberately not visualized; see TraditionalScheduler.
func (s *InterleavedScheduler) KillObject(side Side) {
}

func (s *InterleavedScheduler) UpdateObject(side Side, damage, crew, shield int) {
	s.finished = false
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(UpdateObject, side, int32(damage), int32(crew), int32(shield)))
}

func (s *InterleavedScheduler) UpdateAmmo(side Side, numTorpedoes, numFighters int) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(UpdateAmmo, side, int32(numTorpedoes), int32(numFighters)))
}

func (s *InterleavedScheduler) UpdateFighter(side Side, track, position, distance int, status FighterStatus) {
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(UpdateFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

func (s *InterleavedScheduler) SetResult(result ResultSet) {
	s.finished = true
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(SetResult, LeftSide, result.Encode()))
}

// RemoveAnimations revokes the full issued id range and restarts the
// counter.
func (s *InterleavedScheduler) RemoveAnimations() {
	if s.animationCounter > FirstAnimationID {
		s.consumer.RemoveAnimations(FirstAnimationID, s.animationCounter-1)
	}
	s.animationCounter = FirstAnimationID
}

func (s *InterleavedScheduler) renderHit(side Side, effect HitEffect) {
	id := s.nextAnimation()
	now := &s.queue[frameNow]
	now.pre = append(now.pre, Event(HitObject, side, int32(effect.DamageDone), int32(effect.CrewKilled), int32(effect.ShieldLost), id))
	s.queue[0].pre = append(s.queue[0].pre, Event(WaitAnimation, LeftSide, id))
}

// shift flushes the oldest frame and rotates the ring one step toward the
// past; after the final result it drains the whole ring.
func (s *InterleavedScheduler) shift() {
	count := 1
	if s.finished {
		count = numFrames
	}
	for step := 0; step < count; step++ {
		last := &s.queue[numFrames-1]
		for _, e := range last.pre {
			s.consumer.PushEvent(e)
		}
		for _, e := range last.post {
			s.consumer.PushEvent(e)
		}
		last.pre = last.pre[:0]
		last.post = last.post[:0]

		//1.- Swapping the slices keeps the ring allocation-stable.
		for i := numFrames - 1; i > 0; i-- {
			s.queue[i].pre, s.queue[i-1].pre = s.queue[i-1].pre, s.queue[i].pre
			s.queue[i].post, s.queue[i-1].post = s.queue[i-1].post, s.queue[i].post
		}
	}
}
