package battle

// torpedoFlightTicks is the display duration of a torpedo animation.
// TODO: compute from the actual combat distance once the renderer models
// projectile speed.
const torpedoFlightTicks = 6

// standardAnimationID is the shared id for all animations within a tick.
const standardAnimationID = 99

// StandardScheduler batches events per battle tick so that all weapons fire
// simultaneously and all effects resolve simultaneously; everything that
// happens within a tick stays in that tick.
type StandardScheduler struct {
	consumer ScheduledEventConsumer
	pre      []ScheduledEvent
	post     []ScheduledEvent
}

// NewStandardScheduler attaches the scheduler to its consumer.
func NewStandardScheduler(consumer ScheduledEventConsumer) *StandardScheduler {
	return &StandardScheduler{consumer: consumer}
}

func (s *StandardScheduler) PlaceObject(side Side, info UnitInfo) {
	s.consumer.PlaceObject(side, info)
}

// UpdateTime flushes the tick: all weapon firings, one wait, all effects,
// one wait, then the tick boundary.
func (s *StandardScheduler) UpdateTime(time Time, distance int32) {
	for _, e := range s.pre {
		s.consumer.PushEvent(e)
	}
	if len(s.pre) != 0 {
		s.consumer.PushEvent(Event(WaitAnimation, LeftSide, standardAnimationID))
	}
	for _, e := range s.post {
		s.consumer.PushEvent(e)
	}
	if len(s.post) != 0 {
		s.consumer.PushEvent(Event(WaitAnimation, LeftSide, standardAnimationID))
	}
	s.pre = s.pre[:0]
	s.post = s.post[:0]

	s.consumer.PushEvent(Event(UpdateTime, LeftSide, time))
	s.consumer.PushEvent(Event(UpdateDistance, LeftSide, distance))
	s.consumer.PushEvent(Event(WaitTick, LeftSide))
}

func (s *StandardScheduler) StartFighter(side Side, track, position, distance, fighterDiff int) {
	s.pre = append(s.pre, Event(StartFighter, side, int32(track), int32(position), int32(distance)))
	s.pre = append(s.pre, Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *StandardScheduler) LandFighter(side Side, track, fighterDiff int) {
	s.pre = append(s.pre, Event(RemoveFighter, side, int32(track)))
	s.pre = append(s.pre, Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *StandardScheduler) KillFighter(side Side, track int) {
	s.post = append(s.post, Event(ExplodeFighter, side, int32(track), standardAnimationID))
	s.post = append(s.post, Event(RemoveFighter, side, int32(track)))
}

func (s *StandardScheduler) FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect) {
	if track < 0 {
		beamSlot := int32(-1 - track)
		if target < 0 {
			s.pre = append(s.pre, Event(FireBeamShipShip, side, beamSlot, standardAnimationID))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			s.pre = append(s.pre, Event(FireBeamShipFighter, side, int32(target), beamSlot, standardAnimationID))
		}
	} else {
		if target < 0 {
			s.pre = append(s.pre, Event(FireBeamFighterShip, side, int32(track), standardAnimationID))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			s.pre = append(s.pre, Event(FireBeamFighterFighter, side, int32(track), int32(target), standardAnimationID))
		}
	}
}

func (s *StandardScheduler) FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect) {
	s.pre = append(s.pre, Event(FireTorpedo, side, int32(launcher), int32(hit), standardAnimationID, torpedoFlightTicks))
	s.pre = append(s.pre, Event(UpdateNumTorpedoes, side, int32(torpedoDiff)))
	s.renderHit(side.Opposite(), effect)
}

func (s *StandardScheduler) UpdateBeam(side Side, slot, value int) {
	s.post = append(s.post, Event(UpdateBeam, side, int32(slot), int32(value)))
}

func (s *StandardScheduler) UpdateLauncher(side Side, slot, value int) {
	s.post = append(s.post, Event(UpdateLauncher, side, int32(slot), int32(value)))
}

func (s *StandardScheduler) MoveObject(side Side, position int) {
	s.pre = append(s.pre, Event(MoveObject, side, int32(position)))
}

func (s *StandardScheduler) MoveFighter(side Side, track, position, distance int, status FighterStatus) {
	s.pre = append(s.pre, Event(MoveFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

// KillObject is deliberately not visualized; see TraditionalScheduler.
func (s *StandardScheduler) KillObject(side Side) {
}

func (s *StandardScheduler) UpdateObject(side Side, damage, crew, shield int) {
	s.pre = append(s.pre, Event(UpdateObject, side, int32(damage), int32(crew), int32(shield)))
}

func (s *StandardScheduler) UpdateAmmo(side Side, numTorpedoes, numFighters int) {
	s.pre = append(s.pre, Event(UpdateAmmo, side, int32(numTorpedoes), int32(numFighters)))
}

func (s *StandardScheduler) UpdateFighter(side Side, track, position, distance int, status FighterStatus) {
	s.pre = append(s.pre, Event(UpdateFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

func (s *StandardScheduler) SetResult(result ResultSet) {
	s.post = append(s.post, Event(SetResult, LeftSide, result.Encode()))
}

func (s *StandardScheduler) RemoveAnimations() {
	s.consumer.RemoveAnimations(standardAnimationID, standardAnimationID)
}

func (s *StandardScheduler) renderHit(side Side, effect HitEffect) {
	s.post = append(s.post, Event(HitObject, side, int32(effect.DamageDone), int32(effect.CrewKilled), int32(effect.ShieldLost), standardAnimationID))
}
