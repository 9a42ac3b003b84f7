package battle

// traditionalAnimationID is the single id used for every animation; each
// weapon event is immediately followed by a wait on it.
const traditionalAnimationID = 99

// TraditionalScheduler converts combat events into rendering instructions
// strictly in sequence, in the same order they happen in the algorithm,
// matching the oldest visualisation style.
type TraditionalScheduler struct {
	consumer ScheduledEventConsumer
}

// NewTraditionalScheduler attaches the scheduler to its consumer.
func NewTraditionalScheduler(consumer ScheduledEventConsumer) *TraditionalScheduler {
	return &TraditionalScheduler{consumer: consumer}
}

func (s *TraditionalScheduler) PlaceObject(side Side, info UnitInfo) {
	s.consumer.PlaceObject(side, info)
}

func (s *TraditionalScheduler) UpdateTime(time Time, distance int32) {
	s.consumer.PushEvent(Event(UpdateTime, LeftSide, time))
	s.consumer.PushEvent(Event(UpdateDistance, LeftSide, distance))
	s.consumer.PushEvent(Event(WaitTick, LeftSide))
}

func (s *TraditionalScheduler) StartFighter(side Side, track, position, distance, fighterDiff int) {
	s.consumer.PushEvent(Event(StartFighter, side, int32(track), int32(position), int32(distance)))
	s.consumer.PushEvent(Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *TraditionalScheduler) LandFighter(side Side, track, fighterDiff int) {
	s.consumer.PushEvent(Event(RemoveFighter, side, int32(track)))
	s.consumer.PushEvent(Event(UpdateNumFighters, side, int32(fighterDiff)))
}

func (s *TraditionalScheduler) KillFighter(side Side, track int) {
	s.consumer.PushEvent(Event(ExplodeFighter, side, int32(track), traditionalAnimationID))
	s.consumer.PushEvent(Event(RemoveFighter, side, int32(track)))
	s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
}

func (s *TraditionalScheduler) FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect) {
	if track < 0 {
		beamSlot := int32(-1 - track)
		if target < 0 {
			s.consumer.PushEvent(Event(FireBeamShipShip, side, beamSlot, traditionalAnimationID))
			s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			s.consumer.PushEvent(Event(FireBeamShipFighter, side, int32(target), beamSlot, traditionalAnimationID))
			s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
		}
	} else {
		if target < 0 {
			s.consumer.PushEvent(Event(FireBeamFighterShip, side, int32(track), traditionalAnimationID))
			s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
			if hit >= 0 {
				s.renderHit(side.Opposite(), effect)
			}
		} else {
			s.consumer.PushEvent(Event(FireBeamFighterFighter, side, int32(track), int32(target), traditionalAnimationID))
			s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
		}
	}
}

func (s *TraditionalScheduler) FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect) {
	s.consumer.PushEvent(Event(FireTorpedo, side, int32(launcher), int32(hit), traditionalAnimationID, torpedoFlightTicks))
	s.consumer.PushEvent(Event(UpdateNumTorpedoes, side, int32(torpedoDiff)))
	s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
	s.renderHit(side.Opposite(), effect)
}

func (s *TraditionalScheduler) UpdateBeam(side Side, slot, value int) {
	s.consumer.PushEvent(Event(UpdateBeam, side, int32(slot), int32(value)))
}

func (s *TraditionalScheduler) UpdateLauncher(side Side, slot, value int) {
	s.consumer.PushEvent(Event(UpdateLauncher, side, int32(slot), int32(value)))
}

func (s *TraditionalScheduler) MoveObject(side Side, position int) {
	s.consumer.PushEvent(Event(MoveObject, side, int32(position)))
}

func (s *TraditionalScheduler) MoveFighter(side Side, track, position, distance int, status FighterStatus) {
	s.consumer.PushEvent(Event(MoveFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

// KillObject is deliberately not visualized; routing it through the hit
// animation is the open extension point for a destruction effect.
func (s *TraditionalScheduler) KillObject(side Side) {
}

func (s *TraditionalScheduler) UpdateObject(side Side, damage, crew, shield int) {
	s.consumer.PushEvent(Event(UpdateObject, side, int32(damage), int32(crew), int32(shield)))
}

func (s *TraditionalScheduler) UpdateAmmo(side Side, numTorpedoes, numFighters int) {
	s.consumer.PushEvent(Event(UpdateAmmo, side, int32(numTorpedoes), int32(numFighters)))
}

func (s *TraditionalScheduler) UpdateFighter(side Side, track, position, distance int, status FighterStatus) {
	s.consumer.PushEvent(Event(UpdateFighter, side, int32(track), int32(position), int32(distance), int32(status)))
}

func (s *TraditionalScheduler) SetResult(result ResultSet) {
	s.consumer.PushEvent(Event(SetResult, LeftSide, result.Encode()))
}

func (s *TraditionalScheduler) RemoveAnimations() {
	s.consumer.RemoveAnimations(traditionalAnimationID, traditionalAnimationID)
}

func (s *TraditionalScheduler) renderHit(side Side, effect HitEffect) {
	s.consumer.PushEvent(Event(HitObject, side, int32(effect.DamageDone), int32(effect.CrewKilled), int32(effect.ShieldLost), traditionalAnimationID))
	s.consumer.PushEvent(Event(WaitAnimation, side, traditionalAnimationID))
}
