package battle

// EventType discriminates rendering instructions. The set is closed and
// stable; new types are appended at the end only.
type EventType uint8

const (
	UpdateTime EventType = iota // a=time
	UpdateDistance              // a=distance
	MoveObject                  // a=position
	StartFighter                // a=track, b=position, c=distance
	RemoveFighter               // a=track
	UpdateNumFighters           // a=delta
	MoveFighter                 // a=track, b=position, c=distance, d=status
	UpdateFighter               // a=track, b=position, c=distance, d=status
	ExplodeFighter              // a=track, b=animId
	FireBeamShipFighter         // a=targetTrack, b=beamSlot, c=animId
	FireBeamShipShip            // a=beamSlot, b=animId
	FireBeamFighterShip         // a=track, b=animId
	FireBeamFighterFighter      // a=track, b=targetTrack, c=animId
	BlockBeam                   // a=slot
	UnblockBeam                 // a=slot
	UpdateBeam                  // a=slot, b=value
	FireTorpedo                 // a=launcher, b=hit, c=animId, d=duration
	UpdateNumTorpedoes          // a=delta
	BlockLauncher               // a=slot
	UnblockLauncher             // a=slot
	UpdateLauncher              // a=slot, b=value
	UpdateObject                // a=damage, b=crew, c=shield
	UpdateAmmo                  // a=numTorpedoes, b=numFighters
	HitObject                   // a=damageDone, b=crewKilled, c=shieldLost, d=animId
	SetResult                   // a=encoded result set
	WaitTick                    // no parameters
	WaitAnimation               // a=animId
)

var eventTypeNames = [...]string{
	"UpdateTime", "UpdateDistance", "MoveObject", "StartFighter",
	"RemoveFighter", "UpdateNumFighters", "MoveFighter", "UpdateFighter",
	"ExplodeFighter", "FireBeamShipFighter", "FireBeamShipShip",
	"FireBeamFighterShip", "FireBeamFighterFighter", "BlockBeam",
	"UnblockBeam", "UpdateBeam", "FireTorpedo", "UpdateNumTorpedoes",
	"BlockLauncher", "UnblockLauncher", "UpdateLauncher", "UpdateObject",
	"UpdateAmmo", "HitObject", "SetResult", "WaitTick", "WaitAnimation",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// ScheduledEvent is one rendering instruction: a discriminator, a side, and
// up to five integer parameters whose meaning is per-discriminator. Unused
// parameters are zero.
//
// WaitTick and WaitAnimation are the only blocking primitives a consumer
// observes; everything else is an advisory state update or an animation
// trigger.
type ScheduledEvent struct {
	Type          EventType
	Side          Side
	A, B, C, D, E int32
}

// Event builds a ScheduledEvent, zero-filling trailing parameters.
func Event(t EventType, side Side, params ...int32) ScheduledEvent {
	e := ScheduledEvent{Type: t, Side: side}
	slots := [...]*int32{&e.A, &e.B, &e.C, &e.D, &e.E}
	for i, p := range params {
		if i >= len(slots) {
			break
		}
		*slots[i] = p
	}
	return e
}

// ScheduledEventConsumer is the sink a scheduler feeds. All pushes happen on
// the consumer's owning goroutine, so implementations need no locking.
type ScheduledEventConsumer interface {
	// PlaceObject forwards a unit placement unchanged.
	PlaceObject(side Side, info UnitInfo)

	// PushEvent appends one rendering instruction.
	PushEvent(e ScheduledEvent)

	// RemoveAnimations revokes any not-yet-presented animation whose id
	// lies in the inclusive range [from, to].
	RemoveAnimations(from, to int32)
}
