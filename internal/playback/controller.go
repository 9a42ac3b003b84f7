package playback

import (
	"math"
	"time"

	"go.uber.org/zap"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/instructionlist"
)

// maxTime is the "no limit" time bound for event execution.
const maxTime = battle.Time(math.MaxInt32)

// jumpLeadTicks is how far before the requested time a jump lands, so a few
// ticks of context rebuild before the target is visible.
const jumpLeadTicks = 10

// State enumerates the controller's buffering states.
type State uint8

const (
	// Initializing awaits the first reply with unit placements; the
	// initial event request is in flight.
	Initializing State = iota
	// Jumping awaits a reply landing at a new time; the queue is cleared.
	Jumping
	// BeforeJumping wants to jump but a previous reply is still expected.
	BeforeJumping
	// Forwarding advances internally toward a target time.
	Forwarding
	// Red has too short a buffer to play; an event request is in flight.
	Red
	// Yellow can play but is draining; an event request is in flight.
	Yellow
	// Green has a comfortable buffer and no request in flight.
	Green
	// Draining plays out the buffer after the producer reported the end.
	Draining
	// Finished has an exhausted buffer and a visible result.
	Finished
)

var stateNames = [...]string{
	"Initializing", "Jumping", "BeforeJumping", "Forwarding",
	"Red", "Yellow", "Green", "Draining", "Finished",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// PlayState is the user-facing play/pause toggle.
type PlayState uint8

const (
	Paused PlayState = iota
	Playing
)

// Producer is the far side of the event stream: it answers each request
// with a HandleEvents call carrying a bundle of recorded events.
type Producer interface {
	// RequestEvents asks for the next bundle.
	RequestEvents()
	// RequestJump asks for events starting near the given time.
	RequestJump(t battle.Time)
}

// Config tunes the controller.
type Config struct {
	// BufferTime is the number of battle ticks kept buffered ahead.
	BufferTime int
	// TickInterval is the display timer cadence.
	TickInterval time.Duration
	// TicksPerBattleCycle is how many timer ticks make one battle tick.
	TicksPerBattleCycle int
	// Scheduler selects the scheduling policy: traditional, standard, or
	// interleaved.
	Scheduler string
}

// Controller consumes scheduled events and drives the renderer and the two
// unit status displays. It lives entirely on the UI goroutine.
type Controller struct {
	log      *zap.Logger
	renderer Renderer
	left     UnitStatus
	right    UnitStatus
	producer Producer

	scheduler battle.EventListener
	timer     Timer

	bufferTime          battle.Time
	tickInterval        time.Duration
	ticksPerBattleCycle int

	state      State
	playState  PlayState
	targetTime battle.Time
	ticks      int

	events      []battle.ScheduledEvent
	currentTime battle.Time
	queuedTime  battle.Time
}

// NewController wires the controller to its collaborators. newTimer is
// called once with the controller's tick callback; the returned timer must
// deliver that callback on the controller's goroutine.
func NewController(cfg Config, log *zap.Logger, renderer Renderer, left, right UnitStatus, producer Producer, newTimer func(fn func()) Timer) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		log:                 log.Named("playback"),
		renderer:            renderer,
		left:                left,
		right:               right,
		producer:            producer,
		bufferTime:          battle.Time(cfg.BufferTime),
		tickInterval:        cfg.TickInterval,
		ticksPerBattleCycle: cfg.TicksPerBattleCycle,
		state:               Initializing,
		playState:           Playing,
	}
	switch cfg.Scheduler {
	case "traditional":
		c.scheduler = battle.NewTraditionalScheduler(c)
	case "interleaved":
		c.scheduler = battle.NewInterleavedScheduler(c)
	default:
		c.scheduler = battle.NewStandardScheduler(c)
	}
	c.timer = newTimer(c.onTick)
	return c
}

// State returns the current buffering state.
func (c *Controller) State() State { return c.state }

// PlayState returns the play/pause toggle.
func (c *Controller) PlayState() PlayState { return c.playState }

// CurrentTime returns the battle time currently shown.
func (c *Controller) CurrentTime() battle.Time { return c.currentTime }

// QueuedTime returns the last battle time present in the buffer.
func (c *Controller) QueuedTime() battle.Time { return c.queuedTime }

// QueueLen returns the number of buffered events.
func (c *Controller) QueueLen() int { return len(c.events) }

// HandleEvents feeds one producer reply into the state machine. The list is
// consumed; finish reports that the producer has no further events.
func (c *Controller) HandleEvents(list *instructionlist.StringInstructionList, finish bool) {
	//1.- Run the bundle through the scheduler, which pushes onto our queue.
	recorder := battle.NewEventRecorder()
	recorder.SwapContent(list)
	recorder.Replay(c.scheduler)

	switch c.state {
	case Initializing:
		if c.renderer != nil && c.renderer.Ready() {
			c.handleEventReceptionRed(finish)
		} else if finish {
			c.setState(Draining, "events without renderer")
		}

	case Jumping, Forwarding:
		c.scheduler.RemoveAnimations()
		c.handleEventReceptionForwarding(finish)

	case BeforeJumping:
		c.events = c.events[:0]
		c.currentTime = -1
		c.queuedTime = 0
		c.setState(Jumping, "events")

	case Red:
		c.handleEventReceptionRed(finish)

	case Yellow, Green, Finished, Draining:
		// Finished/Draining cannot normally receive events, but the
		// Green handling is harmless if a stray reply arrives.
		c.handleEventReceptionYellowGreen(finish)
	}
}

// PlaceObject implements battle.ScheduledEventConsumer.
func (c *Controller) PlaceObject(side battle.Side, info battle.UnitInfo) {
	if c.renderer != nil {
		c.renderer.PlaceObject(side, info)
	}
	c.unitStatus(side).SetUnit(info)
}

// PushEvent implements battle.ScheduledEventConsumer.
func (c *Controller) PushEvent(e battle.ScheduledEvent) {
	c.events = append(c.events, e)
	if e.Type == battle.UpdateTime {
		c.queuedTime = e.A
	}
}

// RemoveAnimations implements battle.ScheduledEventConsumer.
func (c *Controller) RemoveAnimations(from, to int32) {
	if c.renderer != nil {
		c.renderer.RemoveAnimations(from, to)
	}
}

// TogglePlay flips between playing and paused.
func (c *Controller) TogglePlay() {
	if c.playState == Paused {
		c.Play()
	} else {
		c.Pause()
	}
}

// Play resumes playback if the buffer state allows it.
func (c *Controller) Play() {
	if c.playState != Paused || c.state == Finished {
		return
	}
	c.playState = Playing
	switch c.state {
	case Yellow, Green, Draining:
		c.onTick()
	default:
		// Cannot play yet; the state machine resumes on its own.
	}
}

// Pause stops the display timer.
func (c *Controller) Pause() {
	if c.playState == Playing {
		c.playState = Paused
		c.timer.Stop()
	}
}

// MoveToBeginning jumps to the start of the fight.
func (c *Controller) MoveToBeginning() {
	c.JumpTo(0)
}

// MoveToEnd jumps past the end of the fight, draining into the result.
func (c *Controller) MoveToEnd() {
	c.JumpTo(maxTime)
}

// MoveBy jumps relative to the current time, clamping at the start.
func (c *Controller) MoveBy(delta battle.Time) {
	t := c.currentTime + delta
	if t < 0 {
		t = 0
	}
	c.JumpTo(t)
}

// JumpTo requests playback to continue at the given battle time.
func (c *Controller) JumpTo(t battle.Time) {
	switch c.state {
	case Initializing, Jumping, BeforeJumping, Forwarding:
		// A jump is already being resolved; ignore.

	case Red, Yellow:
		//1.- A reply is still expected; remember the target and request
		// the jump now. Its answer follows the pending reply, which is
		// discarded on arrival.
		c.timer.Stop()
		c.playState = Paused
		c.targetTime = t
		c.setState(BeforeJumping, "jump")
		c.producer.RequestJump(jumpStart(t))

	case Green, Draining, Finished:
		if c.renderer != nil {
			c.renderer.SetResultVisible(false)
		}
		c.timer.Stop()
		c.playState = Paused
		c.targetTime = t
		c.setState(Jumping, "jump")
		c.events = c.events[:0]
		c.currentTime = -1
		c.queuedTime = 0
		c.producer.RequestJump(jumpStart(t))
	}
}

func jumpStart(t battle.Time) battle.Time {
	if t > jumpLeadTicks {
		return t - jumpLeadTicks
	}
	return 0
}

// onTick is the display timer callback.
func (c *Controller) onTick() {
	if c.playState != Playing {
		return
	}
	switch c.state {
	case Initializing, Red, Jumping, BeforeJumping, Forwarding, Finished:
		// The timer is not supposed to run here; a late firing is ignored.

	case Yellow:
		c.ticks++
		if c.executeEvents(maxTime) {
			c.renderer.Tick()
		}
		if len(c.events) == 0 {
			// A request is already in flight; just stop playing.
			c.setState(Red, "underflow")
		} else {
			c.timer.Schedule(c.tickInterval)
		}

	case Green:
		c.ticks++
		if c.executeEvents(maxTime) {
			c.renderer.Tick()
		}
		if len(c.events) == 0 {
			//1.- Buffer exhausted during playback: request events and
			// suspend until they arrive.
			c.producer.RequestEvents()
			c.setState(Red, "underflow")
		} else {
			//2.- Playback succeeded; top up the buffer when it runs low.
			if c.queuedTime < c.currentTime+c.bufferTime {
				c.producer.RequestEvents()
				c.setState(Yellow, "underflow")
			}
			c.timer.Schedule(c.tickInterval)
		}

	case Draining:
		c.ticks++
		if c.executeEvents(maxTime) {
			c.renderer.Tick()
		}
		if len(c.events) == 0 {
			c.renderer.SetResultVisible(true)
			c.renderer.Tick()
			c.setState(Finished, "underflow")
		} else {
			c.timer.Schedule(c.tickInterval)
		}
	}
}

// executeEvents applies buffered events until a blocking primitive asks to
// wait (returning true) or the queue empties (returning false; the frame is
// incomplete and should not be drawn).
func (c *Controller) executeEvents(timeLimit battle.Time) bool {
	for len(c.events) > 0 {
		e := c.events[0]
		switch e.Type {
		case battle.UpdateTime:
			c.currentTime = e.A
			if c.renderer != nil {
				c.renderer.UpdateTime(e.A)
			}
		case battle.UpdateDistance:
			if c.renderer != nil {
				c.renderer.UpdateDistance(e.A)
			}
		case battle.MoveObject:
			if c.renderer != nil {
				c.renderer.MoveObject(e.Side, e.A)
			}

		case battle.StartFighter:
			if c.renderer != nil {
				c.renderer.StartFighter(e.Side, e.A, e.B, e.C)
			}
		case battle.RemoveFighter:
			if c.renderer != nil {
				c.renderer.RemoveFighter(e.Side, e.A)
			}
		case battle.UpdateNumFighters:
			c.unitStatus(e.Side).AddProperty(PropertyNumFighters, int(e.A))
		case battle.MoveFighter:
			if c.renderer != nil {
				c.renderer.MoveFighter(e.Side, e.A, e.B, e.C, e.D)
			}
		case battle.UpdateFighter:
			if c.renderer != nil {
				c.renderer.UpdateFighter(e.Side, e.A, e.B, e.C, e.D)
			}
		case battle.ExplodeFighter:
			if c.renderer != nil {
				c.renderer.ExplodeFighter(e.Side, e.A, e.B)
			}

		case battle.FireBeamShipFighter:
			if c.renderer != nil {
				c.renderer.FireBeamShipFighter(e.Side, e.A, e.B, e.C)
			}
		case battle.FireBeamShipShip:
			if c.renderer != nil {
				c.renderer.FireBeamShipShip(e.Side, e.A, e.B)
			}
		case battle.FireBeamFighterShip:
			if c.renderer != nil {
				c.renderer.FireBeamFighterShip(e.Side, e.A, e.B)
			}
		case battle.FireBeamFighterFighter:
			if c.renderer != nil {
				c.renderer.FireBeamFighterFighter(e.Side, e.A, e.B, e.C)
			}

		case battle.BlockBeam:
			c.unitStatus(e.Side).SetWeaponBlocked(BeamWeapon, int(e.A), true)
		case battle.UnblockBeam:
			c.unitStatus(e.Side).SetWeaponBlocked(BeamWeapon, int(e.A), false)
		case battle.UpdateBeam:
			c.unitStatus(e.Side).SetWeaponLevel(BeamWeapon, int(e.A), int(e.B))
		case battle.BlockLauncher:
			c.unitStatus(e.Side).SetWeaponBlocked(LauncherWeapon, int(e.A), true)
		case battle.UnblockLauncher:
			c.unitStatus(e.Side).SetWeaponBlocked(LauncherWeapon, int(e.A), false)
		case battle.UpdateLauncher:
			c.unitStatus(e.Side).SetWeaponLevel(LauncherWeapon, int(e.A), int(e.B))

		case battle.FireTorpedo:
			if c.renderer != nil {
				c.renderer.FireTorpedo(e.Side, e.A, e.B, e.C, e.D)
			}
		case battle.UpdateNumTorpedoes:
			c.unitStatus(e.Side).AddProperty(PropertyNumTorpedoes, int(e.A))

		case battle.UpdateObject:
			status := c.unitStatus(e.Side)
			status.SetProperty(PropertyDamage, int(e.A))
			status.SetProperty(PropertyCrew, int(e.B))
			status.SetProperty(PropertyShield, int(e.C))
			status.UnblockAllWeapons()
		case battle.UpdateAmmo:
			status := c.unitStatus(e.Side)
			status.SetProperty(PropertyNumTorpedoes, int(e.A))
			status.SetProperty(PropertyNumFighters, int(e.B))

		case battle.HitObject:
			if c.renderer != nil {
				c.renderer.HitObject(e.Side, e.A, e.B, e.C, e.D)
			}
			status := c.unitStatus(e.Side)
			status.AddProperty(PropertyDamage, int(e.A))
			status.AddProperty(PropertyCrew, -int(e.B))
			status.AddProperty(PropertyShield, -int(e.C))

		case battle.SetResult:
			if c.renderer != nil {
				c.renderer.SetResult(battle.DecodeResultSet(e.A))
			}

		case battle.WaitTick:
			//1.- The event stays queued until the display consumed enough
			// timer ticks for one battle tick.
			if c.ticks < c.ticksPerBattleCycle {
				return true
			}
			c.ticks = 0
			if c.currentTime >= timeLimit {
				return true
			}

		case battle.WaitAnimation:
			if c.renderer != nil && c.renderer.HasAnimation(e.A) {
				return true
			}
		}
		c.events = c.events[1:]
	}
	return false
}

func (c *Controller) handleEventReceptionRed(finish bool) {
	var play bool
	if len(c.events) == 0 || c.queuedTime < c.currentTime+c.bufferTime {
		//1.- Buffer not full enough yet; load more or start draining.
		if finish {
			c.setState(Draining, "events")
			play = true
		} else {
			c.producer.RequestEvents()
			c.setState(Red, "events")
			play = false
		}
	} else {
		c.setState(Green, "events")
		play = true
	}

	if play {
		if c.executeEvents(maxTime) {
			//2.- A wait boundary was reached, so the frame is complete.
			c.renderer.Tick()
			if c.playState == Playing {
				c.timer.Schedule(c.tickInterval)
			}
		}
		// Events exhausted without a wait: do not draw, the frame is
		// incomplete.
	}
}

func (c *Controller) handleEventReceptionYellowGreen(finish bool) {
	// The timer is already active in Yellow/Green; only the buffer state
	// needs reassessing.
	if c.queuedTime < c.currentTime+c.bufferTime {
		if finish {
			c.setState(Draining, "events")
		} else {
			c.producer.RequestEvents()
			c.setState(Yellow, "events")
		}
	} else {
		c.setState(Green, "events")
	}
}

func (c *Controller) handleEventReceptionForwarding(finish bool) {
	c.setState(Forwarding, "events")

	//1.- Advance until the target time is reached or events run out.
	for c.currentTime < c.targetTime && c.executeEvents(c.targetTime) {
		c.renderer.Tick()
		c.ticks++
	}

	var play bool
	if finish {
		c.setState(Draining, "events")
		play = true
	} else if c.currentTime >= c.targetTime {
		if c.queuedTime < c.currentTime+c.bufferTime {
			c.producer.RequestEvents()
			c.setState(Yellow, "events")
		} else {
			c.setState(Green, "events")
		}
		play = true
	} else {
		//2.- Still short of the target: fetch more and keep forwarding.
		c.producer.RequestEvents()
		play = false
	}

	if play {
		c.renderer.Tick()
		if c.playState == Playing {
			c.timer.Schedule(c.tickInterval)
		}
	}
}

func (c *Controller) unitStatus(side battle.Side) UnitStatus {
	if side == battle.LeftSide {
		return c.left
	}
	return c.right
}

func (c *Controller) setState(st State, why string) {
	if c.state != st {
		c.log.Debug("state transition",
			zap.Stringer("from", c.state),
			zap.Stringer("to", st),
			zap.String("why", why))
	}
	c.state = st
}
