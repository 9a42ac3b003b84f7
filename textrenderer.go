package main

import (
	"fmt"
	"io"

	"stellarsiege/client/internal/battle"
)

// textRenderer is a minimal animation engine for terminal playback: it
// narrates the fight instead of drawing it. Animations complete instantly,
// so waits never stall.
type textRenderer struct {
	out   io.Writer
	names [2]string
	time  battle.Time
}

func newTextRenderer(out io.Writer) *textRenderer {
	return &textRenderer{out: out, names: [2]string{"left", "right"}}
}

func (r *textRenderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "[%4d] ", r.time)
	fmt.Fprintf(r.out, format, args...)
	fmt.Fprintln(r.out)
}

func (r *textRenderer) name(side battle.Side) string {
	return r.names[side&1]
}

func (r *textRenderer) Ready() bool { return true }

func (r *textRenderer) PlaceObject(side battle.Side, info battle.UnitInfo) {
	r.names[side&1] = info.Name
	kind := "ship"
	if info.IsPlanet {
		kind = "planet"
	}
	r.printf("%s enters as the %s %s (%s)", info.Name, r.sideLabel(side), kind, info.OwnerName)
}

func (r *textRenderer) sideLabel(side battle.Side) string {
	return side.String()
}

func (r *textRenderer) UpdateTime(time battle.Time) {
	r.time = time
}

func (r *textRenderer) UpdateDistance(distance int32)               {}
func (r *textRenderer) MoveObject(side battle.Side, position int32) {}

func (r *textRenderer) StartFighter(side battle.Side, track, position, distance int32) {
	r.printf("%s launches fighter %d", r.name(side), track)
}

func (r *textRenderer) RemoveFighter(side battle.Side, track int32)                    {}
func (r *textRenderer) MoveFighter(side battle.Side, track, pos, dist, status int32)   {}
func (r *textRenderer) UpdateFighter(side battle.Side, track, pos, dist, status int32) {}

func (r *textRenderer) ExplodeFighter(side battle.Side, track, animID int32) {
	r.printf("%s fighter %d explodes", r.name(side), track)
}

func (r *textRenderer) FireBeamShipFighter(side battle.Side, target, slot, animID int32) {
	r.printf("%s beam %d fires at fighter %d", r.name(side), slot, target)
}

func (r *textRenderer) FireBeamShipShip(side battle.Side, slot, animID int32) {
	r.printf("%s beam %d fires", r.name(side), slot)
}

func (r *textRenderer) FireBeamFighterShip(side battle.Side, track, animID int32) {
	r.printf("%s fighter %d strafes", r.name(side), track)
}

func (r *textRenderer) FireBeamFighterFighter(side battle.Side, track, target, animID int32) {
	r.printf("%s fighter %d fires at fighter %d", r.name(side), track, target)
}

func (r *textRenderer) FireTorpedo(side battle.Side, launcher, hit, animID, duration int32) {
	verb := "misses"
	if hit >= 0 {
		verb = "hits"
	}
	r.printf("%s torpedo from tube %d %s", r.name(side), launcher, verb)
}

func (r *textRenderer) HitObject(side battle.Side, damage, crew, shield, animID int32) {
	r.printf("%s takes %d damage (%d crew, %d shield)", r.name(side), damage, crew, shield)
}

func (r *textRenderer) SetResult(result battle.ResultSet) {
	r.printf("battle over: %s", describeResult(result, r.names))
}

func (r *textRenderer) SetResultVisible(visible bool) {
	if visible {
		r.printf("--- result ---")
	}
}

func (r *textRenderer) HasAnimation(id int32) bool      { return false }
func (r *textRenderer) RemoveAnimations(from, to int32) {}
func (r *textRenderer) Tick()                           {}

func describeResult(result battle.ResultSet, names [2]string) string {
	switch {
	case result.Contains(battle.Invalid):
		return "invalid"
	case result.Contains(battle.Timeout):
		return "timeout"
	case result.Contains(battle.Stalemate):
		return "stalemate"
	}
	out := ""
	add := func(s string) {
		if out != "" {
			out += ", "
		}
		out += s
	}
	if result.Contains(battle.LeftDestroyed) {
		add(names[0] + " destroyed")
	}
	if result.Contains(battle.RightDestroyed) {
		add(names[1] + " destroyed")
	}
	if result.Contains(battle.LeftCaptured) {
		add(names[0] + " captured")
	}
	if result.Contains(battle.RightCaptured) {
		add(names[1] + " captured")
	}
	if out == "" {
		return "undecided"
	}
	return out
}
