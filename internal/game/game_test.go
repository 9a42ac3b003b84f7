package game

import (
	"testing"

	"stellarsiege/client/internal/battle"
)

// timeLog records the ticks and selected callbacks a listener sees.
type timeLog struct {
	NullListener
	placements []battle.Side
	times      []battle.Time
	beams      int
	resyncs    int
}

func (l *timeLog) PlaceObject(side battle.Side, info battle.UnitInfo) {
	l.placements = append(l.placements, side)
}

func (l *timeLog) UpdateTime(time battle.Time, distance int32) {
	l.times = append(l.times, time)
}

func (l *timeLog) FireBeam(side battle.Side, track, target, hit, damage, kill int, effect battle.HitEffect) {
	l.beams++
}

func (l *timeLog) UpdateObject(side battle.Side, damage, crew, shield int) {
	l.resyncs++
}

func twoTickScript(l battle.EventListener) {
	l.PlaceObject(battle.LeftSide, battle.UnitInfo{Name: "A", Shield: 100, Crew: 200})
	l.PlaceObject(battle.RightSide, battle.UnitInfo{Name: "B", Shield: 100})
	l.FireBeam(battle.LeftSide, -1, -1, 5, 10, 10, battle.HitEffect{DamageDone: 4, ShieldLost: 8})
	l.UpdateTime(1, 5000)
	l.MoveObject(battle.LeftSide, 42)
	l.StartFighter(battle.RightSide, 3, 500, 0, -1)
	l.UpdateTime(2, 4900)
}

func TestRecordBattleDerivesLastTime(t *testing.T) {
	b, err := RecordBattle(twoTickScript)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}
	if b.LastTime() != 2 {
		t.Fatalf("expected last time 2, got %d", b.LastTime())
	}

	//1.- The tape can be replayed repeatedly without being consumed.
	for i := 0; i < 2; i++ {
		var log timeLog
		b.Replay(&log)
		if len(log.times) != 2 || len(log.placements) != 2 {
			t.Fatalf("replay %d incomplete: times=%v placements=%v", i, log.times, log.placements)
		}
	}
}

func TestTickWindowSlices(t *testing.T) {
	b, err := RecordBattle(twoTickScript)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}

	//1.- A window over [2, 3) must carry only the second tick.
	var out timeLog
	w := NewTickWindow(&out, 2, 3, false, nil)
	b.Replay(w)

	if len(out.times) != 1 || out.times[0] != 2 {
		t.Fatalf("expected only tick 2, got %v", out.times)
	}
	if out.beams != 0 {
		t.Fatalf("tick 1 content must not leak into the window")
	}
	if len(out.placements) != 0 {
		t.Fatalf("placements were not requested, got %v", out.placements)
	}
	if w.Delivered() != 1 {
		t.Fatalf("expected 1 delivered tick, got %d", w.Delivered())
	}
	if w.LastSeen() != 2 {
		t.Fatalf("expected last seen 2, got %d", w.LastSeen())
	}
}

func TestTickWindowFeedsTrackerBeforeWindow(t *testing.T) {
	b, err := RecordBattle(twoTickScript)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}

	tracker := NewStateTracker()
	var out timeLog
	w := NewTickWindow(&out, 2, 3, false, tracker)
	b.Replay(w)

	//1.- The tracker consumed tick 1: the beam hit reduced the right
	// side's shield.
	var resync timeLog
	tracker.EmitState(&resync)
	if len(resync.placements) != 2 {
		t.Fatalf("tracker must re-emit both placements, got %v", resync.placements)
	}
	if resync.resyncs != 2 {
		t.Fatalf("tracker must emit one UpdateObject per side, got %d", resync.resyncs)
	}
	if tracker.Time() != 1 {
		t.Fatalf("tracker must stop before the window, got time %d", tracker.Time())
	}
}

func TestTrackerAppliesEffects(t *testing.T) {
	tracker := NewStateTracker()
	tracker.PlaceObject(battle.LeftSide, battle.UnitInfo{Name: "A", Shield: 100, Crew: 200, NumTorpedoes: 10})
	tracker.PlaceObject(battle.RightSide, battle.UnitInfo{Name: "B", Shield: 50, Crew: 80})

	//1.- A torpedo hit moves ammo on the firing side and damage on the
	// receiving side.
	tracker.FireTorpedo(battle.LeftSide, 3, 0, -1, battle.HitEffect{DamageDone: 12, CrewKilled: 5, ShieldLost: 60})

	if got := tracker.unit(battle.LeftSide).torps; got != 9 {
		t.Fatalf("expected 9 torpedoes left, got %d", got)
	}
	right := tracker.unit(battle.RightSide)
	if right.damage != 12 || right.crew != 75 {
		t.Fatalf("expected damage 12 crew 75, got %d %d", right.damage, right.crew)
	}
	if right.shield != 0 {
		t.Fatalf("shield must clamp at 0, got %d", right.shield)
	}

	//2.- A missed beam changes nothing.
	tracker.FireBeam(battle.RightSide, -1, -1, -3, 10, 10, battle.HitEffect{DamageDone: 99})
	if tracker.unit(battle.LeftSide).damage != 0 {
		t.Fatalf("miss must not apply damage")
	}
}

func TestTrackerFighterLifecycle(t *testing.T) {
	tracker := NewStateTracker()
	tracker.PlaceObject(battle.RightSide, battle.UnitInfo{Name: "B", NumFighters: 10})

	tracker.StartFighter(battle.RightSide, 2, 500, 0, -1)
	tracker.MoveFighter(battle.RightSide, 2, 480, 20, battle.FighterAttacks)
	tracker.StartFighter(battle.RightSide, 5, 500, 0, -1)
	tracker.KillFighter(battle.RightSide, 5)

	u := tracker.unit(battle.RightSide)
	if u.fighters != 8 {
		t.Fatalf("expected 8 fighters aboard, got %d", u.fighters)
	}
	if len(u.tracks) != 1 {
		t.Fatalf("expected one live track, got %d", len(u.tracks))
	}
	if f := u.tracks[2]; f == nil || f.position != 480 {
		t.Fatalf("track 2 must be at 480, got %+v", f)
	}
}

func TestSampleBattleIsWellFormed(t *testing.T) {
	b, err := RecordBattle(SampleBattle)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}
	if b.LastTime() != 181 {
		t.Fatalf("expected 181 ticks, got %d", b.LastTime())
	}

	var log timeLog
	b.Replay(&log)
	if len(log.placements) != 2 {
		t.Fatalf("sample battle must place two units, got %v", log.placements)
	}
	if log.beams == 0 {
		t.Fatalf("sample battle must contain weapons fire")
	}
	//1.- Ticks must be consecutive.
	for i := 1; i < len(log.times); i++ {
		if log.times[i] != log.times[i-1]+1 {
			t.Fatalf("ticks must be consecutive, %d follows %d", log.times[i], log.times[i-1])
		}
	}
}

func TestPrefsEditorNotifiesListeners(t *testing.T) {
	e := NewPrefsEditor()
	count := 0
	remove := e.AddListener(func() { count++ })

	e.SetValue("vcr.scheduler", "interleaved")
	if count != 1 {
		t.Fatalf("expected one notification, got %d", count)
	}

	//1.- Setting the same value again is not a change.
	e.SetValue("vcr.scheduler", "interleaved")
	if count != 1 {
		t.Fatalf("unchanged value must not notify, got %d", count)
	}

	e.SetValue("vcr.scheduler", "standard")
	if count != 2 {
		t.Fatalf("expected two notifications, got %d", count)
	}
	if v, ok := e.Get("vcr.scheduler"); !ok || v != "standard" {
		t.Fatalf("unexpected value %q (ok=%v)", v, ok)
	}

	remove()
	e.SetValue("vcr.scheduler", "traditional")
	if count != 2 {
		t.Fatalf("removed listener must not fire, got %d", count)
	}
}

func TestSessionBattleRegistry(t *testing.T) {
	s := NewSession(nil)
	if s.NumBattles() != 0 {
		t.Fatalf("fresh session has no battles")
	}
	b, err := RecordBattle(twoTickScript)
	if err != nil {
		t.Fatalf("RecordBattle: %v", err)
	}
	index := s.AddBattle(b)
	if index != 0 || s.NumBattles() != 1 {
		t.Fatalf("unexpected registry state: index=%d num=%d", index, s.NumBattles())
	}
	if got, ok := s.Battle(0); !ok || got != b {
		t.Fatalf("battle lookup failed")
	}
	if _, ok := s.Battle(1); ok {
		t.Fatalf("out-of-range lookup must fail")
	}
}
