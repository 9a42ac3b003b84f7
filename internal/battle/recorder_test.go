package battle

import (
	"fmt"
	"testing"

	"stellarsiege/client/internal/instructionlist"
)

// callLog flattens every listener callback into a comparable string.
type callLog struct {
	calls []string
}

func (l *callLog) addf(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) PlaceObject(side Side, info UnitInfo) {
	l.addf("place %v %+v", side, info)
}
func (l *callLog) UpdateTime(time Time, distance int32) {
	l.addf("time %d %d", time, distance)
}
func (l *callLog) StartFighter(side Side, track, position, distance, fighterDiff int) {
	l.addf("startFighter %v %d %d %d %d", side, track, position, distance, fighterDiff)
}
func (l *callLog) LandFighter(side Side, track, fighterDiff int) {
	l.addf("landFighter %v %d %d", side, track, fighterDiff)
}
func (l *callLog) KillFighter(side Side, track int) {
	l.addf("killFighter %v %d", side, track)
}
func (l *callLog) FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect) {
	l.addf("fireBeam %v %d %d %d %d %d %+v", side, track, target, hit, damage, kill, effect)
}
func (l *callLog) FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect) {
	l.addf("fireTorpedo %v %d %d %d %+v", side, hit, launcher, torpedoDiff, effect)
}
func (l *callLog) UpdateBeam(side Side, slot, value int) {
	l.addf("updateBeam %v %d %d", side, slot, value)
}
func (l *callLog) UpdateLauncher(side Side, slot, value int) {
	l.addf("updateLauncher %v %d %d", side, slot, value)
}
func (l *callLog) MoveObject(side Side, position int) {
	l.addf("moveObject %v %d", side, position)
}
func (l *callLog) MoveFighter(side Side, track, position, distance int, status FighterStatus) {
	l.addf("moveFighter %v %d %d %d %d", side, track, position, distance, status)
}
func (l *callLog) KillObject(side Side) {
	l.addf("killObject %v", side)
}
func (l *callLog) UpdateObject(side Side, damage, crew, shield int) {
	l.addf("updateObject %v %d %d %d", side, damage, crew, shield)
}
func (l *callLog) UpdateAmmo(side Side, numTorpedoes, numFighters int) {
	l.addf("updateAmmo %v %d %d", side, numTorpedoes, numFighters)
}
func (l *callLog) UpdateFighter(side Side, track, position, distance int, status FighterStatus) {
	l.addf("updateFighter %v %d %d %d %d", side, track, position, distance, status)
}
func (l *callLog) SetResult(result ResultSet) {
	l.addf("result %d", result.Encode())
}
func (l *callLog) RemoveAnimations() {
	l.addf("removeAnimations")
}

// driveSampleBattle issues one of every callback with distinctive values.
func driveSampleBattle(listener EventListener) {
	listener.PlaceObject(LeftSide, UnitInfo{
		Name: "Nebula", ID: 17, Owner: 3, Race: 3, Mass: 430, Shield: 100,
		Crew: 780, Picture: 61, BeamType: 7, NumBeams: 8, TorpedoType: 9,
		NumLaunchers: 3, NumTorpedoes: 40, Position: 40, OwnerName: "The Birds",
		Relation: RelationEnemy, BeamName: "Heavy Phaser", LauncherName: "Mark 7",
	})
	listener.PlaceObject(RightSide, UnitInfo{
		Name: "Outpost", ID: 363, Owner: 6, IsPlanet: true, Mass: 120,
		NumBays: 5, NumFighters: 20, Position: 600, OwnerName: "The Lizards",
		Relation: RelationPlayer,
	})
	listener.StartFighter(RightSide, 0, 590, 10, -1)
	listener.MoveFighter(RightSide, 0, 560, 30, FighterAttacks)
	listener.FireBeam(LeftSide, -2, 0, 12, 40, 10, HitEffect{})
	listener.KillFighter(RightSide, 0)
	listener.FireBeam(RightSide, 1, -1, -5, 30, 5, HitEffect{DamageDone: 3, CrewKilled: 1, ShieldLost: 9})
	listener.FireTorpedo(LeftSide, 7, 2, -1, HitEffect{DamageDone: 11, CrewKilled: 2, ShieldLost: 30})
	listener.UpdateBeam(LeftSide, 1, 55)
	listener.UpdateLauncher(LeftSide, 2, 0)
	listener.MoveObject(LeftSide, 45)
	listener.UpdateTime(42, 29000)
	listener.LandFighter(RightSide, 1, 1)
	listener.UpdateObject(RightSide, 30, 0, 45)
	listener.UpdateAmmo(LeftSide, 39, 0)
	listener.UpdateFighter(RightSide, 1, 0, 0, FighterIdle)
	listener.KillObject(RightSide)
	listener.SetResult(ResultSetOf(RightDestroyed))
	listener.RemoveAnimations()
	listener.UpdateTime(43, 29000)
}

func TestRecorderRoundTrip(t *testing.T) {
	//1.- Drive the same sequence directly and through record/replay.
	var direct callLog
	driveSampleBattle(&direct)

	recorder := NewEventRecorder()
	driveSampleBattle(recorder)
	if err := recorder.Err(); err != nil {
		t.Fatalf("recording failed: %v", err)
	}
	if recorder.Size() == 0 {
		t.Fatalf("recorder must report nonzero size after recording")
	}

	var replayed callLog
	recorder.Replay(&replayed)

	if len(direct.calls) != len(replayed.calls) {
		t.Fatalf("call count mismatch: direct %d, replayed %d", len(direct.calls), len(replayed.calls))
	}
	for i := range direct.calls {
		if direct.calls[i] != replayed.calls[i] {
			t.Fatalf("call %d differs:\n direct:   %s\n replayed: %s", i, direct.calls[i], replayed.calls[i])
		}
	}
}

func TestRecorderSwapContent(t *testing.T) {
	recorder := NewEventRecorder()
	recorder.UpdateTime(5, 100)

	//1.- Swapping out leaves the recorder empty; swapping back restores it.
	var list instructionlist.StringInstructionList
	recorder.SwapContent(&list)
	if recorder.Size() != 0 {
		t.Fatalf("recorder must be empty after swap, size=%d", recorder.Size())
	}
	if list.Size() == 0 {
		t.Fatalf("content must have moved into the list")
	}

	second := NewEventRecorder()
	second.SwapContent(&list)
	var replayed callLog
	second.Replay(&replayed)
	if len(replayed.calls) != 1 || replayed.calls[0] != "time 5 100" {
		t.Fatalf("unexpected replay after swap: %v", replayed.calls)
	}
}

func TestReplaySkipsUnknownOpcode(t *testing.T) {
	//1.- Forge a stream with an unrecognized opcode between valid ones.
	var list instructionlist.StringInstructionList
	list.AddInstruction(opUpdateTime).AddParameter(1).AddParameter(2)
	list.AddInstruction(200).AddParameter(7).AddParameter(8).AddParameter(9)
	list.AddInstruction(opKillObject).AddParameter(int32(RightSide))

	recorder := NewEventRecorder()
	recorder.SwapContent(&list)
	var replayed callLog
	recorder.Replay(&replayed)

	want := []string{"time 1 2", "killObject right"}
	if len(replayed.calls) != len(want) || replayed.calls[0] != want[0] || replayed.calls[1] != want[1] {
		t.Fatalf("unknown opcode must be skipped, got %v", replayed.calls)
	}
}

func TestReplayStopsOnTruncatedParameters(t *testing.T) {
	//1.- A stream that ends inside a parameter list must not invoke the
	// half-read callback.
	var list instructionlist.StringInstructionList
	list.AddInstruction(opUpdateTime).AddParameter(1)

	recorder := NewEventRecorder()
	recorder.SwapContent(&list)
	var replayed callLog
	recorder.Replay(&replayed)
	if len(replayed.calls) != 0 {
		t.Fatalf("truncated instruction must be dropped, got %v", replayed.calls)
	}
}
