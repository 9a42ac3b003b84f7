package battle

import (
	"go.uber.org/zap"

	"stellarsiege/client/internal/instructionlist"
)

// Recording opcodes, one per EventListener callback. The serialisation
// format is private to EventRecorder.
const (
	opPlaceObject uint8 = iota
	opUpdateTime
	opStartFighter
	opLandFighter
	opKillFighter
	opFireBeam
	opFireTorpedo
	opUpdateBeam
	opUpdateLauncher
	opMoveObject
	opMoveFighter
	opKillObject
	opUpdateObject
	opUpdateAmmo
	opUpdateFighter
	opSetResult
	opRemoveAnimations
)

// EventRecorder implements EventListener by serializing every callback into
// a StringInstructionList, which can be handed between goroutines and
// replayed in order against another listener.
type EventRecorder struct {
	content instructionlist.StringInstructionList
	err     error
}

// NewEventRecorder returns an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// SwapContent exchanges the recorder's content with the given list: use it
// to extract a recording for transport, or to load one for replay.
func (r *EventRecorder) SwapContent(content *instructionlist.StringInstructionList) {
	r.content.Swap(content)
}

// Size returns a nonzero value whenever at least one callback has been
// recorded. The exact value has only informative purposes.
func (r *EventRecorder) Size() int {
	return r.content.Size()
}

// Err returns the first recording failure, if any. After a failure the
// recording is consistent but incomplete; further callbacks are dropped.
func (r *EventRecorder) Err() error {
	return r.err
}

func (r *EventRecorder) addString(s string) {
	if r.err != nil {
		return
	}
	if err := r.content.AddStringParameter(s); err != nil {
		//1.- An overflowing string pool is a developer-visible condition,
		// not a runtime path; abort the recording and remember why.
		r.err = err
		zap.L().Error("event recording aborted", zap.Error(err))
	}
}

func (r *EventRecorder) PlaceObject(side Side, info UnitInfo) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opPlaceObject).
		AddParameter(int32(side)).
		AddParameter(int32(info.Mass)).
		AddParameter(int32(info.Shield)).
		AddParameter(int32(info.Damage)).
		AddParameter(int32(info.Crew)).
		AddParameter(int32(info.ID)).
		AddParameter(int32(info.Owner)).
		AddParameter(int32(info.Race)).
		AddParameter(int32(info.Picture)).
		AddParameter(int32(info.BeamType)).
		AddParameter(int32(info.NumBeams)).
		AddParameter(int32(info.TorpedoType)).
		AddParameter(int32(info.NumLaunchers)).
		AddParameter(int32(info.NumTorpedoes)).
		AddParameter(int32(info.NumBays)).
		AddParameter(int32(info.NumFighters)).
		AddParameter(boolParam(info.IsPlanet))
	r.addString(info.Name)
	r.content.AddParameter(int32(info.Position))
	r.addString(info.OwnerName)
	r.content.AddParameter(int32(info.Relation))
	r.addString(info.BeamName)
	r.addString(info.LauncherName)
}

func (r *EventRecorder) UpdateTime(time Time, distance int32) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateTime).
		AddParameter(time).
		AddParameter(distance)
}

func (r *EventRecorder) StartFighter(side Side, track, position, distance, fighterDiff int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opStartFighter).
		AddParameter(int32(side)).
		AddParameter(int32(track)).
		AddParameter(int32(position)).
		AddParameter(int32(distance)).
		AddParameter(int32(fighterDiff))
}

func (r *EventRecorder) LandFighter(side Side, track, fighterDiff int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opLandFighter).
		AddParameter(int32(side)).
		AddParameter(int32(track)).
		AddParameter(int32(fighterDiff))
}

func (r *EventRecorder) KillFighter(side Side, track int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opKillFighter).
		AddParameter(int32(side)).
		AddParameter(int32(track))
}

func (r *EventRecorder) FireBeam(side Side, track, target, hit, damage, kill int, effect HitEffect) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opFireBeam).
		AddParameter(int32(side)).
		AddParameter(int32(track)).
		AddParameter(int32(target)).
		AddParameter(int32(hit)).
		AddParameter(int32(damage)).
		AddParameter(int32(kill)).
		AddParameter(int32(effect.DamageDone)).
		AddParameter(int32(effect.CrewKilled)).
		AddParameter(int32(effect.ShieldLost))
}

func (r *EventRecorder) FireTorpedo(side Side, hit, launcher, torpedoDiff int, effect HitEffect) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opFireTorpedo).
		AddParameter(int32(side)).
		AddParameter(int32(hit)).
		AddParameter(int32(launcher)).
		AddParameter(int32(torpedoDiff)).
		AddParameter(int32(effect.DamageDone)).
		AddParameter(int32(effect.CrewKilled)).
		AddParameter(int32(effect.ShieldLost))
}

func (r *EventRecorder) UpdateBeam(side Side, slot, value int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateBeam).
		AddParameter(int32(side)).
		AddParameter(int32(slot)).
		AddParameter(int32(value))
}

func (r *EventRecorder) UpdateLauncher(side Side, slot, value int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateLauncher).
		AddParameter(int32(side)).
		AddParameter(int32(slot)).
		AddParameter(int32(value))
}

func (r *EventRecorder) MoveObject(side Side, position int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opMoveObject).
		AddParameter(int32(side)).
		AddParameter(int32(position))
}

func (r *EventRecorder) MoveFighter(side Side, track, position, distance int, status FighterStatus) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opMoveFighter).
		AddParameter(int32(side)).
		AddParameter(int32(track)).
		AddParameter(int32(position)).
		AddParameter(int32(distance)).
		AddParameter(int32(status))
}

func (r *EventRecorder) KillObject(side Side) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opKillObject).
		AddParameter(int32(side))
}

func (r *EventRecorder) UpdateObject(side Side, damage, crew, shield int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateObject).
		AddParameter(int32(side)).
		AddParameter(int32(damage)).
		AddParameter(int32(crew)).
		AddParameter(int32(shield))
}

func (r *EventRecorder) UpdateAmmo(side Side, numTorpedoes, numFighters int) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateAmmo).
		AddParameter(int32(side)).
		AddParameter(int32(numTorpedoes)).
		AddParameter(int32(numFighters))
}

func (r *EventRecorder) UpdateFighter(side Side, track, position, distance int, status FighterStatus) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opUpdateFighter).
		AddParameter(int32(side)).
		AddParameter(int32(track)).
		AddParameter(int32(position)).
		AddParameter(int32(distance)).
		AddParameter(int32(status))
}

func (r *EventRecorder) SetResult(result ResultSet) {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opSetResult).
		AddParameter(result.Encode())
}

func (r *EventRecorder) RemoveAnimations() {
	if r.err != nil {
		return
	}
	r.content.AddInstruction(opRemoveAnimations)
}

func boolParam(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
