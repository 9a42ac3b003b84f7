package battle

import "stellarsiege/client/internal/instructionlist"

// Replay issues every recorded callback, in order, against the given
// listener. Unknown or truncated instructions are skipped without failing
// the rest of the stream.
func (r *EventRecorder) Replay(listener EventListener) {
	ReplayList(&r.content, listener)
}

// ReplayList replays a recording without consuming it, so a master tape can
// be scanned repeatedly.
func ReplayList(list *instructionlist.StringInstructionList, listener EventListener) {
	it := list.Read()
	for {
		opcode, ok := it.ReadInstruction()
		if !ok {
			return
		}
		switch opcode {
		case opPlaceObject:
			replayPlaceObject(it, listener)
		case opUpdateTime:
			if p, ok := readParams(it, 2); ok {
				listener.UpdateTime(p[0], p[1])
			}
		case opStartFighter:
			if p, ok := readParams(it, 5); ok {
				listener.StartFighter(Side(p[0]), int(p[1]), int(p[2]), int(p[3]), int(p[4]))
			}
		case opLandFighter:
			if p, ok := readParams(it, 3); ok {
				listener.LandFighter(Side(p[0]), int(p[1]), int(p[2]))
			}
		case opKillFighter:
			if p, ok := readParams(it, 2); ok {
				listener.KillFighter(Side(p[0]), int(p[1]))
			}
		case opFireBeam:
			if p, ok := readParams(it, 9); ok {
				effect := HitEffect{DamageDone: int(p[6]), CrewKilled: int(p[7]), ShieldLost: int(p[8])}
				listener.FireBeam(Side(p[0]), int(p[1]), int(p[2]), int(p[3]), int(p[4]), int(p[5]), effect)
			}
		case opFireTorpedo:
			if p, ok := readParams(it, 7); ok {
				effect := HitEffect{DamageDone: int(p[4]), CrewKilled: int(p[5]), ShieldLost: int(p[6])}
				listener.FireTorpedo(Side(p[0]), int(p[1]), int(p[2]), int(p[3]), effect)
			}
		case opUpdateBeam:
			if p, ok := readParams(it, 3); ok {
				listener.UpdateBeam(Side(p[0]), int(p[1]), int(p[2]))
			}
		case opUpdateLauncher:
			if p, ok := readParams(it, 3); ok {
				listener.UpdateLauncher(Side(p[0]), int(p[1]), int(p[2]))
			}
		case opMoveObject:
			if p, ok := readParams(it, 2); ok {
				listener.MoveObject(Side(p[0]), int(p[1]))
			}
		case opMoveFighter:
			if p, ok := readParams(it, 5); ok {
				listener.MoveFighter(Side(p[0]), int(p[1]), int(p[2]), int(p[3]), FighterStatus(p[4]))
			}
		case opKillObject:
			if p, ok := readParams(it, 1); ok {
				listener.KillObject(Side(p[0]))
			}
		case opUpdateObject:
			if p, ok := readParams(it, 4); ok {
				listener.UpdateObject(Side(p[0]), int(p[1]), int(p[2]), int(p[3]))
			}
		case opUpdateAmmo:
			if p, ok := readParams(it, 3); ok {
				listener.UpdateAmmo(Side(p[0]), int(p[1]), int(p[2]))
			}
		case opUpdateFighter:
			if p, ok := readParams(it, 5); ok {
				listener.UpdateFighter(Side(p[0]), int(p[1]), int(p[2]), int(p[3]), FighterStatus(p[4]))
			}
		case opSetResult:
			if p, ok := readParams(it, 1); ok {
				listener.SetResult(DecodeResultSet(p[0]))
			}
		case opRemoveAnimations:
			listener.RemoveAnimations()
		default:
			// Unknown opcode: its parameters are skipped by the next
			// ReadInstruction.
		}
	}
}

func readParams(it *instructionlist.StringIterator, n int) ([]int32, bool) {
	params := make([]int32, n)
	for i := range params {
		v, ok := it.ReadParameter()
		if !ok {
			return nil, false
		}
		params[i] = v
	}
	return params, true
}

func replayPlaceObject(it *instructionlist.StringIterator, listener EventListener) {
	head, ok := readParams(it, 17)
	if !ok {
		return
	}
	name, ok := it.ReadStringParameter()
	if !ok {
		return
	}
	position, ok := it.ReadParameter()
	if !ok {
		return
	}
	ownerName, ok := it.ReadStringParameter()
	if !ok {
		return
	}
	relation, ok := it.ReadParameter()
	if !ok {
		return
	}
	beamName, ok := it.ReadStringParameter()
	if !ok {
		return
	}
	launcherName, ok := it.ReadStringParameter()
	if !ok {
		return
	}

	info := UnitInfo{
		Mass:         int(head[1]),
		Shield:       int(head[2]),
		Damage:       int(head[3]),
		Crew:         int(head[4]),
		ID:           int(head[5]),
		Owner:        int(head[6]),
		Race:         int(head[7]),
		Picture:      int(head[8]),
		BeamType:     int(head[9]),
		NumBeams:     int(head[10]),
		TorpedoType:  int(head[11]),
		NumLaunchers: int(head[12]),
		NumTorpedoes: int(head[13]),
		NumBays:      int(head[14]),
		NumFighters:  int(head[15]),
		IsPlanet:     head[16] != 0,
		Name:         name,
		Position:     int(position),
		OwnerName:    ownerName,
		Relation:     Relation(relation),
		BeamName:     beamName,
		LauncherName: launcherName,
	}
	listener.PlaceObject(Side(head[0]), info)
}
