package game

import "stellarsiege/client/internal/battle"

// SampleBattle is a deterministic scripted fight used by the demo binary
// and the tests: a torpedo cruiser engaging a fighter-carrying starbase.
// It stands in for the combat algorithm, which is out of scope; anything
// driving an EventListener can replace it.
func SampleBattle(listener battle.EventListener) {
	left := battle.UnitInfo{
		Name: "Thunderchild", ID: 204, Owner: 1, Race: 1,
		Mass: 430, Shield: 100, Crew: 430, Picture: 61,
		BeamType: 7, NumBeams: 6, TorpedoType: 9, NumLaunchers: 4,
		NumTorpedoes: 60, Position: 30,
		OwnerName: "The Federation", Relation: battle.RelationPlayer,
		BeamName: "Heavy Phaser", LauncherName: "Mark 8 Photon",
	}
	right := battle.UnitInfo{
		Name: "Gorbie's Rest", ID: 363, Owner: 8, Race: 8,
		Mass: 980, Shield: 100, Crew: 1858, Picture: 107,
		BeamType: 10, NumBeams: 10, NumBays: 8, NumFighters: 120,
		Position: 610,
		OwnerName: "The Evil Empire", Relation: battle.RelationEnemy,
		BeamName: "Heavy Disruptor",
	}
	listener.PlaceObject(battle.LeftSide, left)
	listener.PlaceObject(battle.RightSide, right)

	const lastTick = 180
	leftPos, rightPos := 30, 610
	leftShield := 100
	launchedTracks := 0

	for tick := battle.Time(1); tick <= lastTick; tick++ {
		//1.- Close the distance until the units are in weapon range.
		if rightPos-leftPos > 300 {
			leftPos += 2
			listener.MoveObject(battle.LeftSide, leftPos)
		}

		//2.- The carrier launches one fighter every fifth tick, twelve in all.
		if tick%5 == 0 && launchedTracks < 12 {
			track := launchedTracks
			launchedTracks++
			listener.StartFighter(battle.RightSide, track, rightPos, 0, -1)
		}
		for track := 0; track < launchedTracks; track++ {
			if tick%3 == int32(track)%3 {
				listener.MoveFighter(battle.RightSide, track, rightPos-10*track, 10*track, battle.FighterAttacks)
			}
		}

		//3.- Fighters strafe the cruiser with light beams.
		if launchedTracks > 0 && tick%4 == 0 {
			track := int(tick/4) % launchedTracks
			effect := battle.HitEffect{DamageDone: 1, ShieldLost: 2}
			if leftShield <= 0 {
				effect = battle.HitEffect{DamageDone: 2, CrewKilled: 3}
			}
			leftShield -= 2
			listener.FireBeam(battle.RightSide, track, -1, 40, 10, 4, effect)
		}

		//4.- The cruiser answers: beams at fighters, torpedoes at the hull.
		if launchedTracks > 0 && tick%6 == 0 {
			slot := int(tick/6) % 6
			target := int(tick/6) % launchedTracks
			listener.FireBeam(battle.LeftSide, -1-slot, target, 25, 40, 20, battle.HitEffect{})
			listener.KillFighter(battle.RightSide, target)
			listener.UpdateBeam(battle.LeftSide, slot, 0)
		}
		if tick >= 40 && tick%7 == 0 {
			launcher := int(tick/7) % 4
			hit := -1
			effect := battle.HitEffect{}
			if tick%14 == 0 {
				hit = 30
				effect = battle.HitEffect{DamageDone: 9, CrewKilled: 40, ShieldLost: 18}
			}
			listener.FireTorpedo(battle.LeftSide, hit, launcher, -1, effect)
			listener.UpdateLauncher(battle.LeftSide, launcher, 0)
		}

		//5.- Weapons recharge towards the next shot.
		if tick%3 == 0 {
			listener.UpdateBeam(battle.RightSide, int(tick)%10, int(tick)%101)
		}
		if tick%9 == 0 {
			listener.UpdateLauncher(battle.LeftSide, int(tick)%4, int(tick*5)%101)
		}

		listener.UpdateTime(tick, int32((rightPos-leftPos)*100))
	}

	//6.- The cruiser runs dry and the carrier overwhelms it.
	listener.KillObject(battle.LeftSide)
	listener.SetResult(battle.ResultSetOf(battle.LeftDestroyed))
	listener.UpdateTime(lastTick+1, int32((rightPos-leftPos)*100))
}
