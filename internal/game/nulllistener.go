package game

import "stellarsiege/client/internal/battle"

// NullListener implements battle.EventListener with no-ops, for embedding in
// listeners that only care about a few callbacks.
type NullListener struct{}

func (NullListener) PlaceObject(side battle.Side, info battle.UnitInfo)             {}
func (NullListener) UpdateTime(time battle.Time, distance int32)                    {}
func (NullListener) StartFighter(side battle.Side, track, pos, dist, diff int)      {}
func (NullListener) LandFighter(side battle.Side, track, diff int)                  {}
func (NullListener) KillFighter(side battle.Side, track int)                        {}
func (NullListener) FireBeam(side battle.Side, track, target, hit, damage, kill int, effect battle.HitEffect) {
}
func (NullListener) FireTorpedo(side battle.Side, hit, launcher, diff int, effect battle.HitEffect) {
}
func (NullListener) UpdateBeam(side battle.Side, slot, value int)     {}
func (NullListener) UpdateLauncher(side battle.Side, slot, value int) {}
func (NullListener) MoveObject(side battle.Side, position int)        {}
func (NullListener) MoveFighter(side battle.Side, track, pos, dist int, status battle.FighterStatus) {
}
func (NullListener) KillObject(side battle.Side)                        {}
func (NullListener) UpdateObject(side battle.Side, damage, crew, shield int) {}
func (NullListener) UpdateAmmo(side battle.Side, torps, fighters int)   {}
func (NullListener) UpdateFighter(side battle.Side, track, pos, dist int, status battle.FighterStatus) {
}
func (NullListener) SetResult(result battle.ResultSet) {}
func (NullListener) RemoveAnimations()                 {}
