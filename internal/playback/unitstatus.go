package playback

import "stellarsiege/client/internal/battle"

// Property identifies one numeric unit status value.
type Property uint8

const (
	PropertyShield Property = iota
	PropertyDamage
	PropertyCrew
	PropertyNumTorpedoes
	PropertyNumFighters
	numProperties
)

// WeaponKind distinguishes the two per-slot weapon displays.
type WeaponKind uint8

const (
	BeamWeapon WeaponKind = iota
	LauncherWeapon
)

// UnitStatus is the per-side status display the controller keeps current:
// absolute values after placements and resyncs, signed deltas during normal
// playback, and per-weapon block/charge state.
type UnitStatus interface {
	SetUnit(info battle.UnitInfo)
	SetProperty(p Property, value int)
	AddProperty(p Property, delta int)
	SetWeaponBlocked(kind WeaponKind, slot int, blocked bool)
	SetWeaponLevel(kind WeaponKind, slot int, value int)
	UnblockAllWeapons()
}

// WeaponState is the display state of one beam or launcher slot.
type WeaponState struct {
	Blocked bool
	Level   int
}

// UnitStatusModel is a plain-data UnitStatus for text frontends and tests.
type UnitStatusModel struct {
	Unit       battle.UnitInfo
	properties [numProperties]int
	weapons    [2][]WeaponState
}

// NewUnitStatusModel returns an empty model.
func NewUnitStatusModel() *UnitStatusModel {
	return &UnitStatusModel{}
}

// SetUnit installs the unit and derives the initial property values.
func (m *UnitStatusModel) SetUnit(info battle.UnitInfo) {
	m.Unit = info
	m.properties[PropertyShield] = info.Shield
	m.properties[PropertyDamage] = info.Damage
	m.properties[PropertyCrew] = info.Crew
	m.properties[PropertyNumTorpedoes] = info.NumTorpedoes
	m.properties[PropertyNumFighters] = info.NumFighters
	m.weapons[BeamWeapon] = make([]WeaponState, info.NumBeams)
	m.weapons[LauncherWeapon] = make([]WeaponState, info.NumLaunchers)
}

func (m *UnitStatusModel) SetProperty(p Property, value int) {
	if p < numProperties {
		m.properties[p] = value
	}
}

func (m *UnitStatusModel) AddProperty(p Property, delta int) {
	if p < numProperties {
		m.properties[p] += delta
	}
}

// Property returns the current value.
func (m *UnitStatusModel) Property(p Property) int {
	if p < numProperties {
		return m.properties[p]
	}
	return 0
}

func (m *UnitStatusModel) SetWeaponBlocked(kind WeaponKind, slot int, blocked bool) {
	if w := m.weapon(kind, slot); w != nil {
		w.Blocked = blocked
	}
}

func (m *UnitStatusModel) SetWeaponLevel(kind WeaponKind, slot int, value int) {
	if w := m.weapon(kind, slot); w != nil {
		w.Level = value
	}
}

func (m *UnitStatusModel) UnblockAllWeapons() {
	for kind := range m.weapons {
		for i := range m.weapons[kind] {
			m.weapons[kind][i].Blocked = false
		}
	}
}

// Weapon returns the display state of one slot.
func (m *UnitStatusModel) Weapon(kind WeaponKind, slot int) WeaponState {
	if w := m.weapon(kind, slot); w != nil {
		return *w
	}
	return WeaponState{}
}

func (m *UnitStatusModel) weapon(kind WeaponKind, slot int) *WeaponState {
	if kind > LauncherWeapon || slot < 0 || slot >= len(m.weapons[kind]) {
		return nil
	}
	return &m.weapons[kind][slot]
}
