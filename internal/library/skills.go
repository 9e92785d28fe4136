package library

import (
	"errors"

	"gopkg.in/yaml.v3"

	"tactics/internal/action"
	"tactics/internal/character"
	"tactics/internal/components"
	"tactics/internal/config"
	"tactics/internal/items"
)

func init() {
	Register("stat_change", newStatChange)
	flag("vantage", func() items.Component { return Vantage{} })
	intValued("accuracy_bonus", func(v int) items.Component { return AccuracyBonus(v) })
	intValued("avoid_bonus", func(v int) items.Component { return AvoidBonus(v) })
	intValued("crit_bonus", func(v int) items.Component { return CritBonus(v) })
	intValued("damage_bonus", func(v int) items.Component { return DamageBonus(v) })
	flag("triangle_adept", func() items.Component { return TriangleAdept{} })
	flag("crit_anyway", func() items.Component { return CritAnyway{} })
	stringValued("seal_weapon", func(v string) items.Component { return SealWeapon(v) })
	flag("combat_art", func() items.Component { return CombatArt{} })
	flag("one_shot", func() items.Component { return &OneShot{} })
	flag("locktouch", func() items.Component { return Locktouch{} })
	Register("override", newOverride)
}

// StatChange adds flat amounts to stats.
type StatChange map[string]int

func newStatChange(n *yaml.Node, _ Env) (items.Component, error) {
	if !hasValue(n) {
		return nil, errors.New("stat_change needs a stat map")
	}
	var v map[string]int
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return StatChange(v), nil
}

func (StatChange) Nid() string                       { return "stat_change" }
func (s StatChange) StatChange(*Unit) map[string]int { return s }

// Vantage lets a defender strike first.
type Vantage struct{}

func (Vantage) Nid() string        { return "vantage" }
func (Vantage) Vantage(*Unit) bool { return true }

type AccuracyBonus int

func (AccuracyBonus) Nid() string                       { return "accuracy_bonus" }
func (b AccuracyBonus) ModifyAccuracy(*Unit, *Item) int { return int(b) }

type AvoidBonus int

func (AvoidBonus) Nid() string                    { return "avoid_bonus" }
func (b AvoidBonus) ModifyAvoid(*Unit, *Item) int { return int(b) }

type CritBonus int

func (CritBonus) Nid() string                           { return "crit_bonus" }
func (b CritBonus) ModifyCritAccuracy(*Unit, *Item) int { return int(b) }

type DamageBonus int

func (DamageBonus) Nid() string                     { return "damage_bonus" }
func (b DamageBonus) ModifyDamage(*Unit, *Item) int { return int(b) }

// TriangleAdept doubles weapon triangle effects.
type TriangleAdept struct{}

func (TriangleAdept) Nid() string                         { return "triangle_adept" }
func (TriangleAdept) TriangleMultiplier(*Unit, *Item) int { return 2 }

type CritAnyway struct{}

func (CritAnyway) Nid() string                  { return "crit_anyway" }
func (CritAnyway) CritAnyway(*Unit, *Item) bool { return true }

// SealWeapon forbids items of one weapon type.
type SealWeapon string

func (SealWeapon) Nid() string { return "seal_weapon" }
func (s SealWeapon) ItemRestrict(u *Unit, it *Item) bool {
	wtype, ok := components.WeaponType(u, it)
	return !ok || wtype != string(s)
}

// CombatArt switches its skill on only while the skill's "active" flag is set.
type CombatArt struct{}

const DataActive = "active"

func (CombatArt) Nid() string { return "combat_art" }
func (CombatArt) Enabled(_ *Unit, s *character.Skill) bool {
	return s.Data[DataActive] != 0
}

// OneShot removes its skill after the unit's next strike.
type OneShot struct {
	skill *character.Skill
}

func (*OneShot) Nid() string { return "one_shot" }

// BindSkill records the skill the component belongs to.
func (o *OneShot) BindSkill(s *character.Skill) {
	o.skill = s
}

func (o *OneShot) AfterStrike(s *components.Strike) {
	if o.skill == nil || !hasSkill(s.Unit, o.skill) {
		return
	}
	for _, a := range s.Actions.Actions() {
		if rm, ok := a.(*action.RemoveSkill); ok && rm.Unit == s.Unit && rm.Nid == o.skill.Nid {
			return
		}
	}
	s.Actions.Add(action.NewRemoveSkill(s.Unit, o.skill.Nid))
}

func hasSkill(u *Unit, skill *character.Skill) bool {
	for _, s := range u.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Locktouch lets the unit open locks without a key.
type Locktouch struct{}

func (Locktouch) Nid() string                 { return "locktouch" }
func (Locktouch) CanUnlock(*Unit, *Item) bool { return true }

// Override lends components to the unit's items of one weapon type, or to
// every item when WeaponType is empty.
type Override struct {
	WeaponType string
	Lent       []items.Component
}

func newOverride(n *yaml.Node, env Env) (items.Component, error) {
	if !hasValue(n) {
		return nil, errors.New("override needs components")
	}
	var raw struct {
		WeaponType string                 `yaml:"weapon_type"`
		Components []config.ComponentSpec `yaml:"components"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	lent, err := BuildAll(raw.Components, env)
	if err != nil {
		return nil, err
	}
	return &Override{WeaponType: raw.WeaponType, Lent: lent}, nil
}

func (*Override) Nid() string { return "override" }

func (o *Override) ItemOverrides(_ *Unit, it *Item) []items.Component {
	if o.WeaponType == "" {
		return o.Lent
	}
	for _, c := range it.Components {
		if w, ok := c.(WeaponType); ok && string(w) == o.WeaponType {
			return o.Lent
		}
	}
	return nil
}
