package library

import (
	"errors"

	"gopkg.in/yaml.v3"

	"tactics/internal/character"
	"tactics/internal/components"
	"tactics/internal/items"
)

type (
	Unit = character.Unit
	Item = items.Item
)

func init() {
	flag("weapon", func() items.Component { return Weapon{} })
	stringValued("weapon_type", func(v string) items.Component { return WeaponType(v) })
	stringValued("weapon_rank", func(v string) items.Component { return WeaponRank(v) })
	intValued("hit", func(v int) items.Component { return Hit(v) })
	intValued("crit", func(v int) items.Component { return Crit(v) })
	intValued("weight", func(v int) items.Component { return Weight(v) })
	intValued("crit_multiplier", func(v int) items.Component { return CritMultiplier(v) })
	intValued("crit_addition", func(v int) items.Component { return CritAddition(v) })
	flag("magic", func() items.Component { return Magic{} })
	flag("brave", func() items.Component { return Brave{} })
	flag("reaver", func() items.Component { return Reaver{} })
	flag("no_double", func() items.Component { return NoDouble{} })
	flag("uncounterable", func() items.Component { return Uncounterable{} })
	flag("cannot_counter", func() items.Component { return CannotCounter{} })
	flag("lockpick", func() items.Component { return Lockpick{} })
	stringValued("desc", func(v string) items.Component { return Desc(v) })
	Register("range", newRange)
	Register("effective", newEffective)
}

// Weapon marks an item as a weapon; only weapons can counter.
type Weapon struct{}

func (Weapon) Nid() string                { return "weapon" }
func (Weapon) IsWeapon(*Unit, *Item) bool { return true }

type WeaponType string

func (WeaponType) Nid() string { return "weapon_type" }
func (w WeaponType) WeaponType(*Unit, *Item) (string, bool) {
	return string(w), true
}

type WeaponRank string

func (WeaponRank) Nid() string { return "weapon_rank" }
func (w WeaponRank) WeaponRank(*Unit, *Item) (string, bool) {
	return string(w), true
}

// Hit is the item's base accuracy.
type Hit int

func (Hit) Nid() string                        { return "hit" }
func (h Hit) BaseHit(*Unit, *Item) (int, bool) { return int(h), true }

type Crit int

func (Crit) Nid() string                         { return "crit" }
func (c Crit) BaseCrit(*Unit, *Item) (int, bool) { return int(c), true }

type Weight int

func (Weight) Nid() string                       { return "weight" }
func (w Weight) Weight(*Unit, *Item) (int, bool) { return int(w), true }

type CritMultiplier int

func (CritMultiplier) Nid() string { return "crit_multiplier" }
func (c CritMultiplier) CritMultiplier(*Unit, *Item) (int, bool) {
	return int(c), true
}

type CritAddition int

func (CritAddition) Nid() string                     { return "crit_addition" }
func (c CritAddition) CritAddition(*Unit, *Item) int { return int(c) }

// Magic makes the item use the magic damage and resistance equations.
type Magic struct{}

func (Magic) Nid() string { return "magic" }
func (Magic) DamageFormula(*Unit, *Item) (string, bool) {
	return "MAGIC_DAMAGE", true
}
func (Magic) ResistFormula(*Unit, *Item) (string, bool) {
	return "MAGIC_DEFENSE", true
}

// Brave adds a second sub-strike when attacking.
type Brave struct{}

func (Brave) Nid() string { return "brave" }
func (Brave) DynamicMultiattacks(q components.Query) int {
	if q.Mode == components.ModeAttack {
		return 1
	}
	return 0
}

// Reaver reverses and doubles the weapon triangle.
type Reaver struct{}

func (Reaver) Nid() string                         { return "reaver" }
func (Reaver) TriangleMultiplier(*Unit, *Item) int { return -2 }

type NoDouble struct{}

func (NoDouble) Nid() string                 { return "no_double" }
func (NoDouble) CanDouble(*Unit, *Item) bool { return false }

type Uncounterable struct{}

func (Uncounterable) Nid() string                      { return "uncounterable" }
func (Uncounterable) CanBeCountered(*Unit, *Item) bool { return false }

type CannotCounter struct{}

func (CannotCounter) Nid() string                  { return "cannot_counter" }
func (CannotCounter) CanCounter(*Unit, *Item) bool { return false }

type Lockpick struct{}

func (Lockpick) Nid() string                 { return "lockpick" }
func (Lockpick) CanUnlock(*Unit, *Item) bool { return true }

type Desc string

func (Desc) Nid() string                        { return "desc" }
func (d Desc) Text(*Unit, *Item) (string, bool) { return string(d), true }

// Range is the inclusive targeting range in tiles.
type Range struct {
	Min, Max int
}

func newRange(n *yaml.Node, _ Env) (items.Component, error) {
	var v []int
	if hasValue(n) {
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
	}
	switch len(v) {
	case 1:
		return Range{Min: v[0], Max: v[0]}, nil
	case 2:
		if v[0] > v[1] {
			return nil, errors.New("range min exceeds max")
		}
		return Range{Min: v[0], Max: v[1]}, nil
	default:
		return nil, errors.New("range needs [min, max]")
	}
}

func (Range) Nid() string { return "range" }
func (r Range) Range(*Unit, *Item) (int, int, bool) {
	return r.Min, r.Max, true
}

// Effective adds Bonus damage against targets carrying any of Tags.
type Effective struct {
	Tags  []string `yaml:"tags"`
	Bonus int      `yaml:"bonus"`
}

func newEffective(n *yaml.Node, _ Env) (items.Component, error) {
	var e Effective
	if !hasValue(n) {
		return nil, errors.New("effective needs tags and bonus")
	}
	if err := n.Decode(&e); err != nil {
		return nil, err
	}
	return e, nil
}

func (Effective) Nid() string { return "effective" }
func (e Effective) DynamicDamage(q components.Query) int {
	if q.Target == nil {
		return 0
	}
	for _, tag := range e.Tags {
		if q.Target.HasTag(tag) {
			return e.Bonus
		}
	}
	return 0
}
