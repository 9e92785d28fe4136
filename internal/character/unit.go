package character

import (
	"tactics/internal/items"
	"tactics/internal/mathutil"
)

// Stat names the combat math reads directly.
const (
	StatHP  = "HP"
	StatCON = "CON"
)

type Position struct {
	X, Y int
}

// Distance is the Manhattan distance between two tiles.
func (p Position) Distance(o Position) int {
	return mathutil.Manhattan(p.X, p.Y, o.X, o.Y)
}

// Unit is a combatant. Its fields persist across combats and are only
// changed by reversible actions once combat starts.
type Unit struct {
	ID       string
	Name     string
	Team     string
	Position *Position // nil for units that are not on the map

	Stats map[string]int // base stats; HP is max HP
	Wexp  map[string]int // weapon experience by weapon type

	Items  []*items.Item
	Skills []*Skill
	Tags   []string

	StrikePartner *Unit
	Gauge         int

	HP          int
	Mana        int
	ActionState ActionState
}

// NewUnit creates a unit at full HP.
func NewUnit(id, name, team string, stats map[string]int) *Unit {
	if stats == nil {
		stats = make(map[string]int)
	}
	return &Unit{
		ID:    id,
		Name:  name,
		Team:  team,
		Stats: stats,
		Wexp:  make(map[string]int),
		HP:    stats[StatHP],
	}
}

// MaxHP returns the HP stat.
func (u *Unit) MaxHP() int {
	return u.Stats[StatHP]
}

func (u *Unit) Alive() bool {
	return u.HP > 0
}

// Paired reports whether the unit has a strike partner.
func (u *Unit) Paired() bool {
	return u.StrikePartner != nil
}

func (u *Unit) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Skill returns the first skill with the given nid.
func (u *Unit) Skill(nid string) *Skill {
	for _, s := range u.Skills {
		if s.Nid == nid {
			return s
		}
	}
	return nil
}

func (u *Unit) HasSkill(nid string) bool {
	return u.Skill(nid) != nil
}

// Item returns the first inventory item with the given nid.
func (u *Unit) Item(nid string) *items.Item {
	for _, it := range u.Items {
		if it.Nid == nid {
			return it
		}
	}
	return nil
}

// GiveItem adds an item to the inventory and takes ownership of it.
func (u *Unit) GiveItem(it *items.Item) {
	it.Owner = u.ID
	for _, sub := range it.SubItems {
		sub.Owner = u.ID
	}
	u.Items = append(u.Items, it)
}

func (u *Unit) String() string {
	if u == nil {
		return "<nobody>"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
