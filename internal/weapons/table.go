package weapons

import (
	"tactics/internal/config"
)

// AllTypes matches any target weapon type, and as a rank gate, any rank.
const AllTypes = "All"

// Bonus is the stat modification carried by a rank or triangle entry.
type Bonus struct {
	Accuracy     int
	Avoid        int
	Damage       int
	Resist       int
	Crit         int
	Dodge        int
	AttackSpeed  int
	DefenseSpeed int
}

// Scale multiplies every field by k.
func (b Bonus) Scale(k int) Bonus {
	return Bonus{
		Accuracy:     b.Accuracy * k,
		Avoid:        b.Avoid * k,
		Damage:       b.Damage * k,
		Resist:       b.Resist * k,
		Crit:         b.Crit * k,
		Dodge:        b.Dodge * k,
		AttackSpeed:  b.AttackSpeed * k,
		DefenseSpeed: b.DefenseSpeed * k,
	}
}

// Relation tells whether a triangle bonus came from an advantage or a disadvantage entry.
type Relation int

const (
	Neutral Relation = iota
	Advantaged
	Disadvantaged
)

// Rank is a weapon rank threshold.
type Rank struct {
	Name        string
	Requirement int
	Bonus       Bonus
}

type entry struct {
	target      string
	requirement int
	bonus       Bonus
}

type weaponType struct {
	nid          string
	name         string
	advantage    []entry
	disadvantage []entry
}

// Table answers weapon triangle and rank lookups.
type Table struct {
	types map[string]*weaponType
	ranks []Rank // ascending by requirement
}

// NewTable builds the lookup table from validated config.
func NewTable(cfg config.WeaponsConfig) *Table {
	t := &Table{types: make(map[string]*weaponType, len(cfg.Types))}

	for _, r := range cfg.Ranks {
		t.ranks = append(t.ranks, Rank{
			Name:        r.Rank,
			Requirement: r.Requirement,
			Bonus:       Bonus{Accuracy: r.Accuracy, Damage: r.Damage, Crit: r.Crit},
		})
	}
	// insertion sort keeps declaration order among equal requirements
	for i := 1; i < len(t.ranks); i++ {
		for j := i; j > 0 && t.ranks[j].Requirement < t.ranks[j-1].Requirement; j-- {
			t.ranks[j], t.ranks[j-1] = t.ranks[j-1], t.ranks[j]
		}
	}

	for _, wt := range cfg.Types {
		t.types[wt.Nid] = &weaponType{
			nid:          wt.Nid,
			name:         wt.Name,
			advantage:    t.entries(wt.Advantage),
			disadvantage: t.entries(wt.Disadvantage),
		}
	}
	return t
}

func (t *Table) entries(src []config.AdvantageConfig) []entry {
	out := make([]entry, 0, len(src))
	for _, a := range src {
		out = append(out, entry{
			target:      a.WeaponType,
			requirement: t.requirement(a.WeaponRank),
			bonus: Bonus{
				Accuracy:     a.Accuracy,
				Avoid:        a.Avoid,
				Damage:       a.Damage,
				Resist:       a.Resist,
				Crit:         a.Crit,
				Dodge:        a.Dodge,
				AttackSpeed:  a.AttackSpeed,
				DefenseSpeed: a.DefenseSpeed,
			},
		})
	}
	return out
}

func (t *Table) requirement(rank string) int {
	if rank == "" || rank == AllTypes {
		return 0
	}
	for _, r := range t.ranks {
		if r.Name == rank {
			return r.Requirement
		}
	}
	return 0
}

// Known reports whether nid is a declared weapon type.
func (t *Table) Known(nid string) bool {
	_, ok := t.types[nid]
	return ok
}

// Name returns the display name of a weapon type, or the nid if it has none.
func (t *Table) Name(nid string) string {
	if wt, ok := t.types[nid]; ok && wt.name != "" {
		return wt.name
	}
	return nid
}

// Advantage resolves the triangle bonus of attackerType (wielded with wexp
// experience) against targetType. Matching advantage entries take precedence;
// disadvantage entries apply only when no advantage entry matched, so a
// pairing is never both. Among matching entries the highest rank requirement
// wins and ties go to the first declared.
func (t *Table) Advantage(attackerType string, wexp int, targetType string) (Bonus, Relation) {
	wt, ok := t.types[attackerType]
	if !ok || targetType == "" {
		return Bonus{}, Neutral
	}
	if b, ok := best(wt.advantage, wexp, targetType); ok {
		return b, Advantaged
	}
	if b, ok := best(wt.disadvantage, wexp, targetType); ok {
		return b, Disadvantaged
	}
	return Bonus{}, Neutral
}

func best(entries []entry, wexp int, target string) (Bonus, bool) {
	found := false
	var pick entry
	for _, e := range entries {
		if e.target != AllTypes && e.target != target {
			continue
		}
		if wexp < e.requirement {
			continue
		}
		if !found || e.requirement > pick.requirement {
			pick = e
			found = true
		}
	}
	return pick.bonus, found
}

// RankFor returns the highest rank whose requirement wexp meets.
func (t *Table) RankFor(wexp int) (Rank, bool) {
	var out Rank
	found := false
	for _, r := range t.ranks {
		if wexp >= r.Requirement {
			out = r
			found = true
		}
	}
	return out, found
}

// RankBonus returns the bonus of the highest rank met by wexp in weaponType.
// Unknown weapon types get no bonus.
func (t *Table) RankBonus(weaponType string, wexp int) Bonus {
	if !t.Known(weaponType) {
		return Bonus{}
	}
	r, ok := t.RankFor(wexp)
	if !ok {
		return Bonus{}
	}
	return r.Bonus
}

// Requirement returns the wexp needed for the named rank, 0 when unknown.
func (t *Table) Requirement(rank string) int {
	return t.requirement(rank)
}
