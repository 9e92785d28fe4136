package character

import "tactics/internal/items"

// Skill is a unit-owned bundle of components. Data holds transient per-skill
// state, e.g. whether a combat art is active.
type Skill struct {
	Nid        string
	Name       string
	Components []items.Component
	Data       map[string]int
}

func NewSkill(nid, name string, comps ...items.Component) *Skill {
	return &Skill{
		Nid:        nid,
		Name:       name,
		Components: comps,
		Data:       make(map[string]int),
	}
}

// Has reports whether a component with the given nid is attached.
func (s *Skill) Has(nid string) bool {
	for _, c := range s.Components {
		if c.Nid() == nid {
			return true
		}
	}
	return false
}
