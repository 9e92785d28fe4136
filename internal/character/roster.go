package character

// Roster indexes the units taking part in a scenario.
type Roster struct {
	units []*Unit
	byID  map[string]*Unit
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Unit)}
}

// Add registers a unit. A unit with a duplicate ID replaces the earlier one.
func (r *Roster) Add(u *Unit) {
	if old, ok := r.byID[u.ID]; ok {
		for i, existing := range r.units {
			if existing == old {
				r.units[i] = u
			}
		}
	} else {
		r.units = append(r.units, u)
	}
	r.byID[u.ID] = u
}

// Get looks up a unit by ID.
func (r *Roster) Get(id string) (*Unit, bool) {
	u, ok := r.byID[id]
	return u, ok
}

// Units returns the units in insertion order.
func (r *Roster) Units() []*Unit {
	return r.units
}

func (r *Roster) Len() int {
	return len(r.units)
}
