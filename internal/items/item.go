package items

import "fmt"

// Component is one piece of behavior attached to an item or a skill.
// Combat hooks are optional interfaces a component may additionally implement;
// a component that does not implement a hook has no opinion on it.
type Component interface {
	Nid() string
}

// Item is an inventory entry. Live per-item state (remaining uses, cooldowns)
// lives in Data and is only changed through reversible actions.
type Item struct {
	Nid        string
	Name       string
	Owner      string // unit ID, empty while in the convoy
	Components []Component
	Data       map[string]int

	// Multi-items wrap several sub-items that strike in sequence.
	Parent   *Item
	SubItems []*Item

	// ForceMaxRange, when positive, replaces the item's max range.
	// AI evaluation sets it transiently.
	ForceMaxRange int
}

// New creates an item with an empty data bag.
func New(nid, name string, comps ...Component) *Item {
	return &Item{
		Nid:        nid,
		Name:       name,
		Components: comps,
		Data:       make(map[string]int),
	}
}

// Get returns the first attached component with the given nid.
func (i *Item) Get(nid string) (Component, bool) {
	for _, c := range i.Components {
		if c.Nid() == nid {
			return c, true
		}
	}
	return nil, false
}

// Has reports whether a component with the given nid is attached.
func (i *Item) Has(nid string) bool {
	_, ok := i.Get(nid)
	return ok
}

// IsMulti reports whether the item wraps sub-items.
func (i *Item) IsMulti() bool {
	return len(i.SubItems) > 0
}

// Strikers returns the items that actually strike when this item is used:
// the sub-items of a multi-item, otherwise the item itself.
func (i *Item) Strikers() []*Item {
	if i.IsMulti() {
		return i.SubItems
	}
	return []*Item{i}
}

// AddSubItem wraps sub under i.
func (i *Item) AddSubItem(sub *Item) {
	sub.Parent = i
	sub.Owner = i.Owner
	i.SubItems = append(i.SubItems, sub)
}

// Value reads a data bag entry, 0 when unset.
func (i *Item) Value(key string) int {
	if i.Data == nil {
		return 0
	}
	return i.Data[key]
}

func (i *Item) String() string {
	if i == nil {
		return "<no item>"
	}
	if i.Name != "" {
		return i.Name
	}
	return fmt.Sprintf("item(%s)", i.Nid)
}
