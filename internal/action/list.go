package action

import (
	"tactics/internal/character"
	"tactics/internal/items"
	"tactics/internal/mathutil"
)

// List is an ordered buffer of queued, not yet applied actions.
type List struct {
	actions []Action
}

// Add queues actions in order.
func (l *List) Add(actions ...Action) {
	l.actions = append(l.actions, actions...)
}

// Actions returns the queued actions in emission order.
func (l *List) Actions() []Action {
	return l.actions
}

func (l *List) Len() int {
	return len(l.actions)
}

// ProjectedHP is u's HP after the queued HP changes are applied.
func (l *List) ProjectedHP(u *character.Unit) int {
	hp := u.HP
	for _, a := range l.actions {
		if c, ok := a.(*ChangeHP); ok && c.Unit == u {
			hp = applyHP(hp, c.Delta, u.MaxHP())
		}
	}
	return hp
}

// ProjectedGauge is u's guard gauge after the queued gauge changes are applied.
func (l *List) ProjectedGauge(u *character.Unit) int {
	g := u.Gauge
	for _, a := range l.actions {
		switch c := a.(type) {
		case *SetGauge:
			if c.Unit == u {
				g = c.Value
			}
		case *IncGauge:
			if c.Unit == u {
				g = mathutil.Clamp(g+c.Delta, 0, c.Max)
			}
		}
	}
	return g
}

// ProjectedData is an item data value after the queued writes are applied.
func (l *List) ProjectedData(it *items.Item, key string) int {
	v := it.Value(key)
	for _, a := range l.actions {
		if c, ok := a.(*SetItemData); ok && c.Item == it && c.Key == key {
			v = c.Value
		}
	}
	return v
}

// Log applies actions and remembers them so they can be reversed.
type Log struct {
	applied []Action
}

// Apply runs each action's Do in order and records it.
func (l *Log) Apply(actions ...Action) {
	for _, a := range actions {
		a.Do()
		l.applied = append(l.applied, a)
	}
}

// Len returns how many actions are currently applied. It doubles as a mark
// for RewindTo.
func (l *Log) Len() int {
	return len(l.applied)
}

// Rewind reverses the last n applied actions, newest first, and returns how
// many were reversed.
func (l *Log) Rewind(n int) int {
	n = mathutil.Clamp(n, 0, len(l.applied))
	for i := 0; i < n; i++ {
		last := len(l.applied) - 1
		l.applied[last].Reverse()
		l.applied = l.applied[:last]
	}
	return n
}

// RewindTo reverses actions until only mark remain applied.
func (l *Log) RewindTo(mark int) int {
	return l.Rewind(len(l.applied) - mark)
}

// RewindAll reverses every applied action.
func (l *Log) RewindAll() int {
	return l.Rewind(len(l.applied))
}

// Applied returns the applied actions, oldest first.
func (l *Log) Applied() []Action {
	return l.applied
}
