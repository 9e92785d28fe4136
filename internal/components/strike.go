package components

import (
	"tactics/internal/action"
	"tactics/internal/engine"
	"tactics/internal/playback"
)

// Mode tells a hook which side of the exchange the unit is on.
type Mode int

const (
	ModeAttack Mode = iota
	ModeDefense
	ModeSplash
)

func (m Mode) String() string {
	switch m {
	case ModeAttack:
		return "attack"
	case ModeDefense:
		return "defense"
	case ModeSplash:
		return "splash"
	default:
		return "unknown"
	}
}

// AttackInfo locates a strike within the combat: the attack count of the
// acting side and the sub-attack within that attack.
type AttackInfo struct {
	Attack    int
	Subattack int
}

// Query is the argument of dynamic hooks. Unit is the unit whose stat is being
// computed, Item is that unit's item, Target and TargetItem the opponent's.
type Query struct {
	Ctx        *engine.Context
	Unit       *Unit
	Item       *Item
	Target     *Unit
	TargetItem *Item
	Mode       Mode
	Info       AttackInfo
}

// Outcome is the resolved result of one strike.
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
	OutcomeCrit
	OutcomeGlancing
	// OutcomeGuard is a paired target blocking the strike with a full gauge.
	OutcomeGuard
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeHit:
		return "hit"
	case OutcomeCrit:
		return "crit"
	case OutcomeGlancing:
		return "glancing"
	case OutcomeGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// Landed reports whether the strike connects for damage purposes.
func (o Outcome) Landed() bool {
	return o == OutcomeHit || o == OutcomeCrit || o == OutcomeGlancing
}

// Strike is the shared buffer event hooks append to. Hooks must not mutate
// units or items; they queue actions and playback instead.
type Strike struct {
	Ctx        *engine.Context
	Actions    *action.List
	Playback   *playback.Log
	Unit       *Unit
	Item       *Item
	Target     *Unit
	TargetItem *Item
	Mode       Mode
	Info       AttackInfo
	Outcome    Outcome
	Forced     bool // outcome came from a script, not a roll
	FirstItem  bool

	// Damage is the HP the target actually lost to this strike so far.
	Damage int
}

// Query returns the dynamic-hook view of the strike from the striker's side.
func (s *Strike) Query() Query {
	return Query{
		Ctx:        s.Ctx,
		Unit:       s.Unit,
		Item:       s.Item,
		Target:     s.Target,
		TargetItem: s.TargetItem,
		Mode:       s.Mode,
		Info:       s.Info,
	}
}

func (s *Strike) targetID() string {
	if s.Target == nil {
		return ""
	}
	return s.Target.ID
}
