// Package playback defines the semantic events combat emits for a renderer.
// Events are values: once appended they are never changed.
package playback

import "fmt"

// Kind identifies an event variant.
type Kind int

const (
	KindPhaseBegan Kind = iota
	KindMarkHit
	KindMarkCrit
	KindMarkMiss
	KindMarkGuard
	KindDamageHit
	KindDamageCrit
	KindHealHit
	KindHitSound
	KindScreenShake
	KindUnitTint
	KindStatusApplied
	KindItemBroke
	KindCombatEnded
)

var kindNames = [...]string{
	KindPhaseBegan:    "phase_began",
	KindMarkHit:       "mark_hit",
	KindMarkCrit:      "mark_crit",
	KindMarkMiss:      "mark_miss",
	KindMarkGuard:     "mark_guard",
	KindDamageHit:     "damage_hit",
	KindDamageCrit:    "damage_crit",
	KindHealHit:       "heal_hit",
	KindHitSound:      "hit_sound",
	KindScreenShake:   "screen_shake",
	KindUnitTint:      "unit_tint",
	KindStatusApplied: "status_applied",
	KindItemBroke:     "item_broke",
	KindCombatEnded:   "combat_ended",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one renderer-facing moment of combat.
type Event interface {
	Kind() Kind
	String() string
}

// PhaseBegan marks the start of a phase. Phase is the solver state name.
type PhaseBegan struct {
	Phase string
	Unit  string
}

// MarkHit, MarkCrit, MarkMiss and MarkGuard record the outcome of one strike.
type MarkHit struct{ Attacker, Target, Item string }
type MarkCrit struct{ Attacker, Target, Item string }
type MarkMiss struct{ Attacker, Target, Item string }
type MarkGuard struct{ Attacker, Target, Item string }

// DamageHit is damage from a normal or glancing hit. TrueDamage is the HP
// actually lost after clamping at 0.
type DamageHit struct {
	Attacker   string
	Item       string
	Target     string
	Damage     int
	TrueDamage int
	Glancing   bool
}

// DamageCrit is damage from a critical hit.
type DamageCrit struct {
	Attacker   string
	Item       string
	Target     string
	Damage     int
	TrueDamage int
}

// HealHit is healing received.
type HealHit struct {
	Healer     string
	Item       string
	Target     string
	Amount     int
	TrueAmount int
}

type HitSound struct {
	Sound string
}

type ScreenShake struct {
	Intensity int
}

// UnitTint flashes a unit in Color, a hex string such as "#ffffff".
type UnitTint struct {
	Unit  string
	Color string
}

// StatusApplied reports a status skill added to a unit.
type StatusApplied struct {
	Unit  string
	Skill string
}

// ItemBroke reports an item that ran out of uses.
type ItemBroke struct {
	Unit string
	Item string
}

type CombatEnded struct {
	Attacker string
	Defender string
}

func (PhaseBegan) Kind() Kind    { return KindPhaseBegan }
func (MarkHit) Kind() Kind       { return KindMarkHit }
func (MarkCrit) Kind() Kind      { return KindMarkCrit }
func (MarkMiss) Kind() Kind      { return KindMarkMiss }
func (MarkGuard) Kind() Kind     { return KindMarkGuard }
func (DamageHit) Kind() Kind     { return KindDamageHit }
func (DamageCrit) Kind() Kind    { return KindDamageCrit }
func (HealHit) Kind() Kind       { return KindHealHit }
func (HitSound) Kind() Kind      { return KindHitSound }
func (ScreenShake) Kind() Kind   { return KindScreenShake }
func (UnitTint) Kind() Kind      { return KindUnitTint }
func (StatusApplied) Kind() Kind { return KindStatusApplied }
func (ItemBroke) Kind() Kind     { return KindItemBroke }
func (CombatEnded) Kind() Kind   { return KindCombatEnded }

func (e PhaseBegan) String() string { return fmt.Sprintf("%s: %s", e.Phase, e.Unit) }
func (e MarkHit) String() string    { return fmt.Sprintf("%s hits %s", e.Attacker, e.Target) }
func (e MarkCrit) String() string {
	return fmt.Sprintf("%s lands a critical on %s", e.Attacker, e.Target)
}
func (e MarkMiss) String() string  { return fmt.Sprintf("%s misses %s", e.Attacker, e.Target) }
func (e MarkGuard) String() string { return fmt.Sprintf("%s guards against %s", e.Target, e.Attacker) }

func (e DamageHit) String() string {
	if e.Glancing {
		return fmt.Sprintf("%s takes %d glancing damage from %s", e.Target, e.TrueDamage, e.Item)
	}
	return fmt.Sprintf("%s takes %d damage from %s", e.Target, e.TrueDamage, e.Item)
}

func (e DamageCrit) String() string {
	return fmt.Sprintf("%s takes %d critical damage from %s", e.Target, e.TrueDamage, e.Item)
}

func (e HealHit) String() string {
	return fmt.Sprintf("%s recovers %d HP from %s", e.Target, e.TrueAmount, e.Item)
}

func (e HitSound) String() string      { return fmt.Sprintf("sound %q", e.Sound) }
func (e ScreenShake) String() string   { return fmt.Sprintf("screen shake %d", e.Intensity) }
func (e UnitTint) String() string      { return fmt.Sprintf("%s flashes %s", e.Unit, e.Color) }
func (e StatusApplied) String() string { return fmt.Sprintf("%s gains %s", e.Unit, e.Skill) }
func (e ItemBroke) String() string     { return fmt.Sprintf("%s's %s broke", e.Unit, e.Item) }
func (e CombatEnded) String() string   { return "combat ended" }
