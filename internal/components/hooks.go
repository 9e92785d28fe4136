// Package components dispatches combat hooks over the components attached to
// items and skills.
//
// Each hook is a small optional interface. A component opts into a hook by
// implementing its method; components that do not implement it are skipped,
// never called. How the answers of several components combine is fixed per
// hook in the Policies table, and every query in this package folds its
// sources through that table:
//
//	AllTrue     every defining component must agree (default true)
//	AnyTrue     one defining component suffices (default false)
//	Sum         integer contributions add up (default 0)
//	Product     integer factors multiply (default 1)
//	FirstMatch  the first defining component in order wins
//	Event       every defining component runs, in order, against a Strike
//
// Item-scoped hooks read skill overrides first, then the item's own
// components. Parent items only join event hooks, and only for the first
// item of a multi-item strike.
package components

import (
	"tactics/internal/character"
	"tactics/internal/items"
)

// Hook names a dispatchable capability.
type Hook string

const (
	HookAvailable             Hook = "available"
	HookIsBroken              Hook = "is_broken"
	HookCanUnlock             Hook = "can_unlock"
	HookTargetRestrict        Hook = "target_restrict"
	HookItemRestrict          Hook = "item_restrict"
	HookCanCounter            Hook = "can_counter"
	HookCanBeCountered        Hook = "can_be_countered"
	HookCanDouble             Hook = "can_double"
	HookIsWeapon              Hook = "is_weapon"
	HookIgnoreWeaponAdvantage Hook = "ignore_weapon_advantage"
	HookVantage               Hook = "vantage"
	HookCritAnyway            Hook = "crit_anyway"
	HookEnabled               Hook = "enabled"

	HookStatChange         Hook = "stat_change"
	HookModifyAccuracy     Hook = "modify_accuracy"
	HookModifyAvoid        Hook = "modify_avoid"
	HookModifyCritAccuracy Hook = "modify_crit_accuracy"
	HookModifyCritAvoid    Hook = "modify_crit_avoid"
	HookModifyDamage       Hook = "modify_damage"
	HookModifyResist       Hook = "modify_resist"
	HookModifyAttackSpeed  Hook = "modify_attack_speed"
	HookModifyDefenseSpeed Hook = "modify_defense_speed"

	HookDynamicAccuracy     Hook = "dynamic_accuracy"
	HookDynamicAvoid        Hook = "dynamic_avoid"
	HookDynamicCritAccuracy Hook = "dynamic_crit_accuracy"
	HookDynamicCritAvoid    Hook = "dynamic_crit_avoid"
	HookDynamicDamage       Hook = "dynamic_damage"
	HookDynamicResist       Hook = "dynamic_resist"
	HookDynamicAttackSpeed  Hook = "dynamic_attack_speed"
	HookDynamicMultiattacks Hook = "dynamic_multiattacks"
	HookCritAddition        Hook = "crit_addition"

	HookTriangleMultiplier Hook = "modify_weapon_triangle"

	HookWeaponType     Hook = "weapon_type"
	HookWeaponRank     Hook = "weapon_rank"
	HookDamageFormula  Hook = "damage_formula"
	HookResistFormula  Hook = "resist_formula"
	HookText           Hook = "text"
	HookBaseHit        Hook = "hit"
	HookBaseDamage     Hook = "damage"
	HookBaseCrit       Hook = "crit"
	HookWeight         Hook = "weight"
	HookCritMultiplier Hook = "crit_multiplier"
	HookRange          Hook = "range"
	HookItemOverrides  Hook = "item_overrides"

	HookOnHit         Hook = "on_hit"
	HookOnCrit        Hook = "on_crit"
	HookOnGlancingHit Hook = "on_glancing_hit"
	HookOnMiss        Hook = "on_miss"
	HookAfterStrike   Hook = "after_strike"
)

// Policy is the combinator a hook folds its answers with.
type Policy int

const (
	AllTrue Policy = iota
	AnyTrue
	Sum
	Product
	FirstMatch
	Event
)

// Policies maps every hook to its combinator.
var Policies = map[Hook]Policy{
	HookAvailable:             AllTrue,
	HookIsBroken:              AnyTrue,
	HookCanUnlock:             AnyTrue,
	HookTargetRestrict:        AllTrue,
	HookItemRestrict:          AllTrue,
	HookCanCounter:            AllTrue,
	HookCanBeCountered:        AllTrue,
	HookCanDouble:             AllTrue,
	HookIsWeapon:              AnyTrue,
	HookIgnoreWeaponAdvantage: AnyTrue,
	HookVantage:               AnyTrue,
	HookCritAnyway:            AnyTrue,
	HookEnabled:               AllTrue,

	HookStatChange:         Sum,
	HookModifyAccuracy:     Sum,
	HookModifyAvoid:        Sum,
	HookModifyCritAccuracy: Sum,
	HookModifyCritAvoid:    Sum,
	HookModifyDamage:       Sum,
	HookModifyResist:       Sum,
	HookModifyAttackSpeed:  Sum,
	HookModifyDefenseSpeed: Sum,

	HookDynamicAccuracy:     Sum,
	HookDynamicAvoid:        Sum,
	HookDynamicCritAccuracy: Sum,
	HookDynamicCritAvoid:    Sum,
	HookDynamicDamage:       Sum,
	HookDynamicResist:       Sum,
	HookDynamicAttackSpeed:  Sum,
	HookDynamicMultiattacks: Sum,
	HookCritAddition:        Sum,

	HookTriangleMultiplier: Product,

	HookWeaponType:     FirstMatch,
	HookWeaponRank:     FirstMatch,
	HookDamageFormula:  FirstMatch,
	HookResistFormula:  FirstMatch,
	HookText:           FirstMatch,
	HookBaseHit:        FirstMatch,
	HookBaseDamage:     FirstMatch,
	HookBaseCrit:       FirstMatch,
	HookWeight:         FirstMatch,
	HookCritMultiplier: FirstMatch,
	HookRange:          FirstMatch,
	HookItemOverrides:  Event,

	HookOnHit:         Event,
	HookOnCrit:        Event,
	HookOnGlancingHit: Event,
	HookOnMiss:        Event,
	HookAfterStrike:   Event,
}

type (
	Unit = character.Unit
	Item = items.Item
)

// Gates.
type (
	AvailableHook             interface{ Available(u *Unit, it *Item) bool }
	IsBrokenHook              interface{ IsBroken(u *Unit, it *Item) bool }
	CanUnlockHook             interface{ CanUnlock(u *Unit, it *Item) bool }
	TargetRestrictHook        interface{ TargetRestrict(u *Unit, it *Item, target *Unit) bool }
	ItemRestrictHook          interface{ ItemRestrict(u *Unit, it *Item) bool }
	CanCounterHook            interface{ CanCounter(u *Unit, it *Item) bool }
	CanBeCounteredHook        interface{ CanBeCountered(u *Unit, it *Item) bool }
	CanDoubleHook             interface{ CanDouble(u *Unit, it *Item) bool }
	IsWeaponHook              interface{ IsWeapon(u *Unit, it *Item) bool }
	IgnoreWeaponAdvantageHook interface{ IgnoreWeaponAdvantage(u *Unit, it *Item) bool }
	VantageHook               interface{ Vantage(u *Unit) bool }
	CritAnywayHook            interface{ CritAnyway(u *Unit, it *Item) bool }

	// EnabledHook lets a skill switch all of its components off, e.g. a
	// combat art that is not currently active.
	EnabledHook interface {
		Enabled(u *Unit, s *character.Skill) bool
	}
)

// Static modifiers.
type (
	StatChangeHook         interface{ StatChange(u *Unit) map[string]int }
	ModifyAccuracyHook     interface{ ModifyAccuracy(u *Unit, it *Item) int }
	ModifyAvoidHook        interface{ ModifyAvoid(u *Unit, it *Item) int }
	ModifyCritAccuracyHook interface{ ModifyCritAccuracy(u *Unit, it *Item) int }
	ModifyCritAvoidHook    interface{ ModifyCritAvoid(u *Unit, it *Item) int }
	ModifyDamageHook       interface{ ModifyDamage(u *Unit, it *Item) int }
	ModifyResistHook       interface{ ModifyResist(u *Unit, it *Item) int }
	ModifyAttackSpeedHook  interface{ ModifyAttackSpeed(u *Unit, it *Item) int }
	ModifyDefenseSpeedHook interface{ ModifyDefenseSpeed(u *Unit, it *Item) int }
	TriangleMultiplierHook interface{ TriangleMultiplier(u *Unit, it *Item) int }
	CritAdditionHook       interface{ CritAddition(u *Unit, it *Item) int }
)

// Dynamic modifiers depend on the opponent and the attack in progress.
type (
	DynamicAccuracyHook     interface{ DynamicAccuracy(q Query) int }
	DynamicAvoidHook        interface{ DynamicAvoid(q Query) int }
	DynamicCritAccuracyHook interface{ DynamicCritAccuracy(q Query) int }
	DynamicCritAvoidHook    interface{ DynamicCritAvoid(q Query) int }
	DynamicDamageHook       interface{ DynamicDamage(q Query) int }
	DynamicResistHook       interface{ DynamicResist(q Query) int }
	DynamicAttackSpeedHook  interface{ DynamicAttackSpeed(q Query) int }
	DynamicMultiattacksHook interface{ DynamicMultiattacks(q Query) int }
)

// Selectors.
type (
	WeaponTypeHook     interface{ WeaponType(u *Unit, it *Item) (string, bool) }
	WeaponRankHook     interface{ WeaponRank(u *Unit, it *Item) (string, bool) }
	DamageFormulaHook  interface{ DamageFormula(u *Unit, it *Item) (string, bool) }
	ResistFormulaHook  interface{ ResistFormula(u *Unit, it *Item) (string, bool) }
	TextHook           interface{ Text(u *Unit, it *Item) (string, bool) }
	BaseHitHook        interface{ BaseHit(u *Unit, it *Item) (int, bool) }
	BaseDamageHook     interface{ BaseDamage(u *Unit, it *Item) (int, bool) }
	BaseCritHook       interface{ BaseCrit(u *Unit, it *Item) (int, bool) }
	WeightHook         interface{ Weight(u *Unit, it *Item) (int, bool) }
	CritMultiplierHook interface{ CritMultiplier(u *Unit, it *Item) (int, bool) }
	RangeHook          interface {
		Range(u *Unit, it *Item) (minRange, maxRange int, ok bool)
	}

	// ItemOverrideHook lets a skill lend components to the items its unit
	// uses. They are consulted before the item's own components.
	ItemOverrideHook interface {
		ItemOverrides(u *Unit, it *Item) []items.Component
	}
)

// Events.
type (
	OnHitHook         interface{ OnHit(s *Strike) }
	OnCritHook        interface{ OnCrit(s *Strike) }
	OnGlancingHitHook interface{ OnGlancingHit(s *Strike) }
	OnMissHook        interface{ OnMiss(s *Strike) }
	AfterStrikeHook   interface{ AfterStrike(s *Strike) }
)
