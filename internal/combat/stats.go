// Package combat holds the stateless combat formulas: hit, crit, damage,
// doubling and multi-attack counts, with weapon-triangle and weapon-rank
// bonuses folded in.
//
// A formula that does not apply (no item, or an item without the relevant
// base stat) returns ok=false instead of an error.
package combat

import (
	"tactics/internal/character"
	"tactics/internal/components"
	"tactics/internal/engine"
	"tactics/internal/equations"
	"tactics/internal/items"
	"tactics/internal/weapons"
)

// Equation names the formulas fall back to.
const (
	EqHit           = "HIT"
	EqAvoid         = "AVOID"
	EqCritHit       = "CRIT_HIT"
	EqCritAvoid     = "CRIT_AVOID"
	EqDamage        = "DAMAGE"
	EqDefense       = "DEFENSE"
	EqAttackSpeed   = "ATTACK_SPEED"
	EqDefenseSpeed  = "DEFENSE_SPEED"
	EqSpeedToDouble = "SPEED_TO_DOUBLE"
)

// EffectiveStat is a base stat plus every skill stat change.
func EffectiveStat(u *character.Unit, stat string) int {
	return u.Stats[stat] + components.StatChange(u)[stat]
}

// Vars binds u's effective stats and the weight of it for equation evaluation.
func Vars(u *character.Unit, it *items.Item) map[string]int {
	changes := components.StatChange(u)
	out := make(map[string]int, len(u.Stats)+2)
	for stat, v := range u.Stats {
		out[stat] = v
	}
	for stat, v := range changes {
		out[stat] += v
	}
	out[equations.VarMaxHP] = out[character.StatHP]
	if it != nil {
		if w, ok := components.Weight(u, it); ok {
			out[equations.VarWeight] = w
		}
	}
	return out
}

func rankBonus(ctx *engine.Context, u *character.Unit, it *items.Item) weapons.Bonus {
	wtype, ok := components.WeaponType(u, it)
	if !ok {
		return weapons.Bonus{}
	}
	return ctx.Weapons.RankBonus(wtype, u.Wexp[wtype])
}

// Accuracy is the item's base hit plus the HIT equation, the weapon rank
// bonus and accuracy modifiers.
func Accuracy(ctx *engine.Context, u *character.Unit, it *items.Item) (int, bool) {
	if it == nil {
		return 0, false
	}
	base, ok := components.BaseHit(u, it)
	if !ok {
		return 0, false
	}
	acc := base + ctx.Equation(EqHit, Vars(u, it))
	acc += rankBonus(ctx, u, it).Accuracy
	acc += components.ModifyAccuracy(u, it)
	return acc, true
}

// Avoid is u's AVOID equation plus avoid modifiers. own is u's equipped item,
// possibly nil.
func Avoid(ctx *engine.Context, u *character.Unit, own *items.Item) int {
	return ctx.Equation(EqAvoid, Vars(u, own)) + components.ModifyAvoid(u, own)
}

func CritAccuracy(ctx *engine.Context, u *character.Unit, it *items.Item) (int, bool) {
	if it == nil {
		return 0, false
	}
	base, ok := components.BaseCrit(u, it)
	if !ok {
		return 0, false
	}
	crit := base + ctx.Equation(EqCritHit, Vars(u, it))
	crit += rankBonus(ctx, u, it).Crit
	crit += components.ModifyCritAccuracy(u, it)
	return crit, true
}

func CritAvoid(ctx *engine.Context, u *character.Unit, own *items.Item) int {
	return ctx.Equation(EqCritAvoid, Vars(u, own)) + components.ModifyCritAvoid(u, own)
}

// Damage is the item's might plus its damage equation (DAMAGE unless the
// item names another), the weapon rank bonus and damage modifiers.
func Damage(ctx *engine.Context, u *character.Unit, it *items.Item) (int, bool) {
	if it == nil {
		return 0, false
	}
	might, ok := components.BaseDamage(u, it)
	if !ok {
		return 0, false
	}
	eq, ok := components.DamageFormula(u, it)
	if !ok {
		eq = EqDamage
	}
	might += ctx.Equation(eq, Vars(u, it))
	might += rankBonus(ctx, u, it).Damage
	might += components.ModifyDamage(u, it)
	return might, true
}

// Defense is u's resistance against the item against, wielded by attacker.
// The attacking item picks the equation (DEFENSE unless it names another).
func Defense(ctx *engine.Context, u *character.Unit, own *items.Item, attacker *character.Unit, against *items.Item) int {
	eq := EqDefense
	if against != nil {
		if f, ok := components.ResistFormula(attacker, against); ok {
			eq = f
		}
	}
	return ctx.Equation(eq, Vars(u, own)) + components.ModifyResist(u, own)
}

func AttackSpeed(ctx *engine.Context, u *character.Unit, it *items.Item) int {
	return ctx.Equation(EqAttackSpeed, Vars(u, it)) + components.ModifyAttackSpeed(u, it)
}

func DefenseSpeed(ctx *engine.Context, u *character.Unit, own *items.Item) int {
	return ctx.Equation(EqDefenseSpeed, Vars(u, own)) + components.ModifyDefenseSpeed(u, own)
}
