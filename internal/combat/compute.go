package combat

import (
	"tactics/internal/character"
	"tactics/internal/components"
	"tactics/internal/engine"
	"tactics/internal/items"
	"tactics/internal/mathutil"
	"tactics/internal/weapons"
)

// AlwaysHit is the hit chance of an item with no accuracy, such as a staff.
const AlwaysHit = 10000

// ResolveAdvantage returns the triangle bonus u's item gets against the
// target's item, already scaled by u's triangle multiplier. Either side
// ignoring weapon advantage, or either weapon type being unknown, yields no
// bonus.
func ResolveAdvantage(ctx *engine.Context, u *character.Unit, it *items.Item, target *character.Unit, targetItem *items.Item) (weapons.Bonus, weapons.Relation) {
	if u == nil || it == nil || target == nil || targetItem == nil {
		return weapons.Bonus{}, weapons.Neutral
	}
	if components.IgnoreWeaponAdvantage(u, it) || components.IgnoreWeaponAdvantage(target, targetItem) {
		return weapons.Bonus{}, weapons.Neutral
	}
	attackerType, ok := components.WeaponType(u, it)
	if !ok || !ctx.Weapons.Known(attackerType) {
		return weapons.Bonus{}, weapons.Neutral
	}
	targetType, ok := components.WeaponType(target, targetItem)
	if !ok || !ctx.Weapons.Known(targetType) {
		return weapons.Bonus{}, weapons.Neutral
	}
	b, rel := ctx.Weapons.Advantage(attackerType, u.Wexp[attackerType], targetType)
	if rel == weapons.Neutral {
		return b, rel
	}
	return b.Scale(components.TriangleMultiplier(u, it)), rel
}

// reverse is q seen from the target's side.
func reverse(q components.Query) components.Query {
	mode := components.ModeDefense
	if q.Mode == components.ModeDefense {
		mode = components.ModeAttack
	}
	return components.Query{
		Ctx:        q.Ctx,
		Unit:       q.Target,
		Item:       q.TargetItem,
		Target:     q.Unit,
		TargetItem: q.Item,
		Mode:       mode,
		Info:       q.Info,
	}
}

func triangle(q components.Query) (fwd, rev weapons.Bonus) {
	fwd, _ = ResolveAdvantage(q.Ctx, q.Unit, q.Item, q.Target, q.TargetItem)
	rev, _ = ResolveAdvantage(q.Ctx, q.Target, q.TargetItem, q.Unit, q.Item)
	return fwd, rev
}

// ComputeHit is the chance in [0, 100] that q.Unit's strike lands, or
// AlwaysHit when the item has no accuracy or there is no target. ok is false
// when there is no item.
func ComputeHit(q components.Query) (int, bool) {
	if q.Item == nil {
		return 0, false
	}
	hit, ok := Accuracy(q.Ctx, q.Unit, q.Item)
	if !ok || q.Target == nil {
		return AlwaysHit, true
	}
	fwd, rev := triangle(q)
	hit += fwd.Accuracy
	hit -= rev.Avoid
	hit += components.DynamicAccuracy(q)

	hit -= Avoid(q.Ctx, q.Target, q.TargetItem)
	hit -= components.DynamicAvoid(reverse(q))
	return mathutil.Clamp(hit, 0, 100), true
}

// ComputeCrit is the crit chance in [0, 100]. ok is false when the item
// cannot crit at all.
func ComputeCrit(q components.Query) (int, bool) {
	if q.Item == nil || q.Target == nil {
		return 0, false
	}
	crit, ok := CritAccuracy(q.Ctx, q.Unit, q.Item)
	if !ok {
		return 0, false
	}
	fwd, rev := triangle(q)
	crit += fwd.Crit
	crit -= rev.Dodge
	crit += components.DynamicCritAccuracy(q)

	crit -= CritAvoid(q.Ctx, q.Target, q.TargetItem)
	crit -= components.DynamicCritAvoid(reverse(q))
	return mathutil.Clamp(crit, 0, 100), true
}

// ComputeDamage is the damage dealt for the given outcome, never below the
// minimum damage constant. ok is false when the item deals no damage.
func ComputeDamage(q components.Query, outcome components.Outcome) (int, bool) {
	if q.Item == nil {
		return 0, false
	}
	might, ok := Damage(q.Ctx, q.Unit, q.Item)
	if !ok {
		return 0, false
	}
	fwd, rev := triangle(q)
	might += fwd.Damage
	might -= rev.Resist
	might += components.DynamicDamage(q)

	defense := 0
	if q.Target != nil {
		defense = Defense(q.Ctx, q.Target, q.TargetItem, q.Unit, q.Item)
		defense += components.DynamicResist(reverse(q))
	}

	damage := mathutil.IntMax(might-defense, 0)
	switch outcome {
	case components.OutcomeCrit:
		mult, ok := components.CritMultiplier(q.Unit, q.Item)
		if !ok {
			mult = q.Ctx.Constants.CritMultiplier
		}
		damage = damage*mult + components.CritAddition(q.Unit, q.Item)
	case components.OutcomeGlancing:
		damage /= 2
	}
	floor := mathutil.IntMax(q.Ctx.Constants.MinDamage, 0)
	return mathutil.IntMax(damage, floor), true
}

// Outspeed returns 2 when q.Unit is fast enough to strike twice against
// q.Target and 1 otherwise. Non-weapons and items that cannot double always
// return 1.
func Outspeed(q components.Query) int {
	if q.Item == nil || q.Target == nil {
		return 1
	}
	if !components.IsWeapon(q.Unit, q.Item) || !components.CanDouble(q.Unit, q.Item) {
		return 1
	}
	fwd, rev := triangle(q)
	speed := AttackSpeed(q.Ctx, q.Unit, q.Item) + fwd.AttackSpeed + components.DynamicAttackSpeed(q)
	targetSpeed := DefenseSpeed(q.Ctx, q.Target, q.TargetItem) + rev.DefenseSpeed

	threshold := q.Ctx.Equation(EqSpeedToDouble, Vars(q.Unit, q.Item))
	if speed-targetSpeed >= threshold {
		return 2
	}
	return 1
}

// ComputeMultiattacks is how many sub-strikes one attack consists of.
func ComputeMultiattacks(q components.Query) int {
	if q.Item == nil {
		return 1
	}
	return mathutil.IntMax(1+components.DynamicMultiattacks(q), 1)
}
