package components

import (
	"tactics/internal/character"
	"tactics/internal/items"
	"tactics/internal/playback"
)

func foldBool[H any](h Hook, sources []items.Component, call func(H) bool) bool {
	policy := Policies[h]
	for _, c := range sources {
		hc, ok := c.(H)
		if !ok {
			continue
		}
		v := call(hc)
		if policy == AllTrue && !v {
			return false
		}
		if policy == AnyTrue && v {
			return true
		}
	}
	return policy == AllTrue
}

func foldInt[H any](h Hook, sources []items.Component, call func(H) int) int {
	policy := Policies[h]
	acc := 0
	if policy == Product {
		acc = 1
	}
	for _, c := range sources {
		hc, ok := c.(H)
		if !ok {
			continue
		}
		if policy == Product {
			acc *= call(hc)
		} else {
			acc += call(hc)
		}
	}
	return acc
}

func firstMatch[H any, T any](sources []items.Component, call func(H) (T, bool)) (T, bool) {
	for _, c := range sources {
		if hc, ok := c.(H); ok {
			if v, ok := call(hc); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

func each[H any](sources []items.Component, call func(H)) {
	for _, c := range sources {
		if hc, ok := c.(H); ok {
			call(hc)
		}
	}
}

// skillEnabled reports whether every EnabledHook on the skill agrees.
func skillEnabled(u *Unit, s *character.Skill) bool {
	return foldBool(HookEnabled, s.Components, func(h EnabledHook) bool { return h.Enabled(u, s) })
}

// SkillSources returns the components of u's enabled skills in order.
func SkillSources(u *Unit) []items.Component {
	if u == nil {
		return nil
	}
	var out []items.Component
	for _, s := range u.Skills {
		if skillEnabled(u, s) {
			out = append(out, s.Components...)
		}
	}
	return out
}

// ItemSources returns the components consulted for item-scoped hooks:
// skill-lent overrides first, then the item's own components.
func ItemSources(u *Unit, it *Item) []items.Component {
	if it == nil {
		return nil
	}
	var out []items.Component
	each(SkillSources(u), func(h ItemOverrideHook) {
		out = append(out, h.ItemOverrides(u, it)...)
	})
	return append(out, it.Components...)
}

// eventSources adds the parent item's components for the first item of a
// multi-item strike, then the unit's skills.
func eventSources(s *Strike) []items.Component {
	out := ItemSources(s.Unit, s.Item)
	if s.FirstItem && s.Item != nil && s.Item.Parent != nil {
		out = append(out, s.Item.Parent.Components...)
	}
	return append(out, SkillSources(s.Unit)...)
}

func combined(u *Unit, it *Item) []items.Component {
	return append(ItemSources(u, it), SkillSources(u)...)
}

// Available reports whether the item can be used at all. A nil item is never available.
func Available(u *Unit, it *Item) bool {
	if it == nil {
		return false
	}
	return foldBool(HookAvailable, ItemSources(u, it), func(h AvailableHook) bool { return h.Available(u, it) })
}

// Usable is Available plus every skill's item restriction.
func Usable(u *Unit, it *Item) bool {
	return Available(u, it) && ItemRestrict(u, it)
}

func IsBroken(u *Unit, it *Item) bool {
	return foldBool(HookIsBroken, ItemSources(u, it), func(h IsBrokenHook) bool { return h.IsBroken(u, it) })
}

// CanUnlock reports whether any item component or skill grants unlocking.
func CanUnlock(u *Unit, it *Item) bool {
	return foldBool(HookCanUnlock, combined(u, it), func(h CanUnlockHook) bool { return h.CanUnlock(u, it) })
}

func TargetRestrict(u *Unit, it *Item, target *Unit) bool {
	return foldBool(HookTargetRestrict, ItemSources(u, it), func(h TargetRestrictHook) bool {
		return h.TargetRestrict(u, it, target)
	})
}

// ItemRestrict asks u's skills whether u may use it.
func ItemRestrict(u *Unit, it *Item) bool {
	return foldBool(HookItemRestrict, SkillSources(u), func(h ItemRestrictHook) bool { return h.ItemRestrict(u, it) })
}

func CanCounter(u *Unit, it *Item) bool {
	if it == nil {
		return false
	}
	return foldBool(HookCanCounter, ItemSources(u, it), func(h CanCounterHook) bool { return h.CanCounter(u, it) })
}

func CanBeCountered(u *Unit, it *Item) bool {
	return foldBool(HookCanBeCountered, ItemSources(u, it), func(h CanBeCounteredHook) bool {
		return h.CanBeCountered(u, it)
	})
}

func CanDouble(u *Unit, it *Item) bool {
	return foldBool(HookCanDouble, ItemSources(u, it), func(h CanDoubleHook) bool { return h.CanDouble(u, it) })
}

func IsWeapon(u *Unit, it *Item) bool {
	return foldBool(HookIsWeapon, ItemSources(u, it), func(h IsWeaponHook) bool { return h.IsWeapon(u, it) })
}

func IgnoreWeaponAdvantage(u *Unit, it *Item) bool {
	return foldBool(HookIgnoreWeaponAdvantage, combined(u, it), func(h IgnoreWeaponAdvantageHook) bool {
		return h.IgnoreWeaponAdvantage(u, it)
	})
}

// Vantage reports whether u strikes first when defending.
func Vantage(u *Unit) bool {
	return foldBool(HookVantage, SkillSources(u), func(h VantageHook) bool { return h.Vantage(u) })
}

// CritAnyway lets a strike crit even when criticals are globally disabled.
func CritAnyway(u *Unit, it *Item) bool {
	return foldBool(HookCritAnyway, combined(u, it), func(h CritAnywayHook) bool { return h.CritAnyway(u, it) })
}

// StatChange sums the per-stat bonuses of u's skills.
func StatChange(u *Unit) map[string]int {
	out := make(map[string]int)
	each(SkillSources(u), func(h StatChangeHook) {
		for stat, v := range h.StatChange(u) {
			out[stat] += v
		}
	})
	return out
}

func ModifyAccuracy(u *Unit, it *Item) int {
	return foldInt(HookModifyAccuracy, combined(u, it), func(h ModifyAccuracyHook) int { return h.ModifyAccuracy(u, it) })
}

func ModifyAvoid(u *Unit, it *Item) int {
	return foldInt(HookModifyAvoid, combined(u, it), func(h ModifyAvoidHook) int { return h.ModifyAvoid(u, it) })
}

func ModifyCritAccuracy(u *Unit, it *Item) int {
	return foldInt(HookModifyCritAccuracy, combined(u, it), func(h ModifyCritAccuracyHook) int {
		return h.ModifyCritAccuracy(u, it)
	})
}

func ModifyCritAvoid(u *Unit, it *Item) int {
	return foldInt(HookModifyCritAvoid, combined(u, it), func(h ModifyCritAvoidHook) int {
		return h.ModifyCritAvoid(u, it)
	})
}

func ModifyDamage(u *Unit, it *Item) int {
	return foldInt(HookModifyDamage, combined(u, it), func(h ModifyDamageHook) int { return h.ModifyDamage(u, it) })
}

func ModifyResist(u *Unit, it *Item) int {
	return foldInt(HookModifyResist, combined(u, it), func(h ModifyResistHook) int { return h.ModifyResist(u, it) })
}

func ModifyAttackSpeed(u *Unit, it *Item) int {
	return foldInt(HookModifyAttackSpeed, combined(u, it), func(h ModifyAttackSpeedHook) int {
		return h.ModifyAttackSpeed(u, it)
	})
}

func ModifyDefenseSpeed(u *Unit, it *Item) int {
	return foldInt(HookModifyDefenseSpeed, combined(u, it), func(h ModifyDefenseSpeedHook) int {
		return h.ModifyDefenseSpeed(u, it)
	})
}

// TriangleMultiplier is the product of every weapon-triangle factor, 1 by default.
func TriangleMultiplier(u *Unit, it *Item) int {
	return foldInt(HookTriangleMultiplier, combined(u, it), func(h TriangleMultiplierHook) int {
		return h.TriangleMultiplier(u, it)
	})
}

func CritAddition(u *Unit, it *Item) int {
	return foldInt(HookCritAddition, combined(u, it), func(h CritAdditionHook) int { return h.CritAddition(u, it) })
}

func DynamicAccuracy(q Query) int {
	return foldInt(HookDynamicAccuracy, combined(q.Unit, q.Item), func(h DynamicAccuracyHook) int {
		return h.DynamicAccuracy(q)
	})
}

func DynamicAvoid(q Query) int {
	return foldInt(HookDynamicAvoid, combined(q.Unit, q.Item), func(h DynamicAvoidHook) int {
		return h.DynamicAvoid(q)
	})
}

func DynamicCritAccuracy(q Query) int {
	return foldInt(HookDynamicCritAccuracy, combined(q.Unit, q.Item), func(h DynamicCritAccuracyHook) int {
		return h.DynamicCritAccuracy(q)
	})
}

func DynamicCritAvoid(q Query) int {
	return foldInt(HookDynamicCritAvoid, combined(q.Unit, q.Item), func(h DynamicCritAvoidHook) int {
		return h.DynamicCritAvoid(q)
	})
}

func DynamicDamage(q Query) int {
	return foldInt(HookDynamicDamage, combined(q.Unit, q.Item), func(h DynamicDamageHook) int {
		return h.DynamicDamage(q)
	})
}

func DynamicResist(q Query) int {
	return foldInt(HookDynamicResist, combined(q.Unit, q.Item), func(h DynamicResistHook) int {
		return h.DynamicResist(q)
	})
}

func DynamicAttackSpeed(q Query) int {
	return foldInt(HookDynamicAttackSpeed, combined(q.Unit, q.Item), func(h DynamicAttackSpeedHook) int {
		return h.DynamicAttackSpeed(q)
	})
}

func DynamicMultiattacks(q Query) int {
	return foldInt(HookDynamicMultiattacks, combined(q.Unit, q.Item), func(h DynamicMultiattacksHook) int {
		return h.DynamicMultiattacks(q)
	})
}

func WeaponType(u *Unit, it *Item) (string, bool) {
	return firstMatch(ItemSources(u, it), func(h WeaponTypeHook) (string, bool) { return h.WeaponType(u, it) })
}

func WeaponRank(u *Unit, it *Item) (string, bool) {
	return firstMatch(ItemSources(u, it), func(h WeaponRankHook) (string, bool) { return h.WeaponRank(u, it) })
}

func DamageFormula(u *Unit, it *Item) (string, bool) {
	return firstMatch(ItemSources(u, it), func(h DamageFormulaHook) (string, bool) { return h.DamageFormula(u, it) })
}

func ResistFormula(u *Unit, it *Item) (string, bool) {
	return firstMatch(ItemSources(u, it), func(h ResistFormulaHook) (string, bool) { return h.ResistFormula(u, it) })
}

func Text(u *Unit, it *Item) (string, bool) {
	return firstMatch(ItemSources(u, it), func(h TextHook) (string, bool) { return h.Text(u, it) })
}

func BaseHit(u *Unit, it *Item) (int, bool) {
	return firstMatch(ItemSources(u, it), func(h BaseHitHook) (int, bool) { return h.BaseHit(u, it) })
}

func BaseDamage(u *Unit, it *Item) (int, bool) {
	return firstMatch(ItemSources(u, it), func(h BaseDamageHook) (int, bool) { return h.BaseDamage(u, it) })
}

func BaseCrit(u *Unit, it *Item) (int, bool) {
	return firstMatch(ItemSources(u, it), func(h BaseCritHook) (int, bool) { return h.BaseCrit(u, it) })
}

func Weight(u *Unit, it *Item) (int, bool) {
	return firstMatch(ItemSources(u, it), func(h WeightHook) (int, bool) { return h.Weight(u, it) })
}

func CritMultiplier(u *Unit, it *Item) (int, bool) {
	return firstMatch(ItemSources(u, it), func(h CritMultiplierHook) (int, bool) { return h.CritMultiplier(u, it) })
}

type span struct{ min, max int }

// Range returns the item's min and max targeting range.
func Range(u *Unit, it *Item) (minRange, maxRange int, ok bool) {
	r, ok := firstMatch(ItemSources(u, it), func(h RangeHook) (span, bool) {
		lo, hi, ok := h.Range(u, it)
		return span{lo, hi}, ok
	})
	if !ok {
		return 0, 0, false
	}
	if it.ForceMaxRange > 0 {
		r.max = it.ForceMaxRange
	}
	return r.min, r.max, true
}

// OnHit runs the on_hit event, then adds baseline hit feedback the
// components did not provide.
func OnHit(s *Strike) {
	each(eventSources(s), func(h OnHitHook) { h.OnHit(s) })
	fallback(s, "Attack Hit", 1)
}

func OnCrit(s *Strike) {
	each(eventSources(s), func(h OnCritHook) { h.OnCrit(s) })
	fallback(s, "Critical Hit", 3)
}

func OnGlancingHit(s *Strike) {
	each(eventSources(s), func(h OnGlancingHitHook) { h.OnGlancingHit(s) })
	fallback(s, "Glancing Hit", 0)
}

func OnMiss(s *Strike) {
	each(eventSources(s), func(h OnMissHook) { h.OnMiss(s) })
	if !s.Playback.Has(playback.KindHitSound) {
		s.Playback.Append(playback.HitSound{Sound: "Attack Miss"})
	}
}

func AfterStrike(s *Strike) {
	each(eventSources(s), func(h AfterStrikeHook) { h.AfterStrike(s) })
}

func fallback(s *Strike, sound string, shake int) {
	if !s.Playback.Has(playback.KindHitSound) {
		s.Playback.Append(playback.HitSound{Sound: sound})
	}
	if shake > 0 && !s.Playback.Has(playback.KindScreenShake) {
		s.Playback.Append(playback.ScreenShake{Intensity: shake})
	}
	if !s.Playback.Has(playback.KindUnitTint) && s.Target != nil {
		s.Playback.Append(playback.UnitTint{Unit: s.targetID(), Color: "#ffffff"})
	}
}
