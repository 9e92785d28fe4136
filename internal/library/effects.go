package library

import (
	"gopkg.in/yaml.v3"

	"tactics/internal/action"
	"tactics/internal/combat"
	"tactics/internal/components"
	"tactics/internal/items"
	"tactics/internal/mathutil"
	"tactics/internal/playback"
)

// Sound played when a strike brings its target to 0 HP.
const SoundFinalHit = "Final Hit"

func init() {
	intValued("damage", func(v int) items.Component { return Damage(v) })
	intValued("heal", func(v int) items.Component { return Heal(v) })
	intValued("lifelink", func(v int) items.Component { return Lifelink(v) })
	intValued("uses", func(v int) items.Component { return Uses(v) })
	intValued("mana_cost", func(v int) items.Component { return ManaCost(v) })
	Register("status_on_hit", newStatusOnHit)
}

// Damage is the item's might. Landing a strike deals combat damage.
type Damage int

func (Damage) Nid() string                           { return "damage" }
func (d Damage) BaseDamage(*Unit, *Item) (int, bool) { return int(d), true }

func (d Damage) OnHit(s *components.Strike)         { d.deal(s) }
func (d Damage) OnCrit(s *components.Strike)        { d.deal(s) }
func (d Damage) OnGlancingHit(s *components.Strike) { d.deal(s) }

// deal never turns a strike on its own wielder.
func (Damage) deal(s *components.Strike) {
	if s.Target == nil || s.Target == s.Unit {
		return
	}
	dmg, ok := combat.ComputeDamage(s.Query(), s.Outcome)
	if !ok {
		return
	}
	before := s.Actions.ProjectedHP(s.Target)
	trueDamage := mathutil.IntMin(dmg, before)
	s.Actions.Add(action.NewChangeHP(s.Target, -dmg))
	s.Damage += trueDamage

	if s.Outcome == components.OutcomeCrit {
		s.Playback.Append(playback.DamageCrit{
			Attacker: s.Unit.ID, Item: s.Item.String(), Target: s.Target.ID,
			Damage: dmg, TrueDamage: trueDamage,
		})
	} else {
		s.Playback.Append(playback.DamageHit{
			Attacker: s.Unit.ID, Item: s.Item.String(), Target: s.Target.ID,
			Damage: dmg, TrueDamage: trueDamage, Glancing: s.Outcome == components.OutcomeGlancing,
		})
	}
	if dmg > 0 && before-dmg <= 0 {
		s.Playback.Append(playback.HitSound{Sound: SoundFinalHit})
	}
}

// Heal restores HP to the target. The HEAL equation, when defined, adds to it.
type Heal int

func (Heal) Nid() string { return "heal" }

// TargetRestrict only allows wounded targets.
func (Heal) TargetRestrict(_ *Unit, _ *Item, target *Unit) bool {
	return target != nil && target.HP < target.MaxHP()
}

func (h Heal) OnHit(s *components.Strike) {
	target := s.Target
	if target == nil {
		target = s.Unit
	}
	amount := int(h)
	if s.Ctx != nil && s.Ctx.Equations != nil && s.Ctx.Equations.Has("HEAL") {
		amount += s.Ctx.Equation("HEAL", combat.Vars(s.Unit, s.Item))
	}
	before := s.Actions.ProjectedHP(target)
	trueAmount := mathutil.IntMin(amount, target.MaxHP()-before)
	s.Actions.Add(action.NewChangeHP(target, amount))
	s.Playback.Append(
		playback.HealHit{Healer: s.Unit.ID, Item: s.Item.String(), Target: target.ID, Amount: amount, TrueAmount: trueAmount},
		playback.HitSound{Sound: "MapHeal"},
	)
}

// Lifelink heals the striker by a percentage of the damage dealt. It must be
// attached after the Damage component.
type Lifelink int

func (Lifelink) Nid() string                          { return "lifelink" }
func (l Lifelink) OnHit(s *components.Strike)         { l.drain(s) }
func (l Lifelink) OnCrit(s *components.Strike)        { l.drain(s) }
func (l Lifelink) OnGlancingHit(s *components.Strike) { l.drain(s) }

func (l Lifelink) drain(s *components.Strike) {
	amount := s.Damage * int(l) / 100
	if amount <= 0 {
		return
	}
	before := s.Actions.ProjectedHP(s.Unit)
	s.Actions.Add(action.NewChangeHP(s.Unit, amount))
	s.Playback.Append(playback.HealHit{
		Healer: s.Unit.ID, Item: s.Item.String(), Target: s.Unit.ID,
		Amount: amount, TrueAmount: mathutil.IntMin(amount, s.Unit.MaxHP()-before),
	})
}

// StatusOnHit gives the target a fresh copy of a status skill.
type StatusOnHit struct {
	Skill string
	env   Env
}

func newStatusOnHit(n *yaml.Node, env Env) (items.Component, error) {
	nid, err := decodeString(n)
	if err != nil {
		return nil, err
	}
	return &StatusOnHit{Skill: nid, env: env}, nil
}

func (*StatusOnHit) Nid() string { return "status_on_hit" }

func (c *StatusOnHit) OnHit(s *components.Strike)  { c.apply(s) }
func (c *StatusOnHit) OnCrit(s *components.Strike) { c.apply(s) }

func (c *StatusOnHit) apply(s *components.Strike) {
	if s.Target == nil || c.env.Skill == nil || s.Target.HasSkill(c.Skill) {
		return
	}
	skill, err := c.env.Skill(c.Skill)
	if err != nil {
		s.Ctx.Log.Error("failed to apply status", err, nil)
		return
	}
	s.Actions.Add(action.NewAddSkill(s.Target, skill))
	s.Playback.Append(playback.StatusApplied{Unit: s.Target.ID, Skill: skill.Nid})
}

// Uses limits how many strikes an item has. Remaining uses live in the
// item's data bag under "uses".
type Uses int

const dataUses = "uses"

func (Uses) Nid() string { return "uses" }

func (u Uses) Init(it *Item) {
	it.Data[dataUses] = int(u)
}

func (Uses) Available(_ *Unit, it *Item) bool {
	return it.Value(dataUses) > 0
}

func (Uses) IsBroken(_ *Unit, it *Item) bool {
	return it.Value(dataUses) <= 0
}

func (Uses) AfterStrike(s *components.Strike) {
	left := s.Actions.ProjectedData(s.Item, dataUses) - 1
	if left < 0 {
		return
	}
	s.Actions.Add(action.NewSetItemData(s.Item, dataUses, left))
	if left == 0 {
		s.Playback.Append(playback.ItemBroke{Unit: s.Unit.ID, Item: s.Item.String()})
	}
}

// ManaCost is spent every time the item strikes.
type ManaCost int

func (ManaCost) Nid() string { return "mana_cost" }

func (m ManaCost) Available(u *Unit, _ *Item) bool {
	return u.Mana >= int(m)
}

func (m ManaCost) AfterStrike(s *components.Strike) {
	s.Actions.Add(action.NewChangeMana(s.Unit, -int(m)))
}
