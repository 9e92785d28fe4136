// Package action holds the reversible state mutations combat emits.
//
// Combat never writes unit, item or skill fields itself. It queues actions
// into a List; the caller applies them through a Log, which can later
// reverse any suffix of what it applied.
package action

import (
	"fmt"

	"tactics/internal/character"
	"tactics/internal/items"
	"tactics/internal/mathutil"
)

// Action is one reversible mutation. Reverse must only be called after Do.
type Action interface {
	Do()
	Reverse()
	String() string
}

// ChangeHP adds Delta to a unit's HP, clamped to [0, max HP].
type ChangeHP struct {
	Unit  *character.Unit
	Delta int
	old   int
}

func NewChangeHP(u *character.Unit, delta int) *ChangeHP {
	return &ChangeHP{Unit: u, Delta: delta}
}

func (a *ChangeHP) Do() {
	a.old = a.Unit.HP
	a.Unit.HP = applyHP(a.Unit.HP, a.Delta, a.Unit.MaxHP())
}

func (a *ChangeHP) Reverse() { a.Unit.HP = a.old }

func (a *ChangeHP) String() string {
	return fmt.Sprintf("ChangeHP(%s, %+d)", a.Unit.ID, a.Delta)
}

func applyHP(hp, delta, maxHP int) int {
	return mathutil.Clamp(hp+delta, 0, mathutil.IntMax(maxHP, 0))
}

// ChangeMana adds Delta to a unit's mana, never going below 0.
type ChangeMana struct {
	Unit  *character.Unit
	Delta int
	old   int
}

func NewChangeMana(u *character.Unit, delta int) *ChangeMana {
	return &ChangeMana{Unit: u, Delta: delta}
}

func (a *ChangeMana) Do() {
	a.old = a.Unit.Mana
	a.Unit.Mana = mathutil.IntMax(a.Unit.Mana+a.Delta, 0)
}

func (a *ChangeMana) Reverse() { a.Unit.Mana = a.old }

func (a *ChangeMana) String() string {
	return fmt.Sprintf("ChangeMana(%s, %+d)", a.Unit.ID, a.Delta)
}

// AddSkill appends a skill to a unit.
type AddSkill struct {
	Unit  *character.Unit
	Skill *character.Skill
}

func NewAddSkill(u *character.Unit, s *character.Skill) *AddSkill {
	return &AddSkill{Unit: u, Skill: s}
}

func (a *AddSkill) Do() {
	a.Unit.Skills = append(a.Unit.Skills, a.Skill)
}

func (a *AddSkill) Reverse() {
	for i := len(a.Unit.Skills) - 1; i >= 0; i-- {
		if a.Unit.Skills[i] == a.Skill {
			a.Unit.Skills = append(a.Unit.Skills[:i], a.Unit.Skills[i+1:]...)
			return
		}
	}
}

func (a *AddSkill) String() string {
	return fmt.Sprintf("AddSkill(%s, %s)", a.Unit.ID, a.Skill.Nid)
}

// RemoveSkill removes the first skill with Nid from a unit. Reverse puts it
// back at the same index.
type RemoveSkill struct {
	Unit    *character.Unit
	Nid     string
	removed *character.Skill
	index   int
}

func NewRemoveSkill(u *character.Unit, nid string) *RemoveSkill {
	return &RemoveSkill{Unit: u, Nid: nid}
}

func (a *RemoveSkill) Do() {
	a.removed = nil
	for i, s := range a.Unit.Skills {
		if s.Nid == a.Nid {
			a.removed, a.index = s, i
			a.Unit.Skills = append(a.Unit.Skills[:i:i], a.Unit.Skills[i+1:]...)
			return
		}
	}
}

func (a *RemoveSkill) Reverse() {
	if a.removed == nil {
		return
	}
	skills := make([]*character.Skill, 0, len(a.Unit.Skills)+1)
	skills = append(skills, a.Unit.Skills[:a.index]...)
	skills = append(skills, a.removed)
	skills = append(skills, a.Unit.Skills[a.index:]...)
	a.Unit.Skills = skills
}

func (a *RemoveSkill) String() string {
	return fmt.Sprintf("RemoveSkill(%s, %s)", a.Unit.ID, a.Nid)
}

// SetGauge sets a unit's guard gauge.
type SetGauge struct {
	Unit  *character.Unit
	Value int
	old   int
}

func NewSetGauge(u *character.Unit, value int) *SetGauge {
	return &SetGauge{Unit: u, Value: value}
}

func (a *SetGauge) Do() {
	a.old = a.Unit.Gauge
	a.Unit.Gauge = a.Value
}

func (a *SetGauge) Reverse() { a.Unit.Gauge = a.old }

func (a *SetGauge) String() string {
	return fmt.Sprintf("SetGauge(%s, %d)", a.Unit.ID, a.Value)
}

// IncGauge adds Delta to a unit's guard gauge, clamped to [0, Max].
type IncGauge struct {
	Unit  *character.Unit
	Delta int
	Max   int
	old   int
}

func NewIncGauge(u *character.Unit, delta, max int) *IncGauge {
	return &IncGauge{Unit: u, Delta: delta, Max: max}
}

func (a *IncGauge) Do() {
	a.old = a.Unit.Gauge
	a.Unit.Gauge = mathutil.Clamp(a.Unit.Gauge+a.Delta, 0, a.Max)
}

func (a *IncGauge) Reverse() { a.Unit.Gauge = a.old }

func (a *IncGauge) String() string {
	return fmt.Sprintf("IncGauge(%s, %+d)", a.Unit.ID, a.Delta)
}

// SetItemData writes one entry of an item's data bag.
type SetItemData struct {
	Item  *items.Item
	Key   string
	Value int
	old   int
	had   bool
}

func NewSetItemData(it *items.Item, key string, value int) *SetItemData {
	return &SetItemData{Item: it, Key: key, Value: value}
}

func (a *SetItemData) Do() {
	if a.Item.Data == nil {
		a.Item.Data = make(map[string]int)
	}
	a.old, a.had = a.Item.Data[a.Key]
	a.Item.Data[a.Key] = a.Value
}

func (a *SetItemData) Reverse() {
	if a.had {
		a.Item.Data[a.Key] = a.old
	} else {
		delete(a.Item.Data, a.Key)
	}
}

func (a *SetItemData) String() string {
	return fmt.Sprintf("SetItemData(%s, %s=%d)", a.Item.Nid, a.Key, a.Value)
}

// SetActionState moves a unit to a new turn state.
type SetActionState struct {
	Unit  *character.Unit
	State character.ActionState
	old   character.ActionState
}

func NewSetActionState(u *character.Unit, s character.ActionState) *SetActionState {
	return &SetActionState{Unit: u, State: s}
}

func (a *SetActionState) Do() {
	a.old = a.Unit.ActionState
	a.Unit.ActionState = a.State
}

func (a *SetActionState) Reverse() { a.Unit.ActionState = a.old }

func (a *SetActionState) String() string {
	return fmt.Sprintf("SetActionState(%s, %s)", a.Unit.ID, a.State)
}
