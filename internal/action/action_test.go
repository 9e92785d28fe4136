package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics/internal/character"
	"tactics/internal/items"
)

func newUnit() *character.Unit {
	u := character.NewUnit("seth", "Seth", "player", map[string]int{"HP": 30})
	u.Mana = 5
	u.Gauge = 3
	u.Skills = []*character.Skill{
		character.NewSkill("vantage", "Vantage"),
		character.NewSkill("one_shot", "One Shot"),
		character.NewSkill("canto", "Canto"),
	}
	return u
}

func TestChangeHPClamps(t *testing.T) {
	u := newUnit()

	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"damage", 30, -12, 18},
		{"overkill stops at zero", 5, -12, 0},
		{"heal stops at max", 25, 10, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u.HP = tt.start
			a := NewChangeHP(u, tt.delta)
			a.Do()
			assert.Equal(t, tt.want, u.HP)
			a.Reverse()
			assert.Equal(t, tt.start, u.HP)
		})
	}
}

func TestRoundTripRestoresEveryField(t *testing.T) {
	u := newUnit()
	it := items.New("iron_sword", "Iron Sword")
	it.Data["uses"] = 2
	extra := character.NewSkill("miracle", "Miracle")

	before := struct {
		hp, mana, gauge int
		skills          []string
		state           character.ActionState
		data            map[string]int
	}{u.HP, u.Mana, u.Gauge, skillNids(u), u.ActionState, copyData(it.Data)}

	var log Log
	log.Apply(
		NewChangeHP(u, -40),
		NewChangeMana(u, -9),
		NewIncGauge(u, 4, 10),
		NewSetGauge(u, 0),
		NewRemoveSkill(u, "one_shot"),
		NewAddSkill(u, extra),
		NewSetItemData(it, "uses", 1),
		NewSetItemData(it, "cooldown", 2),
		NewSetActionState(u, character.StateAttacked),
	)

	require.Equal(t, 0, u.HP)
	require.Equal(t, 0, u.Mana)
	require.Equal(t, 0, u.Gauge)
	require.Equal(t, []string{"vantage", "canto", "miracle"}, skillNids(u))
	require.Equal(t, character.StateAttacked, u.ActionState)

	assert.Equal(t, 9, log.RewindAll())

	assert.Equal(t, before.hp, u.HP)
	assert.Equal(t, before.mana, u.Mana)
	assert.Equal(t, before.gauge, u.Gauge)
	assert.Equal(t, before.skills, skillNids(u))
	assert.Equal(t, before.state, u.ActionState)
	assert.Equal(t, before.data, it.Data)
	assert.Equal(t, 0, log.Len())
}

func TestRewindToMark(t *testing.T) {
	u := newUnit()
	var log Log
	log.Apply(NewChangeHP(u, -5))
	mark := log.Len()
	log.Apply(NewChangeHP(u, -5), NewChangeHP(u, -5))

	assert.Equal(t, 2, log.RewindTo(mark))
	assert.Equal(t, 25, u.HP)
	assert.Equal(t, 0, log.Rewind(0))
	assert.Equal(t, 1, log.Rewind(10))
	assert.Equal(t, 30, u.HP)
}

func TestRemoveMissingSkillIsNoop(t *testing.T) {
	u := newUnit()
	a := NewRemoveSkill(u, "nope")
	a.Do()
	a.Reverse()
	assert.Equal(t, []string{"vantage", "one_shot", "canto"}, skillNids(u))
}

func TestListProjections(t *testing.T) {
	u := newUnit()
	it := items.New("javelin", "Javelin")
	it.Data["uses"] = 4

	var l List
	l.Add(NewChangeHP(u, -20), NewChangeHP(u, -20), NewChangeHP(u, 7))
	l.Add(NewIncGauge(u, 5, 10), NewIncGauge(u, 5, 10))
	l.Add(NewSetItemData(it, "uses", 3))

	assert.Equal(t, 7, l.ProjectedHP(u))
	assert.Equal(t, 10, l.ProjectedGauge(u))
	assert.Equal(t, 3, l.ProjectedData(it, "uses"))
	assert.Equal(t, 0, l.ProjectedData(it, "cooldown"))

	// Nothing was applied.
	assert.Equal(t, 30, u.HP)
	assert.Equal(t, 3, u.Gauge)
	assert.Equal(t, 4, it.Data["uses"])
	assert.Equal(t, 6, l.Len())
}

func skillNids(u *character.Unit) []string {
	out := make([]string, 0, len(u.Skills))
	for _, s := range u.Skills {
		out = append(out, s.Nid)
	}
	return out
}

func copyData(d map[string]int) map[string]int {
	out := make(map[string]int, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
