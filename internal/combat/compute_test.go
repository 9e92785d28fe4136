package combat_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics/internal/character"
	"tactics/internal/combat"
	"tactics/internal/components"
	"tactics/internal/config"
	"tactics/internal/engine"
	"tactics/internal/items"
	"tactics/internal/library"
	"tactics/internal/logging"
	"tactics/internal/rng"
	"tactics/internal/weapons"
)

func newContext(t *testing.T) *engine.Context {
	t.Helper()
	cfg, err := config.LoadConfig("../config/testdata/config.yaml")
	require.NoError(t, err)
	ctx, err := engine.New(cfg, rng.NewStream(1), logging.New(&bytes.Buffer{}))
	require.NoError(t, err)
	return ctx
}

func weapon(wtype string, extra ...items.Component) *items.Item {
	comps := []items.Component{
		library.Weapon{}, library.WeaponType(wtype), library.Damage(5), library.Hit(50), library.Crit(0),
	}
	return items.New(wtype, wtype, append(comps, extra...)...)
}

func unit(id string, spd int) *character.Unit {
	return character.NewUnit(id, id, "player", map[string]int{
		"HP": 40, "STR": 6, "MAG": 8, "SKL": 10, "SPD": spd, "LCK": 0, "DEF": 2, "RES": 3, "CON": 5,
	})
}

func query(ctx *engine.Context, u *character.Unit, it *items.Item, target *character.Unit, targetItem *items.Item) components.Query {
	return components.Query{Ctx: ctx, Unit: u, Item: it, Target: target, TargetItem: targetItem, Mode: components.ModeAttack}
}

func TestComputeHit(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)

	tests := []struct {
		name      string
		item      *items.Item
		enemyItem *items.Item
		want      int
	}{
		// 50 base + 20 HIT - 10 AVOID
		{"neutral", weapon("sword"), weapon("sword"), 60},
		{"advantage", weapon("sword"), weapon("axe"), 75},
		{"disadvantage", weapon("axe"), weapon("sword"), 45},
		{"reaver flips and doubles", weapon("sword", library.Reaver{}), weapon("axe"), 30},
		{"unknown type is neutral", weapon("rock"), weapon("axe"), 60},
		{"clamped high", weapon("sword", library.AccuracyBonus(200)), weapon("sword"), 100},
		{"clamped low", weapon("sword", library.AccuracyBonus(-500)), weapon("sword"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := combat.ComputeHit(query(ctx, a, tt.item, b, tt.enemyItem))
			require.True(t, ok)
			assert.Equal(t, tt.want, hit)
		})
	}
}

func TestComputeHitWithoutAccuracyAlwaysHits(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)

	staff := items.New("heal", "Heal", library.Heal(10))
	hit, ok := combat.ComputeHit(query(ctx, a, staff, b, nil))
	require.True(t, ok)
	assert.Equal(t, combat.AlwaysHit, hit)

	hit, ok = combat.ComputeHit(query(ctx, a, weapon("sword"), nil, nil))
	require.True(t, ok)
	assert.Equal(t, combat.AlwaysHit, hit)

	_, ok = combat.ComputeHit(query(ctx, a, nil, b, nil))
	assert.False(t, ok)
}

func TestWeaponRankGatesAdvantage(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)
	a.Wexp["sword"] = 181

	sword, axe := weapon("sword"), weapon("axe")
	bonus, rel := combat.ResolveAdvantage(ctx, a, sword, b, axe)
	assert.Equal(t, weapons.Advantaged, rel)
	assert.Equal(t, 20, bonus.Accuracy)

	hit, _ := combat.ComputeHit(query(ctx, a, sword, b, axe))
	// 50 + 20 HIT + 10 rank A + 20 advantage - 10 AVOID
	assert.Equal(t, 90, hit)

	dmg, _ := combat.ComputeDamage(query(ctx, a, sword, b, axe), components.OutcomeHit)
	// 5 + 6 STR + 1 rank + 2 advantage - 2 DEF
	assert.Equal(t, 12, dmg)
}

func TestAdvantageAndDisadvantageAreExclusive(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)
	types := []string{"sword", "lance", "axe", "bow", "anima", "staff"}

	for _, x := range types {
		for _, y := range types {
			_, rel := combat.ResolveAdvantage(ctx, a, weapon(x), b, weapon(y))
			_, back := combat.ResolveAdvantage(ctx, b, weapon(y), a, weapon(x))
			if rel == weapons.Advantaged {
				assert.NotEqual(t, weapons.Advantaged, back, "%s vs %s", x, y)
			}
		}
	}
}

func TestComputeDamage(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)

	tests := []struct {
		name    string
		item    *items.Item
		outcome components.Outcome
		want    int
	}{
		{"hit", weapon("sword"), components.OutcomeHit, 9},
		{"crit triples", weapon("sword"), components.OutcomeCrit, 27},
		{"crit multiplier override", weapon("sword", library.CritMultiplier(2), library.CritAddition(4)), components.OutcomeCrit, 22},
		{"glancing halves", weapon("sword"), components.OutcomeGlancing, 4},
		{"magic uses MAG against RES", weapon("anima", library.Magic{}), components.OutcomeHit, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dmg, ok := combat.ComputeDamage(query(ctx, a, tt.item, b, weapon("sword")), tt.outcome)
			require.True(t, ok)
			assert.Equal(t, tt.want, dmg)
		})
	}
}

func TestComputeDamageFloor(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)
	b.Stats["DEF"] = 50

	dmg, ok := combat.ComputeDamage(query(ctx, a, weapon("sword"), b, nil), components.OutcomeHit)
	require.True(t, ok)
	assert.Equal(t, 0, dmg)

	ctx.Constants.MinDamage = 1
	dmg, _ = combat.ComputeDamage(query(ctx, a, weapon("sword"), b, nil), components.OutcomeHit)
	assert.Equal(t, 1, dmg)
}

func TestEffectiveDamage(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)
	b.Tags = append(b.Tags, "armor")
	hammer := weapon("axe", library.Effective{Tags: []string{"armor"}, Bonus: 10})

	dmg, _ := combat.ComputeDamage(query(ctx, a, hammer, b, nil), components.OutcomeHit)
	assert.Equal(t, 19, dmg)

	dmg, _ = combat.ComputeDamage(query(ctx, a, hammer, unit("c", 5), nil), components.OutcomeHit)
	assert.Equal(t, 9, dmg)
}

func TestNoDamageComponent(t *testing.T) {
	ctx := newContext(t)
	_, ok := combat.ComputeDamage(query(ctx, unit("a", 5), items.New("key", "Key"), unit("b", 5), nil), components.OutcomeHit)
	assert.False(t, ok)
}

func TestComputeCrit(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)

	crit, ok := combat.ComputeCrit(query(ctx, a, weapon("sword"), b, weapon("sword")))
	require.True(t, ok)
	assert.Equal(t, 5, crit)

	crit, _ = combat.ComputeCrit(query(ctx, a, weapon("sword", library.CritBonus(500)), b, nil))
	assert.Equal(t, 100, crit)

	_, ok = combat.ComputeCrit(query(ctx, a, weapon("sword"), nil, nil))
	assert.False(t, ok)
}

func TestOutspeed(t *testing.T) {
	ctx := newContext(t)

	tests := []struct {
		name     string
		speed    int
		item     *items.Item
		expected int
	}{
		{"well ahead", 10, weapon("sword"), 2},
		{"exactly at threshold", 9, weapon("sword"), 2},
		{"just short", 8, weapon("sword"), 1},
		{"weight slows", 10, weapon("sword", library.Weight(8)), 1},
		{"cannot double", 30, weapon("sword", library.NoDouble{}), 1},
		{"staff", 30, items.New("heal", "Heal", library.Heal(10)), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := combat.Outspeed(query(ctx, unit("a", tt.speed), tt.item, unit("b", 5), weapon("sword")))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOutspeedWithoutTarget(t *testing.T) {
	ctx := newContext(t)
	assert.Equal(t, 1, combat.Outspeed(query(ctx, unit("a", 30), weapon("sword"), nil, nil)))
}

func TestComputeMultiattacks(t *testing.T) {
	ctx := newContext(t)
	a, b := unit("a", 5), unit("b", 5)
	brave := weapon("sword", library.Brave{})

	q := query(ctx, a, brave, b, nil)
	assert.Equal(t, 2, combat.ComputeMultiattacks(q))

	q.Mode = components.ModeDefense
	assert.Equal(t, 1, combat.ComputeMultiattacks(q))

	assert.Equal(t, 1, combat.ComputeMultiattacks(query(ctx, a, nil, b, nil)))
}

func TestSkillsFeedStats(t *testing.T) {
	ctx := newContext(t)
	a := unit("a", 5)
	a.Skills = append(a.Skills,
		character.NewSkill("strong", "Strong", library.StatChange{"STR": 4}),
		character.NewSkill("keen", "Keen", library.DamageBonus(2)),
	)

	assert.Equal(t, 10, combat.EffectiveStat(a, "STR"))
	dmg, ok := combat.Damage(ctx, a, weapon("sword"))
	require.True(t, ok)
	// 5 might + 10 STR + 2 bonus
	assert.Equal(t, 17, dmg)
}

func TestCombatArtOnlyWhenActive(t *testing.T) {
	ctx := newContext(t)
	a := unit("a", 5)
	skill := character.NewSkill("art", "Art", library.CombatArt{}, library.AccuracyBonus(30))
	a.Skills = append(a.Skills, skill)

	acc, _ := combat.Accuracy(ctx, a, weapon("sword"))
	assert.Equal(t, 70, acc)

	skill.Data[library.DataActive] = 1
	acc, _ = combat.Accuracy(ctx, a, weapon("sword"))
	assert.Equal(t, 100, acc)
}
