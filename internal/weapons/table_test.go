package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tactics/internal/config"
)

func testTable() *Table {
	return NewTable(config.WeaponsConfig{
		Ranks: []config.WeaponRankConfig{
			{Rank: "B", Requirement: 121, Accuracy: 5, Damage: 1},
			{Rank: "E", Requirement: 1},
			{Rank: "A", Requirement: 181, Accuracy: 10, Damage: 1, Crit: 5},
		},
		Types: []config.WeaponTypeConfig{
			{
				Nid: "sword",
				Advantage: []config.AdvantageConfig{
					{WeaponType: "axe", Accuracy: 15, Damage: 1},
					{WeaponType: "axe", WeaponRank: "A", Accuracy: 20, Damage: 2},
				},
				Disadvantage: []config.AdvantageConfig{
					{WeaponType: "lance", Accuracy: -15, Damage: -1},
					{WeaponType: "All", Avoid: -5},
				},
			},
			{
				Nid: "axe",
				Advantage: []config.AdvantageConfig{
					{WeaponType: "All", Crit: 5},
				},
				Disadvantage: []config.AdvantageConfig{
					{WeaponType: "sword", Accuracy: -15},
				},
			},
			{Nid: "lance"},
		},
	})
}

func TestAdvantage(t *testing.T) {
	tbl := testTable()

	tests := []struct {
		name     string
		attacker string
		wexp     int
		target   string
		want     Bonus
		relation Relation
	}{
		{"base advantage", "sword", 1, "axe", Bonus{Accuracy: 15, Damage: 1}, Advantaged},
		{"rank gated advantage wins when met", "sword", 200, "axe", Bonus{Accuracy: 20, Damage: 2}, Advantaged},
		{"disadvantage", "sword", 1, "lance", Bonus{Accuracy: -15, Damage: -1}, Disadvantaged},
		{"All entry matches any type", "sword", 1, "bow", Bonus{Avoid: -5}, Disadvantaged},
		{"advantage suppresses disadvantage", "axe", 1, "sword", Bonus{Crit: 5}, Advantaged},
		{"no relation", "lance", 1, "sword", Bonus{}, Neutral},
		{"unarmed target", "sword", 1, "", Bonus{}, Neutral},
		{"unknown attacker", "staff", 1, "axe", Bonus{}, Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rel := tbl.Advantage(tt.attacker, tt.wexp, tt.target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.relation, rel)
		})
	}
}

func TestRankBonus(t *testing.T) {
	tbl := testTable()

	assert.Equal(t, Bonus{}, tbl.RankBonus("sword", 0))
	assert.Equal(t, Bonus{}, tbl.RankBonus("sword", 50))
	assert.Equal(t, Bonus{Accuracy: 5, Damage: 1}, tbl.RankBonus("sword", 150))
	assert.Equal(t, Bonus{Accuracy: 10, Damage: 1, Crit: 5}, tbl.RankBonus("lance", 181))
	assert.Equal(t, Bonus{}, tbl.RankBonus("staff", 300))

	r, ok := tbl.RankFor(130)
	assert.True(t, ok)
	assert.Equal(t, "B", r.Name)
	assert.Equal(t, 181, tbl.Requirement("A"))
}

func TestBonusScale(t *testing.T) {
	b := Bonus{Accuracy: 15, Damage: 1, Avoid: -5}
	assert.Equal(t, Bonus{Accuracy: -30, Damage: -2, Avoid: 10}, b.Scale(-2))
	assert.Equal(t, Bonus{}, b.Scale(0))
}
