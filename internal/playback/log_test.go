package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogHas(t *testing.T) {
	var l Log
	assert.False(t, l.Has(KindHitSound))

	l.Append(MarkHit{Attacker: "seth", Target: "oneill"}, HitSound{Sound: "Final Hit"})

	assert.True(t, l.Has(KindHitSound))
	assert.True(t, l.HasSound("Final Hit"))
	assert.False(t, l.HasSound("Attack Hit"))
	assert.False(t, l.Has(KindScreenShake))
	assert.Equal(t, 2, l.Len())
}

func TestLogKeepsOrder(t *testing.T) {
	var l Log
	l.Append(PhaseBegan{Phase: "attacker", Unit: "seth"})
	l.Append(MarkMiss{}, CombatEnded{})

	kinds := make([]Kind, 0, l.Len())
	for _, e := range l.Events() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []Kind{KindPhaseBegan, KindMarkMiss, KindCombatEnded}, kinds)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "damage_crit", KindDamageCrit.String())
	assert.Equal(t, "combat_ended", CombatEnded{}.Kind().String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestEventText(t *testing.T) {
	assert.Equal(t, "oneill takes 7 glancing damage from Iron Sword",
		DamageHit{Target: "oneill", Item: "Iron Sword", Damage: 7, TrueDamage: 7, Glancing: true}.String())
	assert.Equal(t, "attacker: seth", PhaseBegan{Phase: "attacker", Unit: "seth"}.String())
}
