package rng

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics/internal/logging"
)

func TestCombatRollModes(t *testing.T) {
	t.Run("Classic takes one raw roll", func(t *testing.T) {
		src := &Fixed{Values: []int{73, 10}}
		assert.Equal(t, 73, CombatRoll(Classic, src))
		assert.Equal(t, 1, src.Drawn())
	})

	t.Run("True Hit averages two rolls", func(t *testing.T) {
		src := &Fixed{Values: []int{40, 60}}
		assert.Equal(t, 50, CombatRoll(TrueHit, src))
		assert.Equal(t, 2, src.Drawn())
	})

	t.Run("True Hit+ averages three rolls", func(t *testing.T) {
		src := &Fixed{Values: []int{10, 20, 61}}
		assert.Equal(t, 30, CombatRoll(TrueHitPlus, src))
		assert.Equal(t, 3, src.Drawn())
	})

	t.Run("Grandmaster is always zero and draws nothing", func(t *testing.T) {
		src := &Fixed{Values: []int{99}}
		assert.Equal(t, 0, CombatRoll(Grandmaster, src))
		assert.Equal(t, 0, src.Drawn())
	})
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"classic":       Classic,
		"True Hit":      TrueHit,
		"true-hit":      TrueHit,
		"True Hit+":     TrueHitPlus,
		"true_hit_plus": TrueHitPlus,
		"GRANDMASTER":   Grandmaster,
	}
	for name, want := range cases {
		assert.Equal(t, want, ParseMode(name, logging.Default()), name)
	}
}

func TestParseModeUnknownFallsBackWithWarning(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf)

	mode := ParseMode("lucky dice", l)

	assert.Equal(t, TrueHit, mode)
	assert.Contains(t, buf.String(), "WARN\tunknown rng mode")
	assert.Contains(t, buf.String(), "lucky dice")
}

func TestStreamRestoreReplaysExactly(t *testing.T) {
	s := NewStream(42)
	for i := 0; i < 7; i++ {
		s.Intn(100)
	}
	saved := s.State()
	want := []int{s.Intn(100), s.Intn(100), s.Intn(1000)}

	s.Restore(saved)
	got := []int{s.Intn(100), s.Intn(100), s.Intn(1000)}

	assert.Equal(t, want, got)
}

func TestStreamsAreIndependent(t *testing.T) {
	a := NewSource(7, 8)
	b := NewSource(7, 8)

	// Drawing heavily from a's combat stream must not move its growth stream.
	for i := 0; i < 50; i++ {
		a.Combat.Intn(100)
	}
	for i := 0; i < 5; i++ {
		require.Equal(t, b.Growth.Intn(100), a.Growth.Intn(100))
	}
}

func TestEqualSeedsAreSalted(t *testing.T) {
	s := NewSource(3, 3)
	assert.NotEqual(t, s.Combat.State().Seed, s.Growth.State().Seed)
}
