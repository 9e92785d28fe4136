package game

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics/internal/catalog"
	"tactics/internal/config"
	"tactics/internal/engine"
	"tactics/internal/logging"
	"tactics/internal/rng"
	"tactics/internal/solver"
)

// newArena loads the shipped config and assets.
func newArena(t *testing.T) (*Arena, *config.Config) {
	t.Helper()
	cfg, err := config.LoadConfig("../../config.yaml")
	require.NoError(t, err)
	cat, err := config.LoadCatalog("../../assets/items.yaml", "../../assets/skills.yaml")
	require.NoError(t, err)
	sc, err := config.LoadScenario("../../assets/scenario.yaml")
	require.NoError(t, err)

	c, err := catalog.New(cat)
	require.NoError(t, err)
	built, err := c.Scenario(sc)
	require.NoError(t, err)

	rolls := rng.NewStream(cfg.RNG.CombatSeed)
	ctx, err := engine.New(cfg, rolls, logging.New(&bytes.Buffer{}))
	require.NoError(t, err)

	a, err := NewArena(ctx, rolls, built)
	require.NoError(t, err)
	return a, cfg
}

func transcript(batches []solver.Batch) []string {
	var out []string
	for _, b := range batches {
		out = append(out, string(b.State))
		for _, e := range b.Playback {
			out = append(out, e.String())
		}
	}
	return out
}

func hps(a *Arena) map[string]int {
	out := make(map[string]int)
	for _, u := range a.Units() {
		out[u.ID] = u.HP
	}
	return out
}

func TestShippedScenarioFinishes(t *testing.T) {
	a, _ := newArena(t)

	n := a.Finish()

	require.Greater(t, n, 1)
	assert.True(t, a.Done())
	batches := a.Batches()
	assert.True(t, batches[len(batches)-1].Done)
	// bazba has vantage
	assert.Equal(t, solver.StateDefender, batches[0].State)

	_, ok := a.Step()
	assert.False(t, ok)
}

func TestRewindReplaysTheSameCombat(t *testing.T) {
	a, _ := newArena(t)
	a.Finish()
	full := transcript(a.Batches())
	n := len(a.Batches())

	a.Restart()
	var before []map[string]int
	for i := 0; i < n; i++ {
		before = append(before, hps(a))
		a.Step()
	}

	require.NoError(t, a.Rewind())
	assert.Len(t, a.Batches(), n-1)
	assert.Equal(t, before[n-1], hps(a))

	require.NoError(t, a.Rewind())
	assert.Equal(t, before[n-2], hps(a))

	a.Finish()
	assert.Equal(t, full, transcript(a.Batches()))
}

func TestRestartRestoresUnits(t *testing.T) {
	a, _ := newArena(t)
	start := hps(a)

	a.Finish()
	require.Positive(t, a.Applied())

	require.NoError(t, a.Restart())
	assert.Equal(t, start, hps(a))
	assert.Zero(t, a.Applied())
	assert.Empty(t, a.Batches())
	assert.False(t, a.Done())
}

func TestRewindWithNothingToUndo(t *testing.T) {
	a, _ := newArena(t)
	assert.NoError(t, a.Rewind())
	assert.Empty(t, a.Batches())
}

func TestFeedKeepsNewestLines(t *testing.T) {
	a, _ := newArena(t)
	a.Finish()

	f := NewFeed(3)
	f.Rebuild(a.Batches())

	require.Equal(t, 3, f.Len())
	assert.Equal(t, "combat ended", f.Text(2))
}

func TestFeedSkipsEffects(t *testing.T) {
	f := NewFeed(10)
	f.Add(solver.Batch{Playback: nil})
	assert.Zero(t, f.Len())

	a, _ := newArena(t)
	b, _ := a.Step()
	f.Add(b)
	for i := 0; i < f.Len(); i++ {
		assert.NotContains(t, f.Text(i), "sound")
		assert.NotContains(t, f.Text(i), "screen shake")
	}
}

func TestParseHex(t *testing.T) {
	c, ok := parseHex("#ff8000")
	require.True(t, ok)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)

	_, ok = parseHex("white")
	assert.False(t, ok)
}
