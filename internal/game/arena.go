package game

import (
	"fmt"

	"tactics/internal/action"
	"tactics/internal/catalog"
	"tactics/internal/character"
	"tactics/internal/engine"
	"tactics/internal/items"
	"tactics/internal/logging"
	"tactics/internal/rng"
	"tactics/internal/solver"
)

// Arena owns one encounter: the solver, the log of applied actions and the
// batches seen so far. It is the only place solver output is applied.
type Arena struct {
	ctx     *engine.Context
	rolls   *rng.Stream
	start   rng.State
	enc     solver.Encounter
	units   []*character.Unit
	solver  *solver.Solver
	applied *action.Log
	batches []solver.Batch
}

// NewArena prepares sc for stepping. rolls must be the stream ctx draws from.
func NewArena(ctx *engine.Context, rolls *rng.Stream, sc *catalog.Scenario) (*Arena, error) {
	a := &Arena{
		ctx:     ctx,
		rolls:   rolls,
		start:   rolls.State(),
		applied: &action.Log{},
		units:   sc.Roster.Units(),
		enc: solver.Encounter{
			Attacker: sc.Attacker,
			Defender: sc.Defender,
			Item:     sc.Item,
			Splash:   sc.Splash,
			Script:   sc.Script,
		},
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) reset() error {
	s, err := solver.New(a.ctx, a.enc)
	if err != nil {
		return fmt.Errorf("failed to start combat: %w", err)
	}
	a.solver = s
	a.batches = a.batches[:0]
	return nil
}

// Step resolves and applies the next batch. ok is false once combat is over.
func (a *Arena) Step() (b solver.Batch, ok bool) {
	if a.solver.Done() {
		return solver.Batch{}, false
	}
	b = a.solver.Step()
	a.applied.Apply(b.Actions...)
	a.batches = append(a.batches, b)
	return b, true
}

// Rewind undoes the most recent batch. Every unit change is reversed, the
// combat stream is moved back to where the encounter began, and the earlier
// batches are resolved again so the solver's counters match the live state.
func (a *Arena) Rewind() error {
	n := len(a.batches) - 1
	if n < 0 {
		return nil
	}
	a.applied.RewindAll()
	a.rolls.Restore(a.start)
	if err := a.reset(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		a.Step()
	}
	a.ctx.Log.Info("rewound combat", logging.Fields{"batches": n})
	return nil
}

// Restart rewinds to before the first batch.
func (a *Arena) Restart() error {
	a.applied.RewindAll()
	a.rolls.Restore(a.start)
	return a.reset()
}

// Finish steps until combat is over and returns how many batches it took.
func (a *Arena) Finish() int {
	n := 0
	for {
		if _, ok := a.Step(); !ok {
			return n
		}
		n++
	}
}

func (a *Arena) Done() bool                  { return a.solver.Done() }
func (a *Arena) Batches() []solver.Batch     { return a.batches }
func (a *Arena) Units() []*character.Unit    { return a.units }
func (a *Arena) Encounter() solver.Encounter { return a.enc }
func (a *Arena) Context() *engine.Context    { return a.ctx }

// DefenderItem is the weapon the defender counters with, possibly nil.
func (a *Arena) DefenderItem() *items.Item {
	return a.solver.DefenderItem()
}

// Applied is the number of actions applied so far.
func (a *Arena) Applied() int {
	return a.applied.Len()
}
