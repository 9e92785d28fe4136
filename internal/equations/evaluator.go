// Package equations evaluates the named stat formulas from the combat data.
//
// Formulas are short Lua expressions over stat names (SKL * 2 + LCK / 2).
// Each formula is compiled once into the evaluator's Lua state and the
// result is floored to an integer.
package equations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Shopify/go-lua"
)

// ErrUnknownEquation is returned when evaluating a name that was never loaded.
var ErrUnknownEquation = errors.New("unknown equation")

// Extra variables bound alongside the configured stats.
const (
	VarWeight = "WEIGHT"
	VarMaxHP  = "MAXHP"
)

const chunkPrefix = "__equation_"

// Evaluator owns a Lua state holding every compiled formula.
// It is not safe for concurrent use.
type Evaluator struct {
	state *lua.State
	stats []string
	names map[string]bool
	bound map[string]bool // extra names bound by earlier calls
}

// NewEvaluator compiles every formula. stats lists the stat names that
// default to 0 when a caller does not bind them.
func NewEvaluator(formulas map[string]string, stats []string) (*Evaluator, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	ev := &Evaluator{
		state: state,
		stats: append([]string{VarWeight, VarMaxHP}, stats...),
		names: make(map[string]bool, len(formulas)),
		bound: make(map[string]bool),
	}

	keys := make([]string, 0, len(formulas))
	for name := range formulas {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		src := fmt.Sprintf("return math.floor(%s)", formulas[name])
		if err := lua.LoadString(state, src); err != nil {
			return nil, fmt.Errorf("failed to compile equation %s: %w", name, err)
		}
		state.SetGlobal(chunkPrefix + name)
		ev.names[name] = true
	}
	return ev, nil
}

// Has reports whether an equation named name was loaded.
func (e *Evaluator) Has(name string) bool {
	return e.names[name]
}

// Evaluate runs the named formula with vars bound as globals. Configured
// stats missing from vars are 0; any other name is only visible to the call
// that binds it.
func (e *Evaluator) Evaluate(name string, vars map[string]int) (int, error) {
	if !e.names[name] {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEquation, name)
	}
	for k := range e.bound {
		if _, ok := vars[k]; !ok {
			e.state.PushNil()
			e.state.SetGlobal(k)
			delete(e.bound, k)
		}
	}
	for _, stat := range e.stats {
		e.state.PushInteger(vars[stat])
		e.state.SetGlobal(stat)
	}
	for k, v := range vars {
		e.state.PushInteger(v)
		e.state.SetGlobal(k)
		if !e.isStat(k) {
			e.bound[k] = true
		}
	}

	top := e.state.Top()
	defer e.state.SetTop(top)

	e.state.Global(chunkPrefix + name)
	if err := e.state.ProtectedCall(0, 1, 0); err != nil {
		return 0, fmt.Errorf("failed to evaluate equation %s: %w", name, err)
	}

	n, ok := e.state.ToNumber(-1)
	if !ok {
		return 0, fmt.Errorf("equation %s did not return a number", name)
	}
	return int(n), nil
}

func (e *Evaluator) isStat(name string) bool {
	for _, stat := range e.stats {
		if stat == name {
			return true
		}
	}
	return false
}
