// Package engine carries the collaborators combat needs: constants,
// equations, weapon tables, randomness and logging. A Context replaces
// process-wide singletons; everything that resolves combat receives one.
package engine

import (
	"fmt"

	"tactics/internal/config"
	"tactics/internal/equations"
	"tactics/internal/logging"
	"tactics/internal/rng"
	"tactics/internal/weapons"
)

type Context struct {
	Constants config.Constants
	Equations *equations.Evaluator
	Weapons   *weapons.Table
	Mode      rng.Mode
	Rolls     rng.Roller // combat stream
	Log       *logging.Logger

	allies func(a, b string) bool
}

// New builds a Context from validated config and the combat stream.
func New(cfg *config.Config, rolls rng.Roller, log *logging.Logger) (*Context, error) {
	ev, err := equations.NewEvaluator(cfg.Equations, cfg.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to build equations: %w", err)
	}
	return &Context{
		Constants: cfg.ResolvedConstants(),
		Equations: ev,
		Weapons:   weapons.NewTable(cfg.Weapons),
		Mode:      rng.ParseMode(cfg.RNG.Mode, log),
		Rolls:     rolls,
		Log:       log,
		allies:    cfg.AreAllies,
	}, nil
}

// Equation evaluates a named formula. Failures are logged and read as 0 so
// that combat math never fails mid-encounter.
func (c *Context) Equation(name string, vars map[string]int) int {
	v, err := c.Equations.Evaluate(name, vars)
	if err != nil {
		c.Log.Warn("equation failed, using 0", logging.Fields{"equation": name, "error": err})
		return 0
	}
	return v
}

// AreAllies reports whether two teams are on the same side.
func (c *Context) AreAllies(a, b string) bool {
	if c.allies == nil {
		return a == b
	}
	return c.allies(a, b)
}

// SetAllies replaces the team alliance lookup.
func (c *Context) SetAllies(f func(a, b string) bool) {
	c.allies = f
}
