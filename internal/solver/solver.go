// Package solver resolves one combat encounter as a state machine that is
// advanced one step at a time by the game loop.
//
// Each Step decides the next phase from the live unit state, resolves one
// sub-strike for the acting side and returns the resulting actions and
// playback events as a Batch. The solver never applies actions; the caller
// applies each batch before asking for the next step, so every transition
// sees the effects of the previous strike.
package solver

import (
	"context"
	"errors"

	"github.com/looplab/fsm"

	"tactics/internal/action"
	"tactics/internal/character"
	"tactics/internal/combat"
	"tactics/internal/components"
	"tactics/internal/engine"
	"tactics/internal/items"
	"tactics/internal/logging"
	"tactics/internal/playback"
	"tactics/internal/rng"
)

// State is a combat phase.
type State string

const (
	StateInit            State = "init"
	StateAttacker        State = "attacker"
	StateDefender        State = "defender"
	StateAttackerPartner State = "attacker_partner"
	StateDefenderPartner State = "defender_partner"
	StateDone            State = "done"
)

const (
	evAttack          = "attack"
	evDefend          = "defend"
	evAttackerPartner = "attacker_partner"
	evDefenderPartner = "defender_partner"
	evEnd             = "end"
)

// maxSteps bounds Run against data that never lets combat end.
const maxSteps = 256

// Sounds the solver itself emits.
const SoundGuard = "Guard"

// Encounter is the input of one combat.
type Encounter struct {
	Attacker *character.Unit
	Defender *character.Unit // nil for items used without an opponent
	Item     *items.Item
	Splash   []*character.Unit
	Script   []string
}

// Batch is the output of one Step, in emission order.
type Batch struct {
	State    State
	Actions  []action.Action
	Playback []playback.Event
	Done     bool
}

type Solver struct {
	ctx     *engine.Context
	enc     Encounter
	defItem *items.Item
	machine *fsm.FSM
	script  []string

	numAttacks, numSubattacks int
	numDefends, numSubdefends int
	attackerPartnerDone       bool
	defenderPartnerDone       bool
	done                      bool

	actions  *action.List
	playback *playback.Log
}

var (
	ErrNoAttacker = errors.New("encounter has no attacker")
	ErrNoItem     = errors.New("encounter has no item")
	ErrNoTarget   = errors.New("weapon used without a target")
)

// New prepares a solver. The defender counters with its first usable weapon.
func New(ctx *engine.Context, enc Encounter) (*Solver, error) {
	if enc.Attacker == nil {
		return nil, ErrNoAttacker
	}
	if enc.Item == nil {
		return nil, ErrNoItem
	}
	if enc.Defender == nil && len(enc.Splash) == 0 && components.IsWeapon(enc.Attacker, enc.Item) {
		return nil, ErrNoTarget
	}
	s := &Solver{
		ctx:    ctx,
		enc:    enc,
		script: append([]string(nil), enc.Script...),
	}
	if enc.Defender != nil {
		s.defItem = weaponFor(enc.Defender)
	}

	fighting := []string{string(StateInit), string(StateAttacker), string(StateDefender),
		string(StateAttackerPartner), string(StateDefenderPartner)}
	s.machine = fsm.NewFSM(
		string(StateInit),
		fsm.Events{
			{Name: evAttack, Src: fighting, Dst: string(StateAttacker)},
			{Name: evDefend, Src: fighting, Dst: string(StateDefender)},
			{Name: evAttackerPartner, Src: []string{string(StateAttacker)}, Dst: string(StateAttackerPartner)},
			{Name: evDefenderPartner, Src: []string{string(StateDefender)}, Dst: string(StateDefenderPartner)},
			{Name: evEnd, Src: fighting, Dst: string(StateDone)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if e.Dst == string(StateDone) || s.playback == nil {
					return
				}
				if u := s.sideFor(State(e.Dst)).unit; u != nil {
					s.playback.Append(playback.PhaseBegan{Phase: e.Dst, Unit: u.ID})
				}
			},
		},
	)
	return s, nil
}

// weaponFor is the first weapon u can currently use.
func weaponFor(u *character.Unit) *items.Item {
	for _, it := range u.Items {
		if components.IsWeapon(u, it) && components.Usable(u, it) {
			return it
		}
	}
	return nil
}

// State returns the current phase.
func (s *Solver) State() State {
	return State(s.machine.Current())
}

// Done reports whether the terminal batch has been produced.
func (s *Solver) Done() bool {
	return s.done
}

// DefenderItem is the item the defender counters with, possibly nil.
func (s *Solver) DefenderItem() *items.Item {
	return s.defItem
}

// Step advances the combat by one phase and returns what happened.
// After the terminal batch every call returns an empty done batch.
func (s *Solver) Step() Batch {
	if s.done {
		return Batch{State: StateDone, Done: true}
	}
	s.actions = &action.List{}
	s.playback = &playback.Log{}

	next, force := s.advance()
	if next == StateDone {
		s.finish()
		return s.batch(StateDone)
	}
	s.transition(next)
	s.process(next, force)
	return s.batch(next)
}

// Run steps to completion, handing every batch to apply, and returns the
// number of batches produced.
func (s *Solver) Run(apply func(Batch)) int {
	for n := 1; n <= maxSteps; n++ {
		b := s.Step()
		apply(b)
		if b.Done {
			return n
		}
	}
	s.ctx.Log.Warn("combat did not finish, forcing end", logging.Fields{"steps": maxSteps})
	s.actions = &action.List{}
	s.playback = &playback.Log{}
	s.finish()
	apply(s.batch(StateDone))
	return maxSteps + 1
}

func (s *Solver) batch(st State) Batch {
	return Batch{
		State:    st,
		Actions:  s.actions.Actions(),
		Playback: s.playback.Events(),
		Done:     s.done,
	}
}

func (s *Solver) finish() {
	s.transition(StateDone)
	s.actions.Add(action.NewSetActionState(s.enc.Attacker, character.StateAttacked))
	end := playback.CombatEnded{Attacker: s.enc.Attacker.ID}
	if s.enc.Defender != nil {
		end.Defender = s.enc.Defender.ID
	}
	s.playback.Append(end)
	s.done = true
}

func (s *Solver) transition(to State) {
	if s.State() == to {
		// looplab/fsm skips callbacks on self transitions
		if u := s.sideFor(to).unit; u != nil && to != StateDone {
			s.playback.Append(playback.PhaseBegan{Phase: string(to), Unit: u.ID})
		}
		return
	}
	var event string
	switch to {
	case StateAttacker:
		event = evAttack
	case StateDefender:
		event = evDefend
	case StateAttackerPartner:
		event = evAttackerPartner
	case StateDefenderPartner:
		event = evDefenderPartner
	default:
		event = evEnd
	}
	err := s.machine.Event(context.Background(), event)
	var noop fsm.NoTransitionError
	if err != nil && !errors.As(err, &noop) {
		s.ctx.Log.Error("illegal combat transition", err, logging.Fields{"from": s.State(), "to": to})
		s.machine.SetState(string(to))
	}
}

// advance picks the next state, letting a script command override it.
func (s *Solver) advance() (State, *components.Outcome) {
	if cmd, ok := s.nextCommand(); ok {
		switch cmd.kind {
		case cmdEnd:
			return StateDone, nil
		case cmdForce:
			st := StateAttacker
			if cmd.side == 2 {
				st = StateDefender
			}
			if s.canAct(st) {
				s.settle(st)
				outcome := cmd.outcome
				return st, &outcome
			}
			s.ctx.Log.Warn("scripted side cannot act, resolving normally", logging.Fields{"command": cmd.raw})
		}
	}
	return s.nextState(), nil
}

func (s *Solver) nextCommand() (command, bool) {
	if len(s.script) == 0 {
		return command{}, false
	}
	tok := s.script[0]
	s.script = s.script[1:]
	cmd, err := parseCommand(tok)
	if err != nil {
		s.ctx.Log.Warn("ignoring combat command", logging.Fields{"command": tok, "error": err})
		return command{}, false
	}
	return cmd, true
}

// settle closes out attack bookkeeping before a scripted jump to st.
func (s *Solver) settle(st State) {
	cur := s.State()
	switch {
	case cur == StateAttacker && (st != cur || s.numSubattacks >= s.multiattacks(StateAttacker)):
		s.completeAttack()
	case cur == StateDefender && (st != cur || s.numSubdefends >= s.multiattacks(StateDefender)):
		s.completeDefend()
	}
}

func (s *Solver) completeAttack() {
	if s.numSubattacks > 0 {
		s.numAttacks++
	}
	s.numSubattacks = 0
}

func (s *Solver) completeDefend() {
	if s.numSubdefends > 0 {
		s.numDefends++
	}
	s.numSubdefends = 0
}

func (s *Solver) nextState() State {
	switch s.State() {
	case StateInit:
		if s.enc.Defender != nil && components.Vantage(s.enc.Defender) && s.AllowCounterattack() {
			return StateDefender
		}
		if s.canAct(StateAttacker) {
			return StateAttacker
		}
		return StateDone

	case StateAttacker:
		if s.numSubattacks < s.multiattacks(StateAttacker) && s.canAct(StateAttacker) {
			return StateAttacker
		}
		s.completeAttack()
		if !s.attackerPartnerDone && s.numAttacks == 1 && s.canAct(StateAttackerPartner) {
			return StateAttackerPartner
		}
		return s.afterAttacker()

	case StateAttackerPartner:
		return s.afterAttacker()

	case StateDefender:
		if s.numSubdefends < s.multiattacks(StateDefender) && s.AllowCounterattack() {
			return StateDefender
		}
		s.completeDefend()
		if !s.defenderPartnerDone && s.numDefends == 1 && s.canAct(StateDefenderPartner) {
			return StateDefenderPartner
		}
		return s.afterDefender()

	case StateDefenderPartner:
		return s.afterDefender()
	}
	return StateDone
}

func (s *Solver) afterAttacker() State {
	if s.someoneDied() {
		return StateDone
	}
	if s.numAttacks < s.attackerOutspeed() && s.canAct(StateAttacker) {
		return StateAttacker
	}
	if s.numDefends < s.defenderOutspeed() && s.AllowCounterattack() {
		return StateDefender
	}
	return StateDone
}

// afterDefender mirrors afterAttacker. A defender who struck first through
// vantage and outspeeds also spends both attacks before the attacker moves,
// giving defender, defender, attacker.
func (s *Solver) afterDefender() State {
	if s.someoneDied() {
		return StateDone
	}
	if s.numDefends < s.defenderOutspeed() && s.AllowCounterattack() {
		return StateDefender
	}
	if s.numAttacks < s.attackerOutspeed() && s.canAct(StateAttacker) {
		return StateAttacker
	}
	return StateDone
}

func (s *Solver) someoneDied() bool {
	if !s.enc.Attacker.Alive() {
		return true
	}
	return s.enc.Defender != nil && !s.enc.Defender.Alive()
}

func (s *Solver) attackerOutspeed() int {
	return combat.Outspeed(s.query(StateAttacker))
}

func (s *Solver) defenderOutspeed() int {
	if s.enc.Defender == nil || s.defItem == nil {
		return 0
	}
	if !s.ctx.Constants.DefDouble {
		return 1
	}
	return combat.Outspeed(s.query(StateDefender))
}

func (s *Solver) multiattacks(st State) int {
	return combat.ComputeMultiattacks(s.query(st))
}

// canAct reports whether the side acting in st can strike now.
func (s *Solver) canAct(st State) bool {
	if st == StateDefender {
		return s.AllowCounterattack()
	}
	sd := s.sideFor(st)
	if sd.unit == nil || sd.item == nil || !sd.unit.Alive() {
		return false
	}
	if sd.target != nil && !sd.target.Alive() {
		return false
	}
	if (st == StateAttackerPartner || st == StateDefenderPartner) && sd.target == nil {
		return false
	}
	return components.Usable(sd.unit, sd.item)
}

// AllowCounterattack reports whether the defender may strike back right now.
func (s *Solver) AllowCounterattack() bool {
	att, def, item, defItem := s.enc.Attacker, s.enc.Defender, s.enc.Item, s.defItem
	if def == nil || defItem == nil || !def.Alive() || !att.Alive() {
		return false
	}
	if !components.Usable(def, defItem) {
		return false
	}
	if !components.CanBeCountered(att, item) {
		return false
	}
	if !components.IsWeapon(def, defItem) || !components.CanCounter(def, defItem) {
		return false
	}
	if s.ctx.AreAllies(att.Team, def.Team) {
		return false
	}
	if !components.TargetRestrict(def, defItem, att) {
		return false
	}
	return s.inCounterRange()
}

// inCounterRange skips the check for attackers without a map position.
func (s *Solver) inCounterRange() bool {
	att, def := s.enc.Attacker, s.enc.Defender
	if att.Position == nil || def.Position == nil {
		return true
	}
	lo, hi, ok := components.Range(def, s.defItem)
	if !ok {
		return true
	}
	d := def.Position.Distance(*att.Position)
	return d >= lo && d <= hi
}

type side struct {
	unit       *character.Unit
	item       *items.Item
	target     *character.Unit
	targetItem *items.Item
	mode       components.Mode
	info       components.AttackInfo
}

func (s *Solver) sideFor(st State) side {
	att, def := s.enc.Attacker, s.enc.Defender
	switch st {
	case StateAttacker:
		return side{att, s.enc.Item, def, s.defItem, components.ModeAttack,
			components.AttackInfo{Attack: s.numAttacks, Subattack: s.numSubattacks}}
	case StateDefender:
		return side{def, s.defItem, att, s.enc.Item, components.ModeDefense,
			components.AttackInfo{Attack: s.numDefends, Subattack: s.numSubdefends}}
	case StateAttackerPartner:
		if att.StrikePartner == nil {
			return side{}
		}
		return side{att.StrikePartner, weaponFor(att.StrikePartner), def, s.defItem, components.ModeAttack,
			components.AttackInfo{Attack: s.numAttacks}}
	case StateDefenderPartner:
		if def == nil || def.StrikePartner == nil {
			return side{}
		}
		return side{def.StrikePartner, weaponFor(def.StrikePartner), att, s.enc.Item, components.ModeDefense,
			components.AttackInfo{Attack: s.numDefends}}
	}
	return side{}
}

func (s *Solver) query(st State) components.Query {
	sd := s.sideFor(st)
	return components.Query{
		Ctx:        s.ctx,
		Unit:       sd.unit,
		Item:       sd.item,
		Target:     sd.target,
		TargetItem: sd.targetItem,
		Mode:       sd.mode,
		Info:       sd.info,
	}
}

// process resolves one sub-strike for the side acting in st.
func (s *Solver) process(st State, force *components.Outcome) {
	sd := s.sideFor(st)
	if sd.unit != nil && sd.item != nil {
		for i, striker := range sd.item.Strikers() {
			if striker != sd.item && !components.Usable(sd.unit, striker) {
				continue
			}
			targets := s.targetsFor(st, sd, striker)
			if len(targets) == 0 {
				continue
			}
			for j, t := range targets {
				var o *components.Outcome
				if j == 0 {
					o = force
				}
				s.strike(sd, striker, t, j > 0, i == 0, o)
			}
			components.AfterStrike(&components.Strike{
				Ctx: s.ctx, Actions: s.actions, Playback: s.playback,
				Unit: sd.unit, Item: striker, Target: targets[0], TargetItem: sd.targetItem,
				Mode: sd.mode, Info: sd.info, FirstItem: i == 0,
			})
		}
	}

	switch st {
	case StateAttacker:
		s.numSubattacks++
	case StateDefender:
		s.numSubdefends++
	case StateAttackerPartner:
		s.attackerPartnerDone = true
	case StateDefenderPartner:
		s.defenderPartnerDone = true
	}
}

// targetsFor is the primary target followed by splash targets the item may
// hit. With neither, a non-weapon item targets its user if the user is a
// valid target for it, and nothing otherwise.
func (s *Solver) targetsFor(st State, sd side, striker *items.Item) []*character.Unit {
	var out []*character.Unit
	if sd.target != nil {
		out = append(out, sd.target)
	}
	if st == StateAttacker {
		for _, t := range s.enc.Splash {
			if t == sd.target || !t.Alive() || !components.TargetRestrict(sd.unit, striker, t) {
				continue
			}
			out = append(out, t)
		}
	}
	if len(out) == 0 && !components.IsWeapon(sd.unit, striker) && components.TargetRestrict(sd.unit, striker, sd.unit) {
		out = append(out, sd.unit)
	}
	return out
}

func (s *Solver) strike(sd side, striker *items.Item, t *character.Unit, splash, first bool, force *components.Outcome) {
	mode := sd.mode
	targetItem := sd.targetItem
	if splash {
		mode = components.ModeSplash
		targetItem = weaponFor(t)
	} else if t == sd.unit {
		targetItem = nil
	}
	st := &components.Strike{
		Ctx:        s.ctx,
		Actions:    s.actions,
		Playback:   s.playback,
		Unit:       sd.unit,
		Item:       striker,
		Target:     t,
		TargetItem: targetItem,
		Mode:       mode,
		Info:       sd.info,
		FirstItem:  first,
	}

	k := s.ctx.Constants
	guarding := t != sd.unit && t.Paired() && k.GuardGaugeMax > 0 && s.actions.ProjectedGauge(t) >= k.GuardGaugeMax
	switch {
	case force != nil:
		st.Outcome, st.Forced = *force, true
	case guarding:
		st.Outcome = components.OutcomeGuard
	case t == sd.unit:
		st.Outcome = components.OutcomeHit
	default:
		st.Outcome = s.roll(st.Query())
	}

	a, d, name := sd.unit.ID, t.ID, striker.String()
	switch st.Outcome {
	case components.OutcomeHit:
		s.playback.Append(playback.MarkHit{Attacker: a, Target: d, Item: name})
		components.OnHit(st)
	case components.OutcomeCrit:
		s.playback.Append(playback.MarkCrit{Attacker: a, Target: d, Item: name})
		components.OnCrit(st)
	case components.OutcomeGlancing:
		s.playback.Append(playback.MarkHit{Attacker: a, Target: d, Item: name})
		components.OnGlancingHit(st)
	case components.OutcomeGuard:
		s.playback.Append(playback.MarkGuard{Attacker: a, Target: d, Item: name}, playback.HitSound{Sound: SoundGuard})
		if t.Paired() {
			s.actions.Add(action.NewSetGauge(t, 0))
		}
	default:
		s.playback.Append(playback.MarkMiss{Attacker: a, Target: d, Item: name})
		components.OnMiss(st)
	}

	if t == sd.unit {
		return
	}
	if sd.unit.Paired() {
		s.actions.Add(action.NewIncGauge(sd.unit, k.GuardGaugeGain, k.GuardGaugeMax))
	}
	if t.Paired() && st.Outcome != components.OutcomeGuard {
		s.actions.Add(action.NewIncGauge(t, k.GuardGaugeGain, k.GuardGaugeMax))
	}
}

// roll draws the hit roll, then the crit roll for strikes that land.
func (s *Solver) roll(q components.Query) components.Outcome {
	hit, ok := combat.ComputeHit(q)
	if !ok {
		return components.OutcomeMiss
	}
	r := rng.CombatRoll(s.ctx.Mode, s.ctx.Rolls)
	if r >= hit {
		return components.OutcomeMiss
	}

	k := s.ctx.Constants
	if k.Crit || components.CritAnyway(q.Unit, q.Item) {
		if crit, ok := combat.ComputeCrit(q); ok && rng.RawRoll(s.ctx.Rolls) < crit {
			return components.OutcomeCrit
		}
	}
	if k.GlancingHit && hit < combat.AlwaysHit && r >= hit-k.GlancingMargin {
		return components.OutcomeGlancing
	}
	return components.OutcomeHit
}
