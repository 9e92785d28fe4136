package solver

import (
	"fmt"
	"strconv"
	"strings"

	"tactics/internal/components"
)

type commandKind int

const (
	cmdNormal commandKind = iota // "--": no override for this step
	cmdEnd
	cmdForce
)

type command struct {
	raw     string
	kind    commandKind
	side    int // 1 attacker side, 2 defender side
	outcome components.Outcome
}

var scriptOutcomes = map[string]components.Outcome{
	"hit":    components.OutcomeHit,
	"crit":   components.OutcomeCrit,
	"miss":   components.OutcomeMiss,
	"glance": components.OutcomeGlancing,
	"guard":  components.OutcomeGuard,
}

// parseCommand reads one scripted combat token such as "hit1" or "end".
func parseCommand(tok string) (command, error) {
	raw := strings.TrimSpace(tok)
	cmd := command{raw: raw}
	switch strings.ToLower(raw) {
	case "--", "":
		cmd.kind = cmdNormal
		return cmd, nil
	case "end":
		cmd.kind = cmdEnd
		return cmd, nil
	}

	lower := strings.ToLower(raw)
	cut := len(lower) - 1
	if cut <= 0 {
		return cmd, fmt.Errorf("malformed combat command %q", raw)
	}
	outcome, ok := scriptOutcomes[lower[:cut]]
	if !ok {
		return cmd, fmt.Errorf("unknown combat command %q", raw)
	}
	side, err := strconv.Atoi(lower[cut:])
	if err != nil || (side != 1 && side != 2) {
		return cmd, fmt.Errorf("combat command %q needs side 1 or 2", raw)
	}
	cmd.kind = cmdForce
	cmd.side = side
	cmd.outcome = outcome
	return cmd, nil
}
