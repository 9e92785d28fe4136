package rng

import (
	"strings"

	"tactics/internal/logging"
)

// Mode selects how a combat hit roll is drawn.
type Mode int

const (
	// Classic draws one raw roll.
	Classic Mode = iota
	// TrueHit averages two rolls.
	TrueHit
	// TrueHitPlus averages three rolls.
	TrueHitPlus
	// Grandmaster always rolls 0, so any positive hit chance lands.
	Grandmaster
)

func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case TrueHit:
		return "true_hit"
	case TrueHitPlus:
		return "true_hit_plus"
	case Grandmaster:
		return "grandmaster"
	default:
		return "unknown"
	}
}

var modeNames = map[string]Mode{
	"classic":       Classic,
	"true_hit":      TrueHit,
	"true_hit_plus": TrueHitPlus,
	"grandmaster":   Grandmaster,
}

// ParseMode maps a settings name to a Mode. Unknown names log a warning and
// fall back to TrueHit; this is the expected behavior, not an error.
func ParseMode(name string, log *logging.Logger) Mode {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "+", "_plus")
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	key = strings.ReplaceAll(key, "__", "_")
	if m, ok := modeNames[key]; ok {
		return m
	}
	log.Warn("unknown rng mode, using true hit", logging.Fields{"mode": name})
	return TrueHit
}

// CombatRoll draws a hit roll in [0, 99] according to mode.
func CombatRoll(mode Mode, r Roller) int {
	switch mode {
	case Classic:
		return r.Intn(100)
	case TrueHitPlus:
		return (r.Intn(100) + r.Intn(100) + r.Intn(100)) / 3
	case Grandmaster:
		return 0
	default:
		return (r.Intn(100) + r.Intn(100)) / 2
	}
}

// RawRoll draws one roll in [0, 99] regardless of mode; crit checks use it.
func RawRoll(r Roller) int {
	return r.Intn(100)
}
