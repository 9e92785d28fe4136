// Command simulate resolves a scenario without a window and prints the
// playback of every batch.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"tactics/internal/action"
	"tactics/internal/catalog"
	"tactics/internal/config"
	"tactics/internal/engine"
	"tactics/internal/logging"
	"tactics/internal/playback"
	"tactics/internal/rng"
	"tactics/internal/solver"
)

var (
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A0A0C8"))
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	critStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC800"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	guardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64B4FF"))
	damageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5A5A"))
	healStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5ADC78"))
	effectStyle  = lipgloss.NewStyle().Faint(true)
	endStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFA0"))
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingTop(1)
)

type options struct {
	config   string
	items    string
	skills   string
	scenario string
	seed     int64
	quiet    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "config.yaml", "game config file")
	flag.StringVar(&opts.items, "items", "assets/items.yaml", "item definitions")
	flag.StringVar(&opts.skills, "skills", "assets/skills.yaml", "skill definitions")
	flag.StringVar(&opts.scenario, "scenario", "assets/scenario.yaml", "scenario to resolve")
	flag.Int64Var(&opts.seed, "seed", 0, "combat seed (0 keeps the configured seed)")
	flag.BoolVar(&opts.quiet, "quiet", false, "hide sounds, shakes and tints")
	flag.Parse()

	if err := run(opts, os.Stdout, logging.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer, log *logging.Logger) error {
	cfg, err := config.LoadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.RNG.CombatSeed = opts.seed
	}
	defs, err := config.LoadCatalog(opts.items, opts.skills)
	if err != nil {
		return err
	}
	cat, err := catalog.New(defs)
	if err != nil {
		return err
	}
	scenario, err := config.LoadScenario(opts.scenario)
	if err != nil {
		return err
	}
	sc, err := cat.Scenario(scenario)
	if err != nil {
		return err
	}

	src := rng.NewSource(cfg.RNG.CombatSeed, cfg.RNG.GrowthSeed)
	ctx, err := engine.New(cfg, src.Combat, log)
	if err != nil {
		return err
	}
	s, err := solver.New(ctx, solver.Encounter{
		Attacker: sc.Attacker,
		Defender: sc.Defender,
		Item:     sc.Item,
		Splash:   sc.Splash,
		Script:   sc.Script,
	})
	if err != nil {
		return err
	}

	applied := &action.Log{}
	n := s.Run(func(b solver.Batch) {
		applied.Apply(b.Actions...)
		printBatch(out, b, opts.quiet)
	})

	var summary string
	for _, u := range sc.Roster.Units() {
		summary += fmt.Sprintf("%-10s HP %2d/%2d  gauge %d\n", u.Name, u.HP, u.MaxHP(), u.Gauge)
	}
	summary += fmt.Sprintf("%d batches, %d actions", n, applied.Len())
	fmt.Fprintln(out, summaryStyle.Render(summary))
	return nil
}

func printBatch(out io.Writer, b solver.Batch, quiet bool) {
	for _, e := range b.Playback {
		style, effect := eventStyle(e.Kind())
		if effect && quiet {
			continue
		}
		indent := "  "
		if e.Kind() == playback.KindPhaseBegan || e.Kind() == playback.KindCombatEnded {
			indent = ""
		}
		fmt.Fprintln(out, indent+style.Render(e.String()))
	}
}

func eventStyle(k playback.Kind) (style lipgloss.Style, effect bool) {
	switch k {
	case playback.KindPhaseBegan:
		return phaseStyle, false
	case playback.KindMarkHit:
		return hitStyle, false
	case playback.KindMarkCrit, playback.KindDamageCrit:
		return critStyle, false
	case playback.KindMarkMiss:
		return missStyle, false
	case playback.KindMarkGuard:
		return guardStyle, false
	case playback.KindDamageHit:
		return damageStyle, false
	case playback.KindHealHit, playback.KindStatusApplied, playback.KindItemBroke:
		return healStyle, false
	case playback.KindCombatEnded:
		return endStyle, false
	}
	return effectStyle, true
}
