package main

import (
	"log"

	"tactics/internal/catalog"
	"tactics/internal/config"
	"tactics/internal/engine"
	"tactics/internal/game"
	"tactics/internal/logging"
	"tactics/internal/rng"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load item and skill definitions
	defs, err := config.LoadCatalog("assets/items.yaml", "assets/skills.yaml")
	if err != nil {
		log.Fatal(err)
	}
	cat := catalog.MustBuild(defs)

	scenario, err := config.LoadScenario("assets/scenario.yaml")
	if err != nil {
		log.Fatal(err)
	}
	sc, err := cat.Scenario(scenario)
	if err != nil {
		log.Fatal(err)
	}

	src := rng.NewSource(cfg.RNG.CombatSeed, cfg.RNG.GrowthSeed)
	ctx, err := engine.New(cfg, src.Combat, logging.Default())
	if err != nil {
		log.Fatal(err)
	}
	arena, err := game.NewArena(ctx, src.Combat, sc)
	if err != nil {
		log.Fatal(err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(game.NewGame(cfg, arena)); err != nil {
		log.Fatal(err)
	}
}
