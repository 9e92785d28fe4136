package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the database-wide combat data and runtime settings.
type Config struct {
	Display   DisplayConfig     `yaml:"display"`
	Arena     ArenaConfig       `yaml:"arena"`
	Stats     []string          `yaml:"stats"`
	Constants ConstantsConfig   `yaml:"constants"`
	Equations map[string]string `yaml:"equations"`
	Weapons   WeaponsConfig     `yaml:"weapons"`
	Teams     []TeamConfig      `yaml:"teams"`
	RNG       RNGConfig         `yaml:"rng"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type ArenaConfig struct {
	StepFrames int `yaml:"step_frames"` // frames each playback batch stays on screen
	FeedLines  int `yaml:"feed_lines"`
}

// ConstantsConfig mirrors the constants registry. Pointer fields are required
// and checked by Validate; the rest fall back to defaults.
type ConstantsConfig struct {
	MinDamage      *int  `yaml:"min_damage"`
	Crit           *bool `yaml:"crit"`
	DefDouble      *bool `yaml:"def_double"`
	GlancingHit    *bool `yaml:"glancing_hit"`
	GuardGaugeMax  *int  `yaml:"guard_gauge_max"`
	GlancingMargin int   `yaml:"glancing_margin"`
	GuardGaugeGain int   `yaml:"guard_gauge_gain"`
	CritMultiplier int   `yaml:"crit_multiplier"`
}

// Constants is the resolved, validated constants registry.
type Constants struct {
	MinDamage      int
	Crit           bool
	DefDouble      bool
	GlancingHit    bool
	GlancingMargin int
	GuardGaugeMax  int
	GuardGaugeGain int
	CritMultiplier int
}

type WeaponsConfig struct {
	Types []WeaponTypeConfig `yaml:"types"`
	Ranks []WeaponRankConfig `yaml:"ranks"`
}

type WeaponTypeConfig struct {
	Nid          string            `yaml:"nid"`
	Name         string            `yaml:"name"`
	Advantage    []AdvantageConfig `yaml:"advantage"`
	Disadvantage []AdvantageConfig `yaml:"disadvantage"`
}

// AdvantageConfig is one weapon-triangle relationship entry.
// WeaponType may be "All"; WeaponRank may be empty or "All" for no rank gate.
type AdvantageConfig struct {
	WeaponType   string `yaml:"weapon_type"`
	WeaponRank   string `yaml:"weapon_rank"`
	Accuracy     int    `yaml:"accuracy"`
	Avoid        int    `yaml:"avoid"`
	Damage       int    `yaml:"damage"`
	Resist       int    `yaml:"resist"`
	Crit         int    `yaml:"crit"`
	Dodge        int    `yaml:"dodge"`
	AttackSpeed  int    `yaml:"attack_speed"`
	DefenseSpeed int    `yaml:"defense_speed"`
}

type WeaponRankConfig struct {
	Rank        string `yaml:"rank"`
	Requirement int    `yaml:"requirement"`
	Accuracy    int    `yaml:"accuracy"`
	Damage      int    `yaml:"damage"`
	Crit        int    `yaml:"crit"`
}

type TeamConfig struct {
	Nid    string   `yaml:"nid"`
	Allies []string `yaml:"allies"`
}

// RNGConfig selects the roll mode and stream seeds. Environment variables override YAML.
type RNGConfig struct {
	Mode       string `yaml:"mode" env:"TACTICS_RNG_MODE"`
	CombatSeed int64  `yaml:"combat_seed" env:"TACTICS_COMBAT_SEED"`
	GrowthSeed int64  `yaml:"growth_seed" env:"TACTICS_GROWTH_SEED"`
}

// RequiredEquations must be present for combat math to run.
var RequiredEquations = []string{
	"HIT", "AVOID", "CRIT_HIT", "CRIT_AVOID",
	"DAMAGE", "DEFENSE", "MAGIC_DAMAGE", "MAGIC_DEFENSE",
	"ATTACK_SPEED", "DEFENSE_SPEED", "SPEED_TO_DOUBLE",
}

var (
	// ErrMissingConstant reports a required constant absent from the registry.
	ErrMissingConstant = errors.New("missing required constant")
	// ErrMissingEquation reports a required equation absent from the data.
	ErrMissingEquation = errors.New("missing required equation")
	// ErrUnknownReference reports a weapon table entry naming an undefined type or rank.
	ErrUnknownReference = errors.New("unknown reference")
)

// LoadConfig loads, overrides from the environment and validates a config file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML bytes, applies env overrides and validates.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := env.Parse(&cfg.RNG); err != nil {
		return nil, fmt.Errorf("failed to read rng environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate reports every missing required constant or equation and every
// dangling weapon-table reference.
func (c *Config) Validate() error {
	var errs []error
	k := c.Constants
	required := map[string]bool{
		"min_damage":      k.MinDamage != nil,
		"crit":            k.Crit != nil,
		"def_double":      k.DefDouble != nil,
		"glancing_hit":    k.GlancingHit != nil,
		"guard_gauge_max": k.GuardGaugeMax != nil,
	}
	for _, name := range []string{"min_damage", "crit", "def_double", "glancing_hit", "guard_gauge_max"} {
		if !required[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingConstant, name))
		}
	}
	if k.MinDamage != nil && *k.MinDamage < 0 {
		errs = append(errs, fmt.Errorf("min_damage must be non-negative, got %d", *k.MinDamage))
	}
	for _, name := range RequiredEquations {
		if strings.TrimSpace(c.Equations[name]) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEquation, name))
		}
	}

	types := make(map[string]bool, len(c.Weapons.Types))
	for _, wt := range c.Weapons.Types {
		types[wt.Nid] = true
	}
	ranks := make(map[string]bool, len(c.Weapons.Ranks))
	for _, r := range c.Weapons.Ranks {
		ranks[r.Rank] = true
	}
	for _, wt := range c.Weapons.Types {
		entries := append(append([]AdvantageConfig{}, wt.Advantage...), wt.Disadvantage...)
		for _, adv := range entries {
			if adv.WeaponType != "All" && !types[adv.WeaponType] {
				errs = append(errs, fmt.Errorf("%w: weapon type %q in %s", ErrUnknownReference, adv.WeaponType, wt.Nid))
			}
			if adv.WeaponRank != "" && adv.WeaponRank != "All" && !ranks[adv.WeaponRank] {
				errs = append(errs, fmt.Errorf("%w: weapon rank %q in %s", ErrUnknownReference, adv.WeaponRank, wt.Nid))
			}
		}
	}
	return errors.Join(errs...)
}

// ResolvedConstants returns the constants with defaults applied. Call after Validate.
func (c *Config) ResolvedConstants() Constants {
	k := c.Constants
	out := Constants{
		GlancingMargin: k.GlancingMargin,
		GuardGaugeGain: k.GuardGaugeGain,
		CritMultiplier: k.CritMultiplier,
	}
	if k.MinDamage != nil {
		out.MinDamage = *k.MinDamage
	}
	if k.Crit != nil {
		out.Crit = *k.Crit
	}
	if k.DefDouble != nil {
		out.DefDouble = *k.DefDouble
	}
	if k.GlancingHit != nil {
		out.GlancingHit = *k.GlancingHit
	}
	if k.GuardGaugeMax != nil {
		out.GuardGaugeMax = *k.GuardGaugeMax
	}
	if out.GlancingMargin <= 0 {
		out.GlancingMargin = 20
	}
	if out.GuardGaugeGain <= 0 {
		out.GuardGaugeGain = 1
	}
	if out.CritMultiplier <= 0 {
		out.CritMultiplier = 3
	}
	return out
}

// AreAllies reports whether two teams fight on the same side.
func (c *Config) AreAllies(a, b string) bool {
	if a == b {
		return true
	}
	for _, t := range c.Teams {
		if t.Nid != a && t.Nid != b {
			continue
		}
		other := b
		if t.Nid == b {
			other = a
		}
		for _, ally := range t.Allies {
			if ally == other {
				return true
			}
		}
	}
	return false
}

func (c *Config) GetScreenWidth() int {
	if c.Display.ScreenWidth <= 0 {
		return 960
	}
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	if c.Display.ScreenHeight <= 0 {
		return 540
	}
	return c.Display.ScreenHeight
}

// GetStepFrames returns how many frames a playback batch is shown before the next step.
func (c *Config) GetStepFrames() int {
	if c.Arena.StepFrames <= 0 {
		return 45
	}
	return c.Arena.StepFrames
}
