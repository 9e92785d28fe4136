package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ComponentSpec names a component and carries its raw YAML value.
// The value is decoded by the component's constructor, not here.
type ComponentSpec struct {
	Nid   string    `yaml:"nid"`
	Value yaml.Node `yaml:"value"`
}

// ItemDefinition defines an item prefab.
type ItemDefinition struct {
	Nid        string          `yaml:"nid"`
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
	SubItems   []string        `yaml:"sub_items,omitempty"` // prefab nids wrapped by a multi-item
}

// SkillDefinition defines a skill prefab.
type SkillDefinition struct {
	Nid        string          `yaml:"nid"`
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
}

// CatalogConfig is the root of an items/skills data file.
type CatalogConfig struct {
	Items  []ItemDefinition  `yaml:"items"`
	Skills []SkillDefinition `yaml:"skills"`
}

// LoadCatalog reads and merges item and skill definitions from one or more files.
func LoadCatalog(filenames ...string) (*CatalogConfig, error) {
	merged := &CatalogConfig{}
	for _, filename := range filenames {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		var cfg CatalogConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, err)
		}
		merged.Items = append(merged.Items, cfg.Items...)
		merged.Skills = append(merged.Skills, cfg.Skills...)
	}
	return merged, nil
}

// UnitDefinition places one unit in a scenario.
type UnitDefinition struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Team     string         `yaml:"team"`
	Position []int          `yaml:"position,omitempty"` // [x, y]; omitted for units without a map position
	Stats    map[string]int `yaml:"stats"`
	Wexp     map[string]int `yaml:"wexp"`
	Items    []string       `yaml:"items"`
	Skills   []string       `yaml:"skills"`
	Tags     []string       `yaml:"tags"`
	HP       *int           `yaml:"hp,omitempty"`
	Mana     int            `yaml:"mana"`
	Partner  string         `yaml:"partner,omitempty"`
	Gauge    int            `yaml:"gauge"`
}

// EncounterDefinition describes one combat to resolve.
type EncounterDefinition struct {
	Attacker string   `yaml:"attacker"`
	Defender string   `yaml:"defender,omitempty"`
	Item     string   `yaml:"item"`
	Splash   []string `yaml:"splash,omitempty"`
	Script   []string `yaml:"script,omitempty"`
}

// ScenarioConfig is the root of a scenario file.
type ScenarioConfig struct {
	Units     []UnitDefinition    `yaml:"units"`
	Encounter EncounterDefinition `yaml:"encounter"`
}

// LoadScenario reads a scenario file.
func LoadScenario(filename string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if cfg.Encounter.Attacker == "" {
		return nil, fmt.Errorf("scenario %s: encounter.attacker is required", filename)
	}
	return &cfg, nil
}
