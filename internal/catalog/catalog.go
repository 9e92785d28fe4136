// Package catalog turns item, skill and scenario definitions into live
// objects. Every Item and Skill call builds fresh component instances, so
// two units never share component state.
package catalog

import (
	"errors"
	"fmt"

	"tactics/internal/character"
	"tactics/internal/config"
	"tactics/internal/items"
	"tactics/internal/library"
)

var (
	ErrUnknownComponent = library.ErrUnknownComponent
	ErrUnknownItem      = errors.New("unknown item")
	ErrUnknownSkill     = errors.New("unknown skill")
	ErrUnknownUnit      = errors.New("unknown unit")
)

type Catalog struct {
	items  map[string]config.ItemDefinition
	skills map[string]config.SkillDefinition
}

// New indexes the definitions and builds each one once, so that unknown
// components and dangling references fail here rather than mid-combat.
func New(cfg *config.CatalogConfig) (*Catalog, error) {
	c := &Catalog{
		items:  make(map[string]config.ItemDefinition, len(cfg.Items)),
		skills: make(map[string]config.SkillDefinition, len(cfg.Skills)),
	}
	for _, def := range cfg.Items {
		c.items[def.Nid] = def
	}
	for _, def := range cfg.Skills {
		c.skills[def.Nid] = def
	}

	var errs []error
	for _, def := range cfg.Items {
		if _, err := c.Item(def.Nid); err != nil {
			errs = append(errs, err)
		}
	}
	for _, def := range cfg.Skills {
		if _, err := c.Skill(def.Nid); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustBuild is New for startup paths; it panics on error.
func MustBuild(cfg *config.CatalogConfig) *Catalog {
	c, err := New(cfg)
	if err != nil {
		panic("Failed to build catalog: " + err.Error())
	}
	return c
}

func (c *Catalog) env() library.Env {
	return library.Env{Skill: c.Skill}
}

// Item instantiates an item prefab.
func (c *Catalog) Item(nid string) (*items.Item, error) {
	return c.item(nid, 0)
}

func (c *Catalog) item(nid string, depth int) (*items.Item, error) {
	def, ok := c.items[nid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, nid)
	}
	if depth > 1 {
		return nil, fmt.Errorf("item %s: sub-items cannot nest", nid)
	}
	comps, err := library.BuildAll(def.Components, c.env())
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", nid, err)
	}
	name := def.Name
	if name == "" {
		name = def.Nid
	}
	it := items.New(def.Nid, name, comps...)
	for _, comp := range comps {
		if seed, ok := comp.(library.Initializer); ok {
			seed.Init(it)
		}
	}
	for _, subNid := range def.SubItems {
		sub, err := c.item(subNid, depth+1)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", nid, err)
		}
		it.AddSubItem(sub)
	}
	return it, nil
}

// Skill instantiates a skill prefab.
func (c *Catalog) Skill(nid string) (*character.Skill, error) {
	def, ok := c.skills[nid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, nid)
	}
	comps, err := library.BuildAll(def.Components, c.env())
	if err != nil {
		return nil, fmt.Errorf("skill %s: %w", nid, err)
	}
	name := def.Name
	if name == "" {
		name = def.Nid
	}
	s := character.NewSkill(def.Nid, name, comps...)
	for _, comp := range comps {
		if b, ok := comp.(library.SkillBinder); ok {
			b.BindSkill(s)
		}
	}
	return s, nil
}

// Unit builds a unit with its inventory and skills. Strike partners are
// resolved by Scenario.
func (c *Catalog) Unit(def config.UnitDefinition) (*character.Unit, error) {
	if def.ID == "" {
		return nil, errors.New("unit without id")
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}
	u := character.NewUnit(def.ID, name, def.Team, copyStats(def.Stats))
	for k, v := range def.Wexp {
		u.Wexp[k] = v
	}
	if len(def.Position) == 2 {
		u.Position = &character.Position{X: def.Position[0], Y: def.Position[1]}
	} else if len(def.Position) != 0 {
		return nil, fmt.Errorf("unit %s: position needs [x, y]", def.ID)
	}
	for _, nid := range def.Items {
		it, err := c.Item(nid)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", def.ID, err)
		}
		u.GiveItem(it)
	}
	for _, nid := range def.Skills {
		s, err := c.Skill(nid)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", def.ID, err)
		}
		u.Skills = append(u.Skills, s)
	}
	u.Tags = append(u.Tags, def.Tags...)
	if def.HP != nil {
		u.HP = *def.HP
	}
	u.Mana = def.Mana
	u.Gauge = def.Gauge
	return u, nil
}

func copyStats(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Scenario is a built scenario: every unit plus the encounter to resolve.
type Scenario struct {
	Roster   *character.Roster
	Attacker *character.Unit
	Defender *character.Unit // nil for items used without a target
	Item     *items.Item
	Splash   []*character.Unit
	Script   []string
}

// Scenario builds the roster, links strike partners and resolves the encounter.
func (c *Catalog) Scenario(cfg *config.ScenarioConfig) (*Scenario, error) {
	roster := character.NewRoster()
	for _, def := range cfg.Units {
		u, err := c.Unit(def)
		if err != nil {
			return nil, err
		}
		roster.Add(u)
	}
	for _, def := range cfg.Units {
		if def.Partner == "" {
			continue
		}
		partner, ok := roster.Get(def.Partner)
		if !ok {
			return nil, fmt.Errorf("%w: partner %s of %s", ErrUnknownUnit, def.Partner, def.ID)
		}
		u, _ := roster.Get(def.ID)
		u.StrikePartner = partner
	}

	enc := cfg.Encounter
	sc := &Scenario{Roster: roster, Script: enc.Script}
	var ok bool
	if sc.Attacker, ok = roster.Get(enc.Attacker); !ok {
		return nil, fmt.Errorf("%w: attacker %s", ErrUnknownUnit, enc.Attacker)
	}
	if enc.Defender != "" {
		if sc.Defender, ok = roster.Get(enc.Defender); !ok {
			return nil, fmt.Errorf("%w: defender %s", ErrUnknownUnit, enc.Defender)
		}
	}
	for _, id := range enc.Splash {
		u, ok := roster.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: splash target %s", ErrUnknownUnit, id)
		}
		sc.Splash = append(sc.Splash, u)
	}

	if enc.Item != "" {
		sc.Item = sc.Attacker.Item(enc.Item)
		if sc.Item == nil {
			return nil, fmt.Errorf("%w: %s does not carry %s", ErrUnknownItem, enc.Attacker, enc.Item)
		}
	} else if len(sc.Attacker.Items) > 0 {
		sc.Item = sc.Attacker.Items[0]
	} else {
		return nil, fmt.Errorf("%w: %s carries nothing", ErrUnknownItem, enc.Attacker)
	}
	return sc, nil
}
