// Package library is the set of concrete item and skill components, looked up
// by nid when the catalog builds items and skills from data files.
package library

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"tactics/internal/character"
	"tactics/internal/config"
	"tactics/internal/items"
)

// ErrUnknownComponent is returned for a component nid with no constructor.
var ErrUnknownComponent = errors.New("unknown component")

// Env gives constructors access to the rest of the catalog.
type Env struct {
	// Skill instantiates a fresh copy of a skill prefab.
	Skill func(nid string) (*character.Skill, error)
}

// Constructor builds a component from its YAML value. value.Kind is 0 when
// the data gave no value.
type Constructor func(value *yaml.Node, env Env) (items.Component, error)

// Initializer is implemented by components that seed an item's data bag
// when the item is created.
type Initializer interface {
	Init(it *items.Item)
}

// SkillBinder is implemented by components that need to know which skill
// instance they are attached to.
type SkillBinder interface {
	BindSkill(s *character.Skill)
}

var registry = map[string]Constructor{}

// Register adds a constructor. It panics on a duplicate nid.
func Register(nid string, c Constructor) {
	if _, exists := registry[nid]; exists {
		panic("library: duplicate component " + nid)
	}
	registry[nid] = c
}

// Names returns every registered nid, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for nid := range registry {
		out = append(out, nid)
	}
	sort.Strings(out)
	return out
}

// Build constructs the component described by spec.
func Build(spec config.ComponentSpec, env Env) (items.Component, error) {
	ctor, ok := registry[spec.Nid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, spec.Nid)
	}
	value := spec.Value
	c, err := ctor(&value, env)
	if err != nil {
		return nil, fmt.Errorf("failed to build component %s: %w", spec.Nid, err)
	}
	return c, nil
}

// BuildAll constructs every spec in order.
func BuildAll(specs []config.ComponentSpec, env Env) ([]items.Component, error) {
	out := make([]items.Component, 0, len(specs))
	for _, spec := range specs {
		c, err := Build(spec, env)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func hasValue(n *yaml.Node) bool {
	return n != nil && n.Kind != 0
}

func decodeInt(n *yaml.Node) (int, error) {
	if !hasValue(n) {
		return 0, errors.New("missing integer value")
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func decodeString(n *yaml.Node) (string, error) {
	if !hasValue(n) {
		return "", errors.New("missing string value")
	}
	var v string
	if err := n.Decode(&v); err != nil {
		return "", err
	}
	return v, nil
}

// flag registers a component that takes no value.
func flag(nid string, build func() items.Component) {
	Register(nid, func(*yaml.Node, Env) (items.Component, error) {
		return build(), nil
	})
}

func intValued(nid string, build func(v int) items.Component) {
	Register(nid, func(n *yaml.Node, _ Env) (items.Component, error) {
		v, err := decodeInt(n)
		if err != nil {
			return nil, err
		}
		return build(v), nil
	})
}

func stringValued(nid string, build func(v string) items.Component) {
	Register(nid, func(n *yaml.Node, _ Env) (items.Component, error) {
		v, err := decodeString(n)
		if err != nil {
			return nil, err
		}
		return build(v), nil
	})
}
