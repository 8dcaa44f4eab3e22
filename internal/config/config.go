// Package config loads declarative environment definitions from YAML,
// validates them against the env JSON Schema and compiles them into
// registry builders.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"gridverse.ai/internal/env"
	"gridverse.ai/internal/env/rules"
	"gridverse.ai/internal/grid"
	"gridverse.ai/internal/registry"
)

// Config is one declarative environment definition.
type Config struct {
	Name  string      `yaml:"name" json:"name"`
	Reset ResetConfig `yaml:"reset" json:"reset"`

	Objects []string `yaml:"objects" json:"objects"`
	Colors  []string `yaml:"colors" json:"colors"`

	Observation ShapeConfig `yaml:"observation" json:"observation"`

	Transitions  []string `yaml:"transitions" json:"transitions"`
	Rewards      []string `yaml:"rewards" json:"rewards"`
	Terminations []string `yaml:"terminations" json:"terminations"`
}

// ResetConfig selects and parameterizes a reset function.
type ResetConfig struct {
	Function     string `yaml:"function" json:"function"`
	Height       int    `yaml:"height" json:"height"`
	Width        int    `yaml:"width" json:"width"`
	RandomAgent  bool   `yaml:"random_agent,omitempty" json:"random_agent,omitempty"`
	NumObstacles int    `yaml:"num_obstacles,omitempty" json:"num_obstacles,omitempty"`
}

// ShapeConfig is a (height, width) pair.
type ShapeConfig struct {
	Height int `yaml:"height" json:"height"`
	Width  int `yaml:"width" json:"width"`
}

// Loader validates and compiles env config documents against one
// compiled schema.
type Loader struct {
	schema *jsonschema.Schema
}

// NewLoader compiles the env schema at schemaPath.
func NewLoader(schemaPath string) (*Loader, error) {
	s, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("compile env schema: %w", err)
	}
	return &Loader{schema: s}, nil
}

// Load reads one YAML env config, schema-validates it and decodes it.
func (l *Loader) Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Round-trip through JSON so the schema validator sees canonical
	// JSON-decoded types.
	jb, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var jdoc any
	if err := json.Unmarshal(jb, &jdoc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := l.schema.Validate(jdoc); err != nil {
		return nil, fmt.Errorf("%s: schema validation: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// LoadDir loads every *.yaml under dir and registers the resulting
// builders, in filename order.
func (l *Loader) LoadDir(dir string, r *registry.Registry) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	for _, path := range paths {
		c, err := l.Load(path)
		if err != nil {
			return err
		}
		if err := r.Register(c.Name, c.Builder()); err != nil {
			return err
		}
	}
	return nil
}

// Builder compiles the config into a registry builder. Resolution errors
// (unknown rules, bad sizes) surface when the builder runs.
func (c *Config) Builder() registry.Builder {
	return func() (env.InnerEnv, error) {
		d, err := c.definition()
		if err != nil {
			return nil, fmt.Errorf("env config %q: %w", c.Name, err)
		}
		return registry.FromDefinition(d)
	}
}

func (c *Config) definition() (registry.Definition, error) {
	reset, err := c.resetFunc()
	if err != nil {
		return registry.Definition{}, err
	}

	objects := make([]grid.ObjectType, 0, len(c.Objects))
	for _, name := range c.Objects {
		t, err := grid.ObjectTypeByName(name)
		if err != nil {
			return registry.Definition{}, err
		}
		objects = append(objects, t)
	}
	colors := make([]grid.Color, 0, len(c.Colors))
	for _, name := range c.Colors {
		col, err := grid.ColorByName(name)
		if err != nil {
			return registry.Definition{}, err
		}
		colors = append(colors, col)
	}

	return registry.Definition{
		Reset:            reset,
		Transitions:      c.Transitions,
		Rewards:          c.Rewards,
		Terminations:     c.Terminations,
		Objects:          objects,
		Colors:           colors,
		ObservationShape: grid.Shape{Height: c.Observation.Height, Width: c.Observation.Width},
	}, nil
}

func (c *Config) resetFunc() (env.ResetFunc, error) {
	rc := c.Reset
	switch rc.Function {
	case "empty_room":
		return rules.NewEmptyRoom(rc.Height, rc.Width, rc.RandomAgent)
	case "four_rooms":
		return rules.NewFourRooms(rc.Height, rc.Width)
	case "key_door":
		return rules.NewKeyDoor(rc.Height, rc.Width)
	case "dynamic_obstacles":
		return rules.NewDynamicObstacles(rc.Height, rc.Width, rc.NumObstacles, rc.RandomAgent)
	}
	return nil, fmt.Errorf("unknown reset function %q", rc.Function)
}
