// Package registry maps symbolic environment names to builders of inner
// environments. Registries are explicit objects, not package globals, so
// tests and embedders can construct isolated ones.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"gridverse.ai/internal/env"
)

// Builder constructs a fresh inner environment. Builders must be
// idempotent and side-effect free apart from producing the new instance.
type Builder func() (env.InnerEnv, error)

// Registry is a name-to-builder table.
type Registry struct {
	builders map[string]Builder
}

func New() *Registry {
	return &Registry{builders: map[string]Builder{}}
}

// Register adds a builder under name. Registering a taken name is an
// error: environments are wired once at startup.
func (r *Registry) Register(name string, b Builder) error {
	if name == "" {
		return fmt.Errorf("registry: empty environment name")
	}
	if b == nil {
		return fmt.Errorf("registry: nil builder for %q", name)
	}
	if _, ok := r.builders[name]; ok {
		return fmt.Errorf("registry: environment %q already registered", name)
	}
	r.builders[name] = b
	return nil
}

// Names lists the registered environment names, sorted for help text.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs a fresh environment by name.
func (r *Registry) Build(name string) (env.InnerEnv, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("no environment named %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	e, err := b()
	if err != nil {
		return nil, fmt.Errorf("build environment %q: %w", name, err)
	}
	return e, nil
}
