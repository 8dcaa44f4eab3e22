package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridverse.ai/internal/registry"
)

func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(filepath.Join(findRepoRoot(t), "schemas", "env.schema.json"))
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	return l
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const emptyRoomDoc = `name: Test-Empty-4x4
reset:
  function: empty_room
  height: 6
  width: 6
objects: [none, floor, wall, goal]
colors: [none]
observation:
  height: 5
  width: 5
transitions: [update_agent]
rewards: [reach_goal]
terminations: [reach_goal]
`

func TestLoadAndBuildEnvironment(t *testing.T) {
	l := newTestLoader(t)
	c, err := l.Load(writeConfig(t, emptyRoomDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Name != "Test-Empty-4x4" {
		t.Fatalf("name %q", c.Name)
	}

	e, err := c.Builder()()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	obs, err := e.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := obs.Grid.Shape().Height; got != 5 {
		t.Fatalf("observation height %d, want 5", got)
	}
}

func TestSchemaRejectsBadDocuments(t *testing.T) {
	l := newTestLoader(t)
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown reset function", strings.Replace(emptyRoomDoc, "empty_room", "teleporter", 1)},
		{"unknown object", strings.Replace(emptyRoomDoc, "goal]", "lava]", 1)},
		{"missing name", strings.Replace(emptyRoomDoc, "name: Test-Empty-4x4\n", "", 1)},
		{"room too small", strings.Replace(emptyRoomDoc, "height: 6", "height: 2", 1)},
		{"stray field", emptyRoomDoc + "difficulty: hard\n"},
	}
	for _, c := range cases {
		_, err := l.Load(writeConfig(t, c.doc))
		if err == nil {
			t.Fatalf("%s: accepted", c.name)
		}
		if !strings.Contains(err.Error(), "schema validation") {
			t.Fatalf("%s: expected a schema violation, got %v", c.name, err)
		}
	}
}

func TestUnknownRuleSurfacesAtBuildTime(t *testing.T) {
	l := newTestLoader(t)
	doc := strings.Replace(emptyRoomDoc, "transitions: [update_agent]", "transitions: [no_such_rule]", 1)
	c, err := l.Load(writeConfig(t, doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = c.Builder()()
	if err == nil {
		t.Fatalf("unknown rule accepted at build time")
	}
	if !strings.Contains(err.Error(), "no_such_rule") {
		t.Fatalf("error should name the rule: %v", err)
	}
}

func TestLoadDirRegistersShippedConfigs(t *testing.T) {
	l := newTestLoader(t)
	r := registry.New()
	dir := filepath.Join(findRepoRoot(t), "configs", "envs")
	if err := l.LoadDir(dir, r); err != nil {
		t.Fatalf("load dir: %v", err)
	}
	names := r.Names()
	if len(names) == 0 {
		t.Fatalf("no environments registered from %s", dir)
	}
	for _, name := range names {
		e, err := r.Build(name)
		if err != nil {
			t.Fatalf("%s: build: %v", name, err)
		}
		if _, err := e.Reset(); err != nil {
			t.Fatalf("%s: reset: %v", name, err)
		}
	}
}
