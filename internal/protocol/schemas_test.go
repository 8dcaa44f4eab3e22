package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	reject := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err == nil {
			t.Fatalf("expected validation failure")
		}
	}

	helloSchema := compile("hello.schema.json")
	resetSchema := compile("reset.schema.json")
	stepSchema := compile("step.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "env":"Empty-5x5",
	  "seed":1337,
	  "observation_rep":"default"
	}`), &hello)
	validate(helloSchema, hello)

	var helloNoEnv any
	_ = json.Unmarshal([]byte(`{"type":"HELLO","protocol_version":"1.0"}`), &helloNoEnv)
	reject(helloSchema, helloNoEnv)

	var reset any
	_ = json.Unmarshal([]byte(`{"type":"RESET"}`), &reset)
	validate(resetSchema, reset)

	var step any
	_ = json.Unmarshal([]byte(`{"type":"STEP","action":3}`), &step)
	validate(stepSchema, step)

	var stepNegative any
	_ = json.Unmarshal([]byte(`{"type":"STEP","action":-1}`), &stepNegative)
	reject(stepSchema, stepNegative)
}
