package tool

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Registry is the static tool catalog plus one compiled JSON Schema per
// tool. It is immutable after construction and therefore safe for
// unsynchronized concurrent reads from every transport binding.
type Registry struct {
	specs   []ToolSpec
	index   map[string]int
	schemas map[string]*gojsonschema.Schema
}

// NewRegistry validates the given specs, compiles their schemas, and
// returns a registry. Spec order is preserved and stable for the
// lifetime of the process.
func NewRegistry(specs []ToolSpec) (*Registry, error) {
	r := &Registry{
		specs:   make([]ToolSpec, 0, len(specs)),
		index:   make(map[string]int, len(specs)),
		schemas: make(map[string]*gojsonschema.Schema, len(specs)),
	}

	for _, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, fmt.Errorf("invalid tool spec: %w", err)
		}
		if _, exists := r.index[spec.Name]; exists {
			return nil, fmt.Errorf("tool %q already registered", spec.Name)
		}

		schema, err := compileSchema(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for %s: %w", spec.Name, err)
		}

		r.index[spec.Name] = len(r.specs)
		r.specs = append(r.specs, spec)
		r.schemas[spec.Name] = schema
	}

	return r, nil
}

// List returns all tool specs in registration order. The returned slice
// is a copy; callers cannot mutate the registry through it.
func (r *Registry) List() []ToolSpec {
	out := make([]ToolSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Get returns the spec for a tool name.
func (r *Registry) Get(name string) (ToolSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return ToolSpec{}, false
	}
	return r.specs[i], true
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.specs)
}

// compileSchema compiles the validation schema for a spec. Unlike the
// discovery schema from InputSchema, undeclared properties are left
// permitted: arguments the registry does not model pass through to the
// backend untouched.
func compileSchema(spec ToolSpec) (*gojsonschema.Schema, error) {
	loader := gojsonschema.NewGoLoader(spec.InputSchema())
	return gojsonschema.NewSchema(loader)
}
