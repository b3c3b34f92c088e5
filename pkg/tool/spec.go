package tool

import "fmt"

// ParameterSpec describes one declared tool parameter. Specs are static
// data; all checking against caller arguments happens in Normalize.
type ParameterSpec struct {
	Name        string
	Type        string // string, number, integer, array
	Description string
	Required    bool
	Default     interface{}
	Enum        []interface{}
	Minimum     *float64
	Maximum     *float64
	MinItems    *int
	MaxItems    *int
}

// ToolSpec describes one callable tool: its unique name, a caller-facing
// description, and its declared parameters in schema order.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  []ParameterSpec
}

// InputSchema renders the spec as a JSON Schema object, the shape
// exposed to MCP clients via tools/list and to REST clients via /tools.
func (s ToolSpec) InputSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Parameters))
	required := []string{}

	for _, p := range s.Parameters {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Minimum != nil {
			prop["minimum"] = *p.Minimum
		}
		if p.Maximum != nil {
			prop["maximum"] = *p.Maximum
		}
		if p.Type == "array" {
			prop["items"] = map[string]interface{}{"type": "string"}
			if p.MinItems != nil {
				prop["minItems"] = *p.MinItems
			}
			if p.MaxItems != nil {
				prop["maxItems"] = *p.MaxItems
			}
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func validateSpec(s ToolSpec) error {
	if s.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if s.Description == "" {
		return fmt.Errorf("tool description cannot be empty for %s", s.Name)
	}

	validTypes := map[string]bool{
		"string": true, "number": true, "integer": true, "array": true,
	}

	for _, p := range s.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameter name cannot be empty in %s", s.Name)
		}
		if !validTypes[p.Type] {
			return fmt.Errorf("invalid parameter type %s for %s.%s", p.Type, s.Name, p.Name)
		}
		if p.Required && p.Default != nil {
			return fmt.Errorf("required parameter %s.%s cannot carry a default", s.Name, p.Name)
		}
		if p.Default != nil && len(p.Enum) > 0 && !enumContains(p.Enum, p.Default) {
			return fmt.Errorf("default for %s.%s is not an allowed value", s.Name, p.Name)
		}
	}

	return nil
}

func enumContains(enum []interface{}, value interface{}) bool {
	for _, candidate := range enum {
		if candidate == value {
			return true
		}
	}
	return false
}
