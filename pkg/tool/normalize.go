package tool

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// NormalizedRequest is a validated, defaulted, backend-ready call. It is
// derived deterministically from the caller arguments plus the static
// registry and never mutated afterwards.
type NormalizedRequest struct {
	Tool     string
	Endpoint string
	Payload  map[string]interface{}
	Timeout  time.Duration
}

// Normalize resolves a raw call against the registry: it applies
// declared defaults, validates types, allowed values and numeric ranges,
// and assembles the backend payload. Arguments not declared in the
// schema pass through unchanged. No I/O happens here; a returned
// ErrorDetail means the call must not reach the network.
func (r *Registry) Normalize(name string, args map[string]interface{}) (*NormalizedRequest, *ErrorDetail) {
	spec, ok := r.Get(name)
	if !ok {
		return nil, &ErrorDetail{
			Kind:    ErrUnknownTool,
			Message: fmt.Sprintf("unknown tool: %s", name),
		}
	}

	payload := make(map[string]interface{}, len(args)+len(spec.Parameters))
	for k, v := range args {
		payload[k] = v
	}
	for _, p := range spec.Parameters {
		if _, present := payload[p.Name]; !present && !p.Required && p.Default != nil {
			payload[p.Name] = p.Default
		}
	}

	if err := r.validate(name, payload); err != nil {
		return nil, err
	}

	route, ok := RouteFor(name)
	if !ok {
		// Registry and route table are built from the same catalog; a
		// registered tool without a route is a programming error.
		return nil, &ErrorDetail{
			Kind:    ErrUnknownTool,
			Message: fmt.Sprintf("no backend route for tool: %s", name),
		}
	}

	return &NormalizedRequest{
		Tool:     name,
		Endpoint: route.Endpoint,
		Payload:  payload,
		Timeout:  route.Timeout,
	}, nil
}

func (r *Registry) validate(name string, payload map[string]interface{}) *ErrorDetail {
	schema := r.schemas[name]
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return &ErrorDetail{
			Kind:    ErrValidation,
			Message: fmt.Sprintf("argument validation failed: %v", err),
		}
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		if field := resErr.Field(); field != "" && field != "(root)" {
			violations = append(violations, fmt.Sprintf("%s: %s", field, resErr.Description()))
		} else {
			violations = append(violations, resErr.Description())
		}
	}

	return &ErrorDetail{
		Kind:    ErrValidation,
		Message: fmt.Sprintf("invalid arguments for %s: %s", name, strings.Join(violations, "; ")),
	}
}
