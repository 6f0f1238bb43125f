// Package routeconfig defines the structural schema of an engine
// configuration document (spec.md §6) and its typed decode/validation pass.
// The tagged-union decode pattern (decode a base shape, branch on a type
// discriminator, decode again into an inline pointer field) is grounded on
// the teacher's internal/config/types.go Step.UnmarshalYAML.
package routeconfig

import (
	"fmt"

	"github.com/dialogchain-go/dialogchain/internal/uriconfig"
	"gopkg.in/yaml.v3"
)

// EngineConfig is the root document: `routes: [...]` per spec.md §6.
type EngineConfig struct {
	Routes []RouteConfig `yaml:"routes" validate:"required,min=1,dive"`
}

// RouteConfig is the structural record of spec.md §3's "Route configuration".
type RouteConfig struct {
	Name          string            `yaml:"name" validate:"required,route_name"`
	Source        Endpoint          `yaml:"from"`
	Processors    []ProcessorConfig `yaml:"processors,omitempty" validate:"omitempty,dive"`
	Destination   Endpoint          `yaml:"to"`
	Enabled       bool              `yaml:"enabled,omitempty"`
	RetryAttempts int               `yaml:"retry_attempts,omitempty" validate:"omitempty,min=0,max=100"`
	RetryDelay    float64           `yaml:"retry_delay,omitempty" validate:"omitempty,min=0"`
	Timeout       *float64          `yaml:"timeout,omitempty" validate:"omitempty,min=0"`
	ErrorHandlers []ErrorHandler    `yaml:"error_handlers,omitempty" validate:"omitempty,dive"`
}

// defaults matching spec.md §3: enabled=true, retry_attempts=3, retry_delay=1.0.
const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1.0
)

// UnmarshalYAML applies spec.md §3's defaults (enabled defaults true;
// retry_attempts/retry_delay default when the key is absent, not merely
// zero-valued) the same way the teacher's Step.UnmarshalYAML distinguishes
// an absent key from an explicit zero via pointer probing on a base shape.
func (r *RouteConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawRoute struct {
		Name          string            `yaml:"name"`
		Source        Endpoint          `yaml:"from"`
		Processors    []ProcessorConfig `yaml:"processors"`
		Destination   Endpoint          `yaml:"to"`
		Enabled       *bool             `yaml:"enabled"`
		RetryAttempts *int              `yaml:"retry_attempts"`
		RetryDelay    *float64          `yaml:"retry_delay"`
		Timeout       *float64          `yaml:"timeout"`
		ErrorHandlers []ErrorHandler    `yaml:"error_handlers"`
	}

	var raw rawRoute
	if err := value.Decode(&raw); err != nil {
		return err
	}

	r.Name = raw.Name
	r.Source = raw.Source
	r.Processors = raw.Processors
	r.Destination = raw.Destination
	r.Timeout = raw.Timeout
	r.ErrorHandlers = raw.ErrorHandlers

	if raw.Enabled != nil {
		r.Enabled = *raw.Enabled
	} else {
		r.Enabled = true
	}
	if raw.RetryAttempts != nil {
		r.RetryAttempts = *raw.RetryAttempts
	} else {
		r.RetryAttempts = DefaultRetryAttempts
	}
	if raw.RetryDelay != nil {
		r.RetryDelay = *raw.RetryDelay
	} else {
		r.RetryDelay = DefaultRetryDelay
	}

	return nil
}

// Endpoint is a route's `from`/`to` field: either a bare URI string or a
// `{type, ...opts}` mapping (spec.md §4.1/§6). It decodes either shape and
// normalizes to a uriconfig.Record on demand via Resolve.
type Endpoint struct {
	raw any
}

func (e *Endpoint) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		e.raw = s
	case yaml.MappingNode:
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return err
		}
		e.raw = m
	default:
		return fmt.Errorf("endpoint must be a URI string or a mapping, got %v", value.Kind)
	}
	return nil
}

// Resolve normalizes the endpoint into a uriconfig.Record, after any
// environment-variable interpolation the caller has already applied to
// string fields.
func (e Endpoint) Resolve() (uriconfig.Record, error) {
	switch v := e.raw.(type) {
	case string:
		return uriconfig.Parse(v)
	case map[string]any:
		return uriconfig.FromConfig(v)
	default:
		return uriconfig.Record{}, fmt.Errorf("endpoint has no value")
	}
}

// String returns the endpoint's URI form when it was declared as a bare
// string, or "" otherwise (used for interpolation passes that only touch
// string-shaped endpoints).
func (e Endpoint) String() (string, bool) {
	s, ok := e.raw.(string)
	return s, ok
}

// IsZero reports whether the endpoint was never populated.
func (e Endpoint) IsZero() bool {
	return e.raw == nil
}
