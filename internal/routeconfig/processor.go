package routeconfig

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProcessorConfig is the tagged-union record of spec.md §4.3/§4.3.6: `{type,
// ...opts}` where type selects transform|filter|external|aggregate|debug,
// case-insensitively. Unmarshal decodes into the matching inline struct the
// same way the teacher's Step decodes into PackageStep/RepoStep/etc.
type ProcessorConfig struct {
	Type string `yaml:"type" validate:"required"`

	Transform *TransformOptions `yaml:",inline,omitempty"`
	Filter    *FilterOptions    `yaml:",inline,omitempty"`
	External  *ExternalOptions  `yaml:",inline,omitempty"`
	Aggregate *AggregateOptions `yaml:",inline,omitempty"`
	Debug     *DebugOptions     `yaml:",inline,omitempty"`
}

// TransformOptions per spec.md §4.3.1.
type TransformOptions struct {
	Template    string `yaml:"template" validate:"required"`
	OutputField string `yaml:"output_field,omitempty"`
}

// FilterOptions per spec.md §4.3.2. At least one of MinConfidence/Condition
// must be set (both may be); enforced by ValidateProcessor since go-playground/validator's
// struct tags can't express "at least one of" across pointer fields cleanly.
type FilterOptions struct {
	MinConfidence *float64 `yaml:"min_confidence,omitempty" validate:"omitempty,min=0,max=1"`
	Condition     string   `yaml:"condition,omitempty"`
}

// ExternalOptions per spec.md §4.3.3.
type ExternalOptions struct {
	Command string `yaml:"command" validate:"required"`
	Timeout int    `yaml:"timeout,omitempty" validate:"omitempty,min=1"`
}

// DefaultExternalTimeoutSeconds is applied when Timeout is unset (spec.md §4.3.3).
const DefaultExternalTimeoutSeconds = 30

// AggregateOptions per spec.md §4.3.4.
type AggregateOptions struct {
	Strategy string `yaml:"strategy" validate:"required,oneof=collect sum average count"`
	Timeout  string `yaml:"timeout" validate:"required"`
	MaxSize  int    `yaml:"max_size" validate:"required,min=1"`
}

// DebugOptions per spec.md §4.3.5.
type DebugOptions struct {
	Prefix string `yaml:"prefix,omitempty"`
}

// DefaultDebugPrefix is applied when Prefix is unset (spec.md §4.3.5).
const DefaultDebugPrefix = "DEBUG"

func (p *ProcessorConfig) UnmarshalYAML(value *yaml.Node) error {
	type baseProcessor struct {
		Type string `yaml:"type"`
	}

	var base baseProcessor
	if err := value.Decode(&base); err != nil {
		return err
	}
	p.Type = base.Type

	p.Transform = nil
	p.Filter = nil
	p.External = nil
	p.Aggregate = nil
	p.Debug = nil

	switch strings.ToLower(base.Type) {
	case "transform":
		var opts TransformOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		p.Transform = &opts
	case "filter":
		var opts FilterOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		p.Filter = &opts
	case "external":
		var opts ExternalOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		if opts.Timeout == 0 {
			opts.Timeout = DefaultExternalTimeoutSeconds
		}
		p.External = &opts
	case "aggregate":
		var opts AggregateOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		p.Aggregate = &opts
	case "debug":
		var opts DebugOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		if opts.Prefix == "" {
			opts.Prefix = DefaultDebugPrefix
		}
		p.Debug = &opts
	default:
		// Leave all variants nil; ValidateProcessor reports the unknown type
		// as a ConfigurationError rather than failing the YAML decode itself,
		// so a config with many routes can report every error it contains.
	}

	return nil
}

// ErrorHandler is the tagged-union record of spec.md §3/§4.4's
// `error_handlers` entries: log, retry, fallback.
type ErrorHandler struct {
	Type string `yaml:"type" validate:"required,oneof=log retry fallback"`

	Log      *LogHandlerOptions      `yaml:",inline,omitempty"`
	Retry    *RetryHandlerOptions    `yaml:",inline,omitempty"`
	Fallback *FallbackHandlerOptions `yaml:",inline,omitempty"`
}

// LogHandlerOptions per spec.md §4.4.
type LogHandlerOptions struct {
	Message string `yaml:"message,omitempty"`
}

// RetryHandlerOptions per spec.md §4.4.
type RetryHandlerOptions struct {
	MaxAttempts int     `yaml:"max_attempts" validate:"required,min=1"`
	Delay       float64 `yaml:"delay,omitempty" validate:"omitempty,min=0"`
}

// FallbackHandlerOptions per spec.md §4.4.
type FallbackHandlerOptions struct {
	Destination Endpoint `yaml:"destination"`
}

func (h *ErrorHandler) UnmarshalYAML(value *yaml.Node) error {
	type baseHandler struct {
		Type string `yaml:"type"`
	}

	var base baseHandler
	if err := value.Decode(&base); err != nil {
		return err
	}
	h.Type = base.Type

	h.Log = nil
	h.Retry = nil
	h.Fallback = nil

	switch strings.ToLower(base.Type) {
	case "log":
		var opts LogHandlerOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		h.Log = &opts
	case "retry":
		var opts RetryHandlerOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		h.Retry = &opts
	case "fallback":
		var opts FallbackHandlerOptions
		if err := value.Decode(&opts); err != nil {
			return err
		}
		h.Fallback = &opts
	default:
	}

	return nil
}

// processorTypeDisplay renders a lowercased processor/handler type for
// error messages, regardless of the casing used in the source document.
func processorTypeDisplay(t string) string {
	return fmt.Sprintf("%q", strings.ToLower(t))
}

// Options flattens the decoded processor config into the option map a
// processor.Factory constructor expects, keyed the same way the YAML
// document itself was keyed. This is the bridge between the typed decode
// result and the stringly-typed ports.ProcessorConstructor signature.
func (p ProcessorConfig) Options() map[string]any {
	opts := map[string]any{"type": strings.ToLower(p.Type)}
	switch {
	case p.Transform != nil:
		opts["template"] = p.Transform.Template
		opts["output_field"] = p.Transform.OutputField
	case p.Filter != nil:
		if p.Filter.MinConfidence != nil {
			opts["min_confidence"] = *p.Filter.MinConfidence
		}
		opts["condition"] = p.Filter.Condition
	case p.External != nil:
		opts["command"] = p.External.Command
		opts["timeout"] = p.External.Timeout
	case p.Aggregate != nil:
		opts["strategy"] = p.Aggregate.Strategy
		opts["timeout"] = p.Aggregate.Timeout
		opts["max_size"] = p.Aggregate.MaxSize
	case p.Debug != nil:
		opts["prefix"] = p.Debug.Prefix
	}
	return opts
}

// Options flattens a retry handler's decoded options for the route
// supervisor's handle-error loop.
func (o RetryHandlerOptions) Options() map[string]any {
	return map[string]any{"max_attempts": o.MaxAttempts, "delay": o.Delay}
}
