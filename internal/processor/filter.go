package processor

import (
	"context"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// filterProcessor drops messages that don't meet a confidence threshold or
// a boolean condition, grounded on original_source/processors/filter.py.
// The condition is compiled and run with github.com/expr-lang/expr per
// SPEC_FULL §11/§13: expr's VM has no access to Go reflection, the
// filesystem, or network I/O from within an expression, satisfying
// spec.md §4.3.2's "must NOT expose any host facility" requirement — a
// plain text/template or a hand-rolled evaluator would either not support
// boolean expressions at all or would need its own sandboxing work expr
// already does.
type filterProcessor struct {
	minConfidence *float64
	program       *vm.Program
}

// NewFilter builds the Filter processor (spec.md §4.3.2).
func NewFilter(opts map[string]any) (ports.Processor, error) {
	f := &filterProcessor{}

	if raw, ok := opts["min_confidence"]; ok {
		v, ok := toFloat(raw)
		if !ok {
			return nil, dcerrors.Configuration("filter min_confidence must be a number", nil)
		}
		f.minConfidence = &v
	}

	condition, _ := opts["condition"].(string)
	if condition != "" {
		program, err := expr.Compile(condition, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, dcerrors.Configuration("invalid filter condition", err)
		}
		f.program = program
	}

	if f.minConfidence == nil && f.program == nil {
		return nil, dcerrors.Configuration("filter processor requires min_confidence or condition", nil)
	}

	return f, nil
}

func (f *filterProcessor) Process(_ context.Context, msg message.Message) (message.Result, error) {
	if f.minConfidence != nil {
		conf, ok := msg.Field("confidence")
		if !ok {
			return message.Dropped(), nil
		}
		v, ok := toFloat(conf)
		if !ok || v < *f.minConfidence {
			return message.Dropped(), nil
		}
	}

	if f.program != nil {
		env := scalarFields(msg)
		out, err := expr.Run(f.program, env)
		if err != nil {
			return message.Dropped(), nil
		}
		keep, ok := out.(bool)
		if !ok || !keep {
			return message.Dropped(), nil
		}
	}

	return message.Keep(msg), nil
}

// scalarFields restricts the expression environment to scalar message
// fields (numbers, strings, booleans, nil) per spec.md §4.3.2.
func scalarFields(msg message.Message) map[string]any {
	env := make(map[string]any)
	for k, v := range msg.Fields() {
		switch v.(type) {
		case string, bool, nil, int, int32, int64, float32, float64:
			env[k] = v
		}
	}
	return env
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
