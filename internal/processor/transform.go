package processor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/message"
	"github.com/dialogchain-go/dialogchain/internal/ports"
)

// templatePattern matches spec.md §4.3.1's `{name}` substitution grammar.
var templatePattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// transformProcessor renders a template against the message's fields,
// grounded on original_source/engine/utils.py::format_template.
type transformProcessor struct {
	template    string
	outputField string
}

// NewTransform builds the Transform processor (spec.md §4.3.1).
func NewTransform(opts map[string]any) (ports.Processor, error) {
	template, _ := opts["template"].(string)
	if template == "" {
		return nil, dcerrors.Configuration("transform processor requires a template", nil)
	}
	outputField, _ := opts["output_field"].(string)

	return &transformProcessor{template: template, outputField: outputField}, nil
}

func (t *transformProcessor) Process(_ context.Context, msg message.Message) (message.Result, error) {
	fields := msg.Fields()
	rendered := templatePattern.ReplaceAllStringFunc(t.template, func(match string) string {
		name := match[1 : len(match)-1]
		v, ok := fields[name]
		if !ok {
			return ""
		}
		return fmt.Sprintf("%v", v)
	})

	if t.outputField == "" {
		return message.Keep(msg.WithBody(rendered)), nil
	}

	// Preserve original fields: write the rendered value alongside them
	// rather than replacing the whole body.
	body, ok := msg.Body.(map[string]any)
	merged := make(map[string]any, len(body)+1)
	if ok {
		for k, v := range body {
			merged[k] = v
		}
	} else if msg.Body != nil {
		merged["body"] = msg.Body
	}
	merged[t.outputField] = rendered

	return message.Keep(msg.WithBody(merged)), nil
}
