package routeconfig

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/uriconfig"
)

// Decode parses raw YAML bytes into an EngineConfig, applying
// ${VAR}/{{VAR}} environment interpolation (spec.md §4.1/§6) to every
// scalar string node before the typed decode runs, then performs the
// validation pass. Interpolation happens at the yaml.Node level (not after
// decoding into Go structs) so it applies uniformly regardless of which
// field happens to hold the reference — route name, endpoint URI, template
// string, external command, and so on.
//
// missingVars collects every referenced-but-unset environment variable
// name encountered anywhere in the document; a non-empty result does not
// by itself fail decoding (per spec.md §4.1, unset names expand to empty
// string) but callers that enforce a "required" list should inspect it.
func Decode(data []byte) (cfg *EngineConfig, missingVars []string, err error) {
	var root yaml.Node
	if unmarshalErr := yaml.Unmarshal(data, &root); unmarshalErr != nil {
		return nil, nil, dcerrors.Configuration("failed to parse YAML", unmarshalErr)
	}

	missing := map[string]struct{}{}
	interpolateNode(&root, os.LookupEnv, missing)

	cfg = &EngineConfig{}
	if decodeErr := root.Decode(cfg); decodeErr != nil {
		return nil, nil, dcerrors.Configuration("failed to decode engine config", decodeErr)
	}

	if validateErr := ValidateEngineConfig(cfg); validateErr != nil {
		return nil, missingVarSlice(missing), validateErr
	}

	return cfg, missingVarSlice(missing), nil
}

func interpolateNode(node *yaml.Node, lookup func(string) (string, bool), missing map[string]struct{}) {
	if node == nil {
		return
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		resolved, names := uriconfig.Interpolate(node.Value, lookup)
		node.Value = resolved
		for _, n := range names {
			missing[n] = struct{}{}
		}
		return
	}
	for _, child := range node.Content {
		interpolateNode(child, lookup, missing)
	}
}

func missingVarSlice(missing map[string]struct{}) []string {
	if len(missing) == 0 {
		return nil
	}
	out := make([]string, 0, len(missing))
	for n := range missing {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
