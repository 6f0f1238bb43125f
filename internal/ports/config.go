package ports

import "context"

// ConfigLoader loads an engine configuration (spec.md §6) from an external
// source such as the filesystem, a git ref, or a discovered path. Grounded
// on the teacher's internal/ports/config.go contract: implementations must
// be deterministic, respect context cancellation, and translate
// infrastructure failures into dcerrors.DomainError codes:
//   - missing file → CodeConfiguration
//   - YAML/schema errors → CodeConfiguration
//   - struct-tag/cross-field validation errors → CodeValidation
//   - context cancellation → CodeCancelled
//
// Load returns a generic decoded structure; the typed decode and validation
// pass lives in internal/routeconfig, keeping the loader itself
// source-agnostic (local file, git ref, or discovered-path variants all
// satisfy this one interface).
type ConfigLoader interface {
	// Load reads and YAML-decodes the configuration at location into a
	// generic map, performing no validation beyond well-formed YAML.
	Load(ctx context.Context, location string) (map[string]any, error)

	// Validate decodes the configuration into the route-config schema and
	// runs its validation pass (struct tags, duplicate route names,
	// processor and handler options) without constructing any route. Used
	// by the CLI's validate subcommand.
	Validate(ctx context.Context, location string) error
}
