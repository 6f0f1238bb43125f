// Package config implements the ports.ConfigLoader contract of spec.md §6:
// reading an engine configuration document from a location string and
// handing back either the generic decoded form (Load) or the result of the
// typed decode and validation pass (Validate). That pass lives in
// internal/routeconfig; this package is only responsible for resolving
// "location" into bytes, the way the teacher's
// internal/infrastructure/config.YAMLLoader resolves a path into bytes
// before handing them to its own decode step.
package config

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

// FileLoader implements ports.ConfigLoader by reading a local YAML file.
type FileLoader struct {
	logger ports.Logger
}

// NewFileLoader constructs a FileLoader.
func NewFileLoader(logger ports.Logger) *FileLoader {
	return &FileLoader{logger: logger}
}

// Load reads path and YAML-decodes it into a generic map, per the
// ports.ConfigLoader contract.
func (l *FileLoader) Load(ctx context.Context, path string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, dcerrors.Cancelled(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dcerrors.Configuration("configuration file not found: "+path, err)
		}
		return nil, dcerrors.Configuration("failed to read configuration file: "+path, err)
	}

	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, dcerrors.Configuration("failed to parse YAML: "+path, err)
	}

	if l.logger != nil {
		l.logger.Debug(ctx, "loaded configuration file", "path", path)
	}
	return generic, nil
}

// Validate decodes path through the typed routeconfig schema, surfacing
// any structural or cross-field validation error the CLI's `validate`
// subcommand should report.
func (l *FileLoader) Validate(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return dcerrors.Cancelled(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dcerrors.Configuration("configuration file not found: "+path, err)
		}
		return dcerrors.Configuration("failed to read configuration file: "+path, err)
	}

	_, missing, err := routeconfig.Decode(data)
	if err != nil {
		return err
	}
	if l.logger != nil && len(missing) > 0 {
		l.logger.Warn(ctx, "configuration references unset environment variables", "vars", missing)
	}
	return nil
}

// DecodeRoutes is the loader-to-typed-schema bridge the CLI/Engine use
// once a location has been resolved to bytes, bypassing the generic-map
// round trip Load performs for ports.ConfigLoader callers that only need
// a syntax check.
func DecodeRoutes(path string) (*routeconfig.EngineConfig, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, dcerrors.Configuration("configuration file not found: "+path, err)
		}
		return nil, nil, dcerrors.Configuration("failed to read configuration file: "+path, err)
	}
	return routeconfig.Decode(data)
}

var _ ports.ConfigLoader = (*FileLoader)(nil)
