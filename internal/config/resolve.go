package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dialogchain-go/dialogchain/internal/ports"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

// LoadRoutes decodes the route configuration at location, transparently
// handling both plain file paths and `git+`-prefixed locations (spec.md
// §6 / SPEC_FULL §11). cacheDir is only used for git-backed locations.
func LoadRoutes(ctx context.Context, location, cacheDir string, logger ports.Logger) (*routeconfig.EngineConfig, []string, error) {
	if _, _, _, ok := ParseGitLocation(location); ok {
		if cacheDir == "" {
			cacheDir = filepath.Join(os.TempDir(), "dialogchaind", "git-cache")
		}
		return NewGitLoader(cacheDir, logger).LoadRoutes(ctx, location)
	}
	return DecodeRoutes(location)
}
