package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dialogconfig "github.com/dialogchain-go/dialogchain/internal/config"
)

type validateOptions struct {
	configPath string
	cacheDir   string
	scan       string
	recursive  bool
	pattern    string
}

func newValidateCmd(root *rootFlags, app *AppContext) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a route configuration, or discover and validate every configuration under a directory/URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "validate")

			if opts.scan == "" {
				if opts.configPath == "" {
					return fmt.Errorf("one of --config or --scan is required")
				}
				_, _, err := dialogconfig.LoadRoutes(ctx, opts.configPath, opts.cacheDir, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", opts.configPath)
				return nil
			}

			scanner := dialogconfig.NewFileScanner(opts.scan, opts.pattern, opts.recursive)
			locations, err := scanner.Scan(ctx)
			if err != nil {
				return fmt.Errorf("scan %s: %w", opts.scan, err)
			}

			var failed int
			for _, loc := range locations {
				if _, _, err := dialogconfig.LoadRoutes(ctx, loc, opts.cacheDir, log); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED: %v\n", loc, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", loc)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d configurations failed validation", failed, len(locations))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "route configuration location to validate")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "local cache directory for git-backed configurations")
	cmd.Flags().StringVar(&opts.scan, "scan", "", "directory to discover configurations in instead of validating a single --config")
	cmd.Flags().BoolVar(&opts.recursive, "recursive", false, "recurse into subdirectories when --scan is a directory")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "*.yaml", "glob pattern used when --scan is a directory")

	return cmd
}
