package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dialogconfig "github.com/dialogchain-go/dialogchain/internal/config"
	"github.com/dialogchain-go/dialogchain/internal/routeconfig"
)

// endpointSummary renders an endpoint as its bare URI when declared that
// way, or scheme://host when declared as a {type, ...opts} mapping.
func endpointSummary(e routeconfig.Endpoint) string {
	if s, ok := e.String(); ok {
		return s
	}
	rec, err := e.Resolve()
	if err != nil {
		return "?"
	}
	return rec.Scheme + "://" + rec.Host
}

type routesOptions struct {
	configPath string
	cacheDir   string
}

func newRoutesCmd(root *rootFlags, app *AppContext) *cobra.Command {
	opts := &routesOptions{}

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes a configuration declares, and the connector schemes this binary supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "routes")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sources:      %s\n", strings.Join(app.ConnMgr.RegisteredSourceSchemes(), ", "))
			fmt.Fprintf(out, "destinations: %s\n", strings.Join(app.ConnMgr.RegisteredDestinationSchemes(), ", "))

			if opts.configPath == "" {
				return nil
			}

			cfg, _, err := dialogconfig.LoadRoutes(ctx, opts.configPath, opts.cacheDir, log)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			fmt.Fprintln(out, "\nroutes:")
			for _, r := range cfg.Routes {
				status := "enabled"
				if !r.Enabled {
					status = "disabled"
				}
				fmt.Fprintf(out, "  %-20s %-10s %s -> %s\n", r.Name, status, endpointSummary(r.Source), endpointSummary(r.Destination))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "route configuration location to list routes from")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "local cache directory for git-backed configurations")

	return cmd
}
