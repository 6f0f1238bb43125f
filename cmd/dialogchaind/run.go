package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dialogconfig "github.com/dialogchain-go/dialogchain/internal/config"
	"github.com/dialogchain-go/dialogchain/internal/engine"
)

type runOptions struct {
	configPath string
	cacheDir   string
}

func newRunCmd(root *rootFlags, app *AppContext) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a route configuration and run it until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "run")

			cfg, missing, err := dialogconfig.LoadRoutes(ctx, opts.configPath, opts.cacheDir, log)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			for _, name := range missing {
				log.Warn(ctx, "environment variable referenced but unset", "name", name)
			}

			eng := engine.New(cfg, app.ConnMgr, app.ProcFactory,
				engine.WithLogger(log),
				engine.WithEvents(app.Events),
			)

			log.Info(ctx, "engine starting", "routes", len(eng.Routes()))
			return eng.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "route configuration location (file path or git+ URL)")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "local cache directory for git-backed configurations")
	cmd.MarkFlagRequired("config")

	return cmd
}
