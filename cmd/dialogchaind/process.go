package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	dialogconfig "github.com/dialogchain-go/dialogchain/internal/config"
	"github.com/dialogchain-go/dialogchain/internal/engine"
)

type processOptions struct {
	configPath string
	cacheDir   string
	route      string
	payload    string
}

// newProcessCmd drives a single message through one named route's
// processor chain and sends the result to its destination, without
// starting the route or receiving from its source, for scripted or test
// ingress per SPEC_FULL §11 (backed by Engine.ProcessMessage).
func newProcessCmd(root *rootFlags, app *AppContext) *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Send a single JSON payload through one configured route and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, log := app.CommandContext(cmd, "process")

			cfg, _, err := dialogconfig.LoadRoutes(ctx, opts.configPath, opts.cacheDir, log)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			var payload any
			if err := json.Unmarshal([]byte(opts.payload), &payload); err != nil {
				return fmt.Errorf("parse --payload as JSON: %w", err)
			}

			eng := engine.New(cfg, app.ConnMgr, app.ProcFactory, engine.WithLogger(log), engine.WithEvents(app.Events))

			result, err := eng.ProcessMessage(ctx, opts.route, payload)
			if err != nil {
				return err
			}
			if result.Dropped {
				fmt.Fprintln(cmd.OutOrStdout(), "message dropped")
				return nil
			}

			out, err := json.MarshalIndent(result.Message.Fields(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "route configuration location")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "local cache directory for git-backed configurations")
	cmd.Flags().StringVarP(&opts.route, "route", "r", "", "name of the route to process the message through")
	cmd.Flags().StringVarP(&opts.payload, "payload", "p", "{}", "JSON message body")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("route")

	return cmd
}
