package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialogchain-go/dialogchain/internal/components"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			card := components.StatusCard(components.CardData{
				Title:       "dialogchaind",
				Description: "Lightweight message-routing and integration engine",
				Icon:        "🔗",
				Metadata: map[string]string{
					"Version": version,
					"Commit":  commit,
					"Built":   date,
				},
			}, "info")
			fmt.Fprintln(cmd.OutOrStdout(), card.View())
			return nil
		},
	}
}
