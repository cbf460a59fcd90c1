package main

import (
	"context"
	"probpick/internal/commands"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the selection history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, func(ctx context.Context, c commands.CommanderInterface) commands.Reply {
			return c.Reset(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
