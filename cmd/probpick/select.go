package main

import (
	"context"
	"probpick/internal/commands"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select [tier]",
	Short: "Pick a random unsolved problem of a tier and record it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier := ""
		if len(args) == 1 {
			tier = args[0]
		}
		return runCommand(cmd, func(ctx context.Context, c commands.CommanderInterface) commands.Reply {
			return c.Select(ctx, tier)
		})
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
