package main

import (
	"context"
	"probpick/internal/commands"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many selected problems each tracked user has solved",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, func(ctx context.Context, c commands.CommanderInterface) commands.Reply {
			return c.Stats(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
