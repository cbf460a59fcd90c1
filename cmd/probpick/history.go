package main

import (
	"context"
	"fmt"
	"probpick/internal/commands"
	"strconv"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [count]",
	Short: fmt.Sprintf("List the most recently selected problems (default %d, at most %d)", commands.DefaultHistoryCount, commands.MaxHistoryCount),
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}
			count = n
		}
		return runCommand(cmd, func(ctx context.Context, c commands.CommanderInterface) commands.Reply {
			return c.History(ctx, count)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
