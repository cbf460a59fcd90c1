package main

import (
	"context"
	"fmt"
	"probpick/internal/commands"
	"strconv"

	"github.com/spf13/cobra"
)

var archivesCmd = &cobra.Command{
	Use:   "archives [n]",
	Short: "List histories archived by reset, or show the n-th newest one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("archive number must be a number: %w", err)
			}
			index = n
		}
		return runCommand(cmd, func(ctx context.Context, c commands.CommanderInterface) commands.Reply {
			return c.Archives(ctx, index)
		})
	},
}

func init() {
	rootCmd.AddCommand(archivesCmd)
}
