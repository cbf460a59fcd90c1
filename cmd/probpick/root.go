package main

import (
	"context"
	"fmt"
	"os"
	"probpick/internal/commands"
	"probpick/internal/di"
	"probpick/internal/structures"

	"github.com/spf13/cobra"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "probpick",
	Short: "Pick random competitive-programming problems nobody in the group has solved",
	Long: `probpick queries the problem catalog for a difficulty tier, skips problems
solved by the configured users and problems picked before, and records each pick.
Run "probpick serve" for the HTTP command API or use the one-shot commands.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stderr")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCommand builds the command runner, executes fn and prints its reply.
func runCommand(cmd *cobra.Command, fn func(ctx context.Context, c commands.CommanderInterface) commands.Reply) error {
	runner, cleanup, err := di.InitRunner(&flags)
	if err != nil {
		return err
	}
	defer runner.Close()
	defer cleanup()

	reply := fn(cmd.Context(), runner.Commander)
	fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
	if !reply.OK {
		return fmt.Errorf("command failed")
	}
	return nil
}
