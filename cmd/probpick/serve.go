package main

import (
	"probpick/internal/di"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the command API, health probe and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := di.InitApp(&flags)
		if err != nil {
			return err
		}
		defer app.Close()
		defer cleanup()

		return app.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
