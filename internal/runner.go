package internal

import (
	"probpick/internal/commands"
	"probpick/internal/providers"
)

// Runner executes single commands from the command line without the HTTP server.
type Runner struct {
	Commander commands.CommanderInterface
	logger    providers.Logger
}

func NewRunner(commander commands.CommanderInterface, logger providers.Logger) *Runner {
	return &Runner{
		Commander: commander,
		logger:    logger,
	}
}

func (r *Runner) Close() {
	r.logger.Close()
}
