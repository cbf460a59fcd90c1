//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"probpick/internal"
	"probpick/internal/catalog"
	"probpick/internal/commands"
	"probpick/internal/controllers"
	"probpick/internal/history"
	"probpick/internal/history/interfaces"
	"probpick/internal/providers"
	"probpick/internal/scheduler"
	"probpick/internal/services"
	"probpick/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	providers.NewInputValidator,

	catalog.NewClient,
	catalog.NewQueryBuilder,
	history.NewConfiguredArchiver,
	wire.Bind(new(interfaces.ArchiveReaderInterface), new(*history.Archiver)),
	history.NewStore,
	services.NewSelectionService,
	services.NewStatsService,
	commands.NewCommander,
	wire.Bind(new(commands.CommanderInterface), new(*commands.Commander)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		coreSet,
		controllers.NewCommandController,
		controllers.NewHealthController,
		internal.InitRoutes,
		scheduler.NewScheduler,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitRunner(cfg *structures.CliFlags) (*internal.Runner, func(), error) {

	wire.Build(
		coreSet,
		internal.NewRunner,
	)

	return nil, nil, nil
}
