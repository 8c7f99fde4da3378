package fx

import (
	"database/sql"

	"go.uber.org/fx"

	"wrestling-stats/internal/api"
	"wrestling-stats/internal/config"
	"wrestling-stats/internal/database"
	"wrestling-stats/internal/db"
	"wrestling-stats/internal/logger"
	"wrestling-stats/internal/repository"
	"wrestling-stats/internal/server"
	"wrestling-stats/internal/service"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Invoke(logger.ApplyLevel),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewMatchRepository, fx.As(new(repository.MatchReader))),
		fx.Annotate(repository.NewParticipationRepository, fx.As(new(repository.ParticipationReader))),
		fx.Annotate(repository.NewPerformerRepository, fx.As(new(repository.PerformerReader))),
		fx.Annotate(repository.NewShowRepository, fx.As(new(repository.ShowReader))),
		fx.Annotate(repository.NewStatsRepository, fx.As(new(repository.StatsReader))),
	),
	// api client
	fx.Provide(fx.Annotate(api.NewWebhookClient, fx.As(new(service.Notifier)))),
	// svc
	fx.Provide(service.NewClock),
	fx.Provide(service.NewMatchFilterService),
	fx.Provide(service.NewSearchService),
	fx.Provide(service.NewDailyPickService),
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewRevalidationService),
	// server
	fx.Provide(server.NewStatsServer),
	fx.Provide(server.NewRouter),
)
