//go:build wireinject
// +build wireinject

package di

import (
	"github.com/customD73/picker2/pkg/config"
	"github.com/customD73/picker2/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSchedulers,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideStorage,
		ProvidePublisher,
		ProvideStatsProvider,
		ProvideWeatherProvider,

		// Use cases
		ProvideCollector,
		ProvidePredictor,
		ProvideProcessor,
		ProvidePipeline,

		// HTTP surface
		ProvideHub,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
