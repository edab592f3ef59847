//go:build wireinject
// +build wireinject

package di

import (
	"MacroSim/pkg/config"
	"MacroSim/pkg/server"

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
		ProvideClickHouseClient,
		ProvideCache,

		// Repositories
		ProvideMasterStore,
		ProvideModelStore,

		// Serving context
		ProvideModelSet,
		ProvideLagState,
		ProvideBounds,
		ProvidePredictor,

		// Use cases
		ProvideForecaster,

		// HTTP surface
		ProvideForecastHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
