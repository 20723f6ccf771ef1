//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/config"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Startup loads
		ProvideModelContext,
		ProvideMarketData,
		ProvidePublisher,

		// Core services
		ProvideCache,
		ProvideForecaster,
		ProvidePredictionService,

		// HTTP surface
		ProvidePredictionHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
