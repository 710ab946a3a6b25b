//go:build wireinject
// +build wireinject

package di

import (
	"SentiDash/pkg/config"
	"SentiDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCacheBackend,
		ProvideModelClient,
		ProvideResultCache,

		// Use cases
		ProvidePredictor,

		// HTTP layer
		ProvidePredictionsHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
