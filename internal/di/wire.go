//go:build wireinject
// +build wireinject

package di

import (
	"RetailPrice/pkg/config"
	"RetailPrice/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Artifacts and cache
		ProvideArtifacts,
		ProvideCache,

		// Use cases
		ProvidePricePredictor,

		// Transport
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
