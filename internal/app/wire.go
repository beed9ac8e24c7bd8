//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/spirit-dao/algebra-deploy/internal/adapters"
	"github.com/spirit-dao/algebra-deploy/internal/adapters/interactive"
	"github.com/spirit-dao/algebra-deploy/internal/cli/render"
	"github.com/spirit-dao/algebra-deploy/internal/config"
	"github.com/spirit-dao/algebra-deploy/internal/logging"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Renderers
		render.ProvideDeployRenderer,
		wire.Bind(new(interactive.PlanPrinter), new(*render.DeployRenderer)),

		// Use cases
		usecase.NewAddressPredictor,
		usecase.NewDeploymentSequencer,
		usecase.NewPlanDeployment,
		usecase.NewPredictAddress,
		usecase.NewShowAddresses,
		usecase.NewVerifyAddresses,
		usecase.NewDeployProtocol,

		// App
		NewApp,
	)
	return nil, nil
}
