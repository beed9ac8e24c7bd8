package app

import (
	"github.com/spirit-dao/algebra-deploy/internal/cli/render"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployProtocol  *usecase.DeployProtocol
	PlanDeployment  *usecase.PlanDeployment
	PredictAddress  *usecase.PredictAddress
	ShowAddresses   *usecase.ShowAddresses
	VerifyAddresses *usecase.VerifyAddresses

	// Renderers
	DeployRenderer *render.DeployRenderer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployProtocol *usecase.DeployProtocol,
	planDeployment *usecase.PlanDeployment,
	predictAddress *usecase.PredictAddress,
	showAddresses *usecase.ShowAddresses,
	verifyAddresses *usecase.VerifyAddresses,
	deployRenderer *render.DeployRenderer,
) (*App, error) {
	return &App{
		Config:          cfg,
		DeployProtocol:  deployProtocol,
		PlanDeployment:  planDeployment,
		PredictAddress:  predictAddress,
		ShowAddresses:   showAddresses,
		VerifyAddresses: verifyAddresses,
		DeployRenderer:  deployRenderer,
	}, nil
}
