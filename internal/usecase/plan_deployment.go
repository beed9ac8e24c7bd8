package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// PlannedStep is one transaction of a deployment plan
type PlannedStep struct {
	Component models.Component // empty for the wiring call
	Artifact  string
	Method    string // constructor or method name
	Nonce     uint64
	Address   common.Address // predicted creation address, or call target
	Args      []string
}

// DeploymentPlan lists every transaction a deploy run would send
type DeploymentPlan struct {
	Deployer   models.Deployer
	Network    *config.Network
	BaseNonce  uint64
	Steps      []PlannedStep
	RecordPath string
}

// PoolDeployer returns the predicted pool deployer address
func (p *DeploymentPlan) PoolDeployer() common.Address {
	for _, step := range p.Steps {
		if step.Component == models.PoolDeployer {
			return step.Address
		}
	}
	return common.Address{}
}

// PlanDeployment predicts the full deployment without sending anything
type PlanDeployment struct {
	predictor *AddressPredictor
	chain     ChainClient
	records   AddressRecordRepository
	config    *config.RuntimeConfig
}

// NewPlanDeployment creates a new PlanDeployment use case
func NewPlanDeployment(
	predictor *AddressPredictor,
	chain ChainClient,
	records AddressRecordRepository,
	cfg *config.RuntimeConfig,
) *PlanDeployment {
	return &PlanDeployment{
		predictor: predictor,
		chain:     chain,
		records:   records,
		config:    cfg,
	}
}

// Run builds the plan for the client's deployer
func (uc *PlanDeployment) Run(ctx context.Context) (*DeploymentPlan, error) {
	deployer := uc.chain.Deployer()

	predictions, err := uc.predictor.PredictSeries(ctx, deployer, len(models.Components))
	if err != nil {
		return nil, err
	}

	addr := func(c models.Component) common.Address {
		for i, comp := range models.Components {
			if comp == c {
				return predictions[i].Address
			}
		}
		return common.Address{}
	}

	base := predictions[0].BaseNonce
	factory := addr(models.Factory)
	vault := addr(models.Vault)
	stub := addr(models.VaultFactoryStub)

	steps := []PlannedStep{
		uc.creation(models.Factory, predictions[0], addr(models.PoolDeployer)),
		uc.creation(models.PoolDeployer, predictions[1], factory),
		uc.creation(models.Vault, predictions[2], factory, deployer.Address),
		uc.creation(models.VaultFactoryStub, predictions[3], vault),
		{
			Artifact: uc.config.ArtifactFor(models.Factory),
			Method:   SetVaultFactoryMethod,
			Nonce:    base + uint64(len(models.Components)),
			Address:  factory,
			Args:     []string{stub.Hex()},
		},
	}

	return &DeploymentPlan{
		Deployer:   deployer,
		Network:    uc.config.Network,
		BaseNonce:  base,
		Steps:      steps,
		RecordPath: uc.records.GetPath(),
	}, nil
}

func (uc *PlanDeployment) creation(c models.Component, p *models.Prediction, args ...common.Address) PlannedStep {
	strArgs := make([]string, len(args))
	for i, a := range args {
		strArgs[i] = a.Hex()
	}
	return PlannedStep{
		Component: c,
		Artifact:  uc.config.ArtifactFor(c),
		Method:    "constructor",
		Nonce:     p.Nonce,
		Address:   p.Address,
		Args:      strArgs,
	}
}

// PredictAddressParams contains parameters for a single prediction
type PredictAddressParams struct {
	Offset uint64
}

// PredictAddress is the use case behind the predict command
type PredictAddress struct {
	predictor *AddressPredictor
	chain     ChainClient
}

// NewPredictAddress creates a new PredictAddress use case
func NewPredictAddress(predictor *AddressPredictor, chain ChainClient) *PredictAddress {
	return &PredictAddress{predictor: predictor, chain: chain}
}

// Run predicts the address of the deployment params.Offset transactions from now
func (uc *PredictAddress) Run(ctx context.Context, params PredictAddressParams) (*models.Prediction, error) {
	prediction, err := uc.predictor.Predict(ctx, uc.chain.Deployer(), params.Offset)
	if err != nil {
		return nil, fmt.Errorf("address prediction failed: %w", err)
	}
	return prediction, nil
}
