package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// DeployProtocolParams contains parameters for a deployment run
type DeployProtocolParams struct {
	// SkipConfirmation broadcasts without asking the operator
	SkipConfirmation bool
}

// DeployProtocolResult contains the outcome of a deployment run. It is
// returned even when the run fails so callers can report partial progress.
type DeployProtocolResult struct {
	Deployer   models.Deployer
	Plan       *DeploymentPlan
	Sequence   *SequenceResult
	Record     *models.AddressRecord
	RecordPath string
	Cancelled  bool
}

// Stage returns the furthest stage the run reached
func (r *DeployProtocolResult) Stage() models.Stage {
	if r == nil || r.Sequence == nil {
		return models.StageIdle
	}
	return r.Sequence.Progression.Current()
}

// DeployProtocol drives prediction, the deployment sequence and persistence
type DeployProtocol struct {
	chain     ChainClient
	predictor *AddressPredictor
	sequencer *DeploymentSequencer
	planner   *PlanDeployment
	records   AddressRecordRepository
	compiler  ContractCompiler
	confirmer BroadcastConfirmer
	config    *config.RuntimeConfig
	log       *slog.Logger
	progress  ProgressSink
}

// NewDeployProtocol creates a new DeployProtocol use case
func NewDeployProtocol(
	chain ChainClient,
	predictor *AddressPredictor,
	sequencer *DeploymentSequencer,
	planner *PlanDeployment,
	records AddressRecordRepository,
	compiler ContractCompiler,
	confirmer BroadcastConfirmer,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress ProgressSink,
) *DeployProtocol {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployProtocol{
		chain:     chain,
		predictor: predictor,
		sequencer: sequencer,
		planner:   planner,
		records:   records,
		compiler:  compiler,
		confirmer: confirmer,
		config:    cfg,
		log:       log.With("component", "DeployProtocol"),
		progress:  progress,
	}
}

// Run executes the deployment
func (uc *DeployProtocol) Run(ctx context.Context, params DeployProtocolParams) (*DeployProtocolResult, error) {
	result := &DeployProtocolResult{
		Deployer:   uc.chain.Deployer(),
		RecordPath: uc.records.GetPath(),
	}

	if uc.config.Build && uc.compiler != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "build", Message: "Compiling contracts", Spinner: true})
		if err := uc.compiler.Compile(ctx); err != nil {
			return result, fmt.Errorf("failed to compile contracts: %w", err)
		}
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "build"})
	}

	// The record must exist before anything is spent on gas.
	record, err := uc.records.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load address record: %w", err)
	}
	result.Record = record

	if !params.SkipConfirmation && uc.confirmer != nil {
		plan, err := uc.planner.Run(ctx)
		if err != nil {
			return result, err
		}
		result.Plan = plan

		ok, err := uc.confirmer.Confirm(ctx, plan)
		if err != nil {
			return result, err
		}
		if !ok {
			result.Cancelled = true
			return result, nil
		}
	}

	prediction, err := uc.predictor.Predict(ctx, result.Deployer, PoolDeployerOffset)
	if err != nil {
		return result, err
	}
	uc.log.Info("predicted pool deployer address",
		"deployer", result.Deployer.String(),
		"nonce", prediction.Nonce,
		"address", prediction.Address.Hex(),
	)
	if result.Plan != nil && result.Plan.PoolDeployer() != prediction.Address {
		return result, &domain.NonceDriftError{Expected: result.Plan.BaseNonce, Current: prediction.BaseNonce}
	}

	sequence, err := uc.sequencer.Run(ctx, prediction)
	result.Sequence = sequence
	if err != nil {
		return result, err
	}

	record.Merge(sequence.Addresses())
	if err := uc.records.Save(ctx, record); err != nil {
		uc.log.Error("deployment finished but address record was not written",
			"path", result.RecordPath,
			"addresses", sequence.Addresses(),
		)
		return result, fmt.Errorf("failed to save address record: %w", err)
	}

	if err := sequence.Progression.Advance(models.StagePersisted); err != nil {
		return result, err
	}
	uc.log.Info("address record updated", "path", result.RecordPath, "keys", record.Len())

	return result, nil
}
