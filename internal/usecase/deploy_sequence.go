package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// SetVaultFactoryMethod is the factory method that wires in the vault factory
const SetVaultFactoryMethod = "setVaultFactory"

// SequenceResult holds everything a sequencer run produced, including on failure
type SequenceResult struct {
	Prediction  *models.Prediction
	Deployed    map[models.Component]*models.DeployedComponent
	Wiring      *models.Finalized
	Progression *models.Progression
}

// Component returns the deployed component or nil if it was never finalized
func (r *SequenceResult) Component(c models.Component) *models.DeployedComponent {
	if r == nil {
		return nil
	}
	return r.Deployed[c]
}

// Addresses returns the record updates for every finalized component
func (r *SequenceResult) Addresses() map[models.RecordKey]string {
	out := make(map[models.RecordKey]string, len(r.Deployed))
	for c, dep := range r.Deployed {
		out[c.RecordKey()] = dep.Address.Hex()
	}
	return out
}

// DeploymentSequencer deploys the protocol components one at a time, in
// dependency order, and performs the factory wiring call.
type DeploymentSequencer struct {
	chain    ChainClient
	config   *config.RuntimeConfig
	log      *slog.Logger
	progress ProgressSink
}

// NewDeploymentSequencer creates a new DeploymentSequencer
func NewDeploymentSequencer(
	chain ChainClient,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress ProgressSink,
) *DeploymentSequencer {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeploymentSequencer{
		chain:    chain,
		config:   cfg,
		log:      log.With("component", "DeploymentSequencer"),
		progress: progress,
	}
}

// Run executes the sequence. prediction must be the pool deployer prediction
// taken immediately before the call. On error the returned result still lists
// every component that was finalized; nothing is rolled back.
func (s *DeploymentSequencer) Run(ctx context.Context, prediction *models.Prediction) (*SequenceResult, error) {
	result := &SequenceResult{
		Prediction:  prediction,
		Deployed:    make(map[models.Component]*models.DeployedComponent),
		Progression: models.NewProgression(),
	}

	if prediction.Nonce != prediction.BaseNonce+PoolDeployerOffset {
		return result, fmt.Errorf("pool deployer prediction must target nonce %d, got %d",
			prediction.BaseNonce+PoolDeployerOffset, prediction.Nonce)
	}

	deployer := prediction.Deployer
	current, err := s.chain.NonceAt(ctx, deployer)
	if err != nil {
		return result, fmt.Errorf("%w: failed to resolve nonce of %s: %w", domain.ErrResolution, deployer, err)
	}
	if current != prediction.BaseNonce {
		return result, &domain.NonceDriftError{Expected: prediction.BaseNonce, Current: current}
	}

	nonce := prediction.BaseNonce

	factory, err := s.deploy(ctx, result, models.Factory, nonce, prediction.Address)
	if err != nil {
		return result, err
	}
	nonce++
	if err := result.Progression.Advance(models.StageFactoryDeployed); err != nil {
		return result, err
	}

	poolDeployer, err := s.deploy(ctx, result, models.PoolDeployer, nonce, factory.Address)
	if err != nil {
		return result, err
	}
	nonce++
	if poolDeployer.Address != prediction.Address {
		s.log.Error("pool deployer address mismatch",
			"predicted", prediction.Address.Hex(),
			"actual", poolDeployer.Address.Hex(),
			"nonce", poolDeployer.Nonce,
		)
		return result, &domain.AddressMismatchError{Predicted: prediction.Address, Actual: poolDeployer.Address}
	}
	if err := result.Progression.Advance(models.StagePoolDeployerDeployed); err != nil {
		return result, err
	}

	vault, err := s.deploy(ctx, result, models.Vault, nonce, factory.Address, deployer.Address)
	if err != nil {
		return result, err
	}
	nonce++
	if err := result.Progression.Advance(models.StageVaultDeployed); err != nil {
		return result, err
	}

	stub, err := s.deploy(ctx, result, models.VaultFactoryStub, nonce, vault.Address)
	if err != nil {
		return result, err
	}
	nonce++
	if err := result.Progression.Advance(models.StageStubDeployed); err != nil {
		return result, err
	}

	wiring, err := s.wire(ctx, factory, stub.Address, nonce)
	if err != nil {
		return result, err
	}
	result.Wiring = wiring
	if err := result.Progression.Advance(models.StageWired); err != nil {
		return result, err
	}

	return result, nil
}

// deploy submits one component and waits until its address is final
func (s *DeploymentSequencer) deploy(
	ctx context.Context,
	result *SequenceResult,
	component models.Component,
	nonce uint64,
	args ...any,
) (*models.DeployedComponent, error) {
	artifact := s.config.ArtifactFor(component)
	step := len(result.Deployed) + 1

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(component),
		Current: step,
		Total:   len(models.Components) + 1,
		Message: fmt.Sprintf("Deploying %s (nonce %d)", artifact, nonce),
		Spinner: true,
	})
	s.log.Debug("submitting deployment", "component", component, "artifact", artifact, "nonce", nonce)

	handle, err := s.chain.SubmitDeployment(ctx, DeploymentRequest{
		Artifact: artifact,
		Args:     args,
		Nonce:    nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to submit %s: %w", domain.ErrDeployment, artifact, err)
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(component),
		Current: step,
		Total:   len(models.Components) + 1,
		Message: fmt.Sprintf("Waiting for %s (%s)", artifact, shortHash(handle.Hash)),
		Spinner: true,
	})

	final, err := s.chain.AwaitFinality(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %s was not finalized: %w", domain.ErrDeployment, artifact, err)
	}

	deployed := &models.DeployedComponent{
		Component:   component,
		Artifact:    artifact,
		Args:        args,
		Nonce:       nonce,
		TxHash:      final.TxHash,
		Address:     final.Address,
		BlockNumber: final.BlockNumber,
	}
	result.Deployed[component] = deployed

	s.progress.OnProgress(ctx, ProgressEvent{Stage: string(component), Current: step, Total: len(models.Components) + 1})
	s.progress.Info(fmt.Sprintf("%s %s", component.Label(), deployed.Address.Hex()))
	s.log.Info("component deployed",
		"component", component,
		"address", deployed.Address.Hex(),
		"tx", deployed.TxHash.Hex(),
		"block", deployed.BlockNumber,
	)

	return deployed, nil
}

// wire points the factory at the vault factory stub
func (s *DeploymentSequencer) wire(
	ctx context.Context,
	factory *models.DeployedComponent,
	stub common.Address,
	nonce uint64,
) (*models.Finalized, error) {
	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   string(models.StageWired),
		Current: len(models.Components) + 1,
		Total:   len(models.Components) + 1,
		Message: fmt.Sprintf("Calling %s.%s(%s)", factory.Artifact, SetVaultFactoryMethod, stub.Hex()),
		Spinner: true,
	})

	handle, err := s.chain.SubmitCall(ctx, CallRequest{
		Artifact: factory.Artifact,
		To:       factory.Address,
		Method:   SetVaultFactoryMethod,
		Args:     []any{stub},
		Nonce:    nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to submit %s: %w", domain.ErrDeployment, SetVaultFactoryMethod, err)
	}

	final, err := s.chain.AwaitFinality(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %s was not finalized: %w", domain.ErrDeployment, SetVaultFactoryMethod, err)
	}

	s.progress.OnProgress(ctx, ProgressEvent{Stage: string(models.StageWired)})
	s.log.Info("vault factory wired", "factory", factory.Address.Hex(), "vaultFactory", stub.Hex(), "tx", final.TxHash.Hex())

	return final, nil
}

func shortHash(h common.Hash) string {
	hex := h.Hex()
	if len(hex) <= 12 {
		return hex
	}
	return hex[:10] + "…"
}
