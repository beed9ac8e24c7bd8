package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// ChainClient submits transactions for a single deployer account.
// Every submission names the nonce it must consume; the client never picks one.
type ChainClient interface {
	// Deployer returns the identity the client signs for
	Deployer() models.Deployer
	// NonceAt resolves the next nonce the deployer will use
	NonceAt(ctx context.Context, deployer models.Deployer) (uint64, error)
	// ComputeAddress derives the address a creation at nonce receives
	ComputeAddress(deployer models.Deployer, nonce uint64) common.Address
	// SubmitDeployment broadcasts a contract creation
	SubmitDeployment(ctx context.Context, req DeploymentRequest) (*models.TxHandle, error)
	// AwaitFinality blocks until the transaction is mined successfully
	AwaitFinality(ctx context.Context, handle *models.TxHandle) (*models.Finalized, error)
	// SubmitCall broadcasts a call to a deployed contract
	SubmitCall(ctx context.Context, req CallRequest) (*models.TxHandle, error)
}

// DeploymentRequest describes a contract creation
type DeploymentRequest struct {
	Artifact string
	Args     []any
	Nonce    uint64
}

// CallRequest describes a state-changing call. Artifact names the ABI used
// to encode Method.
type CallRequest struct {
	Artifact string
	To       common.Address
	Method   string
	Args     []any
	Nonce    uint64
}

// AddressRecordRepository persists the address record
type AddressRecordRepository interface {
	Load(ctx context.Context) (*models.AddressRecord, error)
	Save(ctx context.Context, record *models.AddressRecord) error
	GetPath() string
}

// CodeChecker inspects deployed bytecode
type CodeChecker interface {
	// CheckDeploymentExists reports whether code exists at address. A
	// non-empty reason explains a negative answer.
	CheckDeploymentExists(ctx context.Context, address common.Address) (exists bool, reason string, err error)
}

// ArtifactRepository looks up compiled contracts by name
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ContractCompiler produces artifacts before a deployment
type ContractCompiler interface {
	Compile(ctx context.Context) error
}

// BroadcastConfirmer asks the operator before any transaction is sent
type BroadcastConfirmer interface {
	Confirm(ctx context.Context, plan *DeploymentPlan) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
