package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

var testDeployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

type fakeTx struct {
	label   string
	address common.Address
}

// fakeChain mines every transaction instantly and keeps an ordered log of
// submissions and finalizations
type fakeChain struct {
	deployer common.Address
	nonce    uint64

	// assign overrides the address the chain gives a creation at nonce
	assign func(nonce uint64) common.Address
	// predict overrides ComputeAddress
	predict func(nonce uint64) common.Address

	nonceErr   error
	failSubmit map[string]error
	failAwait  map[string]error
	// afterNonceRead runs after every NonceAt, to simulate a concurrent sender
	afterNonceRead func(f *fakeChain)

	events  []string
	args    map[string][]any
	calls   []usecase.CallRequest
	pending map[common.Hash]fakeTx
}

func newFakeChain(nonce uint64) *fakeChain {
	return &fakeChain{
		deployer:   testDeployer,
		nonce:      nonce,
		failSubmit: map[string]error{},
		failAwait:  map[string]error{},
		args:       map[string][]any{},
		pending:    map[common.Hash]fakeTx{},
	}
}

// sequentialAddresses makes the chain hand out 0xA1, 0xA2, ... starting at base
func sequentialAddresses(base uint64) func(uint64) common.Address {
	return func(nonce uint64) common.Address {
		return common.HexToAddress(fmt.Sprintf("0xA%d", nonce-base+1))
	}
}

func (f *fakeChain) Deployer() models.Deployer {
	return models.Deployer{Address: f.deployer}
}

func (f *fakeChain) NonceAt(ctx context.Context, deployer models.Deployer) (uint64, error) {
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	n := f.nonce
	if f.afterNonceRead != nil {
		f.afterNonceRead(f)
	}
	return n, nil
}

func (f *fakeChain) ComputeAddress(deployer models.Deployer, nonce uint64) common.Address {
	if f.predict != nil {
		return f.predict(nonce)
	}
	if f.assign != nil {
		return f.assign(nonce)
	}
	return crypto.CreateAddress(deployer.Address, nonce)
}

func (f *fakeChain) assigned(nonce uint64) common.Address {
	if f.assign != nil {
		return f.assign(nonce)
	}
	return crypto.CreateAddress(f.deployer, nonce)
}

func (f *fakeChain) SubmitDeployment(ctx context.Context, req usecase.DeploymentRequest) (*models.TxHandle, error) {
	f.events = append(f.events, "submit "+req.Artifact)
	if err := f.failSubmit[req.Artifact]; err != nil {
		return nil, err
	}
	if req.Nonce != f.nonce {
		return nil, fmt.Errorf("nonce %d rejected, account is at %d", req.Nonce, f.nonce)
	}
	f.args[req.Artifact] = req.Args

	hash := common.BigToHash(new(big.Int).SetUint64(req.Nonce + 1))
	f.pending[hash] = fakeTx{label: req.Artifact, address: f.assigned(req.Nonce)}
	f.nonce++
	return &models.TxHandle{Hash: hash, Nonce: req.Nonce, Kind: models.TxKindDeployment, Label: req.Artifact}, nil
}

func (f *fakeChain) SubmitCall(ctx context.Context, req usecase.CallRequest) (*models.TxHandle, error) {
	label := req.Artifact + "." + req.Method
	f.events = append(f.events, "submit "+label)
	if err := f.failSubmit[label]; err != nil {
		return nil, err
	}
	if req.Nonce != f.nonce {
		return nil, fmt.Errorf("nonce %d rejected, account is at %d", req.Nonce, f.nonce)
	}
	f.calls = append(f.calls, req)

	hash := common.BigToHash(new(big.Int).SetUint64(req.Nonce + 1))
	f.pending[hash] = fakeTx{label: label, address: req.To}
	f.nonce++
	return &models.TxHandle{Hash: hash, Nonce: req.Nonce, Kind: models.TxKindCall, To: req.To, Label: label}, nil
}

func (f *fakeChain) AwaitFinality(ctx context.Context, handle *models.TxHandle) (*models.Finalized, error) {
	tx, ok := f.pending[handle.Hash]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	if err := f.failAwait[tx.label]; err != nil {
		return nil, err
	}
	f.events = append(f.events, "final "+tx.label)
	return &models.Finalized{TxHash: handle.Hash, Address: tx.address, BlockNumber: handle.Nonce + 1}, nil
}

func (f *fakeChain) submitted(prefix string) int {
	n := 0
	for _, e := range f.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

var _ usecase.ChainClient = (*fakeChain)(nil)

// MockAddressRecordRepository is a mock implementation of AddressRecordRepository
type MockAddressRecordRepository struct {
	mock.Mock
}

func (m *MockAddressRecordRepository) Load(ctx context.Context) (*models.AddressRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressRecord), args.Error(1)
}

func (m *MockAddressRecordRepository) Save(ctx context.Context, record *models.AddressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAddressRecordRepository) GetPath() string {
	return "deploys.json"
}

// MockConfirmer is a mock implementation of BroadcastConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, plan *usecase.DeploymentPlan) (bool, error) {
	args := m.Called(ctx, plan)
	return args.Bool(0), args.Error(1)
}

// recordingProgress keeps every message it is sent
type recordingProgress struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (p *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.events = append(p.events, event)
}

func (p *recordingProgress) Info(message string)  { p.infos = append(p.infos, message) }
func (p *recordingProgress) Error(message string) { p.errors = append(p.errors, message) }

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		RecordPath: "deploys.json",
		Artifacts:  map[models.Component]string{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
