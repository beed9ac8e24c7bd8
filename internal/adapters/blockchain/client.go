package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

const (
	defaultPollInterval = 2 * time.Second
	// gasHeadroom is applied to every gas estimate, in percent
	gasHeadroom = 120
)

// Backend is the subset of ethclient.Client the chain client needs
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// Dialer opens a backend for an RPC URL
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialEthClient is the Dialer used outside of tests
func DialEthClient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Client implements usecase.ChainClient over a JSON-RPC endpoint. The
// connection is opened on first use so commands that never touch the chain
// do not need an RPC URL.
type Client struct {
	network      *config.Network
	signer       *Signer
	artifacts    usecase.ArtifactRepository
	dial         Dialer
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a chain client. signer may be nil for read-only use.
func NewClient(
	network *config.Network,
	signer *Signer,
	artifacts usecase.ArtifactRepository,
	dial Dialer,
	pollInterval time.Duration,
	log *slog.Logger,
) *Client {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if dial == nil {
		dial = DialEthClient
	}
	return &Client{
		network:      network,
		signer:       signer,
		artifacts:    artifacts,
		dial:         dial,
		pollInterval: pollInterval,
		log:          log.With("component", "ChainClient"),
	}
}

// ProvideClient builds the client from runtime configuration. A missing key
// is allowed; an unparsable one is not.
func ProvideClient(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) (*Client, error) {
	signer, err := NewSigner(cfg.PrivateKey)
	if err != nil {
		if !errors.Is(err, ErrNoSigner) {
			return nil, fmt.Errorf("failed to load deployer key: %w", err)
		}
		signer = nil
	}
	return NewClient(cfg.Network, signer, artifacts, DialEthClient, cfg.PollInterval, log), nil
}

// connect dials the RPC endpoint once and checks the chain ID
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, c.chainID, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, nil, fmt.Errorf("no RPC URL configured (use --rpc-url or ALGEBRA_RPC_URL)")
	}

	backend, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		return nil, nil, fmt.Errorf("%w: expected chain %d, RPC reports %d", domain.ErrNetworkMismatch, c.network.ChainID, chainID.Uint64())
	}

	c.log.Debug("connected", "rpc", c.network.RPCURL, "chainId", chainID.Uint64())
	c.backend = backend
	c.chainID = chainID
	return backend, chainID, nil
}

// Deployer returns the signer's account, or the zero address when no key is configured
func (c *Client) Deployer() models.Deployer {
	if c.signer == nil {
		return models.Deployer{}
	}
	return models.Deployer{Address: c.signer.Address()}
}

// ChainID returns the connected chain ID
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// NonceAt returns the nonce the deployer's next transaction will consume
func (c *Client) NonceAt(ctx context.Context, deployer models.Deployer) (uint64, error) {
	if deployer.Address == (common.Address{}) {
		return 0, ErrNoSigner
	}
	backend, _, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	nonce, err := backend.PendingNonceAt(ctx, deployer.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce: %w", err)
	}
	return nonce, nil
}

// ComputeAddress derives the CREATE address for deployer at nonce
func (c *Client) ComputeAddress(deployer models.Deployer, nonce uint64) common.Address {
	return crypto.CreateAddress(deployer.Address, nonce)
}

// SubmitDeployment signs and broadcasts a contract creation at req.Nonce
func (c *Client) SubmitDeployment(ctx context.Context, req usecase.DeploymentRequest) (*models.TxHandle, error) {
	artifact, err := c.artifacts.GetArtifact(ctx, req.Artifact)
	if err != nil {
		return nil, err
	}
	data, err := artifact.CreationCode(req.Args...)
	if err != nil {
		return nil, err
	}

	hash, err := c.send(ctx, req.Nonce, nil, data)
	if err != nil {
		return nil, err
	}
	return &models.TxHandle{
		Hash:  hash,
		Nonce: req.Nonce,
		Kind:  models.TxKindDeployment,
		Label: req.Artifact,
	}, nil
}

// SubmitCall signs and broadcasts a method call at req.Nonce
func (c *Client) SubmitCall(ctx context.Context, req usecase.CallRequest) (*models.TxHandle, error) {
	artifact, err := c.artifacts.GetArtifact(ctx, req.Artifact)
	if err != nil {
		return nil, err
	}
	data, err := artifact.CallData(req.Method, req.Args...)
	if err != nil {
		return nil, err
	}

	to := req.To
	hash, err := c.send(ctx, req.Nonce, &to, data)
	if err != nil {
		return nil, err
	}
	return &models.TxHandle{
		Hash:  hash,
		Nonce: req.Nonce,
		Kind:  models.TxKindCall,
		To:    to,
		Label: req.Artifact + "." + req.Method,
	}, nil
}

// AwaitFinality polls for the receipt until it is available or ctx is done
func (c *Client) AwaitFinality(ctx context.Context, handle *models.TxHandle) (*models.Finalized, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, handle.Hash)
		if err == nil && receipt != nil {
			return c.finalized(handle, receipt)
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", handle.Hash.Hex(), err)
		}

		c.log.Debug("waiting for receipt", "tx", handle.Hash.Hex(), "label", handle.Label)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) finalized(handle *models.TxHandle, receipt *types.Receipt) (*models.Finalized, error) {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrReverted, handle.Label, handle.Hash.Hex())
	}

	final := &models.Finalized{
		TxHash:  receipt.TxHash,
		GasUsed: receipt.GasUsed,
		Address: handle.To,
	}
	if receipt.BlockNumber != nil {
		final.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if handle.Kind == models.TxKindDeployment {
		final.Address = receipt.ContractAddress
	}
	return final, nil
}

// send builds, signs and broadcasts a transaction with an explicit nonce
func (c *Client) send(ctx context.Context, nonce uint64, to *common.Address, data []byte) (common.Hash, error) {
	if c.signer == nil {
		return common.Hash{}, ErrNoSigner
	}
	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	from := c.signer.Address()
	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: to, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = gas * gasHeadroom / 100

	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get latest header: %w", err)
	}

	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := backend.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        to,
			Data:      data,
		})
	} else {
		price, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: price,
			Gas:      gas,
			To:       to,
			Data:     data,
		})
	}

	signed, err := c.signer.Sign(tx, chainID)
	if err != nil {
		return common.Hash{}, err
	}
	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}

	c.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "nonce", nonce, "gas", gas)
	return signed.Hash(), nil
}

// Ensure Client implements ChainClient
var _ usecase.ChainClient = (*Client)(nil)
