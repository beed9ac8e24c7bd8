package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Component identifies one of the contracts the protocol deployment produces
type Component string

const (
	Factory          Component = "Factory"
	PoolDeployer     Component = "PoolDeployer"
	Vault            Component = "Vault"
	VaultFactoryStub Component = "VaultFactoryStub"
)

// Components lists every component in deployment order
var Components = []Component{Factory, PoolDeployer, Vault, VaultFactoryStub}

// RecordKey is a key the deployment owns in the address record
type RecordKey string

const (
	RecordKeyPoolDeployer RecordKey = "poolDeployer"
	RecordKeyFactory      RecordKey = "factory"
	RecordKeyVault        RecordKey = "vault"
	RecordKeyVaultFactory RecordKey = "vaultFactory"
)

// RecordKeys lists the keys a deployment run writes
var RecordKeys = []RecordKey{RecordKeyPoolDeployer, RecordKeyFactory, RecordKeyVault, RecordKeyVaultFactory}

// IsRecordKey reports whether key is owned by the deployment
func IsRecordKey(key string) bool {
	for _, k := range RecordKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

// RecordKey returns the address record key for the component
func (c Component) RecordKey() RecordKey {
	switch c {
	case Factory:
		return RecordKeyFactory
	case PoolDeployer:
		return RecordKeyPoolDeployer
	case Vault:
		return RecordKeyVault
	case VaultFactoryStub:
		return RecordKeyVaultFactory
	default:
		panic(fmt.Sprintf("unknown component %q", string(c)))
	}
}

// DefaultArtifact returns the compiled contract name used when no override is configured
func (c Component) DefaultArtifact() string {
	switch c {
	case Factory:
		return "AlgebraFactory"
	case PoolDeployer:
		return "AlgebraPoolDeployer"
	case Vault:
		return "AlgebraCommunityVault"
	case VaultFactoryStub:
		return "AlgebraVaultFactoryStub"
	default:
		return string(c)
	}
}

// Label is the human readable line prefix printed once the component is deployed
func (c Component) Label() string {
	if c == PoolDeployer {
		return "AlgebraPoolDeployer to:"
	}
	return c.DefaultArtifact() + " deployed to:"
}

// Deployer is the account submitting every deployment of a run
type Deployer struct {
	Address common.Address
}

func (d Deployer) String() string {
	return d.Address.Hex()
}

// Prediction is the address a deployment will receive if it consumes Nonce.
// Nonce is always BaseNonce + Offset.
type Prediction struct {
	Deployer  Deployer
	BaseNonce uint64
	Offset    uint64
	Nonce     uint64
	Address   common.Address
}

// DeployedComponent carries a finalized component address to later stages
type DeployedComponent struct {
	Component   Component
	Artifact    string
	Args        []any
	Nonce       uint64
	TxHash      common.Hash
	Address     common.Address
	BlockNumber uint64
}
