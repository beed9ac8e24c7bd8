package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// TxKind distinguishes contract creations from calls
type TxKind string

const (
	TxKindDeployment TxKind = "DEPLOYMENT"
	TxKindCall       TxKind = "CALL"
)

// TxHandle references a submitted transaction awaiting finality
type TxHandle struct {
	Hash  common.Hash
	Nonce uint64
	Kind  TxKind
	// To is the call target; zero for deployments
	To common.Address
	// Label is a short description used in progress output
	Label string
}

// Finalized is the observed outcome of a transaction that reached finality.
// Address is the created contract for deployments and the target for calls.
type Finalized struct {
	TxHash      common.Hash
	Address     common.Address
	BlockNumber uint64
	GasUsed     uint64
}
