package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for deployment operations
var (
	// ErrResolution is returned when the chain client cannot answer identity or nonce queries
	ErrResolution = errors.New("resolution failed")

	// ErrDeployment is returned when a deployment or call cannot be submitted or finalized
	ErrDeployment = errors.New("deployment failed")

	// ErrReverted is returned when a finalized transaction has a failed status
	ErrReverted = errors.New("transaction reverted")

	// ErrAddressMismatch is returned when a deployment lands on a different address than predicted
	ErrAddressMismatch = errors.New("address mismatch")

	// ErrNonceDrift is returned when the deployer nonce moved between prediction and submission
	ErrNonceDrift = errors.New("deployer nonce drifted")

	// ErrRecordNotFound is returned when the address record file does not exist
	ErrRecordNotFound = errors.New("address record not found")

	// ErrRecordMalformed is returned when the address record is not a JSON object
	ErrRecordMalformed = errors.New("address record malformed")

	// ErrRecordIO is returned when the address record cannot be read or written
	ErrRecordIO = errors.New("address record i/o failed")

	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidTransition is returned when a deployment stage is skipped or repeated
	ErrInvalidTransition = errors.New("invalid stage transition")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the RPC endpoint reports an unexpected chain ID
	ErrNetworkMismatch = errors.New("network mismatch")
)

// AddressMismatchError reports that the pool deployer was not deployed at the
// address baked into the factory constructor.
type AddressMismatchError struct {
	Predicted common.Address
	Actual    common.Address
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("pool deployer landed at %s but factory was constructed with %s", e.Actual.Hex(), e.Predicted.Hex())
}

func (e *AddressMismatchError) Is(target error) bool {
	return target == ErrAddressMismatch
}

// NonceDriftError reports that another transaction consumed a nonce the run depends on.
type NonceDriftError struct {
	Expected uint64
	Current  uint64
}

func (e *NonceDriftError) Error() string {
	return fmt.Sprintf("expected deployer nonce %d, chain reports %d", e.Expected, e.Current)
}

func (e *NonceDriftError) Is(target error) bool {
	return target == ErrNonceDrift
}
