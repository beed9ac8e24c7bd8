package blockchain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNoSigner is returned when a transaction must be signed but no key is configured
var ErrNoSigner = errors.New("no deployer private key configured (set ALGEBRA_PRIVATE_KEY)")

// Signer holds the deployer key
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex encoded private key, with or without 0x prefix
func NewSigner(privateKeyHex string) (*Signer, error) {
	privateKeyHex = strings.TrimSpace(privateKeyHex)
	if privateKeyHex == "" {
		return nil, ErrNoSigner
	}
	if !strings.HasPrefix(privateKeyHex, "0x") {
		privateKeyHex = "0x" + privateKeyHex
	}

	privateKeyBytes, err := hexutil.Decode(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Signer{
		key:     privateKey,
		address: crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// Address returns the account the key controls
func (s *Signer) Address() common.Address {
	return s.address
}

// Sign signs tx for chainID with the latest signer rules
func (s *Signer) Sign(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}
	return signed, nil
}
