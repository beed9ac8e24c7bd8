package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

const codeCheckTimeout = 5 * time.Second

// CheckDeploymentExists checks if a contract exists at the given address
func (c *Client) CheckDeploymentExists(ctx context.Context, address common.Address) (bool, string, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return false, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, codeCheckTimeout)
	defer cancel()

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

// Ensure the client implements the interface
var _ usecase.CodeChecker = (*Client)(nil)
