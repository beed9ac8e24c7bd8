package usecase

import (
	"context"
	"fmt"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// PoolDeployerOffset is how many deployments after the next one the pool
// deployer is created: the factory goes first, the pool deployer second.
const PoolDeployerOffset = 1

// AddressPredictor computes the addresses future deployments will receive.
// A prediction only holds while nothing else is sent from the same deployer.
type AddressPredictor struct {
	chain ChainClient
}

// NewAddressPredictor creates a new AddressPredictor
func NewAddressPredictor(chain ChainClient) *AddressPredictor {
	return &AddressPredictor{chain: chain}
}

// Predict returns the address of the deployment submitted offset
// transactions after the next one. Offset 0 is the very next deployment.
func (p *AddressPredictor) Predict(ctx context.Context, deployer models.Deployer, offset uint64) (*models.Prediction, error) {
	base, err := p.chain.NonceAt(ctx, deployer)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve nonce of %s: %w", domain.ErrResolution, deployer, err)
	}
	return p.at(deployer, base, offset), nil
}

// PredictSeries predicts the next n deployment addresses from a single nonce read
func (p *AddressPredictor) PredictSeries(ctx context.Context, deployer models.Deployer, n int) ([]*models.Prediction, error) {
	base, err := p.chain.NonceAt(ctx, deployer)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve nonce of %s: %w", domain.ErrResolution, deployer, err)
	}

	predictions := make([]*models.Prediction, 0, n)
	for i := 0; i < n; i++ {
		predictions = append(predictions, p.at(deployer, base, uint64(i)))
	}
	return predictions, nil
}

func (p *AddressPredictor) at(deployer models.Deployer, base, offset uint64) *models.Prediction {
	nonce := base + offset
	return &models.Prediction{
		Deployer:  deployer,
		BaseNonce: base,
		Offset:    offset,
		Nonce:     nonce,
		Address:   p.chain.ComputeAddress(deployer, nonce),
	}
}
