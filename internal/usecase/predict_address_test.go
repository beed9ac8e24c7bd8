package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPredictor(t *testing.T) {
	ctx := context.Background()
	deployer := models.Deployer{Address: testDeployer}

	t.Run("known CREATE vectors", func(t *testing.T) {
		predictor := usecase.NewAddressPredictor(newFakeChain(0))

		tests := []struct {
			offset   uint64
			expected string
		}{
			{0, "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
			{1, "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"},
			{2, "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"},
			{3, "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"},
		}
		for _, tt := range tests {
			p, err := predictor.Predict(ctx, deployer, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress(tt.expected), p.Address, "offset %d", tt.offset)
			assert.Equal(t, uint64(0), p.BaseNonce)
			assert.Equal(t, tt.offset, p.Nonce)
		}
	})

	t.Run("prediction matches the address the chain assigns", func(t *testing.T) {
		for _, base := range []uint64{0, 1, 7, 42} {
			for _, offset := range []uint64{0, 1, 3} {
				chain := newFakeChain(base)
				predictor := usecase.NewAddressPredictor(chain)

				p, err := predictor.Predict(ctx, deployer, offset)
				require.NoError(t, err)

				// Fill the nonces before the predicted one with other creations
				var last *models.Finalized
				for i := uint64(0); i <= offset; i++ {
					h, err := chain.SubmitDeployment(ctx, usecase.DeploymentRequest{Artifact: "Filler", Nonce: base + i})
					require.NoError(t, err)
					last, err = chain.AwaitFinality(ctx, h)
					require.NoError(t, err)
				}
				assert.Equal(t, p.Address, last.Address, "base %d offset %d", base, offset)
			}
		}
	})

	t.Run("series reads the nonce once", func(t *testing.T) {
		chain := newFakeChain(5)
		reads := 0
		chain.afterNonceRead = func(f *fakeChain) { reads++ }

		series, err := usecase.NewAddressPredictor(chain).PredictSeries(ctx, deployer, 4)
		require.NoError(t, err)
		require.Len(t, series, 4)
		assert.Equal(t, 1, reads)
		for i, p := range series {
			assert.Equal(t, uint64(5), p.BaseNonce)
			assert.Equal(t, uint64(5+i), p.Nonce)
		}
	})

	t.Run("nonce failure is a resolution error", func(t *testing.T) {
		chain := newFakeChain(0)
		chain.nonceErr = errors.New("connection refused")

		_, err := usecase.NewAddressPredictor(chain).Predict(ctx, deployer, usecase.PoolDeployerOffset)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrResolution)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
