package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("lists four creations and the wiring call", func(t *testing.T) {
		chain := newFakeChain(0)
		records := new(MockAddressRecordRepository)
		uc := usecase.NewPlanDeployment(usecase.NewAddressPredictor(chain), chain, records, testConfig())

		plan, err := uc.Run(ctx)
		require.NoError(t, err)

		require.Len(t, plan.Steps, 5)
		assert.Equal(t, uint64(0), plan.BaseNonce)
		assert.Equal(t, "deploys.json", plan.RecordPath)

		factory := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
		poolDeployer := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
		vault := common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
		stub := common.HexToAddress("0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9")

		assert.Equal(t, models.Factory, plan.Steps[0].Component)
		assert.Equal(t, factory, plan.Steps[0].Address)
		assert.Equal(t, []string{poolDeployer.Hex()}, plan.Steps[0].Args)

		assert.Equal(t, poolDeployer, plan.PoolDeployer())
		assert.Equal(t, []string{factory.Hex()}, plan.Steps[1].Args)

		assert.Equal(t, vault, plan.Steps[2].Address)
		assert.Equal(t, []string{factory.Hex(), testDeployer.Hex()}, plan.Steps[2].Args)

		assert.Equal(t, stub, plan.Steps[3].Address)
		assert.Equal(t, []string{vault.Hex()}, plan.Steps[3].Args)

		wiring := plan.Steps[4]
		assert.Empty(t, wiring.Component)
		assert.Equal(t, usecase.SetVaultFactoryMethod, wiring.Method)
		assert.Equal(t, uint64(4), wiring.Nonce)
		assert.Equal(t, factory, wiring.Address)
		assert.Equal(t, []string{stub.Hex()}, wiring.Args)

		assert.Empty(t, chain.events)
	})
}

func TestPredictAddress(t *testing.T) {
	chain := newFakeChain(1)
	uc := usecase.NewPredictAddress(usecase.NewAddressPredictor(chain), chain)

	p, err := uc.Run(context.Background(), usecase.PredictAddressParams{Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), p.Nonce)
	assert.Equal(t, common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"), p.Address)
}
