package blockchain_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDeploymentExists(t *testing.T) {
	ctx := context.Background()
	deployed := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	empty := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	backend := newFakeBackend(31337)
	backend.code[deployed] = []byte{0x60, 0x80}
	client := newTestClient(t, backend, localNetwork(), false)

	exists, reason, err := client.CheckDeploymentExists(ctx, deployed)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, reason)

	exists, reason, err = client.CheckDeploymentExists(ctx, empty)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "no code at address", reason)

	t.Run("requires an RPC URL", func(t *testing.T) {
		client := newTestClient(t, newFakeBackend(31337), nil, false)
		_, _, err := client.CheckDeploymentExists(ctx, deployed)
		assert.ErrorContains(t, err, "no RPC URL configured")
	})
}
