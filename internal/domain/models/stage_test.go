package models_test

import (
	"testing"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgression(t *testing.T) {
	t.Run("walks every stage in order", func(t *testing.T) {
		p := models.NewProgression()
		assert.Equal(t, models.StageIdle, p.Current())

		for _, stage := range models.Stages[1:] {
			require.NoError(t, p.Advance(stage))
			assert.Equal(t, stage, p.Current())
		}

		history := p.History()
		require.Len(t, history, len(models.Stages))
		for i, tr := range history {
			assert.Equal(t, models.Stages[i], tr.Stage)
		}

		_, ok := p.Current().Next()
		assert.False(t, ok)
	})

	t.Run("rejects skipped stages", func(t *testing.T) {
		p := models.NewProgression()
		err := p.Advance(models.StageVaultDeployed)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, models.StageIdle, p.Current())
	})

	t.Run("rejects repeated stages", func(t *testing.T) {
		p := models.NewProgression()
		require.NoError(t, p.Advance(models.StageFactoryDeployed))
		assert.ErrorIs(t, p.Advance(models.StageFactoryDeployed), domain.ErrInvalidTransition)
	})
}

func TestStage(t *testing.T) {
	assert.Equal(t, models.StageFactoryDeployed, models.StageFor(models.Factory))
	assert.Equal(t, models.StageStubDeployed, models.StageFor(models.VaultFactoryStub))

	assert.True(t, models.StageWired.Reached(models.StageVaultDeployed))
	assert.True(t, models.StageWired.Reached(models.StageWired))
	assert.False(t, models.StageFactoryDeployed.Reached(models.StagePersisted))
}

func TestComponent(t *testing.T) {
	tests := []struct {
		component models.Component
		key       models.RecordKey
		label     string
	}{
		{models.Factory, models.RecordKeyFactory, "AlgebraFactory deployed to:"},
		{models.PoolDeployer, models.RecordKeyPoolDeployer, "AlgebraPoolDeployer to:"},
		{models.Vault, models.RecordKeyVault, "AlgebraCommunityVault deployed to:"},
		{models.VaultFactoryStub, models.RecordKeyVaultFactory, "AlgebraVaultFactoryStub deployed to:"},
	}
	for _, tt := range tests {
		t.Run(string(tt.component), func(t *testing.T) {
			assert.Equal(t, tt.key, tt.component.RecordKey())
			assert.Equal(t, tt.label, tt.component.Label())
			assert.True(t, models.IsRecordKey(string(tt.key)))
		})
	}
	assert.False(t, models.IsRecordKey("swapRouter"))
}
