package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spirit-dao/algebra-deploy/internal/domain"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAddresses(t *testing.T) {
	ctx := context.Background()

	record := models.NewAddressRecord()
	record.Merge(map[models.RecordKey]string{
		models.RecordKeyPoolDeployer: "0x00000000000000000000000000000000000000A2",
		models.RecordKeyFactory:      "0x00000000000000000000000000000000000000A1",
	})
	record.Extra["swapRouter"] = json.RawMessage(`"0x00000000000000000000000000000000000000B1"`)

	t.Run("returns the whole record", func(t *testing.T) {
		records := new(MockAddressRecordRepository)
		records.On("Load", ctx).Return(record, nil)

		result, err := usecase.NewShowAddresses(records).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Record.Len())
		assert.Equal(t, "deploys.json", result.Path)
	})

	t.Run("looks up owned and passthrough keys", func(t *testing.T) {
		records := new(MockAddressRecordRepository)
		records.On("Load", ctx).Return(record, nil)
		uc := usecase.NewShowAddresses(records)

		got, err := uc.Lookup(ctx, "factory")
		require.NoError(t, err)
		assert.Equal(t, "0x00000000000000000000000000000000000000A1", got.Value)

		got, err = uc.Lookup(ctx, "swapRouter")
		require.NoError(t, err)
		assert.Equal(t, "0x00000000000000000000000000000000000000B1", got.Value)
	})

	t.Run("suggests close keys", func(t *testing.T) {
		records := new(MockAddressRecordRepository)
		records.On("Load", ctx).Return(record, nil)

		_, err := usecase.NewShowAddresses(records).Lookup(ctx, "poolDeploy")
		require.Error(t, err)

		var unknown *usecase.UnknownKeyError
		require.True(t, errors.As(err, &unknown))
		assert.Contains(t, unknown.Suggestions, "poolDeployer")
		assert.Contains(t, err.Error(), "did you mean")
	})

	t.Run("load errors pass through", func(t *testing.T) {
		records := new(MockAddressRecordRepository)
		records.On("Load", ctx).Return(nil, domain.ErrRecordMalformed)

		_, err := usecase.NewShowAddresses(records).Run(ctx)
		assert.ErrorIs(t, err, domain.ErrRecordMalformed)
	})
}
