package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testRecord(t *testing.T) *usecase.ShowAddressesResult {
	t.Helper()
	var record models.AddressRecord
	require.NoError(t, json.Unmarshal([]byte(`{"factory": "0xA1", "poolDeployer": "0xA2", "meta": {"deployedAt":12}}`), &record))
	return &usecase.ShowAddressesResult{Record: &record, Path: "/tmp/deploys.json"}
}

func TestAddressesRenderer(t *testing.T) {
	color.NoColor = true

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, "").Render(testRecord(t)))
		out := buf.String()
		assert.Contains(t, out, "factory")
		assert.Contains(t, out, "0xA2")
		assert.Contains(t, out, `{"deployedAt":12}`)
	})

	t.Run("empty record", func(t *testing.T) {
		var buf bytes.Buffer
		result := &usecase.ShowAddressesResult{Record: models.NewAddressRecord(), Path: "/tmp/deploys.json"}
		require.NoError(t, NewAddressesRenderer(&buf, FormatTable).Render(result))
		assert.Contains(t, buf.String(), "No addresses recorded")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, FormatJSON).Render(testRecord(t)))
		assert.JSONEq(t, `{"factory": "0xA1", "poolDeployer": "0xA2", "meta": {"deployedAt": 12}}`, buf.String())
	})

	t.Run("yaml keeps nested values structured", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, FormatYAML).Render(testRecord(t)))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "0xA1", decoded["factory"])
		assert.Equal(t, map[string]any{"deployedAt": 12}, decoded["meta"])
	})

	t.Run("unknown format", func(t *testing.T) {
		err := NewAddressesRenderer(&bytes.Buffer{}, "xml").Render(testRecord(t))
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("lookup prints the bare value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, FormatTable).RenderLookup(&usecase.LookupAddressResult{Key: "vault", Value: "0xA3"}))
		assert.Equal(t, "0xA3\n", buf.String())
	})
}

func TestAddressesRendererVerification(t *testing.T) {
	color.NoColor = true
	result := &usecase.VerifyAddressesResult{
		Path: "/tmp/deploys.json",
		Checks: []usecase.AddressCheck{
			{Key: models.RecordKeyPoolDeployer, Address: "0xA2", Exists: true},
			{Key: models.RecordKeyFactory, Address: "0xA1", Reason: "no code at address"},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, FormatTable).RenderVerification(result))
		assert.Contains(t, buf.String(), "code found")
		assert.Contains(t, buf.String(), "no code at address")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewAddressesRenderer(&buf, FormatJSON).RenderVerification(result))
		assert.JSONEq(t, `[
			{"key": "poolDeployer", "address": "0xA2", "exists": true},
			{"key": "factory", "address": "0xA1", "exists": false, "reason": "no code at address"}
		]`, buf.String())
	})
}
