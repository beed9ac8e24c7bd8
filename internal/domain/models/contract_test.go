package models_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factoryABI = `[
  {"type": "constructor", "inputs": [{"name": "_poolDeployer", "type": "address"}], "stateMutability": "nonpayable"},
  {"type": "function", "name": "setVaultFactory", "inputs": [{"name": "newVaultFactory", "type": "address"}], "outputs": [], "stateMutability": "nonpayable"}
]`

func TestArtifactDecoding(t *testing.T) {
	t.Run("hardhat string bytecode", func(t *testing.T) {
		var a models.Artifact
		require.NoError(t, json.Unmarshal([]byte(`{"contractName": "AlgebraFactory", "abi": [], "bytecode": "0x6080"}`), &a))
		code, err := a.Bytecode.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)
	})

	t.Run("foundry object bytecode", func(t *testing.T) {
		var a models.Artifact
		require.NoError(t, json.Unmarshal([]byte(`{"abi": [], "bytecode": {"object": "0x6080", "sourceMap": "1:2:3"}}`), &a))
		code, err := a.Bytecode.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)
		assert.Equal(t, "1:2:3", a.Bytecode.SourceMap)
	})

	t.Run("rejects empty and unlinked bytecode", func(t *testing.T) {
		for _, obj := range []string{"", "0x", "0x60__$abc$__80"} {
			_, err := models.BytecodeObject{Object: obj}.Bytes()
			assert.Error(t, err, obj)
		}
	})
}

func TestArtifactEncoding(t *testing.T) {
	a := &models.Artifact{
		ContractName: "AlgebraFactory",
		ABI:          json.RawMessage(factoryABI),
		Bytecode:     models.BytecodeObject{Object: "0x6080"},
	}
	target := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	t.Run("constructor args are appended", func(t *testing.T) {
		code, err := a.CreationCode(target)
		require.NoError(t, err)
		require.Len(t, code, 2+32)
		assert.Equal(t, []byte{0x60, 0x80}, code[:2])
		assert.Equal(t, target.Bytes(), code[2+12:])
	})

	t.Run("wrong constructor args", func(t *testing.T) {
		_, err := a.CreationCode()
		assert.Error(t, err)
	})

	t.Run("call data", func(t *testing.T) {
		data, err := a.CallData("setVaultFactory", target)
		require.NoError(t, err)
		require.Len(t, data, 4+32)
		assert.Equal(t, crypto.Keccak256([]byte("setVaultFactory(address)"))[:4], data[:4])
		assert.Equal(t, target.Bytes(), data[4+12:])
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := a.CallData("owner")
		assert.Error(t, err)
	})
}
