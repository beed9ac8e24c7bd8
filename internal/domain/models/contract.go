package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BytecodeObject represents creation bytecode in a compiled artifact.
// Hardhat stores it as a plain hex string, Foundry as {"object": "0x..."}.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the Hardhat and the Foundry encoding
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}

	type plain BytecodeObject
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BytecodeObject(obj)
	return nil
}

// Bytes decodes the bytecode, rejecting unlinked library placeholders
func (b BytecodeObject) Bytes() ([]byte, error) {
	obj := strings.TrimSpace(b.Object)
	if obj == "" || obj == "0x" {
		return nil, fmt.Errorf("empty bytecode")
	}
	if strings.Contains(obj, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if !strings.HasPrefix(obj, "0x") {
		obj = "0x" + obj
	}
	return hexutil.Decode(obj)
}

// Artifact represents a compiled contract artifact
type Artifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeObject  `json:"bytecode"`

	// Path is the file the artifact was read from
	Path string `json:"-"`
}

// ParsedABI decodes the artifact ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", a.ContractName)
	}
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// CreationCode returns the bytecode with ABI-encoded constructor args appended
func (a *Artifact) CreationCode(args ...any) ([]byte, error) {
	code, err := a.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", a.ContractName, err)
	}
	parsed, err := a.ParsedABI()
	if err != nil {
		return nil, err
	}
	encoded, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor args for %s: %w", a.ContractName, err)
	}
	return append(code, encoded...), nil
}

// CallData encodes a method call against the artifact ABI
func (a *Artifact) CallData(method string, args ...any) ([]byte, error) {
	parsed, err := a.ParsedABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", a.ContractName, method, err)
	}
	return data, nil
}
