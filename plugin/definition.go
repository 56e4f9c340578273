// Package plugin provides the guest-side binding layer: plugins declare
// the arithmetic operations they provide in a Definition, and the SDK
// exports them to the host runtime with fixed WASM export names.
package plugin

import (
	sdk "github.com/calcplug-dev/calcplug-sdk"
)

// BinaryFloatOp is a binary operation on float64 operands.
type BinaryFloatOp func(left, right float64) float64

// BinaryUintOp is a binary operation on uint64 operands.
type BinaryUintOp func(left, right uint64) uint64

// Definition declares a plugin's identity and the operations it provides.
// A nil operation func means the plugin does not provide that operation
// and the host must not call the corresponding export.
type Definition struct {
	Name        string
	Version     string
	Description string

	// float64 operations, exported as "add" and "subtract".
	Add      BinaryFloatOp
	Subtract BinaryFloatOp

	// uint64 operations, exported as "add_u64" and "subtract_u64".
	AddUint      BinaryUintOp
	SubtractUint BinaryUintOp
}

// Manifest builds the plugin metadata from the definition. The SDK
// version and minimum host version are auto-populated; only operations
// with a non-nil func are declared.
func (d Definition) Manifest() sdk.Metadata {
	var ops []sdk.OperationSpec
	if d.Add != nil {
		ops = append(ops, sdk.OperationSpec{Name: sdk.OpAdd, Kind: sdk.OperandFloat64})
	}
	if d.Subtract != nil {
		ops = append(ops, sdk.OperationSpec{Name: sdk.OpSubtract, Kind: sdk.OperandFloat64})
	}
	if d.AddUint != nil {
		ops = append(ops, sdk.OperationSpec{Name: sdk.OpAddUint, Kind: sdk.OperandUint64})
	}
	if d.SubtractUint != nil {
		ops = append(ops, sdk.OperationSpec{Name: sdk.OpSubtractUint, Kind: sdk.OperandUint64})
	}

	return sdk.Metadata{
		Name:           d.Name,
		Version:        d.Version,
		Description:    d.Description,
		SDKVersion:     sdk.Version,
		MinHostVersion: sdk.MinHostVersion,
		Operations:     ops,
	}
}
