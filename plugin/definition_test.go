package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/calcplug-dev/calcplug-sdk"
	"github.com/calcplug-dev/calcplug-sdk/arith"
)

func TestDefinition_Manifest_AllOperations(t *testing.T) {
	def := Definition{
		Name:         "calc",
		Version:      "1.0.0",
		Description:  "re-exports all arithmetic operations",
		Add:          arith.Add,
		Subtract:     arith.Subtract,
		AddUint:      arith.AddUint,
		SubtractUint: arith.SubtractUint,
	}

	m := def.Manifest()
	require.NoError(t, sdk.ValidateMetadata(m))

	assert.Equal(t, "calc", m.Name)
	assert.Equal(t, sdk.Version, m.SDKVersion)
	assert.Equal(t, sdk.MinHostVersion, m.MinHostVersion)
	assert.Len(t, m.Operations, 4)
	assert.True(t, m.Provides(sdk.OpAdd))
	assert.True(t, m.Provides(sdk.OpSubtract))
	assert.True(t, m.Provides(sdk.OpAddUint))
	assert.True(t, m.Provides(sdk.OpSubtractUint))
}

func TestDefinition_Manifest_SingleOperation(t *testing.T) {
	def := Definition{
		Name:    "adder",
		Version: "1.0.0",
		Add:     arith.Add,
	}

	m := def.Manifest()
	require.NoError(t, sdk.ValidateMetadata(m))

	require.Len(t, m.Operations, 1)
	assert.Equal(t, sdk.OpAdd, m.Operations[0].Name)
	assert.Equal(t, sdk.OperandFloat64, m.Operations[0].Kind)
	assert.False(t, m.Provides(sdk.OpSubtract))
}

func TestDefinition_Manifest_UintKind(t *testing.T) {
	def := Definition{
		Name:    "uintsum",
		Version: "0.1.0",
		AddUint: arith.AddUint,
	}

	m := def.Manifest()
	require.Len(t, m.Operations, 1)
	assert.Equal(t, sdk.OpAddUint, m.Operations[0].Name)
	assert.Equal(t, sdk.OperandUint64, m.Operations[0].Kind)
}

func TestDefinition_Manifest_NoOperationsFailsValidation(t *testing.T) {
	def := Definition{Name: "empty", Version: "1.0.0"}

	m := def.Manifest()
	assert.Empty(t, m.Operations)
	assert.Error(t, sdk.ValidateMetadata(m))
}
