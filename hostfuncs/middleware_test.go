package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	panicking := func(ctx context.Context, payload []byte) ([]byte, error) {
		panic("operand table corrupted")
	}

	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithByteHandler("boom", panicking),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "boom", nil)
	require.NoError(t, err, "panic must be converted to a JSON error, not a Go error")

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, "INTERNAL_ERROR", errResp.Error)
	assert.Equal(t, 500, errResp.Code)
	assert.Contains(t, errResp.Message, "operand table corrupted")
}

func TestPanicRecoveryMiddleware_ErrorPanicValue(t *testing.T) {
	panicking := func(ctx context.Context, payload []byte) ([]byte, error) {
		panic(assert.AnError)
	}

	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithByteHandler("boom", panicking),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "boom", nil)
	require.NoError(t, err)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Contains(t, errResp.Message, assert.AnError.Error())
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	reg, err := NewRegistry(
		WithMiddleware(LoggingMiddleware()),
		WithBundle(ArithmeticBundle()),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "subtract", []byte(`{"left":2,"right":1}`))
	require.NoError(t, err)

	var out SubtractResponse
	require.NoError(t, json.Unmarshal(resp, &out))
	assert.Equal(t, float64(1), out.Difference)
}
