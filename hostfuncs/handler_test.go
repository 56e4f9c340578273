package hostfuncs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONHandler(t *testing.T) {
	handler := NewJSONHandler(func(ctx context.Context, req AddRequest) AddResponse {
		return PerformAdd(ctx, req)
	})

	t.Run("valid request", func(t *testing.T) {
		resp, err := handler(context.Background(), []byte(`{"left":1.5,"right":2.5}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"sum":4}`, string(resp))
	})

	t.Run("malformed request", func(t *testing.T) {
		_, err := handler(context.Background(), []byte(`{"left":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal request")
	})
}

func TestHostContextFrom(t *testing.T) {
	ctx := context.Background()

	hc := HostContextFrom(ctx, "add")
	assert.Equal(t, "add", hc.FunctionName())

	// Wrapping an existing HostContext returns it unchanged.
	same := HostContextFrom(hc, "other")
	assert.Equal(t, "add", same.FunctionName())
}

func TestHostContext_Values(t *testing.T) {
	hc := NewHostContext(context.Background(), "add")

	_, ok := hc.GetValue("missing")
	assert.False(t, ok)

	hc.SetValue("request_id", "r-1")
	v, ok := hc.GetValue("request_id")
	require.True(t, ok)
	assert.Equal(t, "r-1", v)
}
