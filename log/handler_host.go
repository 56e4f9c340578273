//go:build !wasip1

package log

import (
	"context"
	"log/slog"
	"os"
)

// textFallback renders records for non-WASM builds (e.g., host tests).
var textFallback = slog.NewTextHandler(os.Stderr, nil)

// Handle for non-WASM builds. There is no host function to forward to,
// so records go to a plain text handler on stderr.
func (h *WasmLogHandler) Handle(ctx context.Context, record slog.Record) error {
	return textFallback.Handle(ctx, record)
}
