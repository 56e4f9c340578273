//go:build wasip1

package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/calcplug-dev/calcplug-sdk/internal/abi"
)

// Define the host function signature for logging messages.
// This matches the log_message export registered by the host executor.
//
//go:wasmimport calc_host log_message
//nolint:revive // intentional snake_case to match WASM import convention
func host_log_message(messagePacked uint64)

// Handle serializes a slog.Record and sends it to the host via a host function.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	logMsg := LogMessageWire{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}

	record.Attrs(func(attr slog.Attr) bool {
		logMsg.Attrs = append(logMsg.Attrs, toLogAttrWire(attr))
		return true // Continue iterating
	})

	requestBytes, err := json.Marshal(logMsg)
	if err != nil {
		// Fallback to println if marshaling fails.
		fmt.Printf("sdk: failed to marshal log message for host: %v, original: %s\n", err, record.Message)
		return nil
	}

	// Call the host function (no return value)
	host_log_message(abi.PtrFromBytes(requestBytes))
	return nil
}

// init routes the guest's default slog output through the host.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
