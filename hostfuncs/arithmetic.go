package hostfuncs

import (
	"context"
	"log/slog"

	"github.com/calcplug-dev/calcplug-sdk/arith"
)

// DefaultMaxRequestSize limits the size of requests read from guest
// memory. Arithmetic payloads are a few dozen bytes; 64KB leaves ample
// headroom for custom handlers.
const DefaultMaxRequestSize uint32 = 64 * 1024

// AddRequest is the request type for the "add" host function.
type AddRequest struct {
	// Left is the first operand.
	Left float64 `json:"left"`

	// Right is the second operand.
	Right float64 `json:"right"`
}

// AddResponse is the response type for the "add" host function.
type AddResponse struct {
	// Sum is left + right.
	Sum float64 `json:"sum"`
}

// SubtractRequest is the request type for the "subtract" host function.
type SubtractRequest struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// SubtractResponse is the response type for the "subtract" host function.
type SubtractResponse struct {
	// Difference is left - right.
	Difference float64 `json:"difference"`
}

// AddUintRequest is the request type for the "add_u64" host function.
type AddUintRequest struct {
	Left  uint64 `json:"left"`
	Right uint64 `json:"right"`
}

// AddUintResponse is the response type for the "add_u64" host function.
type AddUintResponse struct {
	Sum uint64 `json:"sum"`
}

// SubtractUintRequest is the request type for the "subtract_u64" host function.
type SubtractUintRequest struct {
	Left  uint64 `json:"left"`
	Right uint64 `json:"right"`
}

// SubtractUintResponse is the response type for the "subtract_u64" host function.
type SubtractUintResponse struct {
	Difference uint64 `json:"difference"`
}

// PerformAdd computes the sum of the request operands.
func PerformAdd(ctx context.Context, req AddRequest) AddResponse {
	sum := arith.Add(req.Left, req.Right)
	slog.DebugContext(ctx, "host add", "left", req.Left, "right", req.Right, "sum", sum)
	return AddResponse{Sum: sum}
}

// PerformSubtract computes the difference of the request operands.
func PerformSubtract(ctx context.Context, req SubtractRequest) SubtractResponse {
	diff := arith.Subtract(req.Left, req.Right)
	slog.DebugContext(ctx, "host subtract", "left", req.Left, "right", req.Right, "difference", diff)
	return SubtractResponse{Difference: diff}
}

// PerformAddUint computes the sum of the request operands.
func PerformAddUint(ctx context.Context, req AddUintRequest) AddUintResponse {
	return AddUintResponse{Sum: arith.AddUint(req.Left, req.Right)}
}

// PerformSubtractUint computes the difference of the request operands.
func PerformSubtractUint(ctx context.Context, req SubtractUintRequest) SubtractUintResponse {
	return SubtractUintResponse{Difference: arith.SubtractUint(req.Left, req.Right)}
}
