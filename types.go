// Package sdk provides the shared types for calcplug plugins and hosts:
// plugin metadata, operation descriptors, and structured error details
// that cross the WASM boundary.
package sdk

// OperandKind identifies the numeric width of an operation's parameters
// and result. Both operands and the result always share one kind.
type OperandKind string

const (
	// OperandFloat64 marks operations on 64-bit floating point values.
	OperandFloat64 OperandKind = "f64"

	// OperandUint64 marks operations on 64-bit unsigned integer values.
	OperandUint64 OperandKind = "u64"
)

// Operation names exported by guests. Each export takes two numeric
// parameters of the operand kind and returns one value of the same kind.
const (
	OpAdd          = "add"
	OpSubtract     = "subtract"
	OpAddUint      = "add_u64"
	OpSubtractUint = "subtract_u64"
)

// OperationSpec describes a single operation a plugin exports.
type OperationSpec struct {
	// Name is the exported function name (e.g. "add").
	Name string `json:"name" validate:"required"`

	// Kind is the operand width of the operation.
	Kind OperandKind `json:"kind" validate:"required,oneof=f64 u64"`

	// Description is an optional human-readable summary.
	Description string `json:"description,omitempty"`
}

// Metadata contains information about a plugin, returned by its
// _manifest export.
type Metadata struct {
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Description string `json:"description,omitempty"`

	// SDKVersion is auto-populated by the guest binding layer.
	SDKVersion string `json:"sdk_version,omitempty"`

	// MinHostVersion is the minimum host SDK version the plugin requires.
	// Hosts reject the plugin at load time when they are older. Empty
	// means any host version is acceptable.
	MinHostVersion string `json:"min_host_version,omitempty"`

	// Operations lists the operations this plugin provides.
	Operations []OperationSpec `json:"operations" validate:"required,min=1,dive"`
}

// Provides reports whether the metadata declares an operation by name.
func (m Metadata) Provides(name string) bool {
	for _, op := range m.Operations {
		if op.Name == name {
			return true
		}
	}
	return false
}

// ErrorDetail is the structured error representation sent across the
// WASM boundary in place of a result.
// Error Types: "config", "panic", "validation", "internal"
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface so an ErrorDetail can be
// returned and wrapped like any other Go error.
func (e *ErrorDetail) Error() string {
	return e.Message
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}
	if e, ok := err.(*ErrorDetail); ok {
		return e
	}
	return &ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

const (
	// Version of the SDK
	Version = "0.1.0"
	// MinHostVersion is the minimum host version plugins built with this
	// SDK declare in their manifests.
	MinHostVersion = "0.1.0"
)
