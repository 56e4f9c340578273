package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"golang.org/x/mod/semver"

	sdk "github.com/calcplug-dev/calcplug-sdk"
)

// Instance represents an instantiated calcplug WASM module. Its manifest
// is fetched and validated at load time; arithmetic calls are gated on
// the operations the manifest declares.
type Instance struct {
	module api.Module
	meta   sdk.Metadata
}

// LoadModule instantiates a WASM module and fetches its manifest.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	inst := &Instance{module: mod}

	meta, err := inst.fetchManifest(ctx)
	if err != nil {
		mod.Close(ctx)
		return nil, err
	}
	if err := sdk.ValidateMetadata(meta); err != nil {
		mod.Close(ctx)
		return nil, fmt.Errorf("plugin manifest rejected: %w", err)
	}
	if err := checkHostCompatibility(meta); err != nil {
		mod.Close(ctx)
		return nil, err
	}
	inst.meta = meta

	return inst, nil
}

// checkHostCompatibility rejects plugins that declare a minimum host
// version newer than this SDK. An empty min_host_version accepts any host.
func checkHostCompatibility(meta sdk.Metadata) error {
	if meta.MinHostVersion == "" {
		return nil
	}
	min := "v" + meta.MinHostVersion
	if !semver.IsValid(min) {
		return fmt.Errorf("plugin %q declares invalid min_host_version %q", meta.Name, meta.MinHostVersion)
	}
	if semver.Compare(min, "v"+sdk.Version) > 0 {
		return fmt.Errorf("plugin %q requires host version %s or newer, host is %s",
			meta.Name, meta.MinHostVersion, sdk.Version)
	}
	return nil
}

// Metadata returns the plugin metadata fetched at load time.
func (i *Instance) Metadata() sdk.Metadata {
	return i.meta
}

// Provides reports whether the plugin declares the named operation.
func (i *Instance) Provides(op string) bool {
	return i.meta.Provides(op)
}

// Close releases the underlying module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// Add calls the plugin's "add" export: left + right on float64 operands.
func (i *Instance) Add(ctx context.Context, left, right float64) (float64, error) {
	return i.callFloatOp(ctx, sdk.OpAdd, left, right)
}

// Subtract calls the plugin's "subtract" export: left - right on float64
// operands.
func (i *Instance) Subtract(ctx context.Context, left, right float64) (float64, error) {
	return i.callFloatOp(ctx, sdk.OpSubtract, left, right)
}

// AddUint64 calls the plugin's "add_u64" export: left + right on uint64
// operands.
func (i *Instance) AddUint64(ctx context.Context, left, right uint64) (uint64, error) {
	return i.callUintOp(ctx, sdk.OpAddUint, left, right)
}

// SubtractUint64 calls the plugin's "subtract_u64" export: left - right
// on uint64 operands.
func (i *Instance) SubtractUint64(ctx context.Context, left, right uint64) (uint64, error) {
	return i.callUintOp(ctx, sdk.OpSubtractUint, left, right)
}

func (i *Instance) callFloatOp(ctx context.Context, name string, left, right float64) (float64, error) {
	results, err := i.callBinary(ctx, name, api.EncodeF64(left), api.EncodeF64(right))
	if err != nil {
		return 0, err
	}
	return api.DecodeF64(results), nil
}

func (i *Instance) callUintOp(ctx context.Context, name string, left, right uint64) (uint64, error) {
	return i.callBinary(ctx, name, left, right)
}

// callBinary invokes a two-parameter, one-result numeric export after
// checking the manifest declares it.
func (i *Instance) callBinary(ctx context.Context, name string, left, right uint64) (uint64, error) {
	if !i.meta.Provides(name) {
		return 0, fmt.Errorf("plugin %q does not provide operation %q", i.meta.Name, name)
	}

	f := i.module.ExportedFunction(name)
	if f == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	results, err := f.Call(ctx, left, right)
	if err != nil {
		return 0, fmt.Errorf("call to %q failed: %w", name, err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("export %q returned no results", name)
	}
	return results[0], nil
}

// fetchManifest calls the guest's _manifest export and decodes the packed
// JSON it returns. A structured ErrorDetail payload is surfaced as an error.
func (i *Instance) fetchManifest(ctx context.Context) (sdk.Metadata, error) {
	var meta sdk.Metadata

	f := i.module.ExportedFunction("_manifest")
	if f == nil {
		return meta, fmt.Errorf("export %q not found", "_manifest")
	}

	results, err := f.Call(ctx)
	if err != nil {
		return meta, fmt.Errorf("call to _manifest failed: %w", err)
	}
	if len(results) == 0 {
		return meta, fmt.Errorf("_manifest returned no results")
	}

	data, err := i.readPacked(results[0])
	if err != nil {
		return meta, fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to decode manifest: %w", err)
	}

	// The guest returns an ErrorDetail in place of metadata when its own
	// manifest build fails.
	if meta.Name == "" {
		var detail sdk.ErrorDetail
		if err := json.Unmarshal(data, &detail); err == nil && detail.Message != "" {
			return meta, fmt.Errorf("plugin manifest error: %w", &detail)
		}
	}

	return meta, nil
}

// readPacked reads a packed ptr/len response from guest memory and
// returns a copy of the bytes.
func (i *Instance) readPacked(packed uint64) ([]byte, error) {
	ptr, length := unpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil, fmt.Errorf("null response from plugin")
	}
	data, ok := i.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read response from memory")
	}
	dataCopy := make([]byte, length)
	copy(dataCopy, data)
	return dataCopy, nil
}
