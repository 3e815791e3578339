package gpu

import "errors"

// Backend and resource lifecycle errors shared across buffer.go,
// command_encoder.go, gpu_texture.go, and backend.go.
var (
	// ErrNoGPU is returned when Init cannot find a suitable wgpu adapter.
	ErrNoGPU = errors.New("gpu: no suitable adapter found")

	// ErrNotInitialized is returned when an operation requires an
	// initialized Backend but Init has not completed successfully.
	ErrNotInitialized = errors.New("gpu: backend not initialized")

	// ErrInvalidDimensions is returned when a texture or buffer is
	// requested with a non-positive width or height.
	ErrInvalidDimensions = errors.New("gpu: invalid dimensions")

	// ErrNilHALDevice is returned when a hal.Device argument is nil.
	ErrNilHALDevice = errors.New("gpu: hal device is nil")
)
