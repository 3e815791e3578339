//go:build !nogpu

package gpu

import (
	"fmt"
	"log"
	"sync"

	"github.com/crtlab/phosphor/backend/wgpu"
	"github.com/crtlab/phosphor/internal/spectral"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// BackendGPU is the identifier for the GPU backend.
const BackendGPU = "gpu"

// Backend owns the wgpu device lifecycle (instance, adapter, device,
// queue) and the six compiled pipeline-stage shader modules. It does not
// itself know about beam samples or phosphor layouts. The orchestrator
// does not use it: the only caller is the root package's Engine, which
// calls Init and Close. Buffer upload and pass recording types live in
// buffer.go, compute_pass.go, and render_pass.go.
type Backend struct {
	mu sync.RWMutex

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo *wgpu.GPUInfo
	shaders *ShaderModules

	initialized bool
}

// NewBackend creates an uninitialized GPU backend. Init must be called
// before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return BackendGPU
}

// Init requests an adapter and device, then compiles the six pipeline
// shaders against internal/spectral.BandCount.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	wgpu.LogGPUInfo(adapterID)
	b.gpuInfo, _ = wgpu.GetGPUInfo(adapterID)

	deviceID, err := wgpu.CreateDevice(adapterID, "phosphor-gpu-device")
	if err != nil {
		return fmt.Errorf("device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := wgpu.GetDeviceQueue(deviceID)
	if err != nil {
		_ = wgpu.ReleaseDevice(deviceID)
		return fmt.Errorf("queue retrieval failed: %w", err)
	}
	b.queue = queueID

	// deviceID is not yet consulted by CompileShaders: naga validates WGSL
	// independent of any particular device (see shaders.go).
	shaders, err := CompileShaders(0, spectral.BandCount)
	if err != nil {
		_ = wgpu.ReleaseDevice(deviceID)
		return fmt.Errorf("shader compilation failed: %w", err)
	}
	b.shaders = shaders

	b.initialized = true
	log.Println("gpu: backend initialized successfully")

	return nil
}

// Close releases all backend resources. The backend must not be used
// after Close returns.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if !b.device.IsZero() {
		if err := wgpu.ReleaseDevice(b.device); err != nil {
			log.Printf("gpu: error releasing device: %v", err)
		}
		b.device = core.DeviceID{}
	}

	if !b.adapter.IsZero() {
		if err := wgpu.ReleaseAdapter(b.adapter); err != nil {
			log.Printf("gpu: error releasing adapter: %v", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.shaders = nil
	b.initialized = false

	log.Println("gpu: backend closed")
}

// IsInitialized reports whether Init has completed successfully.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// GPUInfo returns information about the selected adapter, or nil if the
// backend is not initialized.
func (b *Backend) GPUInfo() *wgpu.GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// Shaders returns the compiled six-stage shader modules, or nil if the
// backend is not initialized.
func (b *Backend) Shaders() *ShaderModules {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shaders
}

// Device returns the GPU device ID, or a zero ID if uninitialized.
func (b *Backend) Device() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the GPU queue ID, or a zero ID if uninitialized.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}
