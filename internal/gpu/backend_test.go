//go:build !nogpu

package gpu

import (
	"errors"
	"testing"
)

// TestBackendName verifies the backend name.
func TestBackendName(t *testing.T) {
	b := NewBackend()
	if b.Name() != "gpu" {
		t.Errorf("Name() = %q, want %q", b.Name(), "gpu")
	}
}

// TestBackendInit tests initialization against a real adapter when one is
// available. In a headless test environment RequestAdapter is expected to
// fail with ErrNoGPU; that is logged, not treated as a test failure.
func TestBackendInit(t *testing.T) {
	b := NewBackend()

	if b.IsInitialized() {
		t.Error("backend should not be initialized before Init()")
	}

	err := b.Init()
	if err != nil {
		t.Logf("Init() returned error (expected without a GPU adapter): %v", err)
		return
	}

	if !b.IsInitialized() {
		t.Error("backend should be initialized after Init()")
	}
	if b.Device().IsZero() {
		t.Error("Device() should not be zero after Init()")
	}
	if b.Queue().IsZero() {
		t.Error("Queue() should not be zero after Init()")
	}

	info := b.GPUInfo()
	if info == nil {
		t.Error("GPUInfo() should not be nil after Init()")
	} else {
		t.Logf("GPU: %s", info.String())
	}

	shaders := b.Shaders()
	if shaders == nil || !shaders.IsValid() {
		t.Error("Shaders() should be valid after Init()")
	}

	// Double init should be idempotent.
	if err := b.Init(); err != nil {
		t.Errorf("second Init() should not error: %v", err)
	}

	b.Close()
	if b.IsInitialized() {
		t.Error("backend should not be initialized after Close()")
	}
}

// TestBackendClose tests resource cleanup.
func TestBackendClose(t *testing.T) {
	b := NewBackend()

	// Close on uninitialized backend should be safe.
	b.Close()

	if err := b.Init(); err != nil {
		t.Logf("Init() returned error (expected without a GPU adapter): %v", err)
		return
	}

	b.Close()
	b.Close() // Double close should be safe.

	if b.IsInitialized() {
		t.Error("backend should not be initialized after Close()")
	}
	if !b.Device().IsZero() {
		t.Error("Device() should be zero after Close()")
	}
	if !b.Queue().IsZero() {
		t.Error("Queue() should be zero after Close()")
	}
	if b.GPUInfo() != nil {
		t.Error("GPUInfo() should be nil after Close()")
	}
	if b.Shaders() != nil {
		t.Error("Shaders() should be nil after Close()")
	}
}

// TestBackendUninitializedZeroValues checks accessor behavior before Init.
func TestBackendUninitializedZeroValues(t *testing.T) {
	b := NewBackend()
	if !b.Device().IsZero() {
		t.Error("Device() should be zero before Init()")
	}
	if !b.Queue().IsZero() {
		t.Error("Queue() should be zero before Init()")
	}
	if b.GPUInfo() != nil {
		t.Error("GPUInfo() should be nil before Init()")
	}
	if b.Shaders() != nil {
		t.Error("Shaders() should be nil before Init()")
	}
}

// TestBackendConcurrency tests concurrent read access to the backend.
func TestBackendConcurrency(t *testing.T) {
	b := NewBackend()

	if err := b.Init(); err != nil {
		t.Logf("Init() returned error (expected without a GPU adapter): %v", err)
		return
	}
	defer b.Close()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = b.IsInitialized()
			_ = b.Device()
			_ = b.Queue()
			_ = b.GPUInfo()
			_ = b.Shaders()
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

// TestErrors tests the package's sentinel error values.
func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotInitialized", ErrNotInitialized},
		{"ErrNoGPU", ErrNoGPU},
		{"ErrInvalidDimensions", ErrInvalidDimensions},
		{"ErrNilHALDevice", ErrNilHALDevice},
		{"ErrNilPixmap", ErrNilPixmap},
		{"ErrTextureReleased", ErrTextureReleased},
		{"ErrTextureSizeMismatch", ErrTextureSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("%s is nil", tt.name)
			} else if tt.err.Error() == "" {
				t.Errorf("%s.Error() is empty", tt.name)
			}
			if !errors.Is(tt.err, tt.err) {
				t.Errorf("%s does not match itself via errors.Is", tt.name)
			}
		})
	}
}

// BenchmarkBackendInit benchmarks backend initialization and teardown.
func BenchmarkBackendInit(b *testing.B) {
	wb := NewBackend()
	if err := wb.Init(); err != nil {
		b.Skipf("Init() failed: %v", err)
	}
	wb.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := wb.Init(); err != nil {
			b.Fatalf("Init() = %v", err)
		}
		wb.Close()
	}
}
