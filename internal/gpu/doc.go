//go:build !nogpu

// Package gpu is the wgpu resource layer for the six-stage phosphor
// pipeline: device/queue lifecycle, buffer and texture allocation, and
// compute/render pass recording. It leverages gogpu/wgpu, a pure Go
// WebGPU implementation (zero CGO) over Vulkan, Metal, or DX12.
//
// # Pipeline
//
// The six compiled WGSL stages are:
//
//	beam-write (compute) -> spectral-resolve (fragment) -> decay (compute)
//	  -> scatter-downsample (fragment) -> scatter-blur x2 (fragment)
//	  -> composite (fragment)
//
// beam-write splats incoming samples into the per-band emission buffer
// with an atomic-add CAS loop. spectral-resolve runs before decay and
// integrates each pixel's per-band energy against the CIE tables into
// linear sRGB. decay applies the three-tier falloff (instant zero,
// slow exponential, power-law) in place. scatter-downsample and
// scatter-blur produce the half-resolution halation target. composite
// applies barrel distortion, glass tint, edge falloff, exposure, and
// the selected tonemap curve.
//
// # Components
//
//   - Backend: owns the wgpu instance/adapter/device/queue and the six
//     compiled ShaderModules.
//   - ShaderSet / BuildShaderSet / CompileShaders: BAND_COUNT-templated
//     WGSL sources and their naga-validated compiled handles.
//   - Buffer, GPUTexture: typed wrappers over hal.Buffer / wgpu texture
//     resources. No pipeline stage allocates them; the engine renders
//     through the CPU reference path.
//   - MemoryManager: LRU-eviction budget tracker for GPUTexture
//     allocations.
//   - ComputePassEncoder, RenderPassEncoder, CoreCommandEncoder: thin
//     recording wrappers around the corresponding wgpu/core pass and
//     encoder types.
//
// # Usage
//
//	b := gpu.NewBackend()
//	if err := b.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	shaders := b.Shaders() // compiled beam-write/resolve/decay/scatter/composite modules
//
// # Requirements
//
//   - Go 1.25+
//   - github.com/gogpu/wgpu (pure Go WebGPU)
//   - github.com/gogpu/naga (WGSL -> SPIR-V validation)
//   - A GPU supporting Vulkan, Metal, or DX12 for Init to succeed;
//     without one, Init returns ErrNoGPU. Either way frames are rendered
//     by the CPU reference path in internal/pipeline/cpuref: this package
//     compiles and validates the shaders but dispatches no work.
//
// # Thread Safety
//
// Backend is safe for concurrent use; its exported methods hold an
// internal mutex.
package gpu
