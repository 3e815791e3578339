// Package wgpu wraps the gogpu/wgpu/core adapter and device lifecycle
// for the phosphor GPU backend (internal/gpu.Backend).
//
// It exposes the handful of operations internal/gpu needs around an
// already-selected core.AdapterID: reading adapter info for logging,
// requesting a logical device and its queue, checking device limits,
// and releasing both on shutdown. internal/gpu owns instance creation
// and adapter selection (core.NewInstance, RequestAdapter); this
// package only operates on the IDs it is handed.
//
// # Usage
//
//	info, err := wgpu.GetGPUInfo(adapterID)
//	wgpu.LogGPUInfo(adapterID)
//
//	deviceID, err := wgpu.CreateDevice(adapterID, "phosphor-gpu-device")
//	queueID, err := wgpu.GetDeviceQueue(deviceID)
//	...
//	_ = wgpu.ReleaseDevice(deviceID)
//	_ = wgpu.ReleaseAdapter(adapterID)
//
// # Requirements
//
//   - github.com/gogpu/wgpu/core and github.com/gogpu/wgpu/types
//   - A GPU supporting Vulkan, Metal, or DX12 for RequestDevice to
//     succeed; CreateDevice otherwise returns the underlying wgpu error.
package wgpu
