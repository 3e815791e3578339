// Package gpu is the compute-pipeline resource layer: wgpu device/queue
// lifecycle, buffer and texture allocation, and compute/render pass
// recording for the six-stage phosphor pipeline (§4.8-§4.12).
package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader source templates. The beam-write, spectral-resolve
// and decay templates contain a "{{BAND_COUNT}}" placeholder substituted at
// startup (see BuildShaderSet) so those kernels agree with
// internal/spectral.BandCount without duplicating the arithmetic in more
// than one place; the scatter and composite templates have none.

//go:embed shaders/beam_write.wgsl
var beamWriteTemplate string

//go:embed shaders/spectral_resolve.wgsl
var spectralResolveTemplate string

//go:embed shaders/decay.wgsl
var decayTemplate string

//go:embed shaders/scatter_downsample.wgsl
var scatterDownsampleSource string

//go:embed shaders/scatter_blur.wgsl
var scatterBlurSource string

//go:embed shaders/composite.wgsl
var compositeSource string

// ShaderModuleID identifies a compiled shader module. The zero value
// denotes an uncompiled/invalid module.
type ShaderModuleID uint64

// InvalidShaderModule is the zero ShaderModuleID.
const InvalidShaderModule ShaderModuleID = 0

// ShaderSet holds the WGSL sources for all six pipeline stages, with
// BAND_COUNT already substituted.
type ShaderSet struct {
	BeamWrite        string
	SpectralResolve  string
	Decay            string
	ScatterDownsample string
	ScatterBlur      string
	Composite        string
}

// BuildShaderSet substitutes the shared BAND_COUNT constant into the
// templated shaders and returns the complete six-stage source set.
// bandCount must match internal/spectral.BandCount; passing a different
// value is how the grid's width could change without touching any
// kernel's arithmetic by hand (see design note in spec §9).
func BuildShaderSet(bandCount int) (*ShaderSet, error) {
	if bandCount <= 0 {
		return nil, fmt.Errorf("gpu: band count must be positive, got %d", bandCount)
	}
	n := strconv.Itoa(bandCount)
	sub := func(tmpl string) string {
		return strings.ReplaceAll(tmpl, "{{BAND_COUNT}}", n)
	}
	return &ShaderSet{
		BeamWrite:         sub(beamWriteTemplate),
		SpectralResolve:   sub(spectralResolveTemplate),
		Decay:             sub(decayTemplate),
		ScatterDownsample: scatterDownsampleSource,
		ScatterBlur:       scatterBlurSource,
		Composite:         compositeSource,
	}, nil
}

// ShaderModules holds the compiled module handles for the six pipeline
// stages, indexed by the same names as ShaderSet.
type ShaderModules struct {
	BeamWrite         ShaderModuleID
	SpectralResolve   ShaderModuleID
	Decay             ShaderModuleID
	ScatterDownsample ShaderModuleID
	ScatterBlur       ShaderModuleID
	Composite         ShaderModuleID
}

// IsValid reports whether every stage has a compiled module.
func (s *ShaderModules) IsValid() bool {
	return s.BeamWrite != InvalidShaderModule &&
		s.SpectralResolve != InvalidShaderModule &&
		s.Decay != InvalidShaderModule &&
		s.ScatterDownsample != InvalidShaderModule &&
		s.ScatterBlur != InvalidShaderModule &&
		s.Composite != InvalidShaderModule
}

// compileWGSL validates WGSL source by compiling it to SPIR-V with naga,
// the same validate-before-upload step the teacher's shader helper uses
// (see _examples/gogpu-gg/internal/native/shader_helper.go). The decoded
// SPIR-V word count stands in for a module handle until a real device is
// wired in by the orchestrator's GPU backend.
func compileWGSL(name, source string) (ShaderModuleID, error) {
	if source == "" {
		return InvalidShaderModule, fmt.Errorf("gpu: %s shader source is empty", name)
	}
	spirv, err := naga.Compile(source)
	if err != nil {
		return InvalidShaderModule, fmt.Errorf("gpu: compile %s shader: %w", name, err)
	}
	if len(spirv) == 0 {
		return InvalidShaderModule, fmt.Errorf("gpu: %s shader compiled to empty SPIR-V", name)
	}
	return ShaderModuleID(len(spirv)), nil
}

// CompileShaders builds the BAND_COUNT-templated shader set and compiles
// every stage. deviceID is accepted for interface symmetry with the
// eventual real-device compile path but is not yet consulted: naga
// compiles WGSL to SPIR-V independent of any particular device.
func CompileShaders(deviceID uint64, bandCount int) (*ShaderModules, error) {
	set, err := BuildShaderSet(bandCount)
	if err != nil {
		return nil, err
	}

	modules := &ShaderModules{}
	var errs []error
	compile := func(name, src string, dst *ShaderModuleID) {
		id, err := compileWGSL(name, src)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = id
	}
	compile("beam_write", set.BeamWrite, &modules.BeamWrite)
	compile("spectral_resolve", set.SpectralResolve, &modules.SpectralResolve)
	compile("decay", set.Decay, &modules.Decay)
	compile("scatter_downsample", set.ScatterDownsample, &modules.ScatterDownsample)
	compile("scatter_blur", set.ScatterBlur, &modules.ScatterBlur)
	compile("composite", set.Composite, &modules.Composite)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return modules, nil
}
