// Package filter provides the separable Gaussian kernel used by the
// faceplate-scatter stage of the phosphor pipeline.
//
// GaussianKernel and CachedGaussianKernel compute normalized 1D kernel
// weights for a given radius; internal/pipeline/cpuref applies them as
// two passes (horizontal then vertical) over the downsampled emission
// buffer to produce halation/bloom around bright beam strikes.
package filter
