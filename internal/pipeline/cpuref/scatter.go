package cpuref

import "github.com/crtlab/phosphor/internal/filter"

// ScatterConfig holds the §4.11 faceplate-scatter tunables. Sigma is
// shared by the horizontal and vertical blur passes (WGSL kernels take
// it as a single pipeline-overridable constant per axis, but nothing in
// the spec calls for anisotropic halation).
type ScatterConfig struct {
	// Threshold is the CIE Y bright-pass cutoff: only energy above this
	// luminance contributes to halation.
	Threshold float64
	// Sigma is the Gaussian blur standard deviation, in half-resolution
	// pixels. Sigma <= 0 must behave as a pass-through per §4.11.
	Sigma float64
}

// ThresholdDownsample implements §4.11 sub-pass 1: sample the HDR image
// at each 2x2 block center and keep only the fraction of luminance above
// Threshold, scaling RGB by bright_fraction/Y (zero when Y <= 0). Output
// is half-resolution in both dimensions (rounded down).
func ThresholdDownsample(hdr []RGBA, w, h int, threshold float64) (out []RGBA, ow, oh int) {
	ow, oh = w/2, h/2
	out = make([]RGBA, ow*oh)
	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			// 2x2 block center: average the four source texels, the
			// CPU-side equivalent of a GPU linear-filtered texel fetch
			// at the block midpoint.
			sx, sy := x*2, y*2
			c := averageBlock(hdr, w, h, sx, sy)
			bright := c.A - threshold
			if bright < 0 {
				bright = 0
			}
			scale := 0.0
			if c.A > 0 {
				scale = bright / c.A
			}
			out[y*ow+x] = RGBA{R: c.R * scale, G: c.G * scale, B: c.B * scale, A: bright}
		}
	}
	return out, ow, oh
}

func averageBlock(img []RGBA, w, h, x0, y0 int) RGBA {
	var sum RGBA
	n := 0
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			x, y := x0+dx, y0+dy
			if x >= w || y >= h {
				continue
			}
			c := img[y*w+x]
			sum.R += c.R
			sum.G += c.G
			sum.B += c.B
			sum.A += c.A
			n++
		}
	}
	if n == 0 {
		return RGBA{}
	}
	f := 1.0 / float64(n)
	return RGBA{R: sum.R * f, G: sum.G * f, B: sum.B * f, A: sum.A * f}
}

// BlurHorizontal and BlurVertical implement §4.11 sub-passes 2 and 3: a
// separable 1-D Gaussian blur, truncated at ceil(3*sigma), reusing the
// same cached-kernel machinery the scene-filter package built for its
// separable image blur (internal/filter.CachedGaussianKernel). Sigma <=
// 0 returns a copy of img unchanged.
func BlurHorizontal(img []RGBA, w, h int, sigma float64) []RGBA {
	if sigma <= 0 {
		return append([]RGBA(nil), img...)
	}
	kernel := filter.CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	out := make([]RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc RGBA
			for k, wt := range kernel {
				sx := clampIdx(x+k-half, w)
				c := img[y*w+sx]
				weight := float64(wt)
				acc.R += c.R * weight
				acc.G += c.G * weight
				acc.B += c.B * weight
				acc.A += c.A * weight
			}
			out[y*w+x] = acc
		}
	}
	return out
}

// BlurVertical is BlurHorizontal's orthogonal pass.
func BlurVertical(img []RGBA, w, h int, sigma float64) []RGBA {
	if sigma <= 0 {
		return append([]RGBA(nil), img...)
	}
	kernel := filter.CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	out := make([]RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc RGBA
			for k, wt := range kernel {
				sy := clampIdx(y+k-half, h)
				c := img[sy*w+x]
				weight := float64(wt)
				acc.R += c.R * weight
				acc.G += c.G * weight
				acc.B += c.B * weight
				acc.A += c.A * weight
			}
			out[y*w+x] = acc
		}
	}
	return out
}

func clampIdx(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Scatter runs the full §4.11 faceplate-scatter stage: threshold
// downsample followed by horizontal-then-vertical separable blur,
// producing a half-resolution halation image ready for bilinear
// sampling by the composite stage.
func Scatter(hdr []RGBA, w, h int, cfg ScatterConfig) (out []RGBA, ow, oh int) {
	down, ow, oh := ThresholdDownsample(hdr, w, h, cfg.Threshold)
	blurredH := BlurHorizontal(down, ow, oh, cfg.Sigma)
	blurredV := BlurVertical(blurredH, ow, oh, cfg.Sigma)
	return blurredV, ow, oh
}
