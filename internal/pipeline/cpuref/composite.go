package cpuref

import "math"

// TonemapMode selects the §4.12 composite-stage tonemap curve.
type TonemapMode int

const (
	TonemapNone TonemapMode = iota
	TonemapClamp
	TonemapReinhard
	TonemapACES
)

// CompositeConfig holds the §4.12 composite-stage tunables. Viewport
// coordinates are in output-pixel UV space (0..1 across the visible CRT
// image), the same space the barrel-distortion warp operates in.
type CompositeConfig struct {
	// BarrelK is the barrel-distortion coefficient; 0 disables distortion.
	BarrelK float64
	// GlassTint multiplies the composited color (faceplate glass color).
	// An all-zero tint leaves the color unchanged.
	GlassTint RGBA
	// EdgeFalloff is the vignette strength at the viewport corners, 0
	// disables edge falloff entirely.
	EdgeFalloff float64
	// Exposure is a pre-tonemap linear multiplier; 0 is treated as 1.
	Exposure float64
	// ScatterIntensity scales the halation contribution before it is
	// added to the sharp HDR sample.
	ScatterIntensity float64
	// Mode selects the tonemap curve applied after exposure and halation
	// are combined.
	Mode TonemapMode
}

// BilinearSample samples a layer-major-free RGBA image at normalized
// texture coordinates (u, v) in [0, 1], clamping to the edge outside that
// range, matching a GPU sampler configured with clamp-to-edge addressing
// and linear filtering.
func BilinearSample(img []RGBA, w, h int, u, v float64) RGBA {
	if w <= 0 || h <= 0 {
		return RGBA{}
	}
	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0c, y0c := clampIdx(x0, w), clampIdx(y0, h)
	x1c, y1c := clampIdx(x0+1, w), clampIdx(y0+1, h)

	c00 := img[y0c*w+x0c]
	c10 := img[y0c*w+x1c]
	c01 := img[y1c*w+x0c]
	c11 := img[y1c*w+x1c]

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	mix := func(a, b, c, d RGBA) RGBA {
		top := RGBA{
			R: lerp(a.R, b.R, tx),
			G: lerp(a.G, b.G, tx),
			B: lerp(a.B, b.B, tx),
			A: lerp(a.A, b.A, tx),
		}
		bot := RGBA{
			R: lerp(c.R, d.R, tx),
			G: lerp(c.G, d.G, tx),
			B: lerp(c.B, d.B, tx),
			A: lerp(c.A, d.A, tx),
		}
		return RGBA{
			R: lerp(top.R, bot.R, ty),
			G: lerp(top.G, bot.G, ty),
			B: lerp(top.B, bot.B, ty),
			A: lerp(top.A, bot.A, ty),
		}
	}
	return mix(c00, c10, c01, c11)
}

// BarrelDistort warps a normalized output coordinate (u, v), both in
// [0, 1] with the origin at the viewport center-relative [-1, 1] square
// remapped internally, back into the HDR/scatter source's sample space
// per §4.12's barrel-distortion model: r' = r * (1 + k*r^2). BarrelK == 0
// leaves (u, v) unchanged.
func BarrelDistort(u, v, barrelK float64) (du, dv float64) {
	if barrelK == 0 {
		return u, v
	}
	// Recenter to [-1, 1], apply radial warp, then remap to [0, 1].
	cx, cy := u*2-1, v*2-1
	r2 := cx*cx + cy*cy
	scale := 1 + barrelK*r2
	wx, wy := cx*scale, cy*scale
	return (wx + 1) / 2, (wy + 1) / 2
}

// EdgeFalloffWeight computes the §4.12 vignette multiplier for a normalized
// output coordinate, 1.0 at the center falling toward 1-strength at the
// corners (radius sqrt(2) at [-1,1] extents).
func EdgeFalloffWeight(u, v, strength float64) float64 {
	if strength <= 0 {
		return 1
	}
	cx, cy := u*2-1, v*2-1
	r := math.Sqrt(cx*cx + cy*cy)
	w := 1 - strength*clamp01(r/math.Sqrt2)
	return clamp01(w)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tonemap applies the selected curve to a single linear color channel.
func Tonemap(v float64, mode TonemapMode) float64 {
	switch mode {
	case TonemapClamp:
		return clamp01(v)
	case TonemapReinhard:
		return v / (1 + v)
	case TonemapACES:
		// Narkowicz 2015 fit.
		const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
		num := v * (a*v + b)
		den := v*(c*v+d) + e
		if den == 0 {
			return 0
		}
		return clamp01(num / den)
	default: // TonemapNone
		return v
	}
}

// CompositePixel produces one output pixel per §4.12: sample the sharp
// HDR image and the (half-resolution) scatter image at the
// barrel-distorted source coordinate, combine, apply edge falloff, glass
// tint and exposure, then tonemap each channel. (u, v) are normalized
// output coordinates in [0, 1]; outside the HDR image's extent after
// distortion the samples clamp to the edge, matching a real sampler
// rather than producing a hard black border.
func CompositePixel(u, v float64, hdr []RGBA, hw, hh int, scatter []RGBA, sw, sh int, cfg CompositeConfig) RGBA {
	du, dv := BarrelDistort(u, v, cfg.BarrelK)

	sharp := BilinearSample(hdr, hw, hh, du, dv)
	halo := BilinearSample(scatter, sw, sh, du, dv)

	r := sharp.R + halo.R*cfg.ScatterIntensity
	g := sharp.G + halo.G*cfg.ScatterIntensity
	b := sharp.B + halo.B*cfg.ScatterIntensity

	vign := EdgeFalloffWeight(u, v, cfg.EdgeFalloff)
	exposure := cfg.Exposure
	if exposure == 0 {
		exposure = 1
	}
	r *= exposure * vign
	g *= exposure * vign
	b *= exposure * vign

	tint := cfg.GlassTint
	if tint.R != 0 || tint.G != 0 || tint.B != 0 {
		r *= tint.R
		g *= tint.G
		b *= tint.B
	}

	return RGBA{
		R: Tonemap(r, cfg.Mode),
		G: Tonemap(g, cfg.Mode),
		B: Tonemap(b, cfg.Mode),
		A: 1,
	}
}

// CompositeFrame runs the full §4.12 composite stage over an output
// image of outW x outH pixels, sampling the HDR and scatter images at
// each output pixel's center.
func CompositeFrame(hdr []RGBA, hw, hh int, scatter []RGBA, sw, sh int, outW, outH int, cfg CompositeConfig) []RGBA {
	out := make([]RGBA, outW*outH)
	for y := 0; y < outH; y++ {
		v := (float64(y) + 0.5) / float64(outH)
		for x := 0; x < outW; x++ {
			u := (float64(x) + 0.5) / float64(outW)
			out[y*outW+x] = CompositePixel(u, v, hdr, hw, hh, scatter, sw, sh, cfg)
		}
	}
	return out
}
