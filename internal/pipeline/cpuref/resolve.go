package cpuref

import "github.com/crtlab/phosphor/internal/spectral"

// xyzToLinearSRGB is the IEC 61966-2-1 CIE XYZ → linear sRGB matrix.
var xyzToLinearSRGB = [3][3]float64{
	{3.2406, -1.5372, -0.4986},
	{-0.9689, 1.8758, 0.0415},
	{0.0557, -0.2040, 1.0570},
}

// RGBA is a linear-light color with CIE Y carried in A, matching the HDR
// accumulation target's format (§4.9): RGB in .rgb, true luminance in .a
// for luminance-preserving tone mapping downstream.
type RGBA struct {
	R, G, B, A float64
}

// ResolvePixel implements the §4.9 spectral resolve stage for one pixel:
// sum each group's scalar energy, distribute across the 16 spectral
// bands, integrate against the CIE color-matching functions, convert to
// linear sRGB, and gamut-map negative channels toward the achromatic
// axis.
func ResolvePixel(cells []float64, l Layout) RGBA {
	bandEnergy := BandEnergy(cells, l)

	var x, y, z float64
	for b := 0; b < 16; b++ {
		w := spectral.BandXYZWeights(b)
		x += bandEnergy[b] * w.X
		y += bandEnergy[b] * w.Y
		z += bandEnergy[b] * w.Z
	}

	r := xyzToLinearSRGB[0][0]*x + xyzToLinearSRGB[0][1]*y + xyzToLinearSRGB[0][2]*z
	g := xyzToLinearSRGB[1][0]*x + xyzToLinearSRGB[1][1]*y + xyzToLinearSRGB[1][2]*z
	bl := xyzToLinearSRGB[2][0]*x + xyzToLinearSRGB[2][1]*y + xyzToLinearSRGB[2][2]*z

	r, g, bl = gamutMap(r, g, bl, y)

	return RGBA{R: r, G: g, B: bl, A: y}
}

// gamutMap pulls an out-of-gamut (negative-channel) color toward the
// achromatic axis at luminance y, per §4.9: rgb ← mix(y, rgb, y/(y-min)),
// degenerating to black when y <= 0.
func gamutMap(r, g, b, y float64) (float64, float64, float64) {
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}
	if minC >= 0 {
		return r, g, b
	}
	if y <= 0 {
		return 0, 0, 0
	}
	t := y / (y - minC)
	mix := func(c float64) float64 { return y + t*(c-y) }
	return mix(r), mix(g), mix(b)
}
