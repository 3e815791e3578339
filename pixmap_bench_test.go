package phosphor

import "testing"

// BenchmarkSetPixel benchmarks per-pixel writes at the size RenderFrame
// performs them at every frame.
func BenchmarkSetPixel(b *testing.B) {
	pm := NewPixmap(800, 600)
	c := Red

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for y := 0; y < pm.Height(); y++ {
			for x := 0; x < pm.Width(); x++ {
				pm.SetPixel(x, y, c)
			}
		}
	}
}

// BenchmarkClear benchmarks filling an entire pixmap with one color.
func BenchmarkClear(b *testing.B) {
	pm := NewPixmap(800, 600)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.Clear(Black)
	}
}

// BenchmarkToImage benchmarks the conversion RenderFrame's caller would
// use to hand a frame to anything expecting an image.Image.
func BenchmarkToImage(b *testing.B) {
	pm := NewPixmap(800, 600)
	pm.Clear(White)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pm.ToImage()
	}
}
