package accum

import (
	"testing"

	"github.com/crtlab/phosphor/internal/phosphordata"
)

func TestIndexLayerMajor(t *testing.T) {
	b := New(4, 3, 2)
	// index(x,y,l) = l*(W*H) + y*W + x
	if got, want := b.Index(1, 2, 0), 2*4+1; got != want {
		t.Errorf("Index(1,2,0) = %d, want %d", got, want)
	}
	if got, want := b.Index(1, 2, 1), 1*(4*3)+2*4+1; got != want {
		t.Errorf("Index(1,2,1) = %d, want %d", got, want)
	}
}

func TestResizeZeroesAndDiscards(t *testing.T) {
	b := New(2, 2, 1)
	b.Set(0, 0, 0, 5)
	b.Resize(2, 2, 1)
	if v := b.At(0, 0, 0); v != 0 {
		t.Errorf("after Resize, At(0,0,0) = %v, want 0 (new allocation)", v)
	}
}

func TestZeroPreservesDimensions(t *testing.T) {
	b := New(3, 3, 2)
	b.Set(1, 1, 1, 42)
	b.Zero()
	if b.Width() != 3 || b.Height() != 3 || b.Layers() != 2 {
		t.Fatalf("Zero changed dimensions: %dx%dx%d", b.Width(), b.Height(), b.Layers())
	}
	for l := 0; l < 2; l++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if v := b.At(x, y, l); v != 0 {
					t.Fatalf("At(%d,%d,%d) = %v after Zero, want 0", x, y, l, v)
				}
			}
		}
	}
}

func TestPixelCellsRoundTrip(t *testing.T) {
	b := New(2, 2, 3)
	b.WritePixelCells(1, 0, []float64{1, 2, 3})
	got := b.PixelCells(1, 0)
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PixelCells[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Other pixels are untouched.
	for _, v := range b.PixelCells(0, 0) {
		if v != 0 {
			t.Errorf("unrelated pixel (0,0) disturbed: %v", v)
		}
	}
}

func TestIsFiniteRejectsNegative(t *testing.T) {
	b := New(1, 1, 1)
	if !b.IsFinite() {
		t.Fatal("freshly zeroed buffer should be finite and non-negative")
	}
	b.Set(0, 0, 0, -1)
	if b.IsFinite() {
		t.Fatal("negative cell should fail IsFinite")
	}
}

func TestLayoutForDefensiveMinimum(t *testing.T) {
	zeroTermType := phosphordata.Type{
		Designation:     "ZERO",
		Fluorescence:    phosphordata.NewLayer(550, 40, nil),
		Phosphorescence: phosphordata.NewLayer(550, 40, nil),
	}
	_, n := LayoutFor(zeroTermType)
	if n != 1 {
		t.Errorf("LayoutFor with zero decay terms = %d layers, want 1 (defensive minimum)", n)
	}
}

func TestLayoutForP1TwoTierTwo(t *testing.T) {
	// §8 invariant 4 worked example: P1 is single-layer with two slow
	// exponentials; the fluorescence/phosphorescence slots collapse to
	// one emission group for the core pipeline, giving 2 layers total.
	terms := []phosphordata.DecayTerm{
		phosphordata.Exponential(1.0, 1e-3),
		phosphordata.Exponential(0.3, 5e-3),
	}
	p1 := phosphordata.Type{
		Designation:     "P1",
		IsDualLayer:     false,
		Fluorescence:    phosphordata.NewLayer(525, 40, terms),
		Phosphorescence: phosphordata.NewLayer(525, 40, terms),
	}
	_, n := LayoutFor(p1)
	if n != 2 {
		t.Errorf("LayoutFor(P1) = %d layers, want 2 (2 tier-2 layers, single group)", n)
	}
}
