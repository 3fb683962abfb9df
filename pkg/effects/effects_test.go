package effects

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestDescriptor_CSS(t *testing.T) {
	d := New(
		Op{Kind: Brightness, Amount: 150},
		Op{Kind: Contrast, Amount: 100},
		Op{Kind: Saturate, Amount: 100},
		Op{Kind: Rotate, Amount: 0},
		Op{Kind: Sepia, Amount: 50},
		Op{Kind: HueRotate, Amount: -30},
		Op{Kind: Blur, Amount: 2},
	)

	want := "brightness(150%) contrast(100%) saturate(100%) rotate(0deg) sepia(50%) hue-rotate(-30deg) blur(2px)"
	if got := d.CSS(); got != want {
		t.Errorf("CSS()\n got: %s\nwant: %s", got, want)
	}
	if got := d.String(); got != want {
		t.Errorf("String() should equal CSS(), got %s", got)
	}
}

func TestDescriptor_SplitsGeometry(t *testing.T) {
	d := New(
		Op{Kind: Brightness, Amount: 120},
		Op{Kind: Rotate, Amount: 90},
		Op{Kind: Grayscale, Amount: 100},
	)

	if got := d.CSSFilter(); got != "brightness(120%) grayscale(100%)" {
		t.Errorf("CSSFilter() = %q", got)
	}
	if got := d.CSSTransform(); got != "rotate(90deg)" {
		t.Errorf("CSSTransform() = %q", got)
	}
	if got := d.Rotation(); got != 90 {
		t.Errorf("Rotation() = %v, want 90", got)
	}

	empty := Descriptor{}
	if empty.CSSFilter() != "none" || empty.CSSTransform() != "none" {
		t.Errorf("expected none for empty descriptor, got %q / %q", empty.CSSFilter(), empty.CSSTransform())
	}
}

func TestDescriptor_AppendDoesNotAlias(t *testing.T) {
	base := New(Op{Kind: Brightness, Amount: 100})
	a := base.Append(Op{Kind: Sepia, Amount: 100})
	b := base.Append(Op{Kind: Blur, Amount: 2})

	if len(base.Ops) != 1 {
		t.Fatalf("base modified: %v", base.Ops)
	}
	if a.Ops[1].Kind != Sepia || b.Ops[1].Kind != Blur {
		t.Errorf("appended descriptors share storage: %v %v", a.Ops, b.Ops)
	}
}

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestApply_ColourOperations(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		ops  []Op
		want color.NRGBA
	}{
		{
			name: "identity sliders",
			in:   color.NRGBA{R: 10, G: 120, B: 240, A: 255},
			ops:  []Op{{Brightness, 100}, {Contrast, 100}, {Saturate, 100}, {Rotate, 45}},
			want: color.NRGBA{R: 10, G: 120, B: 240, A: 255},
		},
		{
			name: "brightness scales",
			in:   color.NRGBA{R: 100, G: 100, B: 100, A: 255},
			ops:  []Op{{Brightness, 150}},
			want: color.NRGBA{R: 150, G: 150, B: 150, A: 255},
		},
		{
			name: "brightness clamps",
			in:   color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			ops:  []Op{{Brightness, 200}},
			want: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		},
		{
			name: "zero contrast is mid grey",
			in:   color.NRGBA{R: 0, G: 255, B: 30, A: 255},
			ops:  []Op{{Contrast, 0}},
			want: color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		},
		{
			name: "grayscale red",
			in:   color.NRGBA{R: 255, A: 255},
			ops:  []Op{{Grayscale, 100}},
			want: color.NRGBA{R: 54, G: 54, B: 54, A: 255},
		},
		{
			name: "desaturate red",
			in:   color.NRGBA{R: 255, A: 255},
			ops:  []Op{{Saturate, 0}},
			want: color.NRGBA{R: 54, G: 54, B: 54, A: 255},
		},
		{
			name: "sepia white",
			in:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			ops:  []Op{{Sepia, 100}},
			want: color.NRGBA{R: 255, G: 255, B: 239, A: 255},
		},
		{
			name: "alpha preserved",
			in:   color.NRGBA{R: 100, G: 100, B: 100, A: 80},
			ops:  []Op{{Brightness, 50}},
			want: color.NRGBA{R: 50, G: 50, B: 50, A: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(solid(tt.in), New(tt.ops...))
			got := out.NRGBAAt(1, 1)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApply_ClampsBetweenOperations(t *testing.T) {
	// brightness(200%) saturates to white before brightness(50%) halves it.
	in := solid(color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	out := Apply(in, New(Op{Brightness, 200}, Op{Brightness, 50}))
	got := out.NRGBAAt(0, 0)
	if got.R != 128 {
		t.Errorf("expected clamped intermediate (128), got %d", got.R)
	}
}

func TestApply_OrderMatters(t *testing.T) {
	in := solid(color.NRGBA{R: 200, G: 40, B: 40, A: 255})

	a := Apply(in, New(Op{Sepia, 100}, Op{Brightness, 150})).NRGBAAt(0, 0)
	b := Apply(in, New(Op{Brightness, 150}, Op{Sepia, 100})).NRGBAAt(0, 0)
	if a == b {
		t.Errorf("expected different results for different op order, both %+v", a)
	}
}

func TestApply_BlurKeepsBounds(t *testing.T) {
	// Opaque background: blur weights by alpha, so on transparent pixels
	// only the alpha would spread.
	in := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	draw.Draw(in, in.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)
	in.SetNRGBA(10, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := Apply(in, New(Op{Blur, 2}))
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Fatalf("expected 20x10, got %v", out.Bounds())
	}
	centre := out.NRGBAAt(10, 5)
	if centre.R == 255 || centre.A != 255 {
		t.Errorf("expected the bright pixel to be spread by the blur, got %+v", centre)
	}
	if out.NRGBAAt(11, 5).R == 0 {
		t.Error("expected the neighbour to pick up brightness")
	}
}

func TestApply_DoesNotModifySource(t *testing.T) {
	in := solid(color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	Apply(in, New(Op{Brightness, 200}))
	if in.NRGBAAt(0, 0).R != 100 {
		t.Error("source image was modified")
	}
}
