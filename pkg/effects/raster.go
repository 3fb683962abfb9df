package effects

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Luminance coefficients used by the saturate and hue-rotate matrices.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// matrix is a 3x3 colour matrix in row-major order, applied to
// non-premultiplied sRGB components in [0,1].
type matrix [9]float64

func (m matrix) apply(r, g, b float64) (float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b,
		m[3]*r + m[4]*g + m[5]*b,
		m[6]*r + m[7]*g + m[8]*b
}

// pixelFunc transforms one colour; components are in [0,1].
type pixelFunc func(r, g, b float64) (float64, float64, float64)

// Apply rasterizes the recolouring operations of d onto a copy of img, in
// order. Each operation clamps its result to [0,1] before the next one runs.
// Geometric operations are skipped; the compositor applies them as a canvas
// transform when drawing.
func Apply(img image.Image, d Descriptor) *image.NRGBA {
	out := imaging.Clone(img)

	var chain []pixelFunc
	flush := func() {
		if len(chain) == 0 {
			return
		}
		fns := chain
		chain = nil
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			r := float64(c.R) / 255
			g := float64(c.G) / 255
			b := float64(c.B) / 255
			for _, fn := range fns {
				r, g, b = fn(r, g, b)
				r, g, b = clamp01(r), clamp01(g), clamp01(b)
			}
			return color.NRGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: c.A}
		})
	}

	for _, op := range d.Ops {
		switch {
		case op.Geometric():
			continue
		case op.Kind == Blur:
			flush()
			if op.Amount > 0 {
				out = imaging.Blur(out, op.Amount)
			}
		default:
			if fn := pixelFor(op); fn != nil {
				chain = append(chain, fn)
			}
		}
	}
	flush()

	return out
}

// pixelFor returns the colour function for op, or nil when op is an identity.
func pixelFor(op Op) pixelFunc {
	switch op.Kind {
	case Brightness:
		if op.Amount == 100 {
			return nil
		}
		return transfer(op.Amount/100, 0)
	case Contrast:
		if op.Amount == 100 {
			return nil
		}
		slope := op.Amount / 100
		return transfer(slope, 0.5-0.5*slope)
	case Saturate:
		if op.Amount == 100 {
			return nil
		}
		return saturateMatrix(op.Amount / 100).apply
	case HueRotate:
		if math.Mod(op.Amount, 360) == 0 {
			return nil
		}
		return hueRotateMatrix(op.Amount).apply
	case Grayscale:
		if op.Amount <= 0 {
			return nil
		}
		return grayscaleMatrix(math.Min(op.Amount/100, 1)).apply
	case Sepia:
		if op.Amount <= 0 {
			return nil
		}
		return sepiaMatrix(math.Min(op.Amount/100, 1)).apply
	default:
		return nil
	}
}

// transfer is a linear component transfer: c' = slope*c + intercept.
func transfer(slope, intercept float64) pixelFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		return slope*r + intercept, slope*g + intercept, slope*b + intercept
	}
}

func saturateMatrix(s float64) matrix {
	return matrix{
		lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s,
		lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s,
		lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s,
	}
}

func hueRotateMatrix(deg float64) matrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return matrix{
		lumR + c*(1-lumR) - s*lumR, lumG - c*lumG - s*lumG, lumB - c*lumB + s*(1-lumB),
		lumR - c*lumR + s*0.143, lumG + c*(1-lumG) + s*0.140, lumB - c*lumB - s*0.283,
		lumR - c*lumR - s*(1-lumR), lumG - c*lumG + s*lumG, lumB + c*(1-lumB) + s*lumB,
	}
}

func grayscaleMatrix(amount float64) matrix {
	k := 1 - amount
	return matrix{
		0.2126 + 0.7874*k, 0.7152 - 0.7152*k, 0.0722 - 0.0722*k,
		0.2126 - 0.2126*k, 0.7152 + 0.2848*k, 0.0722 - 0.0722*k,
		0.2126 - 0.2126*k, 0.7152 - 0.7152*k, 0.0722 + 0.9278*k,
	}
}

func sepiaMatrix(amount float64) matrix {
	k := 1 - amount
	return matrix{
		0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k,
		0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k,
		0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k,
	}
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

func toByte(v float64) uint8 {
	return uint8(v*255 + 0.5)
}
