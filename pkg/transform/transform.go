// Package transform computes the geometry needed to fit an image to a target
// aspect ratio. The computation is pure: given source dimensions, a target
// ratio, and a mode, it produces a Plan describing either the sub-rectangle to
// crop or the enlarged canvas and paste offset for letterbox/pillarbox
// padding. Pixel work happens elsewhere (pkg/processing).
package transform

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/A-Ravioli/img-boxer/pkg/ratio"
)

// ErrInvalidInput is returned when source dimensions or target ratio
// components are not positive.
var ErrInvalidInput = errors.New("invalid transform input")

// Mode selects how an image is fitted to the target ratio
type Mode int

const (
	// Crop removes pixels from one dimension, preserving the other
	Crop Mode = iota
	// Pad enlarges the canvas and centers the original image on it
	Pad
)

func (m Mode) String() string {
	switch m {
	case Crop:
		return "crop"
	case Pad:
		return "pad"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Kind discriminates the two Plan variants
type Kind int

const (
	// KindCrop plans carry a crop rectangle within source bounds
	KindCrop Kind = iota
	// KindPad plans carry a canvas size and a paste offset
	KindPad
)

// Plan is the computed geometry for fitting one image. Exactly one variant is
// populated, selected by Kind: crop plans use Rect, pad plans use Canvas and
// Offset. Source records the dimensions the plan was computed from.
type Plan struct {
	Kind   Kind
	Source image.Point

	// Crop variant: sub-rectangle of the source to keep
	Rect image.Rectangle

	// Pad variant: output canvas size and where to paste the source on it
	Canvas image.Point
	Offset image.Point
}

// Identity reports whether the plan leaves the image unchanged
func (p Plan) Identity() bool {
	switch p.Kind {
	case KindCrop:
		return p.Rect == image.Rect(0, 0, p.Source.X, p.Source.Y)
	case KindPad:
		return p.Canvas == p.Source && p.Offset == image.Point{}
	default:
		return false
	}
}

// OutputSize returns the dimensions of the transformed image
func (p Plan) OutputSize() image.Point {
	if p.Kind == KindCrop {
		return image.Pt(p.Rect.Dx(), p.Rect.Dy())
	}
	return p.Canvas
}

// Ratios closer than this are treated as already matching.
const tolerance = 1e-6

// Compute plans the fit of a srcW x srcH image to the target ratio. Crop mode
// removes pixels from the over-long dimension; pad mode grows the canvas along
// the short one. Either way the kept content stays centered, and when the
// removed or added amount is odd the extra pixel goes to the trailing
// (bottom/right) side.
func Compute(srcW, srcH int, target ratio.AspectRatio, mode Mode) (Plan, error) {
	if err := target.Validate(); err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ComputeRatio(srcW, srcH, target.Value(), mode)
}

// ComputeRatio is Compute with the target expressed as a width/height float.
// The mosaic builder needs this form because its cell ratios are generally
// not integer pairs.
func ComputeRatio(srcW, srcH int, targetRatio float64, mode Mode) (Plan, error) {
	if srcW <= 0 || srcH <= 0 {
		return Plan{}, fmt.Errorf("%w: source dimensions %dx%d", ErrInvalidInput, srcW, srcH)
	}
	if targetRatio <= 0 || math.IsNaN(targetRatio) || math.IsInf(targetRatio, 0) {
		return Plan{}, fmt.Errorf("%w: target ratio %f", ErrInvalidInput, targetRatio)
	}

	src := image.Pt(srcW, srcH)
	srcRatio := float64(srcW) / float64(srcH)

	if math.Abs(srcRatio-targetRatio) <= tolerance {
		return identityPlan(src, mode), nil
	}

	if mode == Crop {
		return cropPlan(src, srcRatio, targetRatio), nil
	}
	return padPlan(src, srcRatio, targetRatio), nil
}

func identityPlan(src image.Point, mode Mode) Plan {
	if mode == Crop {
		return Plan{
			Kind:   KindCrop,
			Source: src,
			Rect:   image.Rect(0, 0, src.X, src.Y),
		}
	}
	return Plan{
		Kind:   KindPad,
		Source: src,
		Canvas: src,
	}
}

func cropPlan(src image.Point, srcRatio, targetRatio float64) Plan {
	p := Plan{Kind: KindCrop, Source: src}

	if srcRatio > targetRatio {
		// Source is wider: keep full height, trim width.
		w := clampDim(roundHalfUp(float64(src.Y)*targetRatio), src.X)
		x := (src.X - w) / 2 // floor split keeps the extra pixel on the right
		p.Rect = image.Rect(x, 0, x+w, src.Y)
	} else {
		// Source is taller: keep full width, trim height.
		h := clampDim(roundHalfUp(float64(src.X)/targetRatio), src.Y)
		y := (src.Y - h) / 2
		p.Rect = image.Rect(0, y, src.X, y+h)
	}
	return p
}

func padPlan(src image.Point, srcRatio, targetRatio float64) Plan {
	p := Plan{Kind: KindPad, Source: src}

	if srcRatio > targetRatio {
		// Source is wider: keep full width, grow the canvas downward.
		h := roundHalfUp(float64(src.X) / targetRatio)
		if h < src.Y {
			h = src.Y
		}
		p.Canvas = image.Pt(src.X, h)
		p.Offset = image.Pt(0, (h-src.Y)/2)
	} else {
		// Source is taller: keep full height, grow the canvas rightward.
		w := roundHalfUp(float64(src.Y) * targetRatio)
		if w < src.X {
			w = src.X
		}
		p.Canvas = image.Pt(w, src.Y)
		p.Offset = image.Pt((w-src.X)/2, 0)
	}
	return p
}

// roundHalfUp rounds to nearest with .5 rounding up, never below 1px.
func roundHalfUp(v float64) int {
	n := int(math.Floor(v + 0.5))
	if n < 1 {
		n = 1
	}
	return n
}

func clampDim(v, max int) int {
	if v > max {
		return max
	}
	return v
}
