package transform

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/A-Ravioli/img-boxer/pkg/ratio"
)

func TestComputeCropWideSource(t *testing.T) {
	// 1920x1080 to square: keep the 1080 height, trim width to 1080,
	// centered at x=420.
	plan, err := Compute(1920, 1080, ratio.Square, Crop)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if plan.Kind != KindCrop {
		t.Fatalf("expected crop plan, got kind %d", plan.Kind)
	}
	want := image.Rect(420, 0, 1500, 1080)
	if plan.Rect != want {
		t.Errorf("crop rect = %v, want %v", plan.Rect, want)
	}
}

func TestComputeCropTallSource(t *testing.T) {
	plan, err := Compute(600, 800, ratio.AspectRatio{W: 4, H: 3}, Crop)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Height trims to round(600/(4/3)) = 450, centered with the odd
	// remainder (800-450=350, even here) split evenly.
	want := image.Rect(0, 175, 600, 625)
	if plan.Rect != want {
		t.Errorf("crop rect = %v, want %v", plan.Rect, want)
	}
}

func TestComputePadBranchSelection(t *testing.T) {
	// 800x600 (ratio 1.333) against 16:9 (1.778): the source is narrower
	// than the target, so padding must grow the width, never shrink the
	// height to 450.
	plan, err := Compute(800, 600, ratio.Widescreen, Pad)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if plan.Kind != KindPad {
		t.Fatalf("expected pad plan, got kind %d", plan.Kind)
	}
	if want := image.Pt(1067, 600); plan.Canvas != want {
		t.Errorf("canvas = %v, want %v", plan.Canvas, want)
	}
	if want := image.Pt(133, 0); plan.Offset != want {
		t.Errorf("offset = %v, want %v", plan.Offset, want)
	}
}

func TestComputePadWideSource(t *testing.T) {
	// 1920x800 to 16:9: keep width, canvas height = round(1920/(16/9)) = 1080.
	plan, err := Compute(1920, 800, ratio.Widescreen, Pad)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if want := image.Pt(1920, 1080); plan.Canvas != want {
		t.Errorf("canvas = %v, want %v", plan.Canvas, want)
	}
	if want := image.Pt(0, 140); plan.Offset != want {
		t.Errorf("offset = %v, want %v", plan.Offset, want)
	}
}

func TestComputeIdentity(t *testing.T) {
	cases := []struct {
		w, h   int
		target ratio.AspectRatio
	}{
		{1920, 1080, ratio.Widescreen},
		{100, 100, ratio.Square},
		{4000, 3000, ratio.Standard},
	}

	for _, tc := range cases {
		for _, mode := range []Mode{Crop, Pad} {
			plan, err := Compute(tc.w, tc.h, tc.target, mode)
			if err != nil {
				t.Fatalf("Compute(%dx%d, %v, %v) failed: %v", tc.w, tc.h, tc.target, mode, err)
			}
			if !plan.Identity() {
				t.Errorf("Compute(%dx%d, %v, %v) = %+v, want identity", tc.w, tc.h, tc.target, mode, plan)
			}
			if got := plan.OutputSize(); got != image.Pt(tc.w, tc.h) {
				t.Errorf("identity output size = %v, want %dx%d", got, tc.w, tc.h)
			}
		}
	}
}

func TestComputeOddRemainderTrailing(t *testing.T) {
	// Crop: 10x3 to 3:1 keeps round(3*3)=9 columns; the single removed
	// column comes off the right edge.
	plan, err := Compute(10, 3, ratio.AspectRatio{W: 3, H: 1}, Crop)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if want := image.Rect(0, 0, 9, 3); plan.Rect != want {
		t.Errorf("crop rect = %v, want %v", plan.Rect, want)
	}

	// Pad: 5x2 to 2:1 grows the canvas to round(5/2)=3 rows (half rounds
	// up); the single added row goes to the bottom.
	plan, err = Compute(5, 2, ratio.Ultrawide, Pad)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if want := image.Pt(5, 3); plan.Canvas != want {
		t.Errorf("canvas = %v, want %v", plan.Canvas, want)
	}
	if plan.Offset.Y != 0 {
		t.Errorf("offset.Y = %d, want 0 (extra row trails at the bottom)", plan.Offset.Y)
	}
}

func TestComputeTieBreakStable(t *testing.T) {
	first, err := Compute(11, 4, ratio.Ultrawide, Crop)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		plan, err := Compute(11, 4, ratio.Ultrawide, Crop)
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if plan != first {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, plan, first)
		}
	}
}

func TestComputeResultRatio(t *testing.T) {
	sizes := [][2]int{{1920, 1080}, {800, 600}, {333, 777}, {1024, 1024}, {51, 997}}
	targets := []ratio.AspectRatio{ratio.Square, ratio.Widescreen, ratio.Classic, {W: 9, H: 16}}

	for _, sz := range sizes {
		for _, target := range targets {
			plan, err := Compute(sz[0], sz[1], target, Crop)
			if err != nil {
				t.Fatalf("Compute(%v, %v) failed: %v", sz, target, err)
			}
			out := plan.OutputSize()
			got := float64(out.X) / float64(out.Y)

			// One pixel of rounding slack on the short dimension.
			short := out.X
			if out.Y < short {
				short = out.Y
			}
			tol := 1.0 / float64(short)
			if math.Abs(got-target.Value()) > tol {
				t.Errorf("crop %v to %v: output %v has ratio %f, want %f +/- %f",
					sz, target, out, got, target.Value(), tol)
			}
		}
	}
}

func TestComputeMinimumOnePixel(t *testing.T) {
	// Extreme ratio against a tiny image must never plan a zero-size crop.
	plan, err := Compute(2, 1000, ratio.AspectRatio{W: 100, H: 1}, Crop)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if plan.Rect.Dx() < 1 || plan.Rect.Dy() < 1 {
		t.Errorf("crop rect %v has a zero dimension", plan.Rect)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		target ratio.AspectRatio
	}{
		{"zero width", 0, 100, ratio.Square},
		{"zero height", 100, 0, ratio.Square},
		{"negative width", -5, 100, ratio.Square},
		{"zero ratio width", 100, 100, ratio.AspectRatio{W: 0, H: 1}},
		{"negative ratio height", 100, 100, ratio.AspectRatio{W: 16, H: -9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.w, tc.h, tc.target, Crop)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Compute error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if Crop.String() != "crop" || Pad.String() != "pad" {
		t.Errorf("Mode strings = %q, %q", Crop.String(), Pad.String())
	}
}
