package mosaic

import (
	"image"
	"image/color"
	"testing"

	"github.com/A-Ravioli/img-boxer/pkg/processing"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}

	for _, tt := range tests {
		rows, cols := GridSize(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("GridSize(%d) = %d rows x %d cols, want %d x %d", tt.n, rows, cols, tt.rows, tt.cols)
		}
		if tt.n > 0 && rows*cols < tt.n {
			t.Errorf("GridSize(%d) grid only holds %d images", tt.n, rows*cols)
		}
	}
}

func TestBuildSingleImage(t *testing.T) {
	b := NewBuilder(processing.New())
	img := solidImage(640, 480, color.NRGBA{R: 255, A: 255})

	out, err := b.Build([]image.Image{img}, ratio.Square, transform.Crop)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// One image: 1x1 grid, cell ratio equals the target, so the canvas is
	// cellHeight x cellHeight.
	bounds := out.Bounds()
	if bounds.Dx() != DefaultCellHeight || bounds.Dy() != DefaultCellHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), DefaultCellHeight, DefaultCellHeight)
	}
}

func TestBuildGridDimensions(t *testing.T) {
	b := NewBuilderWithCellHeight(processing.New(), 100)
	imgs := []image.Image{
		solidImage(100, 100, color.NRGBA{R: 255, A: 255}),
		solidImage(200, 100, color.NRGBA{G: 255, A: 255}),
		solidImage(100, 200, color.NRGBA{B: 255, A: 255}),
	}

	out, err := b.Build(imgs, ratio.Widescreen, transform.Pad)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 3 images: 2x2 grid, cell ratio = (16/9)*2/2, cell = 178x100.
	bounds := out.Bounds()
	if bounds.Dx() != 2*178 || bounds.Dy() != 2*100 {
		t.Errorf("canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), 2*178, 2*100)
	}
}

func TestBuildPlacesCells(t *testing.T) {
	b := NewBuilderWithCellHeight(processing.New(), 50)
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	imgs := []image.Image{
		solidImage(50, 50, red),
		solidImage(50, 50, green),
	}

	out, err := b.Build(imgs, ratio.Square, transform.Crop)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 2 images: 1 row x 2 cols, cell ratio = 1*1/2 = 0.5, cell 25x50.
	bounds := out.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Fatalf("canvas = %dx%d, want 50x50", bounds.Dx(), bounds.Dy())
	}

	left := color.NRGBAModel.Convert(out.At(12, 25)).(color.NRGBA)
	right := color.NRGBAModel.Convert(out.At(37, 25)).(color.NRGBA)
	if left.R < 200 || left.G > 50 {
		t.Errorf("left cell pixel = %+v, want red", left)
	}
	if right.G < 200 || right.R > 50 {
		t.Errorf("right cell pixel = %+v, want green", right)
	}
}

func TestBuildNoImages(t *testing.T) {
	b := NewBuilder(processing.New())
	if _, err := b.Build(nil, ratio.Square, transform.Crop); err == nil {
		t.Error("expected error for empty image list")
	}
}
