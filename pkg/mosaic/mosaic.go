// Package mosaic arranges several images into a near-square grid whose
// overall canvas matches a target aspect ratio. Each cell is first fitted to
// the cell ratio (crop or pad) and then resized to the exact cell size.
package mosaic

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/A-Ravioli/img-boxer/pkg/processing"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

// DefaultCellHeight is the rendered height of one grid cell in pixels
const DefaultCellHeight = 300

// DefaultBackground is the canvas fill behind mosaic cells
func DefaultBackground() color.NRGBA {
	return color.NRGBA{A: 255}
}

// GridSize returns the near-square grid for n images: columns first, rows to
// cover the remainder.
func GridSize(n int) (rows, cols int) {
	if n <= 1 {
		return 1, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return rows, cols
}

// Builder composes mosaics using a shared pixel processor
type Builder struct {
	proc       *processing.Processor
	cellHeight int
}

// NewBuilder creates a Builder with the default cell height
func NewBuilder(proc *processing.Processor) *Builder {
	return &Builder{proc: proc, cellHeight: DefaultCellHeight}
}

// NewBuilderWithCellHeight creates a Builder rendering cells of the given height
func NewBuilderWithCellHeight(proc *processing.Processor, cellHeight int) *Builder {
	if cellHeight < 1 {
		cellHeight = DefaultCellHeight
	}
	return &Builder{proc: proc, cellHeight: cellHeight}
}

// Build assembles the images into one canvas with the target ratio.
// With R rows and C columns the canvas ratio is (C*cellW)/(R*cellH), so each
// cell gets ratio target*R/C to make the whole come out right.
func (b *Builder) Build(images []image.Image, target ratio.AspectRatio, mode transform.Mode) (image.Image, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images provided", transform.ErrInvalidInput)
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	rows, cols := GridSize(len(images))
	cellRatio := target.Value() * float64(rows) / float64(cols)
	cellH := b.cellHeight
	cellW := int(math.Floor(float64(cellH)*cellRatio + 0.5))
	if cellW < 1 {
		cellW = 1
	}

	canvas := imaging.New(cellW*cols, cellH*rows, DefaultBackground())

	for i, img := range images {
		cell, err := b.renderCell(img, cellRatio, cellW, cellH, mode)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		x := (i % cols) * cellW
		y := (i / cols) * cellH
		canvas = imaging.Paste(canvas, cell, image.Pt(x, y))
	}

	return canvas, nil
}

func (b *Builder) renderCell(img image.Image, cellRatio float64, cellW, cellH int, mode transform.Mode) (image.Image, error) {
	bounds := img.Bounds()
	plan, err := transform.ComputeRatio(bounds.Dx(), bounds.Dy(), cellRatio, mode)
	if err != nil {
		return nil, err
	}
	fitted, err := b.proc.Apply(img, plan)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(fitted, cellW, cellH, imaging.Lanczos), nil
}
