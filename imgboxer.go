// Package imgboxer fits raster images to a target aspect ratio, either by
// center-cropping excess content or by letterbox/pillarbox padding.
//
// The geometry lives in pkg/transform as a pure computation; pkg/processing
// applies it to pixels; pkg/batch drives globs of files through the two; and
// pkg/mosaic composes many fitted images into one grid. The CLI
// (cmd/img-boxer) and the GUI (cmd/img-boxer-gui) both go through this
// facade, so identical inputs produce identical outputs in either mode.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		imgboxer "github.com/A-Ravioli/img-boxer"
//		"github.com/A-Ravioli/img-boxer/pkg/ratio"
//		"github.com/A-Ravioli/img-boxer/pkg/transform"
//	)
//
//	func main() {
//		boxer := imgboxer.New()
//		target := ratio.Widescreen
//
//		if err := boxer.FitFile("photo.png", "photo_16x9.png", target, transform.Pad); err != nil {
//			log.Fatal(err)
//		}
//	}
package imgboxer

import (
	"image"

	"github.com/A-Ravioli/img-boxer/pkg/batch"
	"github.com/A-Ravioli/img-boxer/pkg/mosaic"
	"github.com/A-Ravioli/img-boxer/pkg/processing"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

// Version of the img-boxer library
const Version = "1.0.0"

// Boxer provides a high-level interface over the fitting pipeline
type Boxer struct {
	proc *processing.Processor
}

// New creates a Boxer with default processing options
func New() *Boxer {
	return &Boxer{proc: processing.New()}
}

// NewWithOptions creates a Boxer with custom encoding and fill options
func NewWithOptions(opts processing.Options) *Boxer {
	return &Boxer{proc: processing.NewWithOptions(opts)}
}

// Fit transforms an in-memory image to the target ratio and returns the
// result together with the plan that produced it
func (b *Boxer) Fit(img image.Image, target ratio.AspectRatio, mode transform.Mode) (image.Image, transform.Plan, error) {
	bounds := img.Bounds()
	plan, err := transform.Compute(bounds.Dx(), bounds.Dy(), target, mode)
	if err != nil {
		return nil, transform.Plan{}, err
	}
	out, err := b.proc.Apply(img, plan)
	if err != nil {
		return nil, transform.Plan{}, err
	}
	return out, plan, nil
}

// FitFile loads inputPath, fits it to the target ratio, and writes the result
// to outputPath in the format implied by its extension
func (b *Boxer) FitFile(inputPath, outputPath string, target ratio.AspectRatio, mode transform.Mode) error {
	img, err := b.proc.Load(inputPath)
	if err != nil {
		return err
	}
	out, _, err := b.Fit(img, target, mode)
	if err != nil {
		return err
	}
	return b.proc.Save(out, outputPath, "")
}

// ProcessGlob fits every file matched by pattern, writing results under
// outputDir, and returns one result per matched file
func (b *Boxer) ProcessGlob(pattern, outputDir string, target ratio.AspectRatio, mode transform.Mode) ([]batch.Result, error) {
	p := batch.New(b.proc, batch.Options{OutputDir: outputDir})
	return p.Run(pattern, target, mode)
}

// Mosaic composes the images into a single grid canvas with the target ratio
func (b *Boxer) Mosaic(images []image.Image, target ratio.AspectRatio, mode transform.Mode) (image.Image, error) {
	return mosaic.NewBuilder(b.proc).Build(images, target, mode)
}

// LoadImage loads an image from file
func (b *Boxer) LoadImage(path string) (image.Image, error) {
	return b.proc.Load(path)
}

// SaveImage saves an image to file in the format implied by the extension
func (b *Boxer) SaveImage(img image.Image, path string) error {
	return b.proc.Save(img, path, "")
}
