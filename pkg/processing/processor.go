// Package processing does the pixel-level half of a fit: decoding source
// files, applying a transform.Plan, and encoding results. Format support
// covers png/jpeg/gif plus webp, bmp and tiff through golang.org/x/image and
// chai2010/webp.
package processing

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

// Options configure encoding and pad fill behavior
type Options struct {
	// Background fills letterbox/pillarbox borders
	Background color.NRGBA
	// Quality applies to JPEG and lossy WebP output (1-100)
	Quality int
	// Lossless switches WebP output to lossless mode
	Lossless bool
}

// DefaultOptions returns black borders and quality 95, matching the CLI
// defaults.
func DefaultOptions() Options {
	return Options{
		Background: color.NRGBA{A: 255},
		Quality:    95,
	}
}

// Processor applies transform plans to images and handles file round-trips
type Processor struct {
	opts Options
}

// New creates a Processor with default options
func New() *Processor {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Processor with custom options
func NewWithOptions(opts Options) *Processor {
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}
	return &Processor{opts: opts}
}

// Load reads and decodes an image file
func (p *Processor) Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Decode(f)
}

// Decode decodes an image from a reader, trying the registered decoders
// first and the chai2010 webp decoder as a fallback. x/image/webp covers
// lossy webp; the fallback picks up files it rejects.
func (p *Processor) Decode(r io.Reader) (image.Image, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		img, _, err := image.Decode(r)
		return img, err
	}

	if img, _, err := image.Decode(rs); err == nil {
		return img, nil
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, err := webp.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("image: unknown or unsupported format")
	}
	return img, nil
}

// Apply executes a transform plan against the image it was computed for
func (p *Processor) Apply(img image.Image, plan transform.Plan) (image.Image, error) {
	b := img.Bounds()
	if got := image.Pt(b.Dx(), b.Dy()); got != plan.Source {
		return nil, fmt.Errorf("plan computed for %v applied to %v image", plan.Source, got)
	}

	switch plan.Kind {
	case transform.KindCrop:
		if plan.Identity() {
			return img, nil
		}
		return imaging.Crop(img, plan.Rect.Add(b.Min)), nil
	case transform.KindPad:
		if plan.Identity() {
			return img, nil
		}
		canvas := imaging.New(plan.Canvas.X, plan.Canvas.Y, p.opts.Background)
		return imaging.Paste(canvas, img, plan.Offset), nil
	default:
		return nil, fmt.Errorf("unknown plan kind %d", plan.Kind)
	}
}

// Save encodes an image to path. An empty format means derive it from the
// path extension.
func (p *Processor) Save(img image.Image, path, format string) error {
	if format == "" {
		format = FormatForPath(path)
	}

	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, img, &webp.Options{Lossless: p.opts.Lossless, Quality: float32(p.opts.Quality)})
	case "bmp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return bmp.Encode(f, img)
	case "tif", "tiff":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case "gif":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return gif.Encode(f, img, nil)
	case "png":
		return imaging.Save(img, path)
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(p.opts.Quality))
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// FormatForPath maps a file extension to an encoder name, defaulting to png
// when the extension is unknown
func FormatForPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp", "bmp", "tif", "tiff":
		return ext
	default:
		return "png"
	}
}
