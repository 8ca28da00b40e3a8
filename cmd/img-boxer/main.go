package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/A-Ravioli/img-boxer/internal/config"
	"github.com/A-Ravioli/img-boxer/internal/utils"
	"github.com/A-Ravioli/img-boxer/pkg/batch"
	"github.com/A-Ravioli/img-boxer/pkg/mosaic"
	"github.com/A-Ravioli/img-boxer/pkg/processing"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

func main() {
	var input, ratioStr, outputDir, format, mosaicOut, configPath string
	var crop bool
	var quality int

	flag.StringVar(&input, "input", "", "input image path glob (e.g. 'photos/*.jpg')")
	flag.StringVar(&ratioStr, "aspect-ratio", "", "target aspect ratio in W:H form (e.g. 16:9)")
	flag.BoolVar(&crop, "crop", false, "crop to the target ratio instead of padding")
	flag.StringVar(&outputDir, "output-dir", "", "output directory (default \"output\")")
	flag.StringVar(&format, "format", "", "output format override: jpg|png|webp|bmp|tiff|gif (default: keep source format)")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality 1-100 (default from config)")
	flag.StringVar(&mosaicOut, "mosaic", "", "compose all matched images into a single mosaic written to this path")
	flag.StringVar(&configPath, "config", "", "config file path (default: built-in defaults)")
	flag.Parse()

	if input == "" || ratioStr == "" {
		log.Fatalf("usage: %s --input 'glob' --aspect-ratio W:H [--crop] [--output-dir dir] [--mosaic out.png]",
			filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if quality != 0 {
		cfg.Output.Quality = quality
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	target, err := ratio.Parse(ratioStr)
	if err != nil {
		log.Fatalf("aspect ratio: %v", err)
	}

	mode := transform.Pad
	if crop {
		mode = transform.Crop
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	proc := processing.NewWithOptions(processing.Options{
		Background: bg,
		Quality:    cfg.Output.Quality,
		Lossless:   cfg.Output.Lossless,
	})

	if mosaicOut != "" {
		if err := runMosaic(proc, cfg, input, mosaicOut, target, mode); err != nil {
			log.Fatal(err)
		}
		return
	}

	p := batch.New(proc, batch.Options{OutputDir: outputDir, Format: format})
	results, err := p.Run(input, target, mode)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		if r.Status == batch.StatusSuccess {
			log.Printf("fitted %s -> %s", r.Path, r.OutputPath)
		} else {
			log.Printf("failed %s: %s: %v", r.Path, r.Reason, r.Err)
		}
	}

	s := batch.Summarize(results)
	fmt.Printf("%d processed, %d succeeded, %d failed\n", s.Total, s.Succeeded, s.Failed)
	if s.Failed > 0 {
		fmt.Println("failed files:")
		for _, r := range results {
			if r.Status == batch.StatusFailed {
				fmt.Printf("  %s (%s)\n", r.Path, r.Reason)
			}
		}
		os.Exit(1)
	}
}

// runMosaic loads every matched file and writes one composite image. A decode
// failure here is fatal: a mosaic with silently missing cells is worse than
// no mosaic.
func runMosaic(proc *processing.Processor, cfg *config.Config, pattern, outPath string, target ratio.AspectRatio, mode transform.Mode) error {
	files, err := utils.ExpandPattern(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %q", batch.ErrNoMatch, pattern)
	}

	images := make([]image.Image, 0, len(files))
	for _, path := range files {
		img, err := proc.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		images = append(images, img)
	}

	builder := mosaic.NewBuilderWithCellHeight(proc, cfg.Mosaic.CellHeight)
	out, err := builder.Build(images, target, mode)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := proc.Save(out, outPath, ""); err != nil {
		return err
	}
	log.Printf("wrote mosaic of %d images to %s", len(images), outPath)
	return nil
}
