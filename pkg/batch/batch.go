// Package batch drives the per-file fitting loop: glob expansion, load,
// transform, write. Failures on individual files are collected, never raised
// past the loop, so one corrupt input cannot abort the rest of the run.
package batch

import (
	"errors"
	"fmt"

	"github.com/A-Ravioli/img-boxer/internal/utils"
	"github.com/A-Ravioli/img-boxer/pkg/processing"
	"github.com/A-Ravioli/img-boxer/pkg/ratio"
	"github.com/A-Ravioli/img-boxer/pkg/transform"
)

// ErrNoMatch is returned when a glob pattern matches no files
var ErrNoMatch = errors.New("no files match pattern")

// Status of one processed file
type Status int

const (
	// StatusSuccess means the file was transformed and written
	StatusSuccess Status = iota
	// StatusFailed means the file was skipped after an isolated error
	StatusFailed
)

// Reason classifies a per-file failure
type Reason int

const (
	// ReasonNone is set on successful results
	ReasonNone Reason = iota
	// ReasonDecode covers unreadable or corrupt inputs
	ReasonDecode
	// ReasonTransform covers plan computation failures
	ReasonTransform
	// ReasonWrite covers output encoding and I/O failures
	ReasonWrite
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDecode:
		return "decode error"
	case ReasonTransform:
		return "transform error"
	case ReasonWrite:
		return "write error"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Result records the outcome for one matched file
type Result struct {
	Path       string
	Status     Status
	OutputPath string
	Reason     Reason
	Err        error
}

// Options configure a batch run
type Options struct {
	OutputDir string
	// Format overrides the source format when non-empty
	Format string
}

// Processor runs batches of fit operations
type Processor struct {
	proc *processing.Processor
	opts Options
}

// New creates a batch processor writing to opts.OutputDir
func New(proc *processing.Processor, opts Options) *Processor {
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	return &Processor{proc: proc, opts: opts}
}

// Run fits every file matched by pattern to the target ratio. Setup problems
// (invalid ratio, bad or empty glob, unwritable output dir) fail before any
// file is touched; per-file problems are recorded in the returned slice,
// which always has one entry per matched file.
func (p *Processor) Run(pattern string, target ratio.AspectRatio, mode transform.Mode) ([]Result, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	files, err := utils.ExpandPattern(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}

	if err := utils.EnsureDir(p.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("cannot create output directory %q: %w", p.opts.OutputDir, err)
	}

	results := make([]Result, 0, len(files))
	for _, path := range files {
		results = append(results, p.processFile(path, target, mode))
	}
	return results, nil
}

func (p *Processor) processFile(path string, target ratio.AspectRatio, mode transform.Mode) Result {
	img, err := p.proc.Load(path)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: ReasonDecode, Err: err}
	}

	b := img.Bounds()
	plan, err := transform.Compute(b.Dx(), b.Dy(), target, mode)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: ReasonTransform, Err: err}
	}

	out, err := p.proc.Apply(img, plan)
	if err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: ReasonTransform, Err: err}
	}

	outPath := utils.OutputPath(path, p.opts.OutputDir, p.opts.Format)
	if err := p.proc.Save(out, outPath, p.opts.Format); err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: ReasonWrite, Err: err}
	}

	return Result{Path: path, Status: StatusSuccess, OutputPath: outPath}
}

// Summary aggregates a result list into success and failure counts
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize counts outcomes in a result list
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status == StatusSuccess {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
