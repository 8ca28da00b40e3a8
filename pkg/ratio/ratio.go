package ratio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRatio is returned when a ratio string or its components are not
// two positive integers.
var ErrInvalidRatio = errors.New("invalid aspect ratio")

// AspectRatio represents a target aspect ratio as width and height units
type AspectRatio struct {
	W int
	H int
}

// Common aspect ratios
var (
	Widescreen = AspectRatio{16, 9}
	Standard   = AspectRatio{4, 3}
	Square     = AspectRatio{1, 1}
	Ultrawide  = AspectRatio{2, 1}
	Classic    = AspectRatio{3, 2}
)

// Presets returns the aspect ratios offered by the GUI picker
func Presets() []AspectRatio {
	return []AspectRatio{Widescreen, Standard, Square, Ultrawide, Classic}
}

// Parse converts an aspect ratio string in W:H form (e.g. "16:9") into an
// AspectRatio. Both components must be positive integers.
func Parse(s string) (AspectRatio, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return AspectRatio{}, fmt.Errorf("%w: %q must be in W:H form (e.g. 16:9)", ErrInvalidRatio, s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return AspectRatio{}, fmt.Errorf("%w: width %q is not an integer", ErrInvalidRatio, parts[0])
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return AspectRatio{}, fmt.Errorf("%w: height %q is not an integer", ErrInvalidRatio, parts[1])
	}

	r := AspectRatio{W: w, H: h}
	if err := r.Validate(); err != nil {
		return AspectRatio{}, err
	}
	return r, nil
}

// Validate checks that both components are positive
func (r AspectRatio) Validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("%w: %d:%d (both components must be > 0)", ErrInvalidRatio, r.W, r.H)
	}
	return nil
}

// Value returns the ratio as a float (width / height)
func (r AspectRatio) Value() float64 {
	return float64(r.W) / float64(r.H)
}

// String returns the ratio in W:H form
func (r AspectRatio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}
