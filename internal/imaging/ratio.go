// Package imaging implements the raster transforms of the pipeline:
// orientation classification, aspect-ratio constraint crops, signature
// compositing, and resizing.
package imaging

import (
	"fmt"
	"strconv"
	"strings"

	"autosig/internal/errs"
)

// Orientation classifies an image by its width/height ratio.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	Square
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	case Square:
		return "square"
	default:
		return "unknown"
	}
}

// Classify buckets an image by ratio: above 1.2 is landscape, below 0.8 is
// portrait, anything between is square. Square follows the portrait path for
// cropping decisions.
func Classify(width, height int) Orientation {
	ratio := float64(width) / float64(height)
	switch {
	case ratio > 1.2:
		return Landscape
	case ratio < 0.8:
		return Portrait
	default:
		return Square
	}
}

// ParseRatio parses a "W:H" pair of positive integers or a bare positive
// decimal into a width/height ratio.
func ParseRatio(input string) (float64, error) {
	invalid := func(reason string) error {
		return errs.Wrap(errs.CategoryConfig, "imaging.parseRatio",
			fmt.Errorf("%w: %q (%s)", errs.ErrInvalidRatio, input, reason))
	}

	s := strings.TrimSpace(input)
	if s == "" {
		return 0, invalid("empty")
	}

	if w, h, ok := strings.Cut(s, ":"); ok {
		wi, errW := strconv.Atoi(strings.TrimSpace(w))
		hi, errH := strconv.Atoi(strings.TrimSpace(h))
		if errW != nil || errH != nil {
			return 0, invalid("expected W:H integers")
		}
		if wi <= 0 || hi <= 0 {
			return 0, invalid("components must be positive")
		}
		return float64(wi) / float64(hi), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid("not a number")
	}
	if v <= 0 {
		return 0, invalid("must be positive")
	}
	return v, nil
}
