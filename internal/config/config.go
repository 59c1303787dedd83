// Package config builds the immutable per-invocation processing
// configuration. All validation happens here; a validation failure aborts
// before any file is touched.
package config

import (
	"fmt"

	"autosig/internal/conflict"
	"autosig/internal/errs"
	"autosig/internal/format"
	"autosig/internal/imaging"
)

// PositionMode selects how the signature offset is computed.
type PositionMode int

const (
	PositionPixels PositionMode = iota
	PositionPercent
)

// Default suffixes stripped from discovery so a second run does not pick up
// the tool's own output.
var defaultExcludeSuffixes = []string{"_with_sig", "_processed"}

const (
	DefaultSuffix          = "_with_sig"
	DefaultSuffixNoSig     = "_processed"
	DefaultOffsetPixels    = 20
	DefaultQuality         = 90
	DefaultOutputFormatTag = "png"
)

// Options carries the raw invocation values before validation.
type Options struct {
	Directory     string
	SignaturePath string
	NoSignature   bool

	OffsetPixels  int
	OffsetPercent float64 // <0 when unset; overrides pixels when set
	MaxDimension  int

	Suffix    string
	SuffixSet bool // flag was given explicitly, even if empty

	OutputFormat string
	Quality      int

	InputFormats    []string // empty = all supported
	ExcludeSuffixes []string // user additions to the built-in defaults

	Overwrite    bool
	SkipExisting bool

	HideLayers []string

	MaxPortraitRatio  string
	MaxLandscapeRatio string
}

// Config is the validated, read-only invocation configuration.
type Config struct {
	Directory     string
	SignaturePath string

	SignatureEnabled bool
	Position         PositionMode
	OffsetPixels     int
	OffsetPercent    float64

	MaxDimension int

	Suffix       string
	OutputFormat format.Tag
	Quality      int

	InputFilter     map[format.Tag]bool
	ExcludeSuffixes []string

	ConflictPolicy conflict.Policy

	HideLayers []string

	MaxPortraitRatio  float64 // 0 = unset
	MaxLandscapeRatio float64 // 0 = unset
}

// New validates opts and builds the Config.
func New(opts Options) (*Config, error) {
	fail := func(msg string, args ...interface{}) (*Config, error) {
		return nil, errs.New(errs.CategoryConfig, "config.new", fmt.Errorf(msg, args...))
	}

	cfg := &Config{
		Directory:        opts.Directory,
		SignaturePath:    opts.SignaturePath,
		SignatureEnabled: !opts.NoSignature,
		OffsetPixels:     opts.OffsetPixels,
		MaxDimension:     opts.MaxDimension,
		Quality:          opts.Quality,
		HideLayers:       append([]string(nil), opts.HideLayers...),
	}

	if cfg.SignatureEnabled && cfg.SignaturePath == "" {
		return fail("signature file required unless signature mode is disabled")
	}

	if opts.OffsetPercent >= 0 {
		if opts.OffsetPercent > 50 {
			return fail("percent offset %v outside [0,50]", opts.OffsetPercent)
		}
		cfg.Position = PositionPercent
		cfg.OffsetPercent = opts.OffsetPercent
	} else {
		cfg.Position = PositionPixels
		if cfg.OffsetPixels < 0 {
			return fail("pixel offset must not be negative")
		}
	}

	if cfg.Quality < 1 || cfg.Quality > 100 {
		return fail("quality %d outside 1-100", cfg.Quality)
	}
	if opts.MaxDimension < 0 {
		return fail("max dimension must be positive")
	}

	out, err := format.Canonicalize(opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	if !format.CanEncode(out) {
		return fail("cannot write %s output", out)
	}
	cfg.OutputFormat = out

	if len(opts.InputFormats) == 0 {
		cfg.InputFilter = format.AllSet()
	} else {
		filter, err := format.Expand(opts.InputFormats)
		if err != nil {
			return nil, err
		}
		cfg.InputFilter = filter
	}

	if opts.MaxPortraitRatio != "" {
		r, err := imaging.ParseRatio(opts.MaxPortraitRatio)
		if err != nil {
			return nil, err
		}
		cfg.MaxPortraitRatio = r
	}
	if opts.MaxLandscapeRatio != "" {
		r, err := imaging.ParseRatio(opts.MaxLandscapeRatio)
		if err != nil {
			return nil, err
		}
		cfg.MaxLandscapeRatio = r
	}

	switch {
	case opts.Overwrite && opts.SkipExisting:
		return fail("overwrite and skip-existing are mutually exclusive")
	case opts.Overwrite:
		cfg.ConflictPolicy = conflict.PolicyOverwrite
	case opts.SkipExisting:
		cfg.ConflictPolicy = conflict.PolicySkip
	default:
		cfg.ConflictPolicy = conflict.PolicyPrompt
	}

	cfg.Suffix = resolveSuffix(opts, cfg.SignatureEnabled)

	cfg.ExcludeSuffixes = append([]string(nil), defaultExcludeSuffixes...)
	if cfg.Suffix != "" && !contains(cfg.ExcludeSuffixes, cfg.Suffix) {
		cfg.ExcludeSuffixes = append(cfg.ExcludeSuffixes, cfg.Suffix)
	}
	for _, s := range opts.ExcludeSuffixes {
		if s != "" && !contains(cfg.ExcludeSuffixes, s) {
			cfg.ExcludeSuffixes = append(cfg.ExcludeSuffixes, s)
		}
	}

	return cfg, nil
}

// resolveSuffix picks the output suffix: an explicit flag always wins
// (including an explicit empty value); otherwise the default depends on
// whether a signature is being applied.
func resolveSuffix(opts Options, signatureEnabled bool) string {
	if opts.SuffixSet {
		return opts.Suffix
	}
	if signatureEnabled {
		return DefaultSuffix
	}
	return DefaultSuffixNoSig
}

// Placement resolves the configured positioning mode against the target
// dimensions.
func (c *Config) Placement(width, height int) imaging.Placement {
	if c.Position == PositionPercent {
		return imaging.PercentPlacement(width, height, c.OffsetPercent)
	}
	return imaging.PixelPlacement(c.OffsetPixels)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
