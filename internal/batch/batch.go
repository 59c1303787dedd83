// Package batch sequences the per-file pipeline: hide layers, constrain,
// composite the signature, resize, resolve conflicts, write. One bad file
// never aborts the batch; cancellation is honored between files.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"autosig/internal/codec"
	"autosig/internal/config"
	"autosig/internal/conflict"
	"autosig/internal/discover"
	"autosig/internal/errs"
	"autosig/internal/format"
	"autosig/internal/imaging"
	"autosig/internal/psddoc"
)

// UI is the progress and interaction surface the batch drives. Rendering is
// the implementation's concern; calls arrive from the single batch goroutine.
type UI interface {
	conflict.Prompter

	// ReportProgress is called after every file, and flushed immediately
	// before a blocking conflict prompt.
	ReportProgress(done, total int)
	// Note reports an informational, non-warning message for a file.
	Note(path, msg string)
	// Warn reports a non-fatal warning for a file.
	Warn(path, msg string)
	// ReportCancellation is called once when the batch stops early.
	ReportCancellation(processed, remaining int, skipped []SkipEntry)
}

// Runner executes one batch over a directory.
type Runner struct {
	cfg      *config.Config
	ui       UI
	resolver *conflict.Resolver
	sig      image.Image
}

func NewRunner(cfg *config.Config, ui UI) *Runner {
	return &Runner{
		cfg:      cfg,
		ui:       ui,
		resolver: conflict.NewResolver(cfg.ConflictPolicy, ui),
	}
}

// Run discovers the input files and processes them sequentially. The returned
// error is non-nil only for failures that abort before any file is touched
// (unreadable directory, unusable signature); per-file failures live in the
// Report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.cfg.SignatureEnabled {
		sig, err := loadSignature(r.cfg.SignaturePath)
		if err != nil {
			return nil, err
		}
		r.sig = sig
	}

	files, err := discover.Discover(r.cfg.Directory, r.cfg.InputFilter, r.cfg.ExcludeSuffixes)
	if err != nil {
		return nil, errs.Wrap(errs.CategoryConfig, "batch.discover", err)
	}

	report := &Report{Total: len(files)}
	for i, path := range files {
		if ctx.Err() != nil {
			r.cancelRemaining(report, files[i:])
			return report, nil
		}

		outcome, reason := r.processFile(ctx, path, report)
		report.record(path, outcome, reason)
		r.ui.ReportProgress(i+1, len(files))

		if outcome == OutcomeCancelled {
			r.cancelRemaining(report, files[i+1:])
			return report, nil
		}
	}
	return report, nil
}

func (r *Runner) cancelRemaining(report *Report, remaining []string) {
	for _, path := range remaining {
		report.record(path, OutcomeCancelled, "batch cancelled")
	}
	done := report.Processed + report.SkippedExisting + report.Errors
	r.ui.ReportCancellation(report.Processed, report.Total-done, report.Skipped)
}

// processFile runs the full pipeline for one file. All failures are reported
// as an outcome, never as a panic or batch abort.
func (r *Runner) processFile(ctx context.Context, path string, report *Report) (Outcome, string) {
	im, err := codec.DecodeFile(path)
	if err != nil {
		r.ui.Warn(path, err.Error())
		return OutcomeSkippedError, reasonOf(err)
	}

	if im.Frames > 1 {
		report.Warnings++
		r.ui.Warn(path, fmt.Sprintf("%d frames; using first frame only", im.Frames))
	}

	if len(r.cfg.HideLayers) > 0 {
		if im.Doc != nil {
			for _, w := range psddoc.HideLayers(im.Doc, r.cfg.HideLayers) {
				report.Warnings++
				r.ui.Warn(path, w.String())
			}
		} else {
			r.ui.Note(path, "not a layered format; hide-layer specs ignored")
		}
	}

	pixels := im.Flatten()

	b := pixels.Bounds()
	orientation := imaging.Classify(b.Dx(), b.Dy())
	pixels = imaging.Constrain(pixels, orientation, r.cfg.MaxPortraitRatio, r.cfg.MaxLandscapeRatio)

	if r.cfg.SignatureEnabled {
		cb := pixels.Bounds()
		signed, err := imaging.Composite(pixels, r.sig, r.cfg.Placement(cb.Dx(), cb.Dy()))
		if err != nil {
			r.ui.Warn(path, err.Error())
			return OutcomeSkippedError, reasonOf(err)
		}
		pixels = signed
	}

	pixels = imaging.ResizeToMax(pixels, r.cfg.MaxDimension)

	outPath := r.outputPath(path)
	exists := fileExists(outPath)

	if r.resolver.WouldPrompt(exists) {
		// Flush progress so the prompt does not interleave with stale output,
		// and honor cancellation before blocking on the operator.
		r.ui.ReportProgress(report.Processed, report.Total)
		if ctx.Err() != nil {
			return OutcomeCancelled, "batch cancelled"
		}
	}
	switch dec := r.resolver.Resolve(outPath, exists); {
	case dec == conflict.Cancelled:
		// The operator aborted from inside the prompt; the file was never
		// decided, so it counts as cancelled, not skipped.
		return OutcomeCancelled, "batch cancelled"
	case !dec.Overwrite():
		return OutcomeSkippedExisting, "output exists"
	}

	if err := codec.WriteFile(outPath, pixels, r.cfg.OutputFormat, r.cfg.Quality); err != nil {
		r.ui.Warn(path, err.Error())
		return OutcomeSkippedError, reasonOf(err)
	}
	return OutcomeProcessed, ""
}

// outputPath is {stem}{suffix}.{outputExt} next to the source file.
func (r *Runner) outputPath(srcPath string) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + r.cfg.Suffix + "." + format.Extension(r.cfg.OutputFormat)
	return filepath.Join(filepath.Dir(srcPath), name)
}

// loadSignature decodes the signature once for the whole batch. Layered
// signatures are composited as-is.
func loadSignature(path string) (image.Image, error) {
	im, err := codec.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return imaging.ToRGBA(im.Flatten()), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// reasonOf shortens a pipeline error into a report reason.
func reasonOf(err error) string {
	switch {
	case errors.Is(err, errs.ErrSignatureTooLarge):
		return "signature too large"
	case errs.IsCategory(err, errs.CategoryDecode):
		return "unreadable image"
	case errs.IsCategory(err, errs.CategoryWrite):
		return "write failed"
	default:
		return err.Error()
	}
}
