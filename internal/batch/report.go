package batch

// Outcome classifies the fate of one discovered file.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeSkippedExisting
	OutcomeSkippedFiltered
	OutcomeSkippedError
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeSkippedExisting:
		return "skipped (exists)"
	case OutcomeSkippedFiltered:
		return "skipped (filtered)"
	case OutcomeSkippedError:
		return "skipped (error)"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SkipEntry records one non-processed file and why it was not written.
type SkipEntry struct {
	Path    string
	Outcome Outcome
	Reason  string
}

// Report aggregates the batch. It is finalized exactly once, at normal
// completion or at cancellation, and its per-outcome counts always sum to
// Total, the number of discovered files.
type Report struct {
	Total           int
	Processed       int
	SkippedExisting int
	Errors          int
	Cancelled       int
	Warnings        int // non-fatal layer/frame warnings on files still processed
	Skipped         []SkipEntry
}

func (r *Report) record(path string, outcome Outcome, reason string) {
	switch outcome {
	case OutcomeProcessed:
		r.Processed++
		return
	case OutcomeSkippedExisting:
		r.SkippedExisting++
	case OutcomeSkippedError:
		r.Errors++
	case OutcomeCancelled:
		r.Cancelled++
	}
	r.Skipped = append(r.Skipped, SkipEntry{Path: path, Outcome: outcome, Reason: reason})
}
