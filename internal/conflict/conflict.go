// Package conflict decides what happens when an output path already exists.
// The resolver is a small state machine owned by the batch loop; the sticky
// "all" states persist for the remainder of the batch.
package conflict

// Policy selects the resolver's initial state.
type Policy int

const (
	PolicyPrompt Policy = iota
	PolicyOverwrite
	PolicySkip
)

// Decision is the per-file outcome of a conflict query.
type Decision int

const (
	OverwriteOnce Decision = iota
	SkipOnce
	OverwriteAll
	SkipAll
	Cancelled
)

func (d Decision) Overwrite() bool { return d == OverwriteOnce || d == OverwriteAll }

// ReplyCancel is the out-of-band prompt answer for aborting the batch while a
// conflict prompt is open. It resolves to Cancelled without touching the
// sticky state, so the in-flight file is not misreported as skipped.
const ReplyCancel byte = 0x03

// Prompter solicits one overwrite choice from the operator. Implementations
// block until input is available. Any byte other than y/n/a/s or ReplyCancel
// is rejected and the prompt repeated.
type Prompter interface {
	PromptConflict(path string) byte
}

type state int

const (
	statePrompt state = iota
	stateAlwaysOverwrite
	stateAlwaysSkip
)

// Resolver holds the batch-scoped conflict state. Construct once per
// invocation; never reset mid-batch.
type Resolver struct {
	state    state
	prompter Prompter
}

func NewResolver(policy Policy, prompter Prompter) *Resolver {
	r := &Resolver{prompter: prompter}
	switch policy {
	case PolicyOverwrite:
		r.state = stateAlwaysOverwrite
	case PolicySkip:
		r.state = stateAlwaysSkip
	}
	return r
}

// WouldPrompt reports whether Resolve would block on operator input for an
// output path in the given existence state. The batch loop uses this to flush
// progress and honor cancellation before entering the wait.
func (r *Resolver) WouldPrompt(exists bool) bool {
	return exists && r.state == statePrompt
}

// Resolve returns the decision for one output path. Paths that do not exist
// are never a conflict. In the sticky states the stored decision is returned
// without interaction.
func (r *Resolver) Resolve(path string, exists bool) Decision {
	switch r.state {
	case stateAlwaysOverwrite:
		return OverwriteAll
	case stateAlwaysSkip:
		return SkipAll
	}
	if !exists {
		return OverwriteOnce
	}

	for {
		switch r.prompter.PromptConflict(path) {
		case 'y':
			return OverwriteOnce
		case 'n':
			return SkipOnce
		case 'a':
			r.state = stateAlwaysOverwrite
			return OverwriteAll
		case 's':
			r.state = stateAlwaysSkip
			return SkipAll
		case ReplyCancel:
			return Cancelled
		}
	}
}
