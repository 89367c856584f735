// Package errs defines the stable error kinds from spec.md §7. Callers
// match against these with errors.Is; the wrapping fmt.Errorf("%w", ...)
// at each call site carries the detail.
package errs

import "errors"

var (
	// ErrInvalidDictionary: malformed header, bad version, misaligned
	// sections, truncated blob.
	ErrInvalidDictionary = errors.New("invalid dictionary")

	// ErrInvalidInput: lone surrogate in input, or replace(begin, end, ...)
	// called with begin > end or begin == end on an input-text builder.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCandidateAtBoundary: lattice build reached a boundary with zero
	// candidates and no default OOV provider. Fatal per call.
	ErrNoCandidateAtBoundary = errors.New("no morpheme candidate at boundary")

	// ErrLatticeDisconnected: EOS cannot reach BOS. Fatal per call.
	ErrLatticeDisconnected = errors.New("lattice disconnected: EOS cannot reach BOS")

	// ErrPluginSetupFailed: a plugin's setup failed at dictionary-load time.
	ErrPluginSetupFailed = errors.New("plugin setup failed")

	// ErrConfigInvariant: an operation's configuration precondition was
	// violated (e.g. TokenChunker called with a mode other than SplitMode C).
	ErrConfigInvariant = errors.New("configuration invariant violated")
)
