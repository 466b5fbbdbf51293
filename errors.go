package pocketplus

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/errs"
)

// Sentinel errors distinguishable with errors.Is, without inspecting
// message text (CCSDS 124.0-B-1 does not define an error taxonomy of its
// own; this one separates "bad call" from "bad stream" from "impossible
// stream" for callers that need to react differently to each).
var (
	// ErrInvalidArgument marks a parameter rejected before any frame was
	// processed: a non-positive frame length, a robustness level or period
	// limit out of range, or an input length that isn't a whole number of
	// frames.
	ErrInvalidArgument = errs.ErrInvalidArgument
	// ErrOutOfBounds marks an assertion-class failure raised as a panic
	// rather than a normal return; it indicates a bug in the calling code,
	// not a malformed stream.
	ErrOutOfBounds = errs.ErrOutOfBounds
	// ErrEndOfStream marks a decode that ran past the end of the input.
	ErrEndOfStream = errs.ErrEndOfStream
	// ErrDecodeError marks a structurally valid but semantically
	// impossible decode, such as an RLE position underflow or a COUNT
	// value outside its defined range.
	ErrDecodeError = errs.ErrDecodeError
)

// Error wraps a failure with the operation that produced it. Unwrap
// exposes the underlying sentinel for errors.Is/errors.As.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pocketplus: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
