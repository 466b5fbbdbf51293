// Package errs defines the sentinel error values shared by every POCKET+
// package (CCSDS 124.0-B-1 decoding can fail for reasons that are
// distinguishable without inspecting message text). It has no dependencies
// so every other package in this module, including leaf packages like bitio
// and primitive, can return these sentinels without an import cycle.
package errs

import "errors"

// ErrInvalidArgument marks a bad parameter (frame size, robustness, period
// limit, or input length) rejected before any processing occurs.
var ErrInvalidArgument = errors.New("pocketplus: invalid argument")

// ErrOutOfBounds marks an assertion-class failure: an index, length, or
// state invariant that correct calling code never violates. It is carried
// as a panic value, never returned directly, since by definition it
// indicates a bug in the caller rather than a condition to handle; no
// package in this module recovers it.
var ErrOutOfBounds = errors.New("pocketplus: out of bounds")

// ErrEndOfStream marks a read past the end of the input buffer.
var ErrEndOfStream = errors.New("pocketplus: end of stream")

// ErrDecodeError marks a structurally valid read that is semantically
// impossible (a COUNT value outside its defined range, an RLE position
// underflow, and similar).
var ErrDecodeError = errors.New("pocketplus: decode error")
