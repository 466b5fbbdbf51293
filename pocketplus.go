// Package pocketplus implements CCSDS 124.0-B-1 ("POCKET+"), a lossless
// bit-exact compressor for streams of fixed-length telemetry frames. Each
// frame is compared against an adaptive mask of predictable bit positions;
// only the unpredictable bits, plus a compact description of how the mask
// changed, are transmitted.
//
// The package exposes two layers. Compressor and Decompressor are
// long-running session types that hold all of a stream's adaptive state
// (for Compressor: the mask, its change history, and the robustness window;
// for Decompressor: the reconstructed mask and the previous output frame)
// and process one frame at a time. Compress and Decompress are one-shot convenience
// functions built on top of them, for callers that have a whole buffer of
// fixed-length frames in hand and default automatic parameter management.
package pocketplus

import "github.com/tanagraspace/pocket-plus/robustness"

// MaxRobustness is the largest representable base robustness level Rt.
const MaxRobustness = robustness.MaxRobustness

// FrameParams controls how a single frame is compressed (CCSDS Section
// 5.3.1). The zero value compresses frames using only the adaptive mask,
// with no new-mask reset, no attached mask, and no uncompressed fallback.
type FrameParams struct {
	// NewMask requests that the mask be replaced, for this frame, by the
	// accumulated build vector OR'd with this frame's input changes (pt).
	NewMask bool
	// SendMask requests that the full mask be attached to this frame's
	// output, horizontally XOR-encoded (ft).
	SendMask bool
	// Uncompressed requests that this frame be sent in full, bypassing
	// mask-based compression (rt).
	Uncompressed bool
}
