package pocketplus

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/bitvector"
	"github.com/tanagraspace/pocket-plus/mask"
	"github.com/tanagraspace/pocket-plus/primitive"
	"github.com/tanagraspace/pocket-plus/robustness"
)

// Compressor holds the adaptive state for one compression stream: the
// mask-update state machine and the robustness window. It processes one
// frame at a time with CompressFrame; for whole buffers with automatic
// parameter management, use Compress or Driver.
type Compressor struct {
	f      int
	mask   *mask.Updater
	window *robustness.Window
}

// NewCompressor returns a Compressor for frames of length f bits at base
// robustness level robustness (clamped to [0, MaxRobustness]). initialMask
// becomes M0; pass nil for an all-zero initial mask.
func NewCompressor(f, robustnessLevel int, initialMask *bitvector.Vector) (*Compressor, error) {
	if f <= 0 {
		return nil, &Error{Op: "NewCompressor", Err: fmt.Errorf("frame length %d must be positive: %w", f, ErrInvalidArgument)}
	}
	if initialMask != nil && initialMask.Len() != f {
		return nil, &Error{Op: "NewCompressor", Err: fmt.Errorf("initial mask length %d != frame length %d: %w", initialMask.Len(), f, ErrInvalidArgument)}
	}
	return &Compressor{
		f:      f,
		mask:   mask.New(f, initialMask),
		window: robustness.New(f, robustnessLevel),
	}, nil
}

// FrameLen returns the configured frame length F in bits.
func (c *Compressor) FrameLen() int { return c.f }

// T returns the number of frames compressed so far.
func (c *Compressor) T() int { return c.window.T() }

// Reset restores the compressor to its post-construction state.
func (c *Compressor) Reset() {
	c.mask.Reset()
	c.window.Reset()
}

// CompressFrame compresses one frame It (CCSDS Section 5.3), returning its
// byte-aligned output packet ot = ht || qt || ut.
func (c *Compressor) CompressFrame(input *bitvector.Vector, params FrameParams) ([]byte, error) {
	if input.Len() != c.f {
		return nil, &Error{Op: "CompressFrame", Err: fmt.Errorf("input length %d != frame length %d: %w", input.Len(), c.f, ErrInvalidArgument)}
	}

	t := c.window.T()
	_, change := c.mask.Update(input, params.NewMask, t)
	c.window.RecordChange(change)

	xt := c.window.ComputeWindow(change)
	vt := c.window.ComputeEffectiveRobustness()

	// ct is only ever communicated to the decoder as part of the kt
	// sub-field, which is only present when et=1; it must default to 0
	// (matching what a decoder reconstructs when et=0) rather than being
	// recomputed unconditionally, or the extraction-mask choice below
	// could silently diverge from the decoder's.
	ct := 0

	dt := 0
	if !params.SendMask && !params.Uncompressed {
		dt = 1
	}

	out := bitio.NewWriter()

	// ht = RLE(Xt) || BIT4(Vt) || et || kt || ct || dt
	if err := primitive.RLEEncode(out, xt); err != nil {
		return nil, &Error{Op: "CompressFrame", Err: err}
	}
	out.AppendBits(uint32(vt), 4)

	if vt > 0 && xt.HammingWeight() > 0 {
		et := robustness.HasPositiveUpdates(xt, c.mask.Mask())
		out.AppendBit(boolBit(et))

		if et {
			invertedMask := bitvector.New(c.f)
			invertedMask.Not(c.mask.Mask())
			if err := primitive.BitExtractForward(out, invertedMask, xt); err != nil {
				return nil, &Error{Op: "CompressFrame", Err: err}
			}
			ct = c.window.ComputeCtFlag(vt, params.NewMask)
			out.AppendBit(ct)
		}
	}
	out.AppendBit(dt)

	// qt = '' if dt=1, else '1' || RLE(Mt XOR (Mt<<1)) if ft=1, else '0'
	if dt == 0 {
		if params.SendMask {
			out.AppendBit(1)
			maskDiff := bitvector.New(c.f)
			maskDiff.Xor(c.mask.Mask(), c.mask.Mask().LeftShiftVal())
			if err := primitive.RLEEncode(out, maskDiff); err != nil {
				return nil, &Error{Op: "CompressFrame", Err: err}
			}
		} else {
			out.AppendBit(0)
		}
	}

	// ut = '1' || COUNT(F) || It if rt=1, else '0' || BE(It, extractionMask)
	if params.Uncompressed {
		out.AppendBit(1)
		if err := primitive.CountEncode(out, c.f); err != nil {
			return nil, &Error{Op: "CompressFrame", Err: err}
		}
		out.AppendVector(input)
	} else {
		if dt == 0 {
			out.AppendBit(0)
		}
		extractionMask := c.mask.Mask()
		if ct == 1 && vt > 0 {
			extractionMask = bitvector.New(c.f)
			extractionMask.Or(c.mask.Mask(), xt)
		}
		if err := primitive.BitExtract(out, input, extractionMask); err != nil {
			return nil, &Error{Op: "CompressFrame", Err: err}
		}
	}

	c.window.Advance(params.NewMask)
	return out.Bytes(), nil
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
