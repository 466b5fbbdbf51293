package pocketplus

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/bitvector"
	"github.com/tanagraspace/pocket-plus/primitive"
)

// Decompressor holds the adaptive state for one decompression stream: the
// reconstructed mask and the previous output frame. Unlike Compressor, it
// needs no change or flag history — Vt, et, kt, and ct arrive on the wire.
type Decompressor struct {
	f           int
	mask        *bitvector.Vector
	initialMask *bitvector.Vector
	prevOutput  *bitvector.Vector
	positive    *bitvector.Vector // et=1 positions newly unmasked this frame
	t           int
}

// NewDecompressor returns a Decompressor for frames of length f bits.
// initialMask becomes M0; pass nil for an all-zero initial mask.
func NewDecompressor(f int, initialMask *bitvector.Vector) (*Decompressor, error) {
	if f <= 0 {
		return nil, &Error{Op: "NewDecompressor", Err: fmt.Errorf("frame length %d must be positive: %w", f, ErrInvalidArgument)}
	}
	if initialMask != nil && initialMask.Len() != f {
		return nil, &Error{Op: "NewDecompressor", Err: fmt.Errorf("initial mask length %d != frame length %d: %w", initialMask.Len(), f, ErrInvalidArgument)}
	}
	d := &Decompressor{
		f:           f,
		mask:        bitvector.New(f),
		initialMask: bitvector.New(f),
		prevOutput:  bitvector.New(f),
		positive:    bitvector.New(f),
	}
	if initialMask != nil {
		d.initialMask.CopyFrom(initialMask)
		d.mask.CopyFrom(initialMask)
	}
	return d, nil
}

// FrameLen returns the configured frame length F in bits.
func (d *Decompressor) FrameLen() int { return d.f }

// T returns the number of frames decompressed so far.
func (d *Decompressor) T() int { return d.t }

// Reset restores the decompressor to its post-construction state.
func (d *Decompressor) Reset() {
	d.t = 0
	d.mask.CopyFrom(d.initialMask)
	d.prevOutput.Zero()
	d.positive.Zero()
}

// DecompressFrame parses one frame's output packet from r and returns the
// reconstructed frame It. r should be positioned at the start of a packet;
// the caller is responsible for byte-aligning r between frames.
func (d *Decompressor) DecompressFrame(r *bitio.Reader) (*bitvector.Vector, error) {
	output := d.prevOutput.Copy()
	d.positive.Zero()

	xt, err := primitive.RLEDecode(r, d.f)
	if err != nil {
		return nil, &Error{Op: "DecompressFrame", Err: err}
	}

	vtRaw, err := r.ReadBits(4)
	if err != nil {
		return nil, &Error{Op: "DecompressFrame", Err: err}
	}
	vt := int(vtRaw)

	ct := 0
	changeCount := xt.HammingWeight()

	switch {
	case vt > 0 && changeCount > 0:
		et, err := r.ReadBit()
		if err != nil {
			return nil, &Error{Op: "DecompressFrame", Err: err}
		}
		if et == 1 {
			ktBits := make([]int, 0, changeCount)
			for i := 0; i < d.f; i++ {
				if xt.Get(i) != 1 {
					continue
				}
				bit, err := r.ReadBit()
				if err != nil {
					return nil, &Error{Op: "DecompressFrame", Err: err}
				}
				ktBits = append(ktBits, bit)
			}
			idx := 0
			for i := 0; i < d.f; i++ {
				if xt.Get(i) != 1 {
					continue
				}
				if ktBits[idx] == 1 {
					d.mask.Set(i, 0)
					d.positive.Set(i, 1)
				} else {
					d.mask.Set(i, 1)
				}
				idx++
			}
			ctBit, err := r.ReadBit()
			if err != nil {
				return nil, &Error{Op: "DecompressFrame", Err: err}
			}
			ct = ctBit
		} else {
			for i := 0; i < d.f; i++ {
				if xt.Get(i) == 1 {
					d.mask.Set(i, 1)
				}
			}
		}
	case vt == 0 && changeCount > 0:
		for i := 0; i < d.f; i++ {
			if xt.Get(i) != 1 {
				continue
			}
			if d.mask.Get(i) == 0 {
				d.mask.Set(i, 1)
			} else {
				d.mask.Set(i, 0)
			}
		}
	}

	dt, err := r.ReadBit()
	if err != nil {
		return nil, &Error{Op: "DecompressFrame", Err: err}
	}

	rt := 0
	if dt == 0 {
		ft, err := r.ReadBit()
		if err != nil {
			return nil, &Error{Op: "DecompressFrame", Err: err}
		}
		if ft == 1 {
			maskDiff, err := primitive.RLEDecode(r, d.f)
			if err != nil {
				return nil, &Error{Op: "DecompressFrame", Err: err}
			}
			current := maskDiff.Get(d.f - 1)
			d.mask.Set(d.f-1, current)
			for i := d.f - 2; i >= 0; i-- {
				current ^= maskDiff.Get(i)
				d.mask.Set(i, current)
			}
		}
		rtBit, err := r.ReadBit()
		if err != nil {
			return nil, &Error{Op: "DecompressFrame", Err: err}
		}
		rt = rtBit
	}

	if rt == 1 {
		if _, err := primitive.CountDecode(r); err != nil {
			return nil, &Error{Op: "DecompressFrame", Err: err}
		}
		for i := 0; i < d.f; i++ {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, &Error{Op: "DecompressFrame", Err: err}
			}
			output.Set(i, bit)
		}
	} else {
		extractionMask := d.mask
		if ct == 1 && vt > 0 {
			extractionMask = bitvector.New(d.f)
			extractionMask.Or(d.mask, d.positive)
		}
		if err := primitive.BitInsert(r, output, extractionMask); err != nil {
			return nil, &Error{Op: "DecompressFrame", Err: err}
		}
	}

	d.prevOutput.CopyFrom(output)
	d.t++
	return output, nil
}
