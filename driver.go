package pocketplus

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/bitvector"
)

// Driver wraps a Compressor with the CCSDS Section 5.3.3 parameter-
// management policy: period countdown counters for the new-mask, send-
// mask, and uncompressed flags, plus the mandatory init phase that forces
// a full, uncompressed mask-attached frame for the first Rt+1 frames of a
// session.
type Driver struct {
	c          *Compressor
	robustness int

	ptLimit, ftLimit, rtLimit          int
	ptCounter, ftCounter, rtCounter int
}

// NewDriver returns a Driver compressing frames of length f bits. All three
// period limits must be positive; robustness must be in [0, MaxRobustness].
func NewDriver(f, robustnessLevel, ptLimit, ftLimit, rtLimit int, initialMask *bitvector.Vector) (*Driver, error) {
	if ptLimit <= 0 || ftLimit <= 0 || rtLimit <= 0 {
		return nil, &Error{Op: "NewDriver", Err: fmt.Errorf("period limits must be positive (pt=%d ft=%d rt=%d): %w", ptLimit, ftLimit, rtLimit, ErrInvalidArgument)}
	}
	if robustnessLevel < 0 || robustnessLevel > MaxRobustness {
		return nil, &Error{Op: "NewDriver", Err: fmt.Errorf("robustness %d out of range [0, %d]: %w", robustnessLevel, MaxRobustness, ErrInvalidArgument)}
	}

	c, err := NewCompressor(f, robustnessLevel, initialMask)
	if err != nil {
		return nil, err
	}
	return &Driver{
		c:          c,
		robustness: robustnessLevel,
		ptLimit:    ptLimit,
		ftLimit:    ftLimit,
		rtLimit:    rtLimit,
		ptCounter:  ptLimit,
		ftCounter:  ftLimit,
		rtCounter:  rtLimit,
	}, nil
}

// Reset restores the driver, including its period counters, to its
// post-construction state.
func (d *Driver) Reset() {
	d.c.Reset()
	d.ptCounter = d.ptLimit
	d.ftCounter = d.ftLimit
	d.rtCounter = d.rtLimit
}

// CompressFrame derives this frame's parameters from the period counters
// and the init-phase override, then compresses it.
func (d *Driver) CompressFrame(input *bitvector.Vector) ([]byte, error) {
	return d.c.CompressFrame(input, d.nextParams())
}

func (d *Driver) nextParams() FrameParams {
	i := d.c.T()

	if i == 0 {
		return FrameParams{SendMask: true, Uncompressed: true}
	}

	var p FrameParams

	if d.ftCounter == 1 {
		p.SendMask = true
		d.ftCounter = d.ftLimit
	} else {
		d.ftCounter--
	}

	if d.ptCounter == 1 {
		p.NewMask = true
		d.ptCounter = d.ptLimit
	} else {
		d.ptCounter--
	}

	if d.rtCounter == 1 {
		p.Uncompressed = true
		d.rtCounter = d.rtLimit
	} else {
		d.rtCounter--
	}

	// CCSDS mandates that the first Rt+1 frames establish the mask from
	// scratch: full mask attached, uncompressed fallback, no reset.
	if i <= d.robustness {
		p.SendMask = true
		p.Uncompressed = true
		p.NewMask = false
	}

	return p
}

// Compress is the one-shot library entry point (CCSDS Section 6): it
// splits data into packetSizeBits-wide frames, compresses each with
// automatic pt/ft/rt period management, and concatenates the results.
// data's length must be a whole multiple of the frame size in bytes.
func Compress(data []byte, packetSizeBits, robustnessLevel, ptLimit, ftLimit, rtLimit int, initialMask *bitvector.Vector) ([]byte, error) {
	if packetSizeBits <= 0 {
		return nil, &Error{Op: "Compress", Err: fmt.Errorf("packet size %d must be positive: %w", packetSizeBits, ErrInvalidArgument)}
	}
	frameBytes := (packetSizeBits + 7) / 8
	if frameBytes == 0 || len(data)%frameBytes != 0 {
		return nil, &Error{Op: "Compress", Err: fmt.Errorf("input length %d is not a multiple of the frame size (%d bytes): %w", len(data), frameBytes, ErrInvalidArgument)}
	}

	driver, err := NewDriver(packetSizeBits, robustnessLevel, ptLimit, ftLimit, rtLimit, initialMask)
	if err != nil {
		return nil, err
	}

	numFrames := len(data) / frameBytes
	out := make([]byte, 0, len(data))
	frame := bitvector.New(packetSizeBits)
	for i := 0; i < numFrames; i++ {
		chunk := data[i*frameBytes : (i+1)*frameBytes]
		if err := frame.FromBytes(chunk); err != nil {
			return nil, &Error{Op: "Compress", Err: err}
		}
		packet, err := driver.CompressFrame(frame)
		if err != nil {
			return nil, err
		}
		out = append(out, packet...)
	}
	return out, nil
}

// Decompress is the one-shot inverse of Compress: it parses frames from
// data until the input is exhausted, byte-aligning between frames, and
// concatenates the reconstructed output. robustnessLevel is accepted for
// symmetry with Compress and validated, but (matching the reference
// decoder, which never consults it: Vt/et/kt/ct all arrive on the wire)
// plays no role in decoding.
func Decompress(data []byte, packetSizeBits, robustnessLevel int, initialMask *bitvector.Vector) ([]byte, error) {
	if packetSizeBits <= 0 {
		return nil, &Error{Op: "Decompress", Err: fmt.Errorf("packet size %d must be positive: %w", packetSizeBits, ErrInvalidArgument)}
	}
	if robustnessLevel < 0 || robustnessLevel > MaxRobustness {
		return nil, &Error{Op: "Decompress", Err: fmt.Errorf("robustness %d out of range [0, %d]: %w", robustnessLevel, MaxRobustness, ErrInvalidArgument)}
	}

	dec, err := NewDecompressor(packetSizeBits, initialMask)
	if err != nil {
		return nil, err
	}

	r := bitio.NewReader(data)
	var out []byte
	for r.Remaining() > 0 {
		frame, err := dec.DecompressFrame(r)
		if err != nil {
			return nil, err
		}
		out = append(out, frame.Bytes()...)
		r.AlignToByte()
	}
	return out, nil
}
