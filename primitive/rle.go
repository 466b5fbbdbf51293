package primitive

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/bitvector"
	"github.com/tanagraspace/pocket-plus/errs"
)

// RLEEncode appends the RLE encoding of v to w (CCSDS Equation 10).
//
// Starting from an anchor at v.Len(), each set bit (processed from the
// highest index down) is emitted as COUNT(anchor-position), and the anchor
// becomes that position. A final COUNT terminator ('10') ends the code. The
// all-zero vector encodes to just the terminator.
func RLEEncode(w *bitio.Writer, v *bitvector.Vector) error {
	anchor := v.Len()
	for pos := v.Len() - 1; pos >= 0; pos-- {
		if v.Get(pos) == 0 {
			continue
		}
		if err := CountEncode(w, anchor-pos); err != nil {
			return err
		}
		anchor = pos
	}
	w.AppendBit(1)
	w.AppendBit(0)
	return nil
}

// RLEDecode reads an RLE-encoded bit vector of the given length from r.
func RLEDecode(r *bitio.Reader, length int) (*bitvector.Vector, error) {
	out := bitvector.New(length)
	position := length
	for {
		count, err := CountDecode(r)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return out, nil
		}
		position -= count
		if position < 0 {
			return nil, fmt.Errorf("primitive: RLE position underflow: %w", errs.ErrDecodeError)
		}
		out.Set(position, 1)
	}
}
