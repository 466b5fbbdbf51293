// Package primitive implements the three CCSDS 124.0-B-1 bit-level codes
// POCKET+ composes into its packet layout — COUNT (Section 5.2.2), RLE
// (Section 5.2.3), and BE (Section 5.2.4) — and their inverses.
package primitive

import (
	"fmt"
	"math/bits"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/errs"
)

// MinCount and MaxCount bound the values COUNT can encode. 0 is reserved as
// the RLE terminator and is never passed to CountEncode.
const (
	MinCount = 1
	MaxCount = 65535
)

// CountEncode appends the COUNT encoding of a to w.
//
//	A = 1        -> 0
//	2 <= A <= 33 -> 110 || BIT5(A-2)
//	A >= 34      -> 111 || BIT_E(A-2), E = 2*floor(log2(A-2)+1) - 6
func CountEncode(w *bitio.Writer, a int) error {
	if a < MinCount || a > MaxCount {
		return fmt.Errorf("primitive: COUNT value %d out of range [%d, %d]: %w", a, MinCount, MaxCount, errs.ErrInvalidArgument)
	}

	switch {
	case a == 1:
		w.AppendBit(0)
	case a <= 33:
		w.AppendBits(0b110, 3)
		w.AppendBits(uint32(a-2), 5)
	default:
		w.AppendBits(0b111, 3)
		value := uint32(a - 2)
		e := countWidth(value)
		w.AppendBits(value, e)
	}
	return nil
}

// countWidth returns E = 2*floor(log2(value)+1) - 6 for value >= 32.
func countWidth(value uint32) uint {
	return uint(2*bits.Len32(value) - 6)
}

// CountDecode reads one COUNT-encoded value from r. It returns 0 for the
// RLE terminator code ('10') and the decoded value otherwise.
func CountDecode(r *bitio.Reader) (int, error) {
	first, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if first == 0 {
		return 1, nil
	}

	second, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if second == 0 {
		return 0, nil // terminator
	}

	third, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if third == 0 {
		value, err := r.ReadBits(5)
		if err != nil {
			return 0, err
		}
		return int(value) + 2, nil
	}

	return countDecodeLong(r)
}

// countDecodeLong decodes the '111' + BIT_E branch, growing E two bits at a
// time until it is consistent with the value read so far. For a nonzero
// candidate this converges: each extra 2 bits multiplies the value by four,
// so the width it implies grows by 4 while E only grows by 2. An all-zero
// candidate never becomes consistent; the loop then ends with the reader's
// ErrEndOfStream.
func countDecodeLong(r *bitio.Reader) (int, error) {
	e := uint(6)
	value, err := r.ReadBits(e)
	if err != nil {
		return 0, err
	}
	for {
		if countWidth(value) == e {
			break
		}
		extra, err := r.ReadBits(2)
		if err != nil {
			return 0, err
		}
		value = (value << 2) | extra
		e += 2
	}
	if int(value)+2 > MaxCount {
		return 0, fmt.Errorf("primitive: decoded COUNT value %d exceeds %d: %w", int(value)+2, MaxCount, errs.ErrDecodeError)
	}
	return int(value) + 2, nil
}
