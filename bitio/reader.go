package bitio

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/errs"
)

// Reader reads bits MSB-first from a borrowed byte slice. It never copies
// or mutates the underlying slice.
type Reader struct {
	data []byte
	pos  int // bit position
}

// NewReader wraps data for sequential bit-level reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// PeekBit returns the next bit without consuming it.
func (r *Reader) PeekBit() (int, error) {
	if r.Remaining() <= 0 {
		return 0, fmt.Errorf("bitio: %w", errs.ErrEndOfStream)
	}
	byteIndex := r.pos / 8
	return int((r.data[byteIndex] >> uint(7-r.pos%8)) & 1), nil
}

// ReadBit reads and consumes a single bit.
func (r *Reader) ReadBit() (int, error) {
	bit, err := r.PeekBit()
	if err != nil {
		return 0, err
	}
	r.pos++
	return bit, nil
}

// ReadBits reads n bits (0 <= n <= 32) and packs them MSB-first into the
// returned value.
func (r *Reader) ReadBits(n uint) (uint32, error) {
	if n > 32 {
		return 0, fmt.Errorf("bitio: ReadBits width %d exceeds 32", n)
	}
	if uint(r.Remaining()) < n {
		return 0, fmt.Errorf("bitio: need %d bits, have %d: %w", n, r.Remaining(), errs.ErrEndOfStream)
	}
	var result uint32
	for i := uint(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | uint32(bit)
	}
	return result, nil
}

// AlignToByte discards bits until the read position is byte-aligned.
func (r *Reader) AlignToByte() {
	if rem := r.pos % 8; rem != 0 {
		r.pos += 8 - rem
	}
}
