package primitive

import (
	"fmt"

	"github.com/tanagraspace/pocket-plus/bitio"
	"github.com/tanagraspace/pocket-plus/bitvector"
)

// BitExtract appends the bits of data at positions where mask is 1, in
// descending position order (CCSDS Equation 11). data and mask must share a
// length.
func BitExtract(w *bitio.Writer, data, mask *bitvector.Vector) error {
	if data.Len() != mask.Len() {
		return fmt.Errorf("primitive: BE length mismatch: data=%d mask=%d", data.Len(), mask.Len())
	}
	for pos := mask.Len() - 1; pos >= 0; pos-- {
		if mask.Get(pos) == 1 {
			w.AppendBit(data.Get(pos))
		}
	}
	return nil
}

// BitInsert reads one bit per position where mask is 1, in descending
// position order, and writes it into dst at that position. Positions where
// mask is 0 are left untouched, so dst must already hold whatever
// prediction base the caller wants for those bits.
func BitInsert(r *bitio.Reader, dst, mask *bitvector.Vector) error {
	if dst.Len() != mask.Len() {
		return fmt.Errorf("primitive: bit_insert length mismatch: dst=%d mask=%d", dst.Len(), mask.Len())
	}
	for pos := mask.Len() - 1; pos >= 0; pos-- {
		if mask.Get(pos) != 1 {
			continue
		}
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		dst.Set(pos, bit)
	}
	return nil
}

// BitExtractForward is BitExtract with ascending position order, used only
// for the kt sub-field.
func BitExtractForward(w *bitio.Writer, data, mask *bitvector.Vector) error {
	if data.Len() != mask.Len() {
		return fmt.Errorf("primitive: BE_forward length mismatch: data=%d mask=%d", data.Len(), mask.Len())
	}
	for pos := 0; pos < mask.Len(); pos++ {
		if mask.Get(pos) == 1 {
			w.AppendBit(data.Get(pos))
		}
	}
	return nil
}

// BitInsertForward mirrors BitExtractForward: ascending position order.
func BitInsertForward(r *bitio.Reader, dst, mask *bitvector.Vector) error {
	if dst.Len() != mask.Len() {
		return fmt.Errorf("primitive: bit_insert_forward length mismatch: dst=%d mask=%d", dst.Len(), mask.Len())
	}
	for pos := 0; pos < mask.Len(); pos++ {
		if mask.Get(pos) != 1 {
			continue
		}
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		dst.Set(pos, bit)
	}
	return nil
}
