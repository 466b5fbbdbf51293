package bitio

import (
	"errors"
	"testing"

	"github.com/tanagraspace/pocket-plus/bitvector"
	"github.com/tanagraspace/pocket-plus/errs"
)

func TestWriterAppendBit(t *testing.T) {
	w := NewWriter()
	for _, b := range []int{1, 0, 1, 0, 1, 0, 1, 1} {
		w.AppendBit(b)
	}
	got := w.Bytes()
	if len(got) != 1 || got[0] != 0b10101011 {
		t.Fatalf("Bytes() = %08b, want 10101011", got)
	}
}

func TestWriterPartialByteZeroPadded(t *testing.T) {
	w := NewWriter()
	w.AppendBit(1)
	w.AppendBit(1)
	w.AppendBit(0)
	got := w.Bytes()
	if got[0] != 0b11000000 {
		t.Fatalf("Bytes() = %08b, want 11000000", got[0])
	}
}

func TestWriterAppendBits(t *testing.T) {
	w := NewWriter()
	w.AppendBits(0b1011, 4)
	got := w.Bytes()
	if got[0] != 0b10110000 {
		t.Fatalf("Bytes() = %08b, want 10110000", got[0])
	}
}

func TestWriterAppendVector(t *testing.T) {
	v := bitvector.New(8)
	v.FromBytes([]byte{0xAA})
	w := NewWriter()
	w.AppendVector(v)
	got := w.Bytes()
	if got[0] != 0xAA {
		t.Fatalf("Bytes() = %#x, want 0xAA", got[0])
	}
}

func TestWriterAlignToByte(t *testing.T) {
	w := NewWriter()
	w.AppendBit(1)
	w.AppendBit(1)
	w.AlignToByte()
	if w.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", w.Len())
	}
	w.AlignToByte() // no-op when already aligned
	if w.Len() != 8 {
		t.Fatalf("Len() after no-op align = %d, want 8", w.Len())
	}
}

func TestReaderReadBit(t *testing.T) {
	r := NewReader([]byte{0b10110000})
	want := []int{1, 0, 1, 1, 0, 0, 0, 0}
	for i, w := range want {
		bit, err := r.ReadBit()
		if err != nil {
			t.Fatalf("ReadBit() #%d: %v", i, err)
		}
		if bit != w {
			t.Errorf("ReadBit() #%d = %d, want %d", i, bit, w)
		}
	}
}

func TestReaderReadPastEndIsEndOfStream(t *testing.T) {
	r := NewReader([]byte{0xFF})
	for i := 0; i < 8; i++ {
		if _, err := r.ReadBit(); err != nil {
			t.Fatalf("ReadBit() #%d: %v", i, err)
		}
	}
	_, err := r.ReadBit()
	if !errors.Is(err, errs.ErrEndOfStream) {
		t.Fatalf("ReadBit() past end = %v, want ErrEndOfStream", err)
	}
}

func TestReaderReadBits(t *testing.T) {
	r := NewReader([]byte{0b11010000})
	val, err := r.ReadBits(4)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if val != 0b1101 {
		t.Fatalf("ReadBits(4) = %04b, want 1101", val)
	}
}

func TestReaderReadBitsInsufficient(t *testing.T) {
	r := NewReader([]byte{0xFF})
	_, err := r.ReadBits(16)
	if !errors.Is(err, errs.ErrEndOfStream) {
		t.Fatalf("ReadBits underflow = %v, want ErrEndOfStream", err)
	}
}

func TestReaderAlignToByte(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x00})
	r.ReadBit()
	r.ReadBit()
	r.AlignToByte()
	if r.Remaining() != 8 {
		t.Fatalf("Remaining() = %d, want 8", r.Remaining())
	}
	bit, _ := r.ReadBit()
	if bit != 0 {
		t.Fatalf("ReadBit() after align = %d, want 0 (second byte)", bit)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.AppendBits(0b101, 3)
	w.AppendBit(1)
	w.AppendBits(0b0010, 4)

	r := NewReader(w.Bytes())
	val, err := r.ReadBits(8)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if val != 0b10110010 {
		t.Fatalf("round trip = %08b, want 10110010", val)
	}
}
