package bitvector

import "testing"

func TestNewZeroed(t *testing.T) {
	v := New(13)
	if v.Len() != 13 {
		t.Fatalf("Len() = %d, want 13", v.Len())
	}
	for i := 0; i < 13; i++ {
		if v.Get(i) != 0 {
			t.Errorf("Get(%d) = %d, want 0", i, v.Get(i))
		}
	}
}

func TestSetGet(t *testing.T) {
	v := New(16)
	v.Set(0, 1)
	v.Set(15, 1)
	v.Set(8, 1)
	for i := 0; i < 16; i++ {
		want := 0
		if i == 0 || i == 15 || i == 8 {
			want = 1
		}
		if got := v.Get(i); got != want {
			t.Errorf("Get(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestGetSetOutOfBounds(t *testing.T) {
	v := New(8)
	tests := []int{-1, 8, 100}
	for _, i := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Get(%d) did not panic", i)
				}
			}()
			v.Get(i)
		}()
	}
}

func TestCopyCopyFrom(t *testing.T) {
	v := New(10)
	v.Set(3, 1)
	cp := v.Copy()
	if !cp.Equal(v) {
		t.Fatal("Copy() not equal to source")
	}
	cp.Set(3, 0)
	if cp.Equal(v) {
		t.Fatal("Copy() aliases source")
	}

	other := New(10)
	other.CopyFrom(v)
	if !other.Equal(v) {
		t.Fatal("CopyFrom did not copy contents")
	}
}

func TestHammingWeight(t *testing.T) {
	v := New(16)
	if v.HammingWeight() != 0 {
		t.Fatalf("HammingWeight() = %d, want 0", v.HammingWeight())
	}
	for _, i := range []int{0, 1, 2, 15} {
		v.Set(i, 1)
	}
	if v.HammingWeight() != 4 {
		t.Fatalf("HammingWeight() = %d, want 4", v.HammingWeight())
	}
}

func TestXorOrAndAliasing(t *testing.T) {
	a := New(8)
	a.Set(0, 1)
	a.Set(1, 1)
	b := New(8)
	b.Set(1, 1)
	b.Set(2, 1)

	xor := New(8)
	xor.Xor(a, b)
	want := []int{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if xor.Get(i) != w {
			t.Errorf("xor.Get(%d) = %d, want %d", i, xor.Get(i), w)
		}
	}

	// self-aliasing: a = a XOR b
	a.Xor(a, b)
	if !a.Equal(xor) {
		t.Fatal("aliased Xor produced wrong result")
	}

	or := New(8)
	c := New(8)
	c.Set(0, 1)
	d := New(8)
	d.Set(1, 1)
	or.Or(c, d)
	if or.Get(0) != 1 || or.Get(1) != 1 || or.HammingWeight() != 2 {
		t.Fatal("Or produced wrong result")
	}
	// self-aliasing: c = c OR d
	c.Or(c, d)
	if !c.Equal(or) {
		t.Fatal("aliased Or produced wrong result")
	}

	and := New(8)
	and.And(or, d)
	if and.HammingWeight() != 1 || and.Get(1) != 1 {
		t.Fatal("And produced wrong result")
	}
}

func TestNotMasksTailBits(t *testing.T) {
	v := New(5) // one partial byte: 5 used bits, 3 unused
	v.Not(v)
	if v.HammingWeight() != 5 {
		t.Fatalf("HammingWeight() = %d, want 5 (tail bits must stay 0)", v.HammingWeight())
	}
	raw := v.Bytes()
	if raw[0]&0x07 != 0 {
		t.Fatalf("unused tail bits not masked: %08b", raw[0])
	}
}

func TestLeftShift(t *testing.T) {
	v := New(8)
	v.FromBytes([]byte{0b10000001})
	shifted := v.LeftShiftVal()
	if shifted.Bytes()[0] != 0b00000010 {
		t.Fatalf("LeftShiftVal() = %08b, want 00000010", shifted.Bytes()[0])
	}

	// carry across byte boundary
	v2 := New(16)
	v2.FromBytes([]byte{0x00, 0x80})
	shifted2 := v2.LeftShiftVal()
	if shifted2.Bytes()[0] != 0x01 || shifted2.Bytes()[1] != 0x00 {
		t.Fatalf("LeftShiftVal() = %02x%02x, want 0100", shifted2.Bytes()[0], shifted2.Bytes()[1])
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		n    int
		data []byte
	}{
		{8, []byte{0xAA}},
		{1, []byte{0x80}},
		{9, []byte{0xFF, 0x80}},
		{720 / 8, make([]byte, 90)},
	}
	for _, tt := range tests {
		v := New(tt.n)
		if err := v.FromBytes(tt.data); err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		got := v.Bytes()
		for i := range got {
			if got[i] != tt.data[i] {
				t.Errorf("n=%d: Bytes()[%d] = %08b, want %08b", tt.n, i, got[i], tt.data[i])
			}
		}
	}
}

func TestFromBytesShortInput(t *testing.T) {
	v := New(16)
	if err := v.FromBytes([]byte{0x01}); err == nil {
		t.Fatal("FromBytes with short input did not return an error")
	}
}
