package pocketplus

// FuzzDecompress feeds arbitrary byte streams to Decompress for a handful of
// frame sizes. Decompress should always return either a result or a proper
// error, never panic — malformed compressed streams are an expected input,
// not a programmer error.
//
// Run with: go test -fuzz=FuzzDecompress -fuzztime=60s
import "testing"

func FuzzDecompress(f *testing.F) {
	f.Add([]byte{}, 8, 1)
	f.Add([]byte{0x00}, 8, 1)
	f.Add([]byte{0xFF}, 8, 1)
	f.Add([]byte{0x00, 0xFF, 0x00, 0xFF}, 8, 1)
	f.Add([]byte{0x10, 0x20, 0x30, 0x40, 0x50}, 16, 2)

	valid, err := Compress([]byte{0x55, 0x55, 0xAA}, 8, 1, 2, 3, 5, nil)
	if err == nil {
		f.Add(valid, 8, 1)
	}

	f.Fuzz(func(t *testing.T, data []byte, packetSizeBits, robustness int) {
		if packetSizeBits <= 0 || packetSizeBits > 4096 {
			return
		}
		if robustness < 0 || robustness > MaxRobustness {
			return
		}
		_, _ = Decompress(data, packetSizeBits, robustness, nil)
	})
}

// FuzzCompressRoundTrip checks that any whole-frame-aligned input compresses
// and decompresses without error across random frame sizes and period
// limits. The output is compared with the input only when the frame size is
// a whole number of bytes; otherwise the input's unused tail bits are not
// reproduced.
func FuzzCompressRoundTrip(f *testing.F) {
	f.Add([]byte{0x00, 0x00}, 8, 1, 2, 3, 5)
	f.Add([]byte{0xFF, 0x00, 0xFF, 0x00}, 8, 0, 1, 1, 1)
	f.Add([]byte{0x12, 0x34, 0x56, 0x78}, 16, 2, 4, 6, 9)

	f.Fuzz(func(t *testing.T, data []byte, packetSizeBits, robustness, pt, ft, rt int) {
		if packetSizeBits <= 0 || packetSizeBits > 256 {
			return
		}
		if robustness < 0 || robustness > MaxRobustness {
			return
		}
		if pt <= 0 || ft <= 0 || rt <= 0 || pt > 64 || ft > 64 || rt > 64 {
			return
		}
		frameBytes := (packetSizeBits + 7) / 8
		if frameBytes == 0 || len(data)%frameBytes != 0 || len(data) == 0 {
			return
		}

		compressed, err := Compress(data, packetSizeBits, robustness, pt, ft, rt, nil)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		out, err := Decompress(compressed, packetSizeBits, robustness, nil)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if packetSizeBits%8 == 0 {
			if string(out) != string(data) {
				t.Fatalf("round trip mismatch: got %x, want %x", out, data)
			}
		}
	})
}
