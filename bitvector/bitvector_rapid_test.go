package bitvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Test_SerializeRoundTrip checks the §8 invariant: for any Vector of length
// F, deserialize(serialize(v)) == v.
func Test_SerializeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 2048).Draw(t, "n")
		v := New(n)
		numSets := rapid.IntRange(0, n).Draw(t, "numSets")
		for i := 0; i < numSets; i++ {
			pos := rapid.IntRange(0, n-1).Draw(t, "pos")
			v.Set(pos, 1)
		}

		roundTripped := New(n)
		assert.NoError(t, roundTripped.FromBytes(v.Bytes()))
		assert.True(t, roundTripped.Equal(v), "round trip changed contents")
	})
}

// Test_NotIsInvolution checks that NOT(NOT(v)) == v, including correct
// masking of the partial final byte.
func Test_NotIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 512).Draw(t, "n")
		v := New(n)
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "bit") {
				v.Set(i, 1)
			}
		}

		once := v.NotVal()
		twice := once.NotVal()
		assert.True(t, twice.Equal(v))
	})
}

// Test_XorSelfInverse checks that v XOR v == 0 for any v, exercising the
// aliasing contract (dst may equal either operand).
func Test_XorSelfInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 512).Draw(t, "n")
		v := New(n)
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "bit") {
				v.Set(i, 1)
			}
		}
		v.Xor(v, v)
		assert.True(t, v.IsZero())
	})
}
