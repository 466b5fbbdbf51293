// Package mask implements the POCKET+ mask-update state machine (CCSDS
// 124.0-B-1 Section 4): the online maintenance of the mask Mt, the build
// accumulator Bt, and the previous input It-1 across a session's frames.
package mask

import "github.com/tanagraspace/pocket-plus/bitvector"

// Updater owns the mask, build, and previous-input vectors for one
// compression or decompression session. The zero value is not usable;
// construct with New.
type Updater struct {
	f         int
	mask      *bitvector.Vector
	build     *bitvector.Vector
	prevInput *bitvector.Vector
	initial   *bitvector.Vector
}

// New returns an Updater for frames of length f bits. initialMask becomes
// M0; pass nil for an all-zero initial mask.
func New(f int, initialMask *bitvector.Vector) *Updater {
	u := &Updater{
		f:         f,
		mask:      bitvector.New(f),
		build:     bitvector.New(f),
		prevInput: bitvector.New(f),
		initial:   bitvector.New(f),
	}
	if initialMask != nil {
		u.initial.CopyFrom(initialMask)
		u.mask.CopyFrom(initialMask)
	}
	return u
}

// Mask returns the current mask Mt. The caller must not retain the returned
// pointer across a subsequent call to Update.
func (u *Updater) Mask() *bitvector.Vector {
	return u.mask
}

// Reset restores M to M0 and zeroes Build and the previous-input vector,
// without reallocating any backing storage.
func (u *Updater) Reset() {
	u.mask.CopyFrom(u.initial)
	u.build.Zero()
	u.prevInput.Zero()
}

// Update performs one mask-update cycle for time index t given input It and
// the new-mask flag pt (CCSDS Equations 6-8). At t=0 the mask is left at
// M0. It returns the mask as it stood before this update (Mt-1; M0 at t=0)
// and the change vector Dt = Mt XOR Mt-1 (or Mt itself at t=0, under the
// convention M-1=0).
func (u *Updater) Update(input *bitvector.Vector, newMaskFlag bool, t int) (prevMask, change *bitvector.Vector) {
	prevMask = u.mask.Copy()
	prevBuild := u.build.Copy()

	if t > 0 {
		changes := bitvector.New(u.f)
		changes.Xor(input, u.prevInput)

		if newMaskFlag {
			u.build.Zero()
			u.mask.Or(changes, prevBuild)
		} else {
			u.build.Or(u.build, changes)
			u.mask.Or(u.mask, changes)
		}
	}

	change = bitvector.New(u.f)
	if t == 0 {
		change.CopyFrom(u.mask)
	} else {
		change.Xor(u.mask, prevMask)
	}

	u.prevInput.CopyFrom(input)
	return prevMask, change
}
