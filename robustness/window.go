// Package robustness implements the POCKET+ robustness-window state machine
// (CCSDS 124.0-B-1 Section 5.3.2): the change history and new-mask-flag
// history ring buffers used to derive Xt, Vt, and ct for each frame.
package robustness

import "github.com/tanagraspace/pocket-plus/bitvector"

const (
	// MaxHistory is the fixed size of the change-vector ring buffer (§9).
	MaxHistory = 16
	// MaxVtHistory is the fixed size of the new-mask-flag ring buffer (§9).
	MaxVtHistory = 16
	// MaxRobustness is the largest representable base robustness level Rt.
	MaxRobustness = 7
)

// Window tracks the last MaxHistory change vectors and the last
// MaxVtHistory new-mask flags for one compression or decompression
// session, deriving the robustness window Xt, effective robustness Vt, and
// the ct flag from them. The zero value is not usable; construct with New.
type Window struct {
	f             int
	robustness    int
	t             int
	changeHistory [MaxHistory]*bitvector.Vector
	historyIndex  int
	flagHistory   [MaxVtHistory]bool
	flagIndex     int
}

// New returns a Window for frames of length f bits at base robustness
// level r. r is clamped to [0, MaxRobustness].
func New(f, r int) *Window {
	if r > MaxRobustness {
		r = MaxRobustness
	}
	if r < 0 {
		r = 0
	}
	w := &Window{f: f, robustness: r}
	for i := range w.changeHistory {
		w.changeHistory[i] = bitvector.New(f)
	}
	return w
}

// T returns the current time index t.
func (w *Window) T() int { return w.t }

// Robustness returns the configured base robustness level Rt.
func (w *Window) Robustness() int { return w.robustness }

// Reset restores the window to its post-construction state, without
// reallocating any history slot.
func (w *Window) Reset() {
	w.t = 0
	w.historyIndex = 0
	w.flagIndex = 0
	for _, ch := range w.changeHistory {
		ch.Zero()
	}
	for i := range w.flagHistory {
		w.flagHistory[i] = false
	}
}

// RecordChange stores the current frame's change vector Dt at the active
// history slot. Call once per frame, after the mask update produces Dt and
// before ComputeWindow/ComputeEffectiveRobustness.
func (w *Window) RecordChange(change *bitvector.Vector) {
	w.changeHistory[w.historyIndex].CopyFrom(change)
}

// ComputeWindow returns the robustness window Xt = Dt-Rt OR ... OR Dt
// (CCSDS Equation 9). At t=0 or Rt=0, Xt is simply Dt.
func (w *Window) ComputeWindow(change *bitvector.Vector) *bitvector.Vector {
	xt := bitvector.New(w.f)
	xt.CopyFrom(change)

	if w.robustness == 0 || w.t == 0 {
		return xt
	}

	numChanges := w.robustness
	if w.t < numChanges {
		numChanges = w.t
	}
	for i := 1; i <= numChanges; i++ {
		histIdx := (w.historyIndex + MaxHistory - i) % MaxHistory
		xt.Or(xt, w.changeHistory[histIdx])
	}
	return xt
}

// ComputeEffectiveRobustness returns Vt = Rt + Ct, where Ct counts
// consecutive prior frames (beyond the base window) with no mask changes,
// capped so Vt never exceeds 15 (CCSDS Section 5.3.2.2).
func (w *Window) ComputeEffectiveRobustness() int {
	vt := w.robustness
	if w.t <= w.robustness {
		return vt
	}

	ct := 0
	upper := w.t + 1
	if upper > MaxHistory {
		upper = MaxHistory
	}
	for i := w.robustness + 1; i < upper; i++ {
		histIdx := (w.historyIndex + MaxHistory - i) % MaxHistory
		if w.changeHistory[histIdx].HammingWeight() > 0 {
			break
		}
		ct++
		if ct >= 15-w.robustness {
			break
		}
	}
	return w.robustness + ct
}

// ComputeCtFlag returns ct: 1 if the new-mask flag was set at least twice
// across the current frame and the Vt frames preceding it, 0 otherwise.
func (w *Window) ComputeCtFlag(vt int, currentNewMaskFlag bool) int {
	if vt == 0 {
		return 0
	}

	count := 0
	if currentNewMaskFlag {
		count++
	}

	iterations := vt
	if w.t < iterations {
		iterations = w.t
	}
	for i := 0; i < iterations; i++ {
		histIdx := (w.flagIndex + MaxVtHistory - 1 - i) % MaxVtHistory
		if w.flagHistory[histIdx] {
			count++
		}
	}

	if count >= 2 {
		return 1
	}
	return 0
}

// Advance records the current frame's new-mask flag and moves both ring
// buffers and the time index to the next frame. Call once per frame, after
// all of the current frame's Xt/Vt/ct/et values have been derived.
func (w *Window) Advance(newMaskFlag bool) {
	w.flagHistory[w.flagIndex] = newMaskFlag
	w.flagIndex = (w.flagIndex + 1) % MaxVtHistory
	w.t++
	w.historyIndex = (w.historyIndex + 1) % MaxHistory
}

// HasPositiveUpdates reports et: whether any bit set in Xt corresponds to a
// currently-predictable (mask bit 0) position, i.e. a positive update.
func HasPositiveUpdates(xt, mask *bitvector.Vector) bool {
	for i := 0; i < xt.Len(); i++ {
		if xt.Get(i) == 1 && mask.Get(i) == 0 {
			return true
		}
	}
	return false
}
