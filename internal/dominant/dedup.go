package dominant

import "github.com/backmassage/binframe/internal/pixel"

// DedupFilter decides whether a frame's dominant color is distinguishable
// from the previously kept frame. It is strictly sequential: decisions
// depend only on the last kept color, and dropped frames do not move the
// reference. One filter serves exactly one batch run.
type DedupFilter struct {
	tolerance int
	prev      pixel.RGB
	haveKept  bool
}

// NewDedupFilter returns a filter with the given per-channel tolerance.
// Tolerance 0 means only an exact match counts as a duplicate.
func NewDedupFilter(tolerance int) *DedupFilter {
	return &DedupFilter{tolerance: tolerance}
}

// ShouldKeep reports whether the frame with dominant color c should be kept,
// updating the reference color when it is. The first frame is always kept.
// With tolerance T > 0 a frame is dropped iff all three channel differences
// are <= T; with tolerance 0 only an identical triple is dropped.
func (f *DedupFilter) ShouldKeep(c pixel.RGB) bool {
	if !f.haveKept {
		f.prev = c
		f.haveKept = true
		return true
	}

	if f.tolerance <= 0 {
		if c == f.prev {
			return false
		}
	} else if within(c.R, f.prev.R, f.tolerance) &&
		within(c.G, f.prev.G, f.tolerance) &&
		within(c.B, f.prev.B, f.tolerance) {
		return false
	}

	f.prev = c
	return true
}

func within(a, b uint16, tolerance int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
