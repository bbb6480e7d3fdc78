// Package dominant reduces a frame's color histogram to its single most
// frequent color and filters near-duplicate frames out of a sequence.
package dominant

import (
	"errors"

	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/pixel"
)

// ErrEmptyFrame is returned when a histogram has no entries. A file that
// passed size validation always yields at least one entry, but degenerate
// input must not crash the batch.
var ErrEmptyFrame = errors.New("empty frame: histogram has no entries")

// Extract returns the most frequent color in h. When several keys share the
// maximum count, the numerically smallest key wins; output must be
// reproducible across runs regardless of map iteration order.
func Extract(h frame.Histogram, depth pixel.BitDepth) (pixel.RGB, error) {
	if len(h) == 0 {
		return pixel.RGB{}, ErrEmptyFrame
	}

	var bestKey uint32
	var bestCount uint32
	first := true
	for key, count := range h {
		if first || count > bestCount || (count == bestCount && key < bestKey) {
			bestKey, bestCount = key, count
			first = false
		}
	}
	return pixel.UnpackKey(bestKey, depth), nil
}
