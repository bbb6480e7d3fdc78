// Package pixel decodes packed 4-byte capture records into RGB channel
// values and provides the combined histogram key used for color counting.
//
// Record layout (one pixel): [B high 8 bits][G high 8 bits][R high 8 bits][ext].
// In 10-bit captures the ext byte carries the two low-order bits of each
// channel: R in bits 0-1, G in bits 2-3, B in bits 4-5. The layout is fixed
// by the capture format and not configurable.
package pixel

import "fmt"

// RecordSize is the on-disk size of one packed pixel record.
const RecordSize = 4

// BitDepth selects the decode formula and output channel width.
type BitDepth int

const (
	Depth8  BitDepth = 8  // channels in [0,255], ext byte unused
	Depth10 BitDepth = 10 // channels in [0,1023]
)

// Valid reports whether d is one of the two supported depths.
func (d BitDepth) Valid() bool { return d == Depth8 || d == Depth10 }

// Max returns the largest channel value at this depth.
func (d BitDepth) Max() uint16 {
	if d == Depth10 {
		return 0x3FF
	}
	return 0xFF
}

func (d BitDepth) String() string { return fmt.Sprintf("%d-bit", int(d)) }

// RGB is one decoded color triple. Channel range depends on the BitDepth
// that produced it.
type RGB struct {
	R, G, B uint16
}

// Decode unpacks one record into channel values at the given depth.
// There is no error condition here: any byte pattern decodes to some value.
// Malformed input is caught upstream by file-size validation.
func Decode(b8, g8, r8, ext byte, depth BitDepth) RGB {
	if depth == Depth8 {
		return RGB{R: uint16(r8), G: uint16(g8), B: uint16(b8)}
	}
	return RGB{
		R: uint16(r8)<<2 | uint16(ext&0x3),
		G: uint16(g8)<<2 | uint16(ext>>2&0x3),
		B: uint16(b8)<<2 | uint16(ext>>4&0x3),
	}
}

// PackKey combines a triple into one 32-bit histogram key. The 10-bit shifts
// leave room for the widest supported channel, so keys never collide across
// channels at either depth.
func PackKey(c RGB) uint32 {
	return uint32(c.R)<<20 | uint32(c.G)<<10 | uint32(c.B)
}

// UnpackKey recovers the triple from a histogram key.
func UnpackKey(key uint32, depth BitDepth) RGB {
	mask := uint32(depth.Max())
	return RGB{
		R: uint16(key >> 20 & mask),
		G: uint16(key >> 10 & mask),
		B: uint16(key & mask),
	}
}
