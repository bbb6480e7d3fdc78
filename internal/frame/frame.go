// Package frame decodes whole capture files: into a color histogram for
// dominant-color extraction, into a full-resolution image buffer for still
// export, or into the raw byte stream fed to the video encoder.
package frame

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/backmassage/binframe/internal/pixel"
)

// Geometry is the pixel dimensions of every capture file in a batch.
type Geometry struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool { return g.Width > 0 && g.Height > 0 }

// Pixels returns the pixel count of one frame.
func (g Geometry) Pixels() int { return g.Width * g.Height }

// FileSize returns the exact byte size a capture file must have.
func (g Geometry) FileSize() int64 {
	return int64(g.Width) * int64(g.Height) * pixel.RecordSize
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// ParseGeometry parses a "WxH" string (e.g. "1280x720").
func ParseGeometry(s string) (Geometry, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Geometry{}, fmt.Errorf("invalid size %q (use WxH, e.g. 1280x720)", s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Geometry{}, fmt.Errorf("invalid size %q (width and height must be positive integers)", s)
	}
	return Geometry{Width: w, Height: h}, nil
}

// SizeMismatchError reports a capture file whose byte size disagrees with
// the configured geometry.
type SizeMismatchError struct {
	Path     string
	Expected int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: %s is %d bytes, expected %d", e.Path, e.Actual, e.Expected)
}

// Histogram counts occurrences of packed color keys within one frame.
// Built and discarded per file.
type Histogram map[uint32]uint32

// readFrame loads one capture file and validates its size against geom.
func readFrame(path string, geom Geometry) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if want := geom.FileSize(); int64(len(data)) != want {
		return nil, &SizeMismatchError{Path: path, Expected: want, Actual: int64(len(data))}
	}
	return data, nil
}

// DecodeHistogram decodes a capture file into a per-frame color histogram.
func DecodeHistogram(path string, geom Geometry, depth pixel.BitDepth) (Histogram, error) {
	data, err := readFrame(path, geom)
	if err != nil {
		return nil, err
	}
	h := make(Histogram)
	for i := 0; i < len(data); i += pixel.RecordSize {
		c := pixel.Decode(data[i], data[i+1], data[i+2], data[i+3], depth)
		h[pixel.PackKey(c)]++
	}
	return h, nil
}

// Image is a fully decoded frame for the still-image collaborator.
// Exactly one of Pix8/Pix16 is set, matching Depth: interleaved RGB,
// row-major, Width*Height*3 values.
type Image struct {
	Geom  Geometry
	Depth pixel.BitDepth
	Pix8  []uint8
	Pix16 []uint16
}

// DecodeImage decodes a capture file into a full-resolution image buffer.
// 10-bit channels are rescaled from [0,1023] to the full 16-bit range via
// v*65535/1023 (integer floor); still-image viewers treat the buffer as
// full-range 16-bit and would otherwise render near-black. 8-bit frames
// pass through unscaled.
func DecodeImage(path string, geom Geometry, depth pixel.BitDepth) (*Image, error) {
	data, err := readFrame(path, geom)
	if err != nil {
		return nil, err
	}
	img := &Image{Geom: geom, Depth: depth}

	if depth == pixel.Depth8 {
		img.Pix8 = make([]uint8, 0, geom.Pixels()*3)
		for i := 0; i < len(data); i += pixel.RecordSize {
			c := pixel.Decode(data[i], data[i+1], data[i+2], data[i+3], depth)
			img.Pix8 = append(img.Pix8, uint8(c.R), uint8(c.G), uint8(c.B))
		}
		return img, nil
	}

	img.Pix16 = make([]uint16, 0, geom.Pixels()*3)
	for i := 0; i < len(data); i += pixel.RecordSize {
		c := pixel.Decode(data[i], data[i+1], data[i+2], data[i+3], depth)
		img.Pix16 = append(img.Pix16, widen(c.R), widen(c.G), widen(c.B))
	}
	return img, nil
}

// widen maps a 10-bit value onto the full 16-bit range.
func widen(v uint16) uint16 {
	return uint16(uint32(v) * 65535 / 1023)
}

// DecodeStream decodes a capture file into the raw byte layout the encoder's
// rawvideo input expects: interleaved rgb24 for 8-bit, little-endian rgb48
// for 10-bit. 10-bit values are left-shifted by 6 so the ten significant
// bits sit in the container's high bits. This is not the 65535/1023 rescale
// used for stills; rawvideo rgb48le consumers expect the plain shift.
func DecodeStream(path string, geom Geometry, depth pixel.BitDepth) ([]byte, error) {
	data, err := readFrame(path, geom)
	if err != nil {
		return nil, err
	}

	if depth == pixel.Depth8 {
		out := make([]byte, 0, geom.Pixels()*3)
		for i := 0; i < len(data); i += pixel.RecordSize {
			c := pixel.Decode(data[i], data[i+1], data[i+2], data[i+3], depth)
			out = append(out, uint8(c.R), uint8(c.G), uint8(c.B))
		}
		return out, nil
	}

	out := make([]byte, geom.Pixels()*6)
	j := 0
	for i := 0; i < len(data); i += pixel.RecordSize {
		c := pixel.Decode(data[i], data[i+1], data[i+2], data[i+3], depth)
		binary.LittleEndian.PutUint16(out[j:], c.R<<6)
		binary.LittleEndian.PutUint16(out[j+2:], c.G<<6)
		binary.LittleEndian.PutUint16(out[j+4:], c.B<<6)
		j += 6
	}
	return out, nil
}

// StreamFrameSize returns the byte size of one encoder-stream frame.
func StreamFrameSize(geom Geometry, depth pixel.BitDepth) int {
	if depth == pixel.Depth8 {
		return geom.Pixels() * 3
	}
	return geom.Pixels() * 6
}
