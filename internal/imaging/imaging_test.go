package imaging

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/backmassage/binframe/internal/frame"
	"github.com/backmassage/binframe/internal/pixel"
)

func TestToImage_8Bit(t *testing.T) {
	src := &frame.Image{
		Geom:  frame.Geometry{Width: 2, Height: 1},
		Depth: pixel.Depth8,
		Pix8:  []uint8{10, 20, 30, 40, 50, 60},
	}
	m, err := ToImage(src)
	require.NoError(t, err)

	img, ok := m.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	r, g, b, a := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(40), r>>8)
	assert.Equal(t, uint32(50), g>>8)
	assert.Equal(t, uint32(60), b>>8)
	assert.Equal(t, uint32(0xFF), a>>8)
}

func TestToImage_16Bit(t *testing.T) {
	src := &frame.Image{
		Geom:  frame.Geometry{Width: 1, Height: 1},
		Depth: pixel.Depth10,
		Pix16: []uint16{65535, 32799, 0},
	}
	m, err := ToImage(src)
	require.NoError(t, err)

	img, ok := m.(*image.NRGBA64)
	require.True(t, ok)
	c := img.NRGBA64At(0, 0)
	assert.Equal(t, uint16(65535), c.R)
	assert.Equal(t, uint16(32799), c.G)
	assert.Equal(t, uint16(0), c.B)
	assert.Equal(t, uint16(65535), c.A)
}

func TestToImage_BufferShapeMismatch(t *testing.T) {
	src := &frame.Image{
		Geom:  frame.Geometry{Width: 2, Height: 2},
		Depth: pixel.Depth8,
		Pix8:  []uint8{1, 2, 3},
	}
	_, err := ToImage(src)
	assert.Error(t, err)
}

func TestWriteTIFF_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.tif")

	src := &frame.Image{
		Geom:  frame.Geometry{Width: 2, Height: 2},
		Depth: pixel.Depth10,
		Pix16: []uint16{
			65535, 0, 0, 0, 65535, 0,
			0, 0, 65535, 65535, 65535, 65535,
		},
	}
	require.NoError(t, WriteTIFF(path, src))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := tiff.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), decoded.Bounds())
	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, uint32(65535), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
}
