/*
Package image converts a single 8 by 8 pixel image into the color indices
expected by the tile package.

Images with more than four colors are reduced using a median cut quantizer.
The remaining colors are ranked by lightness so that index 0 is always the
lightest shade and index 3 the darkest, matching the default palette of the
hardware. Fully transparent pixels always take index 0; when quantizing they
are left out and the opaque pixels are reduced to three colors instead.

Each row of the image becomes one group of eight pixels with the leftmost
pixel first. This departs from the x*8+y column naming used by the tile
package; it is the line order the hardware displays, so encoded tiles appear
upright.
*/
package image

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sort"

	"github.com/bodgit/twobpp/tile"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrSize is returned when the image is not exactly one tile in size.
var ErrSize = errors.New("image: image is wrong size")

func key(c color.Color) color.RGBA64 {
	return color.RGBA64Model.Convert(c).(color.RGBA64)
}

func uniqueColors(m image.Image) color.Palette {
	seen := make(map[color.RGBA64]struct{})
	var p color.Palette
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := key(m.At(x, y))
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				p = append(p, c)
			}
		}
	}
	return p
}

// Fully transparent colors have no lightness and sort ahead of white
func lightness(c color.Color) float64 {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 2
	}
	l, _, _ := cf.Lab()
	return l
}

// Return a map of each color to its shade, lightest first
func shades(p color.Palette) map[color.RGBA64]uint8 {
	sorted := append(p[:0:0], p...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lightness(sorted[i]) > lightness(sorted[j])
	})

	m := make(map[color.RGBA64]uint8, len(sorted))
	for i, c := range sorted {
		m[key(c)] = uint8(i)
	}
	return m
}

// Fit scales m to exactly one tile using nearest neighbour sampling so that
// no new colors are introduced.
func Fit(m image.Image) image.Image {
	b := m.Bounds()
	if b.Dx() == tile.Width && b.Dy() == tile.Height {
		return m
	}
	return imaging.Resize(m, tile.Width, tile.Height, imaging.NearestNeighbor)
}

func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}

// Return a copy of m with any fully transparent pixels replaced by the first
// opaque color, along with whether there were any
func opaque(m image.Image) (image.Image, bool) {
	b := m.Bounds()
	var fill color.Color
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch c := m.At(x, y); {
			case transparent(c):
				found = true
			case fill == nil:
				fill = c
			}
		}
	}
	if !found || fill == nil {
		return m, false
	}

	dup := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if transparent(c) {
				c = fill
			}
			dup.Set(x, y, c)
		}
	}
	return dup, true
}

// Pixels returns the color index of every pixel in m packed as
// pixels[y*8+x]. Each group of eight is therefore an image row, not a column
// as in the naming used by the tile package, which is the order the hardware
// displays a tile in.
func Pixels(m image.Image) ([]uint8, error) {
	b := m.Bounds()
	if b.Dx() != tile.Width || b.Dy() != tile.Height {
		return nil, ErrSize
	}

	src, p := m, uniqueColors(m)

	// Transparent pixels are kept out of the quantizer and pinned to index 0
	var pinned bool
	if len(p) > tile.Colors {
		n := tile.Colors
		if src, pinned = opaque(m); pinned {
			n--
		}
		q := quantize.MedianCutQuantizer{
			Weighting: func(_ image.Image, x, y int) uint32 {
				if transparent(m.At(x, y)) {
					return 0
				}
				return 1
			},
		}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), src))
		draw.Draw(pm, b, src, b.Min, draw.Src)
		src, p = pm, uniqueColors(pm)
	}

	s := shades(p)

	pixels := make([]uint8, 0, tile.Pixels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch {
			case pinned && transparent(m.At(x, y)):
				pixels = append(pixels, 0)
			case pinned:
				pixels = append(pixels, s[key(src.At(x, y))]+1)
			default:
				pixels = append(pixels, s[key(src.At(x, y))])
			}
		}
	}

	return pixels, nil
}

// Encode writes the Image m to w in 2 bits per pixel tile format.
func Encode(w io.Writer, m image.Image) error {
	pixels, err := Pixels(m)
	if err != nil {
		return err
	}

	b, err := tile.Encode(pixels)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
