/*
Package twobpp converts pixel data into 2 bits per pixel tiles, optionally
caching the results in a SQLite database.
*/
package twobpp

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"

	timage "github.com/bodgit/twobpp/image"
	"github.com/bodgit/twobpp/tile"
)

// Converter reads a single tile from some source and encodes it.
type Converter struct {
	db     *TileDB
	logger *log.Logger
}

// New returns a Converter. The db may be nil in which case nothing is cached.
func New(db *TileDB, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		db:     db,
		logger: logger,
	}
}

func (c *Converter) encode(pixels []uint64) ([]byte, error) {
	if c.db == nil {
		return tile.Encode(pixels)
	}

	b, hit, err := c.db.Encode(pixels)
	if err != nil {
		return nil, err
	}
	if hit {
		c.logger.Println("Using cached tile")
	}
	return b, nil
}

// EncodeText parses a list of pixel values from r and encodes them.
func (c *Converter) EncodeText(r io.Reader) ([]byte, error) {
	pixels, err := ParsePixels(r)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Read %d pixels\n", len(pixels))

	return c.encode(pixels)
}

// EncodeImage decodes a GIF, JPEG or PNG image from r and encodes it. If fit
// is set the image is first scaled to the size of a tile.
func (c *Converter) EncodeImage(r io.Reader, fit bool) ([]byte, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Decoded %s image, %dx%d\n", format, m.Bounds().Dx(), m.Bounds().Dy())

	if fit {
		m = timage.Fit(m)
	}

	p, err := timage.Pixels(m)
	if err != nil {
		return nil, err
	}

	pixels := make([]uint64, len(p))
	for i, v := range p {
		pixels[i] = uint64(v)
	}

	return c.encode(pixels)
}
