package twobpp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

func separator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ParsePixels reads pixel values separated by commas and/or whitespace.
// Values may be decimal or carry a 0x, 0o or 0b prefix. Anything after a #
// on a line is ignored. No validation beyond parsing is performed, that is
// left to the encoder.
func ParsePixels(r io.Reader) ([]uint64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var pixels []uint64
	for _, line := range strings.Split(string(b), "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, f := range strings.FieldsFunc(line, separator) {
			v, err := strconv.ParseUint(f, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("twobpp: invalid pixel %q: %w", f, err)
			}
			pixels = append(pixels, v)
		}
	}

	return pixels, nil
}
