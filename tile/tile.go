/*
Package tile implements an encoder for the 2 bits per pixel planar tile
format used by the Game Boy and similar 8-bit graphics hardware.

A tile is 8 by 8 pixels, each pixel being a color index between 0 and 3. It
is stored as 16 bytes; for each group of eight pixels a byte holding the low
bit of every pixel is followed by a byte holding the high bit. The first pixel
of a group occupies the most significant bit.
*/
package tile

const (
	// Width is the number of pixels in each group
	Width = 8
	// Height is the number of groups in a tile
	Height = 8
	// Pixels is the exact number of pixels a tile must contain
	Pixels = Width * Height
	// Colors is the number of distinct color indices
	Colors = 4
	// Size is the length in bytes of an encoded tile
	Size = Height << 1
)
