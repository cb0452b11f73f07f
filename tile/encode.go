package tile

import (
	"errors"
	"fmt"
)

var (
	// ErrLength is matched by any LengthError
	ErrLength = errors.New("tile: pixel array must be 64 pixels long")
	// ErrCast is matched by any CastError
	ErrCast = errors.New("tile: couldn't narrow pixel to a byte")
	// ErrRange is matched by any RangeError
	ErrRange = errors.New("tile: pixel values must be between 0 and 3")
)

// Pixel is satisfied by every unsigned integer type.
type Pixel interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// LengthError is returned when the pixel array is not exactly Pixels long.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("tile: pixel array must be %d pixels long, got %d", Pixels, e.Length)
}

// Is reports whether target is ErrLength.
func (e *LengthError) Is(target error) bool { return target == ErrLength }

// CastError is returned when a pixel value does not fit in a byte.
type CastError struct {
	Index int
	Value uint64
}

func (e *CastError) Error() string {
	return fmt.Sprintf("tile: couldn't narrow pixel %d value %d to a byte", e.Index, e.Value)
}

// Is reports whether target is ErrCast.
func (e *CastError) Is(target error) bool { return target == ErrCast }

// RangeError is returned when a pixel value is not a valid color index.
type RangeError struct {
	Index int
	Value byte
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("tile: pixel %d value %d must be between 0 and %d", e.Index, e.Value, Colors-1)
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool { return target == ErrRange }

// bits returns the contribution of pixel i to the low and high planes, with
// any set bit already in the most significant position.
func bits[T Pixel](i int, v T) (byte, byte, error) {
	if uint64(v) > 0xff {
		return 0, 0, &CastError{Index: i, Value: uint64(v)}
	}
	switch b := byte(v); b {
	case 0:
		return 0, 0, nil
	case 1:
		return 0x80, 0, nil
	case 2:
		return 0, 0x80, nil
	case 3:
		return 0x80, 0x80, nil
	default:
		return 0, 0, &RangeError{Index: i, Value: b}
	}
}

// Encode converts the 64 pixels, packed as pixels[x*8+y], into the 16 byte
// 2 bits per pixel representation. Each x yields a low plane byte followed by
// a high plane byte, with pixel y=0 in the most significant bit. Nothing is
// returned other than the error if any pixel is invalid.
func Encode[T Pixel](pixels []T) ([]byte, error) {
	if len(pixels) != Pixels {
		return nil, &LengthError{Length: len(pixels)}
	}

	b := make([]byte, 0, Size)
	for x := 0; x < Height; x++ {
		var low, high byte
		// Walk backwards so y=0 is shifted into bit 7 last
		for y := Width - 1; y >= 0; y-- {
			i := x*Width + y
			l, h, err := bits(i, pixels[i])
			if err != nil {
				return nil, err
			}
			low = low>>1 | l
			high = high>>1 | h
		}
		b = append(b, low, high)
	}

	return b, nil
}
