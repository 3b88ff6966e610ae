package huffzip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxCodeSize is the maximum number of bits in a Code.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size valid bits is the first bit; all bits above Size are zero.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits & sizeMask(size)}
}

// ParseCode parses a string of '0' and '1' characters into a Code.  The
// string must hold between 1 and MaxCodeSize characters.
func ParseCode(str string) (Code, error) {
	if str == "" {
		return Code{}, errEmptyCode
	}
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is too long: got %d bits, max %d", str, len(str), MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("code %q: invalid character %q at index %d", str, str[i], i)
		}
	}
	return hc, nil
}

// Append returns this Code with one more bit added at the end.
func (hc Code) Append(bit uint) Code {
	if hc.Size >= MaxCodeSize {
		panic(fmt.Errorf("BUG: Code.Append: code %s is already %d bits long", hc, hc.Size))
	}
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | uint64(bit&1)}
}

// Bit returns the bit at the given index, counting from 0 for the first bit.
func (hc Code) Bit(index byte) uint {
	if index >= hc.Size {
		panic(fmt.Errorf("BUG: Code.Bit: index %d out of range for %d-bit code", index, hc.Size))
	}
	return uint(hc.Bits>>(hc.Size-1-index)) & 1
}

// HasPrefix returns true iff the first prefix.Size bits of this Code are
// equal to prefix.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// Digits returns the bits of this Code as a string of '0' and '1' characters,
// first bit first.  This is the form in which codes are stored in the header
// of a compressed file.
func (hc Code) Digits() string {
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for index := byte(0); index < hc.Size; index++ {
		buf.WriteByte('0' + byte(hc.Bit(index)))
	}
	return buf.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Digits())
}

var _ fmt.Stringer = Code{}

var errEmptyCode = errors.New("empty code")

func sizeMask(size byte) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << size) - 1
}
