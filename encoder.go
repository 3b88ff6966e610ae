package huffzip

import (
	"fmt"
	"io"

	"github.com/dgryski/go-bitstream"
)

// Encoder packs the Codes of a stream of Symbols into bytes, first bit of
// each Code in the most significant bit of each byte.
type Encoder struct {
	table CodeTable
	bw    *bitstream.BitWriter
	bits  uint64
}

// NewEncoder constructs an Encoder which writes to w using the given table.
func NewEncoder(table CodeTable, w io.Writer) *Encoder {
	return &Encoder{table: table, bw: bitstream.NewWriter(w)}
}

// WriteSymbol appends the Code for sym to the output.
func (e *Encoder) WriteSymbol(sym Symbol) error {
	hc, found := e.table.Encode(sym)
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownSymbol, sym)
	}
	if err := e.bw.WriteBits(hc.Bits, int(hc.Size)); err != nil {
		return err
	}
	e.bits += uint64(hc.Size)
	return nil
}

// WriteText appends the Code for every character of text to the output.
func (e *Encoder) WriteText(text string) error {
	for _, r := range text {
		if err := e.WriteSymbol(Symbol(r)); err != nil {
			return err
		}
	}
	return nil
}

// Bits returns the number of bits written so far, not counting padding.
func (e *Encoder) Bits() uint64 {
	return e.bits
}

// Flush pads the output with zero bits to a byte boundary and writes out any
// partial byte.  It returns the number of pad bits, which is 0 if the output
// was already byte-aligned.
func (e *Encoder) Flush() (byte, error) {
	pad := PadBits(e.bits)
	if err := e.bw.Flush(bitstream.Zero); err != nil {
		return 0, err
	}
	e.bits = 0
	return pad, nil
}

// PadBits returns the number of zero bits needed to pad a payload of nbits
// bits to a whole number of bytes.
func PadBits(nbits uint64) byte {
	return byte((8 - nbits%8) % 8)
}
