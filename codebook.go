package huffzip

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the 4-byte signature at the start of every compressed file.
const Magic = "HZ1\n"

// maxEntries is one more than the largest code point.
const maxEntries = int32(MaxSymbol) + 1

// Header is everything that precedes the payload in a compressed file: the
// codebook, followed by the number of zero bits used to pad the payload out
// to a whole number of bytes.
type Header struct {
	Entries []CodeEntry
	PadBits byte
}

// WriteHeader serializes h to w.  The layout, with all integers
// little-endian, is:
//
//     Magic
//     int32    number of entries
//     repeated for each entry:
//         int32    symbol
//         uvarint  code length in bits, 1 .. 64
//         bytes    code, one '0' or '1' character per bit
//     uint8    pad bits, 0 .. 7
//
// The codes are stored as printable digits rather than packed bits.  This
// costs space in the header but keeps it readable with a hex dump.
//
func WriteHeader(w io.Writer, h Header) (int64, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	var scratch [binary.MaxVarintLen64]byte
	buf.WriteString(Magic)
	writeInt32(&buf, int32(len(h.Entries)))
	for _, entry := range h.Entries {
		writeInt32(&buf, int32(entry.Symbol))
		n := binary.PutUvarint(scratch[:], uint64(entry.Code.Size))
		buf.Write(scratch[:n])
		buf.WriteString(entry.Code.Digits())
	}
	buf.WriteByte(h.PadBits)
	return buf.WriteTo(w)
}

func (h Header) validate() error {
	if len(h.Entries) == 0 || len(h.Entries) > int(maxEntries) {
		return fmt.Errorf("huffzip: cannot write header with %d entries", len(h.Entries))
	}
	if h.PadBits > 7 {
		return fmt.Errorf("huffzip: cannot write header with %d pad bits", h.PadBits)
	}
	return nil
}

// ReadHeader parses a Header from r, leaving r positioned at the first byte
// of the payload.
//
// All problems with the header's contents, including running out of data
// before the header is complete, are reported as errors wrapping
// ErrCorruptHeader.  Whether the codes form a valid prefix code is checked by
// NewDecoder, not here.
//
func ReadHeader(r *bufio.Reader) (Header, error) {
	var sig [len(Magic)]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return Header{}, headerReadError("magic", err)
	}
	if string(sig[:]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrCorruptHeader, sig[:])
	}

	count, err := readInt32(r)
	if err != nil {
		return Header{}, headerReadError("entry count", err)
	}
	if count <= 0 || count > maxEntries {
		return Header{}, fmt.Errorf("%w: entry count %d out of range [1, %d]", ErrCorruptHeader, count, maxEntries)
	}

	capacity := count
	if capacity > 256 {
		capacity = 256
	}

	h := Header{Entries: make([]CodeEntry, 0, capacity)}
	seen := make(map[Symbol]struct{}, capacity)
	var digits [MaxCodeSize]byte
	for index := int32(0); index < count; index++ {
		raw, err := readInt32(r)
		if err != nil {
			return Header{}, headerReadError(fmt.Sprintf("symbol for entry %d of %d", index, count), err)
		}
		sym := Symbol(raw)
		if !sym.Valid() {
			return Header{}, fmt.Errorf("%w: entry %d: invalid symbol %d", ErrCorruptHeader, index, raw)
		}
		if _, dupe := seen[sym]; dupe {
			return Header{}, fmt.Errorf("%w: entry %d: duplicate symbol %s", ErrCorruptHeader, index, sym)
		}
		seen[sym] = struct{}{}

		size, err := binary.ReadUvarint(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, headerReadError(fmt.Sprintf("code length for entry %d of %d", index, count), err)
		}
		if err != nil {
			// varint overflow
			return Header{}, fmt.Errorf("%w: entry %d: %v", ErrCorruptHeader, index, err)
		}
		if size == 0 || size > MaxCodeSize {
			return Header{}, fmt.Errorf("%w: entry %d: code length %d out of range [1, %d]", ErrCorruptHeader, index, size, MaxCodeSize)
		}

		if _, err := io.ReadFull(r, digits[:size]); err != nil {
			return Header{}, headerReadError(fmt.Sprintf("code for entry %d of %d", index, count), err)
		}
		hc, err := ParseCode(string(digits[:size]))
		if err != nil {
			return Header{}, fmt.Errorf("%w: entry %d: %v", ErrCorruptHeader, index, err)
		}

		h.Entries = append(h.Entries, CodeEntry{Symbol: sym, Code: hc})
	}

	pad, err := r.ReadByte()
	if err != nil {
		return Header{}, headerReadError("pad bits", err)
	}
	if pad > 7 {
		return Header{}, fmt.Errorf("%w: pad bits %d out of range [0, 7]", ErrCorruptHeader, pad)
	}
	h.PadBits = pad

	return h, nil
}

func headerReadError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated while reading %s", ErrCorruptHeader, what)
	}
	return err
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	buf.Write(tmp[:])
}

func readInt32(r io.Reader) (int32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(tmp[:])), nil
}
