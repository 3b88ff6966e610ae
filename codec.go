package huffzip

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"unicode/utf8"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffzip")

func init() {
	quietLogging()
}

// quietLogging raises the threshold for this package's logger to WARNING.
// Programs that want the debugging dumps set their own level after
// installing a backend, as cmd/huffzip does.
func quietLogging() {
	logging.SetLevel(logging.WARNING, "huffzip")
}

// Stats describes a single compression or decompression run.
type Stats struct {
	// Symbols is the number of characters in the text.
	Symbols uint64

	// DistinctSymbols is the number of entries in the codebook.
	DistinctSymbols int

	// PayloadBits is the number of coded bits, not counting padding.
	PayloadBits uint64

	// PadBits is the number of zero bits after the coded bits.
	PadBits byte

	// HeaderBytes is the size of the header, codebook included.
	HeaderBytes int64

	// TextBytes is the size of the text in UTF-8.
	TextBytes int64

	// CompressedBytes is the size of the header plus the payload.
	CompressedBytes int64
}

// String returns a one-line human-readable summary.
func (s Stats) String() string {
	ratio := 0.0
	if s.TextBytes != 0 {
		ratio = float64(s.CompressedBytes) / float64(s.TextBytes)
	}
	return fmt.Sprintf("%d symbols (%d distinct), %d text bytes <-> %d compressed bytes (%d header, %d+%d payload bits), ratio %.3f",
		s.Symbols, s.DistinctSymbols, s.TextBytes, s.CompressedBytes, s.HeaderBytes, s.PayloadBits, s.PadBits, ratio)
}

// Encode compresses text into a self-contained byte slice: header first,
// then the packed payload.
func Encode(text string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := encode(&buf, text); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(data []byte) (string, error) {
	text, _, _, err := decode(data)
	return text, err
}

// Inspect decodes data like Decode, but returns the codebook and statistics
// instead of the text.
func Inspect(data []byte) (*Decoder, Stats, error) {
	_, stats, d, err := decode(data)
	if err != nil {
		return nil, Stats{}, err
	}
	return d, stats, nil
}

// Compress reads all of r as text and writes its compressed form to w.
func Compress(r io.Reader, w io.Writer) (Stats, error) {
	return compress(r, w, "", "")
}

// Decompress reads all of r as compressed data and writes the text to w.
func Decompress(r io.Reader, w io.Writer) (Stats, error) {
	return decompress(r, w, "", "")
}

// CompressFile compresses the file at src into a new file at dst.  If
// compression fails, no file is left at dst.
func CompressFile(src, dst string) (Stats, error) {
	return withFiles(src, dst, compress)
}

// DecompressFile decompresses the file at src into a new file at dst.  If
// decompression fails, no file is left at dst.
func DecompressFile(src, dst string) (Stats, error) {
	return withFiles(src, dst, decompress)
}

type transformFunc func(r io.Reader, w io.Writer, srcPath, dstPath string) (Stats, error)

func withFiles(src, dst string, fn transformFunc) (stats Stats, err error) {
	in, err := os.Open(src)
	if err != nil {
		return Stats{}, &IOError{Op: "open", Path: src, Err: unwrapPathError(err)}
	}
	defer in.Close()

	// os.Create would truncate src before it is read.
	srcInfo, err := in.Stat()
	if err != nil {
		return Stats{}, &IOError{Op: "stat", Path: src, Err: unwrapPathError(err)}
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return Stats{}, fmt.Errorf("%w: %s and %s", ErrSameFile, src, dst)
	}

	out, err := os.Create(dst)
	if err != nil {
		return Stats{}, &IOError{Op: "create", Path: dst, Err: unwrapPathError(err)}
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "close", Path: dst, Err: unwrapPathError(closeErr)}
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	return fn(in, out, src, dst)
}

func compress(r io.Reader, w io.Writer, srcPath, dstPath string) (Stats, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return Stats{}, &IOError{Op: "read", Path: srcPath, Err: err}
	}

	bw := bufio.NewWriter(w)
	stats, err := encode(bw, string(raw))
	if err != nil {
		return Stats{}, err
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, &IOError{Op: "write", Path: dstPath, Err: err}
	}

	log.Debugf("compressed %s", stats)
	return stats, nil
}

func decompress(r io.Reader, w io.Writer, srcPath, dstPath string) (Stats, error) {
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return Stats{}, &IOError{Op: "read", Path: srcPath, Err: err}
	}

	text, stats, _, err := decode(raw)
	if err != nil {
		return Stats{}, err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return Stats{}, &IOError{Op: "write", Path: dstPath, Err: err}
	}

	log.Debugf("decompressed %s", stats)
	return stats, nil
}

// encode runs the whole compression pipeline: frequencies, tree, code
// table, header, payload.  Errors from w are returned as *IOError.
func encode(w io.Writer, text string) (Stats, error) {
	ft, err := CountFrequencies(text)
	if err != nil {
		return Stats{}, err
	}

	tree, err := BuildTree(ft)
	if err != nil {
		return Stats{}, err
	}

	table := NewCodeTable(tree)
	if log.IsEnabledFor(logging.DEBUG) {
		var buf bytes.Buffer
		_, _ = table.Dump(&buf)
		log.Debugf("code table for %d symbols:\n%s", ft.Total(), buf.String())
	}

	payloadBits := table.EncodedBits(ft)
	h := Header{Entries: table.Entries(), PadBits: PadBits(payloadBits)}

	if err := h.validate(); err != nil {
		return Stats{}, err
	}
	headerBytes, err := WriteHeader(w, h)
	if err != nil {
		return Stats{}, &IOError{Op: "write", Err: err}
	}

	cw := &countingWriter{w: w}
	enc := NewEncoder(table, cw)
	if err := enc.WriteText(text); err != nil {
		return Stats{}, encodeError(err)
	}
	if enc.Bits() != payloadBits {
		panic(fmt.Errorf("BUG: wrote %d payload bits, expected %d", enc.Bits(), payloadBits))
	}
	pad, err := enc.Flush()
	if err != nil {
		return Stats{}, encodeError(err)
	}
	if pad != h.PadBits {
		panic(fmt.Errorf("BUG: padded with %d bits, header says %d", pad, h.PadBits))
	}

	return Stats{
		Symbols:         ft.Total(),
		DistinctSymbols: table.Len(),
		PayloadBits:     payloadBits,
		PadBits:         pad,
		HeaderBytes:     headerBytes,
		TextBytes:       int64(len(text)),
		CompressedBytes: headerBytes + cw.n,
	}, nil
}

func decode(data []byte) (string, Stats, *Decoder, error) {
	src := bytes.NewReader(data)
	r := bufio.NewReader(src)
	h, err := ReadHeader(r)
	if err != nil {
		return "", Stats{}, nil, err
	}

	d, err := NewDecoder(h.Entries)
	if err != nil {
		return "", Stats{}, nil, err
	}
	if log.IsEnabledFor(logging.DEBUG) {
		var buf bytes.Buffer
		_, _ = d.Dump(&buf)
		log.Debugf("codebook with %d entries:\n%s", d.Len(), buf.String())
	}

	payloadBytes := int64(r.Buffered()) + int64(src.Len())
	headerBytes := int64(len(data)) - payloadBytes
	if payloadBytes == 0 {
		return "", Stats{}, nil, fmt.Errorf("%w: no payload", ErrCorruptData)
	}
	nbits := uint64(payloadBytes)*8 - uint64(h.PadBits)

	text, err := d.ReadText(r, nbits)
	if err != nil {
		return "", Stats{}, nil, err
	}

	return text, Stats{
		Symbols:         uint64(utf8.RuneCountInString(text)),
		DistinctSymbols: d.Len(),
		PayloadBits:     nbits,
		PadBits:         h.PadBits,
		HeaderBytes:     headerBytes,
		TextBytes:       int64(len(text)),
		CompressedBytes: int64(len(data)),
	}, d, nil
}

func encodeError(err error) error {
	if errors.Is(err, ErrUnknownSymbol) {
		return err
	}
	return &IOError{Op: "write", Err: err}
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
