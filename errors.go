package huffzip

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when asked to compress text with no
	// symbols in it.
	ErrEmptyInput = errors.New("huffzip: empty input")

	// ErrEmptyQueue is returned by Queue.ExtractMin on an empty queue.
	ErrEmptyQueue = errors.New("huffzip: extract from empty queue")

	// ErrCorruptHeader is returned when the codebook at the start of a
	// compressed file is malformed or truncated.
	ErrCorruptHeader = errors.New("huffzip: corrupt header")

	// ErrCorruptData is returned when the payload after the codebook
	// cannot be decoded against it.
	ErrCorruptData = errors.New("huffzip: corrupt data")

	// ErrInvalidText is returned when the input to be compressed is not
	// valid UTF-8.
	ErrInvalidText = errors.New("huffzip: input is not valid UTF-8")

	// ErrUnknownSymbol is returned when asked to encode a Symbol that has
	// no Code in the CodeTable.
	ErrUnknownSymbol = errors.New("huffzip: unknown symbol")

	// ErrSameFile is returned when asked to compress or decompress a file
	// onto itself.
	ErrSameFile = errors.New("huffzip: source and destination are the same file")
)

// IOError reports a failure to read the source or write the destination.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error fulfills the error interface.
func (err *IOError) Error() string {
	if err.Path == "" {
		return "huffzip: " + err.Op + ": " + err.Err.Error()
	}
	return "huffzip: " + err.Op + " " + err.Path + ": " + err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *IOError) Unwrap() error {
	return err.Err
}

var _ error = (*IOError)(nil)
