package huffzip

import (
	"strconv"
	"unicode/utf8"
)

// Symbol represents a single character of input text, i.e. one Unicode code
// point.  Negative symbols are not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(utf8.MaxRune)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// Valid returns true iff this Symbol can appear in UTF-8 text.
func (sym Symbol) Valid() bool {
	return sym >= 0 && utf8.ValidRune(rune(sym))
}

// String returns the Go-quoted character for this Symbol.
func (sym Symbol) String() string {
	if !sym.Valid() {
		return "<invalid>"
	}
	return strconv.QuoteRune(rune(sym))
}
