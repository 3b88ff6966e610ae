package huffzip

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// FrequencyTable counts the occurrences of each Symbol in a text.  Symbols
// are remembered in the order in which they were first seen, which makes
// everything derived from the table deterministic.
type FrequencyTable struct {
	counts map[Symbol]uint64
	order  []Symbol
	total  uint64
}

// CountFrequencies scans text and returns its FrequencyTable.
//
// Returns ErrEmptyInput if text is empty, or ErrInvalidText if text is not
// valid UTF-8.
//
func CountFrequencies(text string) (FrequencyTable, error) {
	if len(text) == 0 {
		return FrequencyTable{}, ErrEmptyInput
	}

	ft := FrequencyTable{counts: make(map[Symbol]uint64)}
	for index, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[index:]); size <= 1 {
				return FrequencyTable{}, fmt.Errorf("%w: bad byte 0x%02x at offset %d", ErrInvalidText, text[index], index)
			}
		}
		sym := Symbol(r)
		if _, found := ft.counts[sym]; !found {
			ft.order = append(ft.order, sym)
		}
		ft.counts[sym]++
		ft.total++
	}
	return ft, nil
}

// Len returns the number of distinct symbols.
func (ft FrequencyTable) Len() int {
	return len(ft.order)
}

// Count returns the number of occurrences of sym.
func (ft FrequencyTable) Count(sym Symbol) uint64 {
	return ft.counts[sym]
}

// Total returns the number of symbols in the text.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns the distinct symbols in first-seen order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, len(ft.order))
	copy(out, ft.order)
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, sym := range ft.order {
		fmt.Fprintf(&buf, "\tCount(%s) = %d\n", sym, ft.counts[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
