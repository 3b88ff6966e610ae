package huffzip

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeEntry pairs a Symbol with its Code.
type CodeEntry struct {
	Symbol Symbol
	Code   Code
}

// CodeTable maps each Symbol of a Tree to its Code, the path from the root to
// the Symbol's leaf (0 for left, 1 for right).  No Code in a CodeTable is a
// prefix of another.
type CodeTable struct {
	codes   map[Symbol]Code
	entries []CodeEntry
	minSize byte
	maxSize byte
}

// NewCodeTable walks the tree and assigns a Code to every leaf.
//
// A tree consisting of a lone leaf has no paths at all, so that leaf is given
// the 1-bit code "0" instead of an empty code that could never be decoded.
//
func NewCodeTable(t *Tree) CodeTable {
	ct := CodeTable{
		codes:   make(map[Symbol]Code, t.NumLeaves()),
		entries: make([]CodeEntry, 0, t.NumLeaves()),
	}

	record := func(id NodeID, hc Code) {
		sym := t.Symbol(id)
		_, dupe := ct.codes[sym]
		assert.Assertf(!dupe, "symbol %s appears in more than one leaf", sym)

		ct.codes[sym] = hc
		ct.entries = append(ct.entries, CodeEntry{Symbol: sym, Code: hc})
		if len(ct.entries) == 1 {
			ct.minSize = hc.Size
			ct.maxSize = hc.Size
		} else if ct.minSize > hc.Size {
			ct.minSize = hc.Size
		} else if ct.maxSize < hc.Size {
			ct.maxSize = hc.Size
		}
	}

	root := t.Root()
	if t.IsLeaf(root) {
		record(root, MakeCode(1, 0))
		return ct
	}

	// Walk the tree with an explicit stack; only internal nodes are ever
	// pushed, so the stack depth is the length of the longest code.  That
	// is about log2(NumLeaves) for evenly spread frequencies, which is what
	// the capacity below assumes, and up to NumLeaves-1 for skewed ones,
	// in which case append grows the stack.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		id   NodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2uint32(uint32(t.NumLeaves())))

	processChild := func(child NodeID, hc Code) {
		if t.IsLeaf(child) {
			record(child, hc)
			return
		}
		stack = append(stack, stackItem{id: child, code: hc})
	}

	stack = append(stack, stackItem{id: root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		if x < 2 {
			assert.Assertf(top.code.Size < MaxCodeSize, "Huffman code longer than %d bits", MaxCodeSize)
		}
		left, right := t.Children(top.id)
		switch x {
		case 0:
			processChild(left, top.code.Append(0))
		case 1:
			processChild(right, top.code.Append(1))
		case 2:
			stack[len(stack)-1] = stackItem{}
			stack = stack[:len(stack)-1]
		}
	}

	assert.Assertf(len(ct.entries) == t.NumLeaves(), "visited %d leaves, expected %d", len(ct.entries), t.NumLeaves())
	return ct
}

// Encode returns the Code for sym.  The second return value is false if sym
// is not in the table.
func (ct CodeTable) Encode(sym Symbol) (Code, bool) {
	hc, found := ct.codes[sym]
	return hc, found
}

// Len returns the number of symbols in the table.
func (ct CodeTable) Len() int {
	return len(ct.entries)
}

// Entries returns the (Symbol, Code) pairs in tree order, leftmost leaf
// first.  This is the order in which they are written to the codebook.
func (ct CodeTable) Entries() []CodeEntry {
	out := make([]CodeEntry, len(ct.entries))
	copy(out, ct.entries)
	return out
}

// MinSize is the bit length of the shortest code.
func (ct CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct CodeTable) MaxSize() byte {
	return ct.maxSize
}

// EncodedBits returns the length in bits of the payload for a text with the
// given frequencies.
func (ct CodeTable) EncodedBits(ft FrequencyTable) uint64 {
	var sum uint64
	for sym, count := range ft.counts {
		hc, found := ct.codes[sym]
		assert.Assertf(found, "symbol %s has no code", sym)
		sum += count * uint64(hc.Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable's current
// state to the given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, entry := range ct.entries {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", entry.Symbol, entry.Code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
