package huffzip

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dgryski/go-bitstream"
)

// Decoder turns Huffman-coded bits back into Symbols.
//
// Internally the codebook is stored as a binary trie: every bit moves a
// cursor from a node to one of its children, and reaching a leaf yields that
// leaf's Symbol and sends the cursor back to the root.  This costs O(1) per
// bit, regardless of code length.
//
type Decoder struct {
	nodes   []trieNode
	codes   map[Code]Symbol
	minSize byte
	maxSize byte
}

type trieNode struct {
	child  [2]int32
	symbol Symbol
}

// Node 0 is always the root, and the root is never anyone's child, so a
// child of 0 means "no child".
const trieRoot = 0

// NewDecoder builds a Decoder from a codebook.
//
// The codebook must be a valid prefix code: non-empty, with no two entries
// sharing a Code and no Code a prefix of another.  Violations are reported
// as errors wrapping ErrCorruptHeader.  The code need not be complete; a
// codebook of one Symbol, as produced for single-symbol input, is fine.
//
func NewDecoder(entries []CodeEntry) (*Decoder, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty codebook", ErrCorruptHeader)
	}

	d := &Decoder{
		nodes: make([]trieNode, 1, 2*len(entries)),
		codes: make(map[Code]Symbol, len(entries)),
	}
	d.nodes[trieRoot] = trieNode{symbol: InvalidSymbol}

	for index, entry := range entries {
		if err := d.insert(entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorruptHeader, index, err)
		}
		hc := entry.Code
		if index == 0 {
			d.minSize = hc.Size
			d.maxSize = hc.Size
		} else if d.minSize > hc.Size {
			d.minSize = hc.Size
		} else if d.maxSize < hc.Size {
			d.maxSize = hc.Size
		}
	}
	return d, nil
}

func (d *Decoder) insert(entry CodeEntry) error {
	hc := entry.Code
	if hc.Size == 0 {
		return errEmptyCode
	}
	if other, found := d.codes[hc]; found {
		return fmt.Errorf("code %s is shared by %s and %s", hc, other, entry.Symbol)
	}

	cursor := int32(trieRoot)
	for index := byte(0); index < hc.Size; index++ {
		if d.nodes[cursor].symbol != InvalidSymbol {
			return fmt.Errorf("code %s for %s has a prefix which is the code for %s", hc, entry.Symbol, d.nodes[cursor].symbol)
		}
		bit := hc.Bit(index)
		next := d.nodes[cursor].child[bit]
		if next == trieRoot {
			next = int32(len(d.nodes))
			d.nodes = append(d.nodes, trieNode{symbol: InvalidSymbol})
			d.nodes[cursor].child[bit] = next
		}
		cursor = next
	}

	n := &d.nodes[cursor]
	if n.child[0] != trieRoot || n.child[1] != trieRoot {
		return fmt.Errorf("code %s for %s is a prefix of another code", hc, entry.Symbol)
	}
	n.symbol = entry.Symbol
	d.codes[hc] = entry.Symbol
	return nil
}

// Decode looks up a complete Code.  It returns InvalidSymbol if hc is not
// the Code of any Symbol.
func (d *Decoder) Decode(hc Code) Symbol {
	if sym, found := d.codes[hc]; found {
		return sym
	}
	return InvalidSymbol
}

// Len returns the number of Symbols in the codebook.
func (d *Decoder) Len() int {
	return len(d.codes)
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// ReadText decodes exactly nbits bits from r and returns the resulting text.
//
// Returns an error wrapping ErrCorruptData if r holds fewer than nbits bits,
// if some sequence of bits is not the Code of any Symbol, or if the last
// Code is cut short.
//
func (d *Decoder) ReadText(r io.Reader, nbits uint64) (string, error) {
	br := bitstream.NewReader(r)

	var out strings.Builder
	var symbols uint64
	cursor := int32(trieRoot)
	for pos := uint64(0); pos < nbits; pos++ {
		bit, err := br.ReadBit()
		if err == io.EOF {
			return "", fmt.Errorf("%w: payload truncated at bit %d of %d", ErrCorruptData, pos, nbits)
		}
		if err != nil {
			return "", err
		}

		var index uint
		if bit == bitstream.One {
			index = 1
		}
		next := d.nodes[cursor].child[index]
		if next == trieRoot {
			return "", fmt.Errorf("%w: no code matches the bits ending at bit %d (after %d symbols)", ErrCorruptData, pos, symbols)
		}
		cursor = next

		if sym := d.nodes[cursor].symbol; sym != InvalidSymbol {
			out.WriteRune(rune(sym))
			symbols++
			cursor = trieRoot
		}
	}

	if cursor != trieRoot {
		return "", fmt.Errorf("%w: payload ends in the middle of a code (after %d symbols)", ErrCorruptData, symbols)
	}
	return out.String(), nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.codes))
	for hc := range d.codes {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %s\n", hc, d.codes[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
