// Package huffzip implements a classic (non-canonical, non-adaptive) Huffman
// text compressor.
//
// Compression counts the characters of the text, builds a Huffman tree from
// those counts, derives a prefix-free bit code for every character, and
// writes the codebook followed by the bit-packed text.  Decompression reads
// the codebook back and walks the coded bits through a trie built from it.
// See WriteHeader for the file layout.
//
// The whole text is held in memory during both directions.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffzip
