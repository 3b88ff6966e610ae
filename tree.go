package huffzip

import (
	"github.com/chronos-tachyon/assert"
)

// NodeID is a handle to a node within a Tree.
type NodeID int32

// InvalidNode is returned by some functions to clearly indicate that no node
// is being returned.
const InvalidNode = NodeID(-1)

// Tree is a Huffman code tree.  Its nodes live in a single arena and refer to
// each other by NodeID, so a Tree owns all of its nodes and there are no
// parent pointers to maintain.
//
// A leaf has a valid Symbol and no children.  An internal node has
// InvalidSymbol and exactly two children.  A Tree built from a single
// distinct symbol consists of one leaf and no internal nodes.
//
type Tree struct {
	nodes     []treeNode
	root      NodeID
	numLeaves int
}

type treeNode struct {
	symbol Symbol
	weight uint64
	left   NodeID
	right  NodeID
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// One leaf is queued per symbol, in first-seen order.  Then, while more than
// one node remains, the two lowest-weight nodes a and b are extracted (in
// that order) and replaced by a new internal node with children (a, b).  The
// last node standing is the root.
//
// Returns ErrEmptyInput if the FrequencyTable has no symbols.
//
func BuildTree(ft FrequencyTable) (*Tree, error) {
	numLeaves := ft.Len()
	if numLeaves == 0 {
		return nil, ErrEmptyInput
	}

	t := &Tree{
		nodes:     make([]treeNode, 0, 2*numLeaves-1),
		root:      InvalidNode,
		numLeaves: numLeaves,
	}

	q := NewQueue(numLeaves)
	for _, sym := range ft.order {
		weight := ft.counts[sym]
		id := t.add(treeNode{symbol: sym, weight: weight, left: InvalidNode, right: InvalidNode})
		q.Insert(id, weight)
	}

	for q.Len() > 1 {
		a, aWeight, err := q.ExtractMin()
		if err != nil {
			return nil, err
		}
		b, bWeight, err := q.ExtractMin()
		if err != nil {
			return nil, err
		}
		weight := addSaturating(aWeight, bWeight)
		id := t.add(treeNode{symbol: InvalidSymbol, weight: weight, left: a, right: b})
		q.Insert(id, weight)
	}

	root, _, err := q.ExtractMin()
	if err != nil {
		return nil, err
	}
	t.root = root

	assert.Assertf(t.Len() == 2*numLeaves-1, "tree has %d nodes, expected %d", t.Len(), 2*numLeaves-1)
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the total number of nodes, leaves and internal nodes both.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the number of distinct symbols.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// IsLeaf returns true iff id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.node(id).left == InvalidNode
}

// Symbol returns the symbol of a leaf, or InvalidSymbol for an internal node.
func (t *Tree) Symbol(id NodeID) Symbol {
	return t.node(id).symbol
}

// Weight returns the weight of a node: the frequency of a leaf's symbol, or
// the sum of the weights of an internal node's children.
func (t *Tree) Weight(id NodeID) uint64 {
	return t.node(id).weight
}

// Children returns the left and right children of an internal node, or
// (InvalidNode, InvalidNode) for a leaf.
func (t *Tree) Children(id NodeID) (left NodeID, right NodeID) {
	n := t.node(id)
	return n.left, n.right
}

func (t *Tree) add(n treeNode) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) node(id NodeID) *treeNode {
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "node %d out of range [0, %d)", id, len(t.nodes))
	return &t.nodes[id]
}
