package huffzip

import (
	"errors"
	"testing"
)

func mustBuildTree(t *testing.T, text string) *Tree {
	t.Helper()
	ft, err := CountFrequencies(text)
	if err != nil {
		t.Fatalf("CountFrequencies(%q) failed: %v", text, err)
	}
	tree, err := BuildTree(ft)
	if err != nil {
		t.Fatalf("BuildTree(%q) failed: %v", text, err)
	}
	return tree
}

func TestBuildTree_aaab(t *testing.T) {
	tree := mustBuildTree(t, "aaab")

	root := tree.Root()
	if tree.IsLeaf(root) {
		t.Fatalf("root is a leaf")
	}
	if w := tree.Weight(root); w != 4 {
		t.Errorf("expected root weight 4, got %d", w)
	}
	if n := tree.Len(); n != 3 {
		t.Errorf("expected 3 nodes, got %d", n)
	}

	// b (weight 1) is extracted first and becomes the left child.
	left, right := tree.Children(root)
	if !tree.IsLeaf(left) || tree.Symbol(left) != 'b' || tree.Weight(left) != 1 {
		t.Errorf("wrong left child: leaf=%v symbol=%s weight=%d", tree.IsLeaf(left), tree.Symbol(left), tree.Weight(left))
	}
	if !tree.IsLeaf(right) || tree.Symbol(right) != 'a' || tree.Weight(right) != 3 {
		t.Errorf("wrong right child: leaf=%v symbol=%s weight=%d", tree.IsLeaf(right), tree.Symbol(right), tree.Weight(right))
	}
	if tree.Symbol(root) != InvalidSymbol {
		t.Errorf("internal node has symbol %s", tree.Symbol(root))
	}
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	tree := mustBuildTree(t, "aaaa")

	root := tree.Root()
	if !tree.IsLeaf(root) {
		t.Fatalf("expected root to be a leaf")
	}
	if tree.Len() != 1 || tree.NumLeaves() != 1 {
		t.Errorf("expected 1 node and 1 leaf, got %d and %d", tree.Len(), tree.NumLeaves())
	}
	if tree.Symbol(root) != 'a' || tree.Weight(root) != 4 {
		t.Errorf("wrong root: symbol=%s weight=%d", tree.Symbol(root), tree.Weight(root))
	}
	if left, right := tree.Children(root); left != InvalidNode || right != InvalidNode {
		t.Errorf("leaf has children %d, %d", left, right)
	}
}

func TestBuildTree_Weights(t *testing.T) {
	tree := mustBuildTree(t, "the quick brown fox jumps over the lazy dog")

	if tree.Len() != 2*tree.NumLeaves()-1 {
		t.Errorf("expected %d nodes, got %d", 2*tree.NumLeaves()-1, tree.Len())
	}

	var check func(id NodeID)
	check = func(id NodeID) {
		if tree.IsLeaf(id) {
			return
		}
		left, right := tree.Children(id)
		if sum := tree.Weight(left) + tree.Weight(right); sum != tree.Weight(id) {
			t.Errorf("node %d: weight %d != %d + %d", id, tree.Weight(id), tree.Weight(left), tree.Weight(right))
		}
		check(left)
		check(right)
	}
	check(tree.Root())

	if w := tree.Weight(tree.Root()); w != 43 {
		t.Errorf("expected root weight 43, got %d", w)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	if _, err := BuildTree(FrequencyTable{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
