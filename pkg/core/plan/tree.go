// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plan

import (
	"maps"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/pkg/errors"
)

// Fragment is the program fragment a node was derived from: the program block of loops, generic blocks and
// function calls (the called *FunctionBlock), and the operator of Hop nodes.
type Fragment struct {
	Block program.Block
	Hop   *program.Hop
}

// Tree is the arena owning the plan nodes.
//
// Structural edits (SetChildren, AddChild, ExchangeChild, InsertLevel) keep the parent links consistent.
type Tree struct {
	nodes     map[NodeID]*Node
	parents   map[NodeID]NodeID
	fragments map[NodeID]Fragment
	root      NodeID
	lastID    NodeID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes:     make(map[NodeID]*Node),
		parents:   make(map[NodeID]NodeID),
		fragments: make(map[NodeID]Fragment),
	}
}

// NewNode allocates a detached node with K=1.
func (t *Tree) NewNode(nodeType NodeType, execType ExecType) *Node {
	t.lastID++
	n := &Node{ID: t.lastID, Type: nodeType, ExecType: execType, K: 1}
	t.nodes[n.ID] = n
	return n
}

// Len returns the number of nodes allocated in the arena, attached or not.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) *Node { return t.nodes[id] }

// mustNode returns the node with the given id, or panics.
func (t *Tree) mustNode(id NodeID) *Node {
	n, found := t.nodes[id]
	if !found {
		exceptions.Panicf("plan node %d not found", id)
	}
	return n
}

// Root returns the root node, or nil if it was not set.
func (t *Tree) Root() *Node { return t.nodes[t.root] }

// SetRoot sets the root of the tree.
func (t *Tree) SetRoot(id NodeID) {
	t.mustNode(id)
	t.root = id
	delete(t.parents, id)
}

// Children returns the children of the node, in order.
func (t *Tree) Children(id NodeID) []*Node {
	n := t.mustNode(id)
	children := make([]*Node, len(n.children))
	for ii, c := range n.children {
		children[ii] = t.nodes[c]
	}
	return children
}

// ChildIDs returns a copy of the IDs of the children of the node.
func (t *Tree) ChildIDs(id NodeID) []NodeID {
	return slices.Clone(t.mustNode(id).children)
}

// Parent returns the parent of the node, or nil for the root and detached nodes.
func (t *Tree) Parent(id NodeID) *Node {
	p, found := t.parents[id]
	if !found {
		return nil
	}
	return t.nodes[p]
}

// AddChild appends child to the children of parent.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.mustNode(parent)
	t.mustNode(child)
	p.children = append(p.children, child)
	t.parents[child] = parent
}

// SetChildren replaces the children of parent. Previous children become detached.
func (t *Tree) SetChildren(parent NodeID, children []NodeID) {
	p := t.mustNode(parent)
	for _, c := range p.children {
		if t.parents[c] == parent {
			delete(t.parents, c)
		}
	}
	p.children = slices.Clone(children)
	for _, c := range p.children {
		t.mustNode(c)
		t.parents[c] = parent
	}
}

// ExchangeChild replaces the child oldChild of parent with newChild, in the same position.
// It returns false if oldChild is not a child of parent.
func (t *Tree) ExchangeChild(parent, oldChild, newChild NodeID) bool {
	p := t.mustNode(parent)
	t.mustNode(newChild)
	idx := slices.Index(p.children, oldChild)
	if idx < 0 {
		return false
	}
	p.children[idx] = newChild
	delete(t.parents, oldChild)
	t.parents[newChild] = parent
	return true
}

// InsertLevel allocates a new node of the given type that becomes the sole child of id, and the parent of all
// of id's former children.
func (t *Tree) InsertLevel(id NodeID, nodeType NodeType, execType ExecType) *Node {
	n := t.mustNode(id)
	oldChildren := n.children
	nest := t.NewNode(nodeType, execType)
	t.SetChildren(nest.ID, oldChildren)
	n.children = []NodeID{nest.ID}
	t.parents[nest.ID] = id
	return nest
}

// MapFragment records the program fragment node id was derived from.
func (t *Tree) MapFragment(id NodeID, f Fragment) {
	t.mustNode(id)
	t.fragments[id] = f
}

// Fragment returns the program fragment of the node.
func (t *Tree) Fragment(id NodeID) (Fragment, bool) {
	f, found := t.fragments[id]
	return f, found
}

// Block returns the program block of the node, or nil.
func (t *Tree) Block(id NodeID) program.Block { return t.fragments[id].Block }

// Hop returns the operator of the node, or nil.
func (t *Tree) Hop(id NodeID) *program.Hop { return t.fragments[id].Hop }

// ParForBlock returns the ParFor program block of the node, or an error if the node is not mapped to one.
func (t *Tree) ParForBlock(id NodeID) (*program.ParForBlock, error) {
	pf, ok := t.fragments[id].Block.(*program.ParForBlock)
	if !ok {
		return nil, errors.Errorf("plan node %d is not mapped to a ParFor program block (got %T)", id, t.fragments[id].Block)
	}
	return pf, nil
}

// Walk visits the subtree rooted at id in pre-order. If fn returns false, the children of that node are skipped.
func (t *Tree) Walk(id NodeID, fn func(n *Node) bool) {
	n := t.mustNode(id)
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		t.Walk(c, fn)
	}
}

// CloneSubtree copies the subtree rooted at id into new detached nodes and returns the new root.
//
// Fragments of the copies are translated through blocks and hops (typically the maps of a program deep copy);
// fragments not found there are shared with the original nodes.
func (t *Tree) CloneSubtree(id NodeID, blocks map[program.Block]program.Block, hops map[*program.Hop]*program.Hop) NodeID {
	n := t.mustNode(id)
	c := t.NewNode(n.Type, n.ExecType)
	c.K = n.K
	c.Recursive = n.Recursive
	c.params = maps.Clone(n.params)
	if f, found := t.fragments[id]; found {
		if b, found := blocks[f.Block]; found && f.Block != nil {
			f.Block = b
		}
		if h, found := hops[f.Hop]; found && f.Hop != nil {
			f.Hop = h
		}
		t.fragments[c.ID] = f
	}
	children := make([]NodeID, len(n.children))
	for ii, child := range n.children {
		children[ii] = t.CloneSubtree(child, blocks, hops)
	}
	t.SetChildren(c.ID, children)
	return c.ID
}

// Validate checks the structural invariants of the tree: the root is set, every reachable node has a valid type,
// a consistent parent link, and is reachable only once.
func (t *Tree) Validate() error {
	if t.Root() == nil {
		return errors.New("plan has no root")
	}
	seen := make(map[NodeID]bool)
	var check func(id, parent NodeID) error
	check = func(id, parent NodeID) error {
		n, found := t.nodes[id]
		if !found {
			return errors.Errorf("plan node %d referenced by %d does not exist", id, parent)
		}
		if seen[id] {
			return errors.Errorf("plan node %d is reachable more than once", id)
		}
		seen[id] = true
		if !n.Type.IsValid() {
			return errors.Errorf("plan node %d has unsupported type %s", id, n.Type)
		}
		if n.Type == NodeHop && len(n.children) > 0 {
			return errors.Errorf("operator plan node %d has children", id)
		}
		if id != t.root && t.parents[id] != parent {
			return errors.Errorf("plan node %d has parent link %d, but it is a child of %d", id, t.parents[id], parent)
		}
		for _, c := range n.children {
			if err := check(c, id); err != nil {
				return err
			}
		}
		return nil
	}
	return check(t.root, InvalidNodeID)
}
