// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plan

import (
	"github.com/gomlx/parfor/pkg/runtime/program"
)

// DefaultIterationFactor is the assumed iteration count of loops whose count is unknown (while loops,
// or for loops without a static count).
const DefaultIterationFactor = 10

// IsLeaf returns whether the node has no children.
func (t *Tree) IsLeaf(id NodeID) bool { return t.mustNode(id).IsLeaf() }

// IsCPOnly returns whether no node in the subtree rooted at id executes distributed.
func (t *Tree) IsCPOnly(id NodeID) bool {
	cpOnly := true
	t.Walk(id, func(n *Node) bool {
		if n.ExecType == ExecDistributed {
			cpOnly = false
		}
		return cpOnly
	})
	return cpOnly
}

// NodeList returns the nodes of the subtree rooted at id (including id) with the given execution type, in
// pre-order.
func (t *Tree) NodeList(id NodeID, execType ExecType) []*Node {
	var nodes []*Node
	t.Walk(id, func(n *Node) bool {
		if n.ExecType == execType {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// MaxProblemSize returns the product of iteration counts along the deepest path of loops under (and
// including) id. Loops without a known count contribute DefaultIterationFactor.
func (t *Tree) MaxProblemSize(id NodeID) int {
	n := t.mustNode(id)
	maxSize := 1
	if !n.IsLeaf() {
		maxSize = 0
		for _, c := range n.children {
			maxSize = max(maxSize, t.MaxProblemSize(c))
		}
	}
	switch n.Type {
	case NodeFor, NodeParFor:
		if numIter, ok := n.NumIterations(); ok {
			maxSize *= numIter
		} else {
			maxSize *= DefaultIterationFactor
		}
	case NodeWhile:
		maxSize *= DefaultIterationFactor
	}
	return maxSize
}

// HasNestedParallelism returns whether the subtree rooted at id contains a parallel loop nested in another.
// If inParFor is true, id itself is considered to be inside a parallel loop already.
func (t *Tree) HasNestedParallelism(id NodeID, inParFor bool) bool {
	n := t.mustNode(id)
	if n.Type == NodeParFor {
		if inParFor {
			return true
		}
		inParFor = true
	}
	for _, c := range n.children {
		if t.HasNestedParallelism(c, inParFor) {
			return true
		}
	}
	return false
}

// HasNestedPartitionReads returns whether the subtree rooted at id has an operator reading a partitioned matrix
// from within a loop nested under id. If nested is true, id itself is considered nested already.
func (t *Tree) HasNestedPartitionReads(id NodeID, nested bool) bool {
	n := t.mustNode(id)
	if n.IsLeaf() {
		return nested && n.PartitionFormat() != program.FormatNone
	}
	for _, c := range n.children {
		child := t.nodes[c]
		if t.HasNestedPartitionReads(c, nested || child.Type.IsLoop()) {
			return true
		}
	}
	return false
}

// TotalK returns the total parallelism of the subtree rooted at id: a local parallel loop multiplies its own
// degree by the maximum total parallelism of its children; a distributed one counts as 1 locally.
func (t *Tree) TotalK(id NodeID) int {
	n := t.mustNode(id)
	k := 1
	for _, c := range n.children {
		k = max(k, t.TotalK(c))
	}
	if n.Type == NodeParFor {
		if n.ExecType == ExecLocal {
			k *= n.K
		} else {
			k = 1
		}
	}
	return k
}

// MaxC returns the maximum task size that satisfies the task size constraints of all operators under id,
// for a loop with numIter iterations. Local parallel loops divide the constraint by their degree of parallelism.
func (t *Tree) MaxC(id NodeID, numIter int) int {
	n := t.mustNode(id)
	maxC := numIter
	for _, c := range n.children {
		maxC = min(maxC, t.MaxC(c, numIter))
	}
	if n.Type == NodeHop {
		if taskSize, ok := n.TaskSize(); ok {
			maxC = min(maxC, taskSize)
		}
	}
	if n.Type == NodeParFor && n.ExecType == ExecLocal && n.K > 0 {
		maxC /= n.K
	}
	return maxC
}

// SetSerialParFor sets every parallel loop in the subtree rooted at id to local execution with K=1, in the
// plan and in the mapped ParFor program blocks.
func (t *Tree) SetSerialParFor(id NodeID) {
	t.Walk(id, func(n *Node) bool {
		if n.Type == NodeParFor {
			n.K = 1
			n.ExecType = ExecLocal
			if pf, ok := t.Block(n.ID).(*program.ParForBlock); ok {
				pf.DegreeOfParallelism = 1
				pf.ExecMode = program.ExecLocal
			}
		}
		return true
	})
}

// ContainsBlock returns whether a node in the subtree rooted at id is mapped to block.
func (t *Tree) ContainsBlock(id NodeID, block program.Block) bool {
	found := false
	t.Walk(id, func(n *Node) bool {
		if !found && t.fragments[n.ID].Block == block {
			found = true
		}
		return !found
	})
	return found
}
