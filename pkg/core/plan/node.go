// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package plan defines the abstract ParFor execution plan: a tree of nodes (loops, function calls and operators)
// kept in an arena indexed by NodeID, plus a side table mapping each node to the program fragment it was
// derived from.
//
// The optimizer annotates the nodes (execution type, degree of parallelism and a parameter bag) and mutates
// the program fragments in lockstep.
package plan

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/gomlx/parfor/pkg/runtime/program"
)

// NodeID identifies a node within a Tree. IDs are never reused.
type NodeID int64

// InvalidNodeID is the zero NodeID, never assigned to a node.
const InvalidNodeID NodeID = 0

// NodeType is the kind of plan node.
type NodeType int

const (
	NodeInvalid NodeType = iota
	// NodeGeneric is a straight-line statement block; its children are operators.
	NodeGeneric
	NodeIf
	NodeWhile
	// NodeFor is a sequential for loop.
	NodeFor
	// NodeParFor is a parallel for loop.
	NodeParFor
	// NodeFuncCall is a function call; its children are the function body, unless the call is recursive.
	NodeFuncCall
	// NodeHop is an operator, always a leaf.
	NodeHop
)

//go:generate go tool enumer -type=NodeType -trimprefix=Node -transform=upper -output=gen_nodetype_enumer.go node.go

// IsValid returns whether t is one of the defined node types (excluding NodeInvalid).
func (t NodeType) IsValid() bool { return t != NodeInvalid && t.IsANodeType() }

// IsLoop returns whether t is a loop: for, parfor or while.
func (t NodeType) IsLoop() bool { return t == NodeFor || t == NodeParFor || t == NodeWhile }

// ExecType is where a node executes.
type ExecType = program.ExecType

// Execution types, re-exported for convenience.
const (
	ExecLocal       = program.ExecLocal
	ExecDistributed = program.ExecDistributed
)

// ParamType is the closed set of keys of a node's parameter bag.
type ParamType int

const (
	ParamNumIterations ParamType = iota
	ParamOpString
	ParamTaskPartitioner
	ParamTaskSize
	ParamDataPartitioner
	ParamDataPartitionFormat
	ParamResultMerge
)

//go:generate go tool enumer -type=ParamType -trimprefix=Param -transform=snake-upper -output=gen_paramtype_enumer.go node.go

// Node is one node of the plan. Nodes are owned by a Tree and reference their children by ID.
type Node struct {
	ID       NodeID
	Type     NodeType
	ExecType ExecType

	// K is the degree of parallelism assigned to the node, 1 unless the node is a parallel loop.
	K int

	// Recursive marks function calls that are part of a recursive call cycle.
	Recursive bool

	params   map[ParamType]string
	children []NodeID
}

// Param returns the value of the parameter p, if set.
func (n *Node) Param(p ParamType) (string, bool) {
	v, found := n.params[p]
	return v, found
}

// SetParam sets the parameter p to value.
func (n *Node) SetParam(p ParamType, value string) {
	if n.params == nil {
		n.params = make(map[ParamType]string)
	}
	n.params[p] = value
}

// DeleteParam removes the parameter p.
func (n *Node) DeleteParam(p ParamType) {
	delete(n.params, p)
}

// Params returns a copy of the parameter bag.
func (n *Node) Params() map[ParamType]string {
	return maps.Clone(n.params)
}

// NumChildren returns the number of children of the node.
func (n *Node) NumChildren() int { return len(n.children) }

// IsLeaf returns whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// intParam parses an integer parameter.
func (n *Node) intParam(p ParamType) (int, bool) {
	v, found := n.params[p]
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// NumIterations returns the static iteration count of a loop, if known.
func (n *Node) NumIterations() (int, bool) { return n.intParam(ParamNumIterations) }

// SetNumIterations sets the static iteration count of a loop.
func (n *Node) SetNumIterations(numIter int) { n.SetParam(ParamNumIterations, strconv.Itoa(numIter)) }

// TaskSize returns the task size annotation, if set.
func (n *Node) TaskSize() (int, bool) { return n.intParam(ParamTaskSize) }

// SetTaskSize sets the task size annotation.
func (n *Node) SetTaskSize(size int) { n.SetParam(ParamTaskSize, strconv.Itoa(size)) }

// OpString returns the operator string of an operator node, or the function key of a function call node.
// It returns "" if not set.
func (n *Node) OpString() string { return n.params[ParamOpString] }

// SetOpString sets the operator string (or function key).
func (n *Node) SetOpString(op string) { n.SetParam(ParamOpString, op) }

// PartitionFormat returns the data partition format chosen for an indexing operator, or FormatNone.
func (n *Node) PartitionFormat() program.PartitionFormat {
	v, found := n.params[ParamDataPartitionFormat]
	if !found {
		return program.FormatNone
	}
	f, err := program.PartitionFormatString(v)
	if err != nil {
		return program.FormatNone
	}
	return f
}

// SetPartitionFormat records the data partition format of an indexing operator.
func (n *Node) SetPartitionFormat(f program.PartitionFormat) {
	n.SetParam(ParamDataPartitionFormat, f.String())
}

// DataPartitioner returns the data partitioner annotation of a ParFor node, or PartitionerNone.
func (n *Node) DataPartitioner() program.DataPartitioner {
	v, found := n.params[ParamDataPartitioner]
	if !found {
		return program.PartitionerNone
	}
	p, err := program.DataPartitionerString(v)
	if err != nil {
		return program.PartitionerNone
	}
	return p
}

// SetDataPartitioner records the data partitioner of a ParFor node.
func (n *Node) SetDataPartitioner(p program.DataPartitioner) { n.SetParam(ParamDataPartitioner, p.String()) }

// SetTaskPartitioner records the task partitioner of a ParFor node.
func (n *Node) SetTaskPartitioner(p program.TaskPartitioner) { n.SetParam(ParamTaskPartitioner, p.String()) }

// SetResultMerge records the result merge strategy of a ParFor node.
func (n *Node) SetResultMerge(m program.ResultMerge) { n.SetParam(ParamResultMerge, m.String()) }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s (%d) exec=%s k=%d", n.Type, n.ID, n.ExecType, n.K)
}
