// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package scenarios

import (
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
)

// builder creates a plan and its program side by side.
type builder struct {
	tree *plan.Tree
	ec   *program.ExecutionContext
}

func newBuilder() *builder {
	return &builder{tree: plan.NewTree(), ec: program.NewExecutionContext(program.New())}
}

func (b *builder) node(nodeType plan.NodeType, execType plan.ExecType, f plan.Fragment, children ...*plan.Node) *plan.Node {
	n := b.tree.NewNode(nodeType, execType)
	b.tree.MapFragment(n.ID, f)
	for _, c := range children {
		b.tree.AddChild(n.ID, c.ID)
	}
	return n
}

// parFor creates a parallel loop node over numIter iterations.
func (b *builder) parFor(pf *program.ParForBlock, numIter int, children ...*plan.Node) *plan.Node {
	n := b.node(plan.NodeParFor, plan.ExecLocal, plan.Fragment{Block: pf}, children...)
	n.SetNumIterations(numIter)
	return n
}

// generic creates a statement block node.
func (b *builder) generic(g *program.GenericBlock, children ...*plan.Node) *plan.Node {
	return b.node(plan.NodeGeneric, plan.ExecLocal, plan.Fragment{Block: g}, children...)
}

// hop creates an operator node; its operator string is the operator's opcode.
func (b *builder) hop(h *program.Hop, execType plan.ExecType) *plan.Node {
	n := b.node(plan.NodeHop, execType, plan.Fragment{Hop: h})
	n.SetOpString(h.Op)
	return n
}

// call creates a function call node for fn, which must be registered in the program.
func (b *builder) call(fn *program.FunctionBlock, recursive bool, children ...*plan.Node) *plan.Node {
	n := b.node(plan.NodeFuncCall, plan.ExecLocal, plan.Fragment{Block: fn}, children...)
	n.SetOpString(program.FunctionKey(fn.Namespace, fn.Name))
	n.Recursive = recursive
	return n
}

// scalar is a data operator without dimensions: a scalar variable or literal.
func scalar(name string) *program.Hop {
	return program.NewData(name, 0, 0)
}

// matrixHop binds the matrix name in the variables and returns a data operator reading it.
func (b *builder) matrixHop(name string, rows, cols, nnz int64) *program.Hop {
	b.ec.Vars.PutMatrix(name, rows, cols, nnz)
	return program.NewData(name, rows, cols)
}

// columnRead returns X[, iterVar], with the given local memory estimate.
func columnRead(x *program.Hop, iterVar string, mem float64) *program.Hop {
	i := scalar(iterVar)
	h := program.NewIndexing(x, scalar("1"), scalar("nrow"), i, i)
	h.Dim1, h.Dim2 = x.Dim1, 1
	h.MemEstimate = mem
	return h
}

// rowWrite returns R[iterVar, ] = y, with the given local memory estimate.
func rowWrite(r, y *program.Hop, iterVar string, mem float64) *program.Hop {
	i := scalar(iterVar)
	h := program.NewLeftIndexing(r, y, i, i, scalar("1"), scalar("ncol"))
	h.MemEstimate = mem
	return h
}

func (b *builder) build(name, description, config string, root *plan.Node) *Scenario {
	b.tree.SetRoot(root.ID)
	return &Scenario{
		Name:        name,
		Description: description,
		Config:      config,
		Tree:        b.tree,
		Context:     b.ec,
	}
}
