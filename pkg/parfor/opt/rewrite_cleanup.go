// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/gomlx/parfor/pkg/support/sets"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// removeRecursiveParFor (rewrite 12) turns the parallel loops reachable through a recursive function call into
// sequential loops.
//
// If the optimized loop itself is one of them, the recursive function called from it is first unfolded into a
// copy, so that only the recursive call path is demoted.
func (r *rewriter) removeRecursiveParFor(n *plan.Node) {
	recursive := sets.Make[*program.ParForBlock]()
	r.findRecursiveParFor(n, recursive, false)
	numFound, count := len(recursive), 0
	if numFound > 0 {
		if pf := r.parFor(n); recursive.Has(pf) {
			r.findAndUnfoldRecursiveFunction(n, pf, recursive)
		}
		count = r.replaceParFors(n, func(_ *plan.Node, pf *program.ParForBlock) bool { return recursive.Has(pf) })
	}
	r.report.RecursiveParFors += numFound
	r.report.RemovedRecursiveParFors += count
	klog.V(1).Infof("%s: rewrite 'remove recursive parfor' - result=%d/%d", r.logPrefix(), numFound, count)
}

// findRecursiveParFor collects the ParFor blocks of the parallel loops under a recursive function call.
func (r *rewriter) findRecursiveParFor(n *plan.Node, found sets.Set[*program.ParForBlock], recursiveContext bool) {
	for _, c := range r.tree.Children(n.ID) {
		r.findRecursiveParFor(c, found, recursiveContext || (c.Type == plan.NodeFuncCall && c.Recursive))
	}
	if recursiveContext && n.Type == plan.NodeParFor {
		found.Insert(r.parFor(n))
	}
}

// findAndUnfoldRecursiveFunction looks for the first recursive function call containing parFor, and replaces it
// by a call to a copy of the function named FunctionUnfoldPrefix+name. The recursive set is updated to the
// ParFor blocks of the copy.
func (r *rewriter) findAndUnfoldRecursiveFunction(n *plan.Node, parFor *program.ParForBlock, recursive sets.Set[*program.ParForBlock]) {
	if n.Type != plan.NodeFuncCall || !n.Recursive {
		for _, c := range r.tree.Children(n.ID) {
			r.findAndUnfoldRecursiveFunction(c, parFor, recursive)
		}
		return
	}
	if !r.tree.ContainsBlock(n.ID, parFor) {
		return
	}
	if r.ec.Program == nil {
		exceptions.Panicf("cannot unfold function %q: execution context has no program", n.OpString())
	}
	namespace, name, err := program.SplitFunctionKey(n.OpString())
	if err != nil {
		panic(errors.WithMessagef(err, "unfolding recursive function call %s", n))
	}
	newName := FunctionUnfoldPrefix + name
	fn, ok := r.tree.Block(n.ID).(*program.FunctionBlock)
	if !ok {
		exceptions.Panicf("function call %s is mapped to %T, not to a function", n, r.tree.Block(n.ID))
	}
	parent := r.tree.Parent(n.ID)
	if parent == nil {
		exceptions.Panicf("function call %s has no parent", n)
	}

	// Copy function and plan subtree.
	fnCopy, copyMap := program.DeepCopyFunction(fn)
	r.ec.Program.AddFunction(namespace, newName, fnCopy)
	newID := r.tree.CloneSubtree(n.ID, copyMap.Blocks, copyMap.Hops)
	newCall := r.tree.Node(newID)
	newCall.ExecType = plan.ExecLocal
	newCall.SetOpString(program.FunctionKey(namespace, newName))
	r.tree.ExchangeChild(parent.ID, n.ID, newID)

	// Only the copy's loops are removed.
	for pf := range r.parForBlocks(n) {
		recursive.Remove(pf)
	}
	recursive.Union(r.parForBlocks(newCall))

	// Redirect the call site and the recursive calls within the copy.
	if g, ok := r.tree.Block(parent.ID).(*program.GenericBlock); ok {
		g.RenameFunctionCalls(namespace, name, newName)
	}
	r.replaceFunctionNames(newCall, namespace, name, newName)
	program.RenameFunctionCalls(fnCopy.ChildBlocks, namespace, name, newName)
	klog.V(2).Infof("%s: unfolded recursive function %s into %s", r.logPrefix(), n.OpString(), newCall.OpString())
}

// parForBlocks returns the ParFor blocks mapped to the parallel loops of the subtree rooted at n.
func (r *rewriter) parForBlocks(n *plan.Node) sets.Set[*program.ParForBlock] {
	blocks := sets.Make[*program.ParForBlock]()
	r.tree.Walk(n.ID, func(node *plan.Node) bool {
		if node.Type == plan.NodeParFor {
			blocks.Insert(r.parFor(node))
		}
		return true
	})
	return blocks
}

// replaceFunctionNames renames the calls to namespace::oldName under n, in the plan and in the instructions of
// the calling statement blocks.
func (r *rewriter) replaceFunctionNames(n *plan.Node, namespace, oldName, newName string) {
	oldKey := program.FunctionKey(namespace, oldName)
	r.tree.Walk(n.ID, func(node *plan.Node) bool {
		if node.Type != plan.NodeFuncCall || node.OpString() != oldKey {
			return true
		}
		node.SetOpString(program.FunctionKey(namespace, newName))
		if parent := r.tree.Parent(node.ID); parent != nil {
			if g, ok := r.tree.Block(parent.ID).(*program.GenericBlock); ok {
				g.RenameFunctionCalls(namespace, oldName, newName)
			}
		}
		return true
	})
}

// removeUnnecessaryParFor (rewrite 13) turns parallel loops with a degree of parallelism of 1 into sequential loops.
func (r *rewriter) removeUnnecessaryParFor(n *plan.Node) {
	count := r.replaceParFors(n, func(sub *plan.Node, _ *program.ParForBlock) bool { return sub.K == 1 })
	r.report.RemovedUnnecessaryParFors += count
	klog.V(1).Infof("%s: rewrite 'remove unnecessary parfor' - result=%d", r.logPrefix(), count)
}

// replaceParFors replaces the parallel loops strictly under n selected by the predicate with sequential loops,
// in the plan and in the program. It returns the number of plan nodes changed.
func (r *rewriter) replaceParFors(n *plan.Node, selected func(sub *plan.Node, pf *program.ParForBlock) bool) int {
	count := 0
	for _, sub := range r.tree.Children(n.ID) {
		if sub.Type == plan.NodeParFor {
			pf := r.parFor(sub)
			if selected(sub, pf) {
				r.replaceParFor(n, sub, pf)
				count++
			}
		}
		count += r.replaceParFors(sub, selected)
	}
	return count
}

// replaceParFor replaces the ParFor block of sub, child of parent, with an equivalent sequential loop.
//
// The same block may be mapped by several plan nodes (e.g. a function called from two places): it is replaced
// in the program once, and every node is remapped to the same replacement.
func (r *rewriter) replaceParFor(parent, sub *plan.Node, pf *program.ParForBlock) {
	f, done := r.converted[pf]
	if !done {
		container, ok := r.tree.Block(parent.ID).(program.Container)
		if !ok {
			exceptions.Panicf("parent %s of %s is mapped to %T, which has no child blocks", parent, sub, r.tree.Block(parent.ID))
		}
		f = program.NewForFromParFor(pf)
		if !container.ReplaceChild(pf, f) {
			exceptions.Panicf("program block of %s not found in the block of its parent %s", sub, parent)
		}
		r.converted[pf] = f
	}
	r.tree.MapFragment(sub.ID, plan.Fragment{Block: f})
	sub.Type = plan.NodeFor
	sub.K = 1
}
