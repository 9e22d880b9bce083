// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"slices"

	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"k8s.io/klog/v2"
)

// setResultMerge (rewrite 10) selects the result merge of the loop n and, recursively, of all parallel loops
// under it.
//
// Results that stay in memory are merged in memory. Otherwise, a distributed loop, or a loop with at least one
// distributed left indexing into a result variable, uses the distributed merge, unless all results are empty
// cell files that can be copied. Everything else is merged locally with a strategy chosen at runtime.
func (r *rewriter) setResultMerge(n *plan.Node) {
	pf := r.parFor(n)
	flagDistributedParFor := n.ExecType == plan.ExecDistributed
	flagDistributedLIX := r.hasResultDistributedLeftIndexing(n, pf.ResultVariables, true)
	flagCellFormatWithoutCompare := r.cellFormatWithoutCompare(pf.ResultVariables)
	flagOnlyInMemResults := r.hasOnlyInMemoryResults(n, pf.ResultVariables)

	var merge program.ResultMerge
	switch {
	case flagOnlyInMemResults:
		merge = program.ResultMergeLocalMem
	case (flagDistributedParFor || flagDistributedLIX) && !(flagCellFormatWithoutCompare && r.cfg.AllowCopyCellFiles):
		merge = program.ResultMergeDistributed
	default:
		merge = program.ResultMergeLocalAutomatic
	}
	pf.ResultMerge = merge
	n.SetResultMerge(merge)

	r.invokeSetResultMerge(r.tree.Children(n.ID))
	klog.V(1).Infof("%s: rewrite 'set result merge' - result=%s (node %d)", r.logPrefix(), merge, n.ID)
}

func (r *rewriter) invokeSetResultMerge(nodes []*plan.Node) {
	for _, n := range nodes {
		if n.Type == plan.NodeParFor {
			r.setResultMerge(n)
		} else {
			r.invokeSetResultMerge(r.tree.Children(n.ID))
		}
	}
}

// cellFormatWithoutCompare returns whether every result variable is an empty matrix in a cell format, whose
// partial results can be merged by copying files without comparing against the original.
func (r *rewriter) cellFormatWithoutCompare(resultVars []string) bool {
	for _, v := range resultVars {
		mo, ok := r.vars.Matrix(v)
		if !ok || !mo.Format.IsCellFormat() || mo.NonZeros != 0 {
			return false
		}
	}
	return true
}

// leftIndexingResult returns the name of the result variable written by the left indexing of n, or "" if n is
// not a left indexing into one of resultVars.
func (r *rewriter) leftIndexingResult(n *plan.Node, resultVars []string) string {
	if n.Type != plan.NodeHop || n.OpString() != program.OpLeftIndexing {
		return ""
	}
	name := r.hop(n).InputName(program.LeftIndexingInputTarget)
	if !slices.Contains(resultVars, name) {
		return ""
	}
	return name
}

// inMemoryResult returns whether the bound result variable name is small enough to be merged in memory.
func (r *rewriter) inMemoryResult(name string) bool {
	mo := r.matrix(name)
	return r.cfg.InMemoryResultMerge(mo.Rows, mo.Cols)
}

// hasResultDistributedLeftIndexing returns whether any distributed left indexing under n writes a result variable.
// With checkSize, writes into bound results small enough for an in-memory merge don't count.
func (r *rewriter) hasResultDistributedLeftIndexing(n *plan.Node, resultVars []string, checkSize bool) bool {
	if !n.IsLeaf() {
		found := false
		for _, c := range r.tree.Children(n.ID) {
			found = r.hasResultDistributedLeftIndexing(c, resultVars, checkSize) || found
		}
		return found
	}
	if n.ExecType != plan.ExecDistributed {
		return false
	}
	name := r.leftIndexingResult(n, resultVars)
	if name == "" {
		return false
	}
	if checkSize && r.vars.Has(name) {
		return !r.inMemoryResult(name)
	}
	return true
}

// hasOnlyInMemoryResults returns whether every left indexing under n into a bound result variable writes a
// result small enough for an in-memory merge.
func (r *rewriter) hasOnlyInMemoryResults(n *plan.Node, resultVars []string) bool {
	if !n.IsLeaf() {
		all := true
		for _, c := range r.tree.Children(n.ID) {
			all = r.hasOnlyInMemoryResults(c, resultVars) && all
		}
		return all
	}
	name := r.leftIndexingResult(n, resultVars)
	if name == "" || !r.vars.Has(name) {
		return true
	}
	return r.inMemoryResult(name)
}
