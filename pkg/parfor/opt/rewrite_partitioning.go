// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"math"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/parfor/pkg/core/matrix"
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// setDataPartitioner (rewrite 1) selects the distributed data partitioner if at least one read-only matrix is
// accessed by a distributed indexing operator with a row-wise or column-wise pattern. Such operators are forced
// to local execution on one partition.
func (r *rewriter) setDataPartitioner(n *plan.Node) {
	if n.Type != plan.NodeParFor {
		klog.Warningf("%s: data partitioner can only be set for a ParFor node, got %s", r.logPrefix(), n)
	}
	pf := r.parFor(n)

	apply := false
	if r.cfg.Platform == PlatformHybrid &&
		(r.numIter >= ProbSizeThresholdPartitioning || r.maxProblemSize >= ProbSizeThresholdPartitioning) {
		candidates := make(map[string]program.PartitionFormat)
		for _, v := range pf.ReadOnlyParentVars {
			format := pf.AccessFormat(v)
			// Block-wise partitioning is not supported.
			if format != program.FormatNone && format != program.FormatBlockWise {
				candidates[v] = format
			}
		}
		apply = r.findDataPartitioningCandidates(n, candidates)
	}

	partitioner := program.PartitionerNone
	if apply {
		partitioner = program.PartitionerDistributed
	}
	pf.DataPartitioner = partitioner
	n.SetDataPartitioner(partitioner)
	klog.V(1).Infof("%s: rewrite 'set data partitioner' - result=%s", r.logPrefix(), partitioner)
}

// findDataPartitioningCandidates annotates the distributed indexing operators under n that read a candidate
// matrix, and returns whether it found any. Function calls are not followed, to avoid conflicts with aliases.
func (r *rewriter) findDataPartitioningCandidates(n *plan.Node, candidates map[string]program.PartitionFormat) bool {
	if !n.IsLeaf() {
		found := false
		for _, c := range r.tree.Children(n.ID) {
			if c.Type != plan.NodeFuncCall {
				found = r.findDataPartitioningCandidates(c, candidates) || found
			}
		}
		return found
	}
	if n.Type != plan.NodeHop || n.OpString() != program.OpIndexing || n.ExecType != plan.ExecDistributed {
		return false
	}
	h := r.hop(n)
	inMatrix := h.InputName(program.IndexingInputMatrix)
	format, found := candidates[inMatrix]
	if !found {
		return false
	}
	mem := r.partitionedIndexingMemory(inMatrix, format)
	// Executed locally even if the partition doesn't fit in memory: the runtime then reads it from file.
	n.ExecType = plan.ExecLocal
	n.SetPartitionFormat(format)
	h.MemEstimate = mem
	klog.V(2).Infof("%s: partitioned read of %q (%s), mem=%g", r.logPrefix(), inMatrix, format, mem)
	return true
}

// partitionedIndexingMemory is the worst case (dense) memory of reading one partition of the matrix.
func (r *rewriter) partitionedIndexingMemory(varName string, format program.PartitionFormat) float64 {
	mo := r.matrix(varName)
	switch format {
	case program.FormatColumnWise:
		return float64(mo.Rows) * 8
	case program.FormatRowWise:
		return float64(mo.Cols) * 8
	case program.FormatBlockWise:
		return math.MaxInt32
	default:
		exceptions.Panicf("no partition memory estimate for format %s", format)
	}
	return 0
}

// setResultPartitioning (rewrite 2) forces all distributed operators to local execution if each of them is a
// left indexing on a result variable that can be partitioned by the iteration variable. It returns whether it
// applied.
func (r *rewriter) setResultPartitioning(n *plan.Node, mem float64) bool {
	pf := r.parFor(n)
	candidates := r.tree.NodeList(n.ID, plan.ExecDistributed)
	apply := mem < r.RemoteMem && len(candidates) > 0 &&
		r.isResultPartitionableAll(candidates, pf.ResultVariables, pf.IterVar())
	if apply {
		for _, lix := range candidates {
			r.recompileLeftIndexing(lix)
		}
	}
	klog.V(1).Infof("%s: rewrite 'set result partitioning' - result=%v", r.logPrefix(), apply)
	return apply
}

func (r *rewriter) isResultPartitionableAll(nodes []*plan.Node, resultVars []string, iterVar string) bool {
	for _, n := range nodes {
		if !r.isResultPartitionable(n, resultVars, iterVar) {
			return false
		}
	}
	return true
}

// Access patterns of left indexing by the iteration variable.
const (
	accessNone = iota
	accessRowWise
	accessColumnWise
	accessCellWise
)

// isResultPartitionable checks whether n is a left indexing into an empty result variable, indexed by the
// iteration variable, whose single task footprint fits the remote memory budget. If so, it annotates n with
// the maximum task size.
func (r *rewriter) isResultPartitionable(n *plan.Node, resultVars []string, iterVar string) bool {
	if n.Type != plan.NodeHop || n.OpString() != program.OpLeftIndexing {
		return false
	}
	h := r.hop(n)
	base := h.Input(program.LeftIndexingInputTarget)
	if base == nil || !slices.Contains(resultVars, base.Name) {
		return false
	}

	pattern := accessNone
	if h.InputName(program.LeftIndexingInputRowL) == iterVar && h.InputName(program.LeftIndexingInputRowU) == iterVar {
		pattern = accessRowWise
	}
	if h.InputName(program.LeftIndexingInputColL) == iterVar && h.InputName(program.LeftIndexingInputColU) == iterVar {
		if pattern == accessNone {
			pattern = accessColumnWise
		} else {
			pattern = accessCellWise
		}
	}
	if pattern == accessNone {
		return false
	}

	// Unknown (-1) or non-empty results can't be partitioned.
	if mo := r.matrix(base.Name); mo.NonZeros != 0 {
		return false
	}
	if base.Dim1 <= 0 || base.Dim2 <= 0 {
		return false
	}
	rows, cols := float64(base.Dim1), float64(base.Dim2)
	initialCap := min(float64(matrix.SparseRowInitialCapacity), cols)
	var memTask1 float64
	var taskSize int
	switch pattern {
	case accessRowWise:
		memTask1 = cols * 8
		taskSize = int(r.RemoteMem / memTask1)
	case accessColumnWise:
		memTask1 = rows * initialCap * 8
		taskSize = int(r.RemoteMem / (rows * 8))
	case accessCellWise:
		memTask1 = initialCap * 8
		taskSize = int(r.RemoteMem / memTask1)
	}
	if memTask1 > r.RemoteMem {
		return false
	}
	n.SetTaskSize(taskSize)
	return true
}

// recompileLeftIndexing forces the left indexing of n to local execution, recompiles the instructions of the
// containing statement block and pins the operator's estimate just under the remote memory budget.
func (r *rewriter) recompileLeftIndexing(n *plan.Node) {
	h := r.hop(n)
	h.ForcedExecType = program.ExecLocal
	n.ExecType = plan.ExecLocal

	parent := r.tree.Parent(n.ID)
	if parent == nil {
		exceptions.Panicf("left indexing %s has no parent statement block", n)
	}
	g, ok := r.tree.Block(parent.ID).(*program.GenericBlock)
	if !ok {
		exceptions.Panicf("parent of left indexing %s is mapped to %T, not to a generic block", n, r.tree.Block(parent.ID))
	}
	insts, err := r.recompiler.RecompileHopsDag(g.Hops, r.vars)
	if err != nil {
		panic(errors.WithMessagef(err, "unable to recompile left indexing %s", h.Name))
	}
	g.Instructions = insts

	// Set last: recompilation may update estimates.
	h.MemEstimate = r.RemoteMem - 1
}
