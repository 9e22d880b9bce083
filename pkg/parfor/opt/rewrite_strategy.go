// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/gomlx/parfor/pkg/support/sets"
	"k8s.io/klog/v2"
)

// setExecutionStrategy (rewrite 3) decides between local and distributed execution of the loop.
//
// Distributed execution requires a loop body with only local operators that fits the remote memory budget; it is
// then chosen if memory limits the local parallelism, if the problem is large and the remote parallelism exceeds
// the local one, or if result partitioning was applied.
func (r *rewriter) setExecutionStrategy(n *plan.Node, mem float64, flagLIX bool) {
	execType := plan.ExecLocal
	if r.cfg.Platform != PlatformSingleNode && r.tree.IsCPOnly(n.ID) && mem <= r.RemoteMem {
		// Estimated local parallelism that can be exploited.
		cpk := min(r.LocalPar, memoryBoundPar(r.LocalMem, mem))
		switch {
		case cpk < r.LocalPar && cpk < r.numIter && cpk < r.RemotePar:
			execType = plan.ExecDistributed
		case r.LocalPar < r.numIter && r.LocalPar < r.RemotePar && r.isLargeProblem():
			execType = plan.ExecDistributed
		case flagLIX:
			execType = plan.ExecDistributed
		}
	}
	n.ExecType = execType
	pf := r.parFor(n)
	pf.ExecMode = execType
	klog.V(1).Infof("%s: rewrite 'set execution strategy' - result=%s", r.logPrefix(), execType)
}

func (r *rewriter) isLargeProblem() bool {
	return r.numIter >= ProbSizeThresholdRemote || r.maxProblemSize >= 10*ProbSizeThresholdRemote
}

// dataColocation (rewrite 4) colocates the tasks with the partitions of the largest (by non-zeros) partitioned
// matrix accessed directly by the iteration variable.
func (r *rewriter) dataColocation(n *plan.Node) {
	pf := r.parFor(n)
	varName := ""
	if n.DataPartitioner() == program.PartitionerDistributed && n.ExecType == plan.ExecDistributed {
		var candidates []string
		r.findDataColocationCandidates(n, pf.IterVar(), &candidates, sets.Make[string]())
		nnzMax := int64(math.MinInt64)
		for _, c := range candidates {
			if nnz := r.matrix(c).NonZeros; nnz > nnzMax {
				nnzMax = nnz
				varName = c
			}
		}
	}
	if varName != "" {
		pf.ColocatedPartitionedMatrix = varName
	}
	klog.V(1).Infof("%s: rewrite 'enable data colocation' - result=%v (%q)", r.logPrefix(), varName != "", varName)
}

// findDataColocationCandidates appends, in scan order, the partitioned matrices read with the iteration variable
// as row index (row-wise partitions) or column index (column-wise partitions).
func (r *rewriter) findDataColocationCandidates(n *plan.Node, iterVar string, candidates *[]string, seen sets.Set[string]) {
	if !n.IsLeaf() {
		for _, c := range r.tree.Children(n.ID) {
			r.findDataColocationCandidates(c, iterVar, candidates, seen)
		}
		return
	}
	if n.Type != plan.NodeHop || n.OpString() != program.OpIndexing {
		return
	}
	if _, found := n.Param(plan.ParamDataPartitionFormat); !found {
		return
	}
	h := r.hop(n)
	var index *program.Hop
	switch n.PartitionFormat() {
	case program.FormatRowWise:
		index = h.Input(program.IndexingInputRowL)
	case program.FormatColumnWise:
		index = h.Input(program.IndexingInputColL)
	}
	if index == nil || !index.IsData() || index.Name != iterVar {
		return
	}
	inMatrix := h.InputName(program.IndexingInputMatrix)
	if !seen.Has(inMatrix) {
		seen.Insert(inMatrix)
		*candidates = append(*candidates, inMatrix)
	}
}

// setPartitionReplicationFactor (rewrite 5) increases the replication of partitions read repeatedly by nested
// parallel loops.
func (r *rewriter) setPartitionReplicationFactor(n *plan.Node) {
	pf := r.parFor(n)
	apply := n.ExecType == plan.ExecDistributed &&
		n.DataPartitioner() == program.PartitionerDistributed &&
		r.tree.HasNestedParallelism(n.ID, false) &&
		r.tree.HasNestedPartitionReads(n.ID, false)
	replication := r.cfg.WriteReplicationFactor
	if apply {
		replication = max(r.cfg.WriteReplicationFactor, min(r.RemoteNodes, MaxReplicationFactorPartitioning))
		pf.PartitionReplication = replication
	}
	klog.V(1).Infof("%s: rewrite 'set partition replication factor' - result=%v (%d)", r.logPrefix(), apply, replication)
}

// setExportReplicationFactor (rewrite 6) replicates the exported inputs of a distributed loop, read by every task.
func (r *rewriter) setExportReplicationFactor(n *plan.Node) {
	pf := r.parFor(n)
	apply := n.ExecType == plan.ExecDistributed
	replication := -1
	if apply {
		replication = min(r.numIter, r.RemoteNodes, MaxReplicationFactorExport)
		pf.ExportReplication = replication
	}
	klog.V(1).Infof("%s: rewrite 'set export replication factor' - result=%v (%d)", r.logPrefix(), apply, replication)
}

// nestedParallelism (rewrite 7), if enabled by the configuration, splits a distributed loop into an outer
// distributed loop over one chunk of ceil(N/nodes) iterations per node, and an inner local loop over each chunk.
// It returns whether it applied.
func (r *rewriter) nestedParallelism(n *plan.Node, mem float64, flagLIX bool) bool {
	nested := false
	if r.cfg.NestedParallelism &&
		!flagLIX &&
		r.numIter >= r.RemoteNodes &&
		!r.tree.HasNestedParallelism(n.ID, false) &&
		mem*float64(r.LocalMaxParCP) <= r.RemoteMem {
		pf := r.parFor(n)
		outIncr := ceilDiv(r.numIter, r.RemoteNodes)

		// Inner loop: original iteration variable and increment, from the chunk start to the chunk end.
		inner := program.NewParForBlock(pf.IterVar(), NestedIterVar, "", pf.IterablePredicateVars[3], pf.ChildBlocks...)
		inner.Params = maps.Clone(pf.Params)
		inner.ResultVariables = slices.Clone(pf.ResultVariables)
		inner.ReadOnlyParentVars = slices.Clone(pf.ReadOnlyParentVars)
		inner.AccessFormats = maps.Clone(pf.AccessFormats)
		inner.ToInstructions = program.NestedToInstructions(NestedIterVar, outIncr-1)
		inner.ExecMode = program.ExecLocal

		// Outer loop: chunk start variable, original range, chunk size as increment.
		pf.IterablePredicateVars[0] = NestedIterVar
		pf.IterablePredicateVars[3] = strconv.Itoa(outIncr)
		pf.IncrementInstructions = nil
		pf.ChildBlocks = []program.Block{inner}
		pf.ExecMode = program.ExecDistributed

		nest := r.tree.InsertLevel(n.ID, plan.NodeParFor, plan.ExecLocal)
		nest.SetNumIterations(outIncr)
		r.tree.MapFragment(nest.ID, plan.Fragment{Block: inner})
		nested = true
	}
	klog.V(1).Infof("%s: rewrite 'enable nested parallelism' - result=%v", r.logPrefix(), nested)
	return nested
}
