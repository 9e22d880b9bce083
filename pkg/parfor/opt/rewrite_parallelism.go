// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"github.com/dustin/go-humanize"
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"k8s.io/klog/v2"
)

// setDegreeOfParallelism (rewrite 8) assigns the degree of parallelism of the loop, bounded by the available
// parallelism and the memory budget, and distributes the remaining parallelism to nested parallel loops.
func (r *rewriter) setDegreeOfParallelism(n *plan.Node, mem float64, flagNested bool) {
	pf := r.parFor(n)
	if n.ExecType == plan.ExecLocal {
		kMax := r.LocalMaxParMR
		if r.tree.IsCPOnly(n.ID) {
			kMax = r.LocalMaxParCP
		}
		kMax = max(1, min(kMax, memoryBoundPar(r.LocalMem, mem)))
		k := max(1, min(r.numIter, kMax))
		pf.DegreeOfParallelism = k
		n.K = k
		// 1 if k == kMax, larger otherwise.
		r.assignRemainingParallelism(n, ceilDiv(kMax-k+1, k))
	} else {
		var kMax int
		if flagNested {
			// Nested parallelism guarantees RemoteNodes <= N.
			pf.DegreeOfParallelism = r.RemoteNodes
			n.K = r.RemoteNodes
			kMax = r.RemoteMaxPar / r.RemoteNodes
		} else {
			k := max(1, min(r.numIter, r.RemotePar))
			pf.DegreeOfParallelism = k
			n.K = k
			kMax = r.RemoteMaxPar / k
		}
		// Parallelism per remote task.
		kMax = max(1, min(kMax, memoryBoundPar(r.RemoteMem, mem)))
		r.assignRemainingParallelism(n, kMax)
	}
	klog.V(1).Infof("%s: rewrite 'set degree of parallelism' - result=%d (total %d)", r.logPrefix(), n.K, r.tree.TotalK(n.ID))
}

// assignRemainingParallelism distributes the parallelism budget par to the parallel loops under n: each gets
// min(its iterations, par) and passes on ceil((par-k+1)/k). A budget of 1 serializes the whole subtree.
func (r *rewriter) assignRemainingParallelism(n *plan.Node, par int) {
	for _, c := range r.tree.Children(n.ID) {
		switch {
		case par == 1:
			r.tree.SetSerialParFor(c.ID)
		case c.Type == plan.NodeParFor:
			numIter, ok := c.NumIterations()
			if !ok {
				numIter = par
			}
			k := max(1, min(numIter, par))
			c.K = k
			r.parFor(c).DegreeOfParallelism = k
			r.assignRemainingParallelism(c, ceilDiv(par-k+1, k))
		default:
			r.assignRemainingParallelism(c, par)
		}
	}
}

// setTaskPartitioner (rewrite 9) selects how iterations are grouped into tasks.
func (r *rewriter) setTaskPartitioner(n *plan.Node, flagNested, flagLIX bool) {
	if n.Type != plan.NodeParFor {
		klog.Warningf("%s: task partitioner can only be set for a ParFor node, got %s", r.logPrefix(), n)
	}
	if flagNested && flagLIX {
		klog.Warningf("%s: task partitioner decision has conflicting input from rewrites 'nested parallelism' and 'result partitioning'", r.logPrefix())
	}
	switch {
	case flagNested:
		r.setTaskPartitionerOf(n, program.TaskPartitionerStatic)
		r.setTaskPartitionerOf(r.tree.Children(n.ID)[0], program.TaskPartitionerFactoring)
	case flagLIX:
		r.setTaskPartitionerOf(n, program.TaskPartitionerFactoringCMax)
	default:
		r.setTaskPartitionerOf(n, program.TaskPartitionerFactoring)
	}
}

func (r *rewriter) setTaskPartitionerOf(n *plan.Node, partitioner program.TaskPartitioner) {
	pf := r.parFor(n)
	pf.TaskPartitioner = partitioner
	n.SetTaskPartitioner(partitioner)

	// Result partitioning: the task size is a constraint, and each task needs a fresh worker.
	if partitioner == program.TaskPartitionerFactoringCMax {
		maxC := r.tree.MaxC(n.ID, r.numIter)
		pf.TaskSize = maxC
		pf.WorkerReuse = false
		n.SetTaskSize(maxC)
		klog.V(1).Infof("%s: rewrite 'set task partitioner' - result=%s, task size %d", r.logPrefix(), partitioner, maxC)
		return
	}
	klog.V(1).Infof("%s: rewrite 'set task partitioner' - result=%s", r.logPrefix(), partitioner)
}

// setRecompileMemoryBudget (rewrite 11) divides the local memory among the concurrent tasks of a local loop, as
// the budget of their runtime recompilation.
func (r *rewriter) setRecompileMemoryBudget(n *plan.Node) {
	newLocalMem := r.LocalMem
	if n.ExecType == plan.ExecLocal {
		newLocalMem = r.LocalMem / float64(r.tree.TotalK(n.ID))
		r.parFor(n).RecompileMemoryBudget = newLocalMem
	}
	klog.V(1).Infof("%s: rewrite 'set recompile memory budget' - result=%s", r.logPrefix(), humanize.Bytes(uint64(newLocalMem)))
}
