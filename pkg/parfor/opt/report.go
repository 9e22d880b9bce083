// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/parfor/pkg/runtime/program"
)

// Report summarizes the decisions of one optimization run.
//
// The authoritative decisions are the ones written into the plan and the program blocks; the report is a copy
// of those of the root loop, for logging and tools.
type Report struct {
	RunID string
	Mode  OptMode

	// NoOp is set if the plan had nothing to optimize (a leaf root).
	NoOp bool

	NumIterations, MaxProblemSize int
	Budget                        ResourceBudget

	// Memory estimates of the loop, before and after the partitioning rewrites.
	MemorySerial, MemoryAfterDataPartitioning, MemoryAfterResultPartitioning float64

	ExecMode              program.ExecType
	DataPartitioner       program.DataPartitioner
	ResultPartitioning    bool
	NestedParallelism     bool
	ColocatedMatrix       string
	PartitionReplication  int
	ExportReplication     int
	DegreeOfParallelism   int
	TaskPartitioner       program.TaskPartitioner
	TaskSize              int
	ResultMerge           program.ResultMerge
	RecompileMemoryBudget float64

	// TotalK is the total parallelism of the optimized plan, over all nesting levels.
	TotalK int

	// RecursiveParFors is the number of parallel loops found under recursive function calls, of which
	// RemovedRecursiveParFors plan nodes were turned into sequential loops.
	RecursiveParFors, RemovedRecursiveParFors int
	RemovedUnnecessaryParFors                 int
}

func bytesOf(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%g", v)
	}
	return humanize.Bytes(uint64(v))
}

// String implements fmt.Stringer, with one decision per line.
func (r *Report) String() string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		_, _ = fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}
	w("%s optimization, run %s", r.Mode, r.RunID)
	if r.NoOp {
		w("  nothing to optimize")
		return sb.String()
	}
	w("  iterations: %d, max problem size: %d", r.NumIterations, r.MaxProblemSize)
	w("  memory: serial=%s, after data partitioning=%s, after result partitioning=%s",
		bytesOf(r.MemorySerial), bytesOf(r.MemoryAfterDataPartitioning), bytesOf(r.MemoryAfterResultPartitioning))
	w("  exec mode: %s", r.ExecMode)
	w("  data partitioner: %s", r.DataPartitioner)
	w("  result partitioning: %v", r.ResultPartitioning)
	if r.ColocatedMatrix != "" {
		w("  colocated matrix: %q", r.ColocatedMatrix)
	}
	w("  replication: partitions=%d, exports=%d", r.PartitionReplication, r.ExportReplication)
	w("  nested parallelism: %v", r.NestedParallelism)
	w("  degree of parallelism: %d (total %d)", r.DegreeOfParallelism, r.TotalK)
	if r.TaskSize > 0 {
		w("  task partitioner: %s (task size %d)", r.TaskPartitioner, r.TaskSize)
	} else {
		w("  task partitioner: %s", r.TaskPartitioner)
	}
	w("  result merge: %s", r.ResultMerge)
	w("  recompile memory budget: %s", bytesOf(r.RecompileMemoryBudget))
	w("  recursive parfors: %d found, %d removed; unnecessary parfors removed: %d",
		r.RecursiveParFors, r.RemovedRecursiveParFors, r.RemovedUnnecessaryParFors)
	return sb.String()
}
