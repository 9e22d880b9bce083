// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/parfor/pkg/parfor/opt"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == lgtable.HeaderRow {
				s = headerRowStyle
				return
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func bytes(v float64) string {
	if v < 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(v))
}

// reportTable lists the budget and the decisions of one optimization run.
func reportTable(cfg opt.Config, r *opt.Report) *lgtable.Table {
	table := newPlainTable(false)
	table.Row("run", r.RunID)
	table.Row("platform", cfg.Platform.String())
	b := r.Budget
	table.Row("local", fmt.Sprintf("%d cores (max %d), %s", b.LocalPar, b.LocalMaxParCP, bytes(b.LocalMem)))
	table.Row("remote", fmt.Sprintf("%d nodes, %d tasks (max %d), %s per task",
		b.RemoteNodes, b.RemotePar, b.RemoteMaxPar, bytes(b.RemoteMem)))
	if r.NoOp {
		table.Row("result", "nothing to optimize")
		return table
	}
	table.Row("iterations", fmt.Sprintf("%s (max problem size %s)",
		humanize.Comma(int64(r.NumIterations)), humanize.Comma(int64(r.MaxProblemSize))))
	table.Row("memory", fmt.Sprintf("%s serial, %s partitioned, %s result-partitioned",
		bytes(r.MemorySerial), bytes(r.MemoryAfterDataPartitioning), bytes(r.MemoryAfterResultPartitioning)))
	table.Row("exec mode", r.ExecMode.String())
	table.Row("data partitioner", r.DataPartitioner.String())
	table.Row("result partitioning", fmt.Sprint(r.ResultPartitioning))
	if r.ColocatedMatrix != "" {
		table.Row("colocated matrix", r.ColocatedMatrix)
	}
	table.Row("replication", fmt.Sprintf("partitions=%d, exports=%d", r.PartitionReplication, r.ExportReplication))
	table.Row("nested parallelism", fmt.Sprint(r.NestedParallelism))
	table.Row("parallelism", fmt.Sprintf("%d (total %d)", r.DegreeOfParallelism, r.TotalK))
	partitioner := r.TaskPartitioner.String()
	if r.TaskSize > 0 {
		partitioner += fmt.Sprintf(" (task size %d)", r.TaskSize)
	}
	table.Row("task partitioner", partitioner)
	table.Row("result merge", r.ResultMerge.String())
	table.Row("recompile budget", bytes(r.RecompileMemoryBudget))
	if r.RecursiveParFors > 0 || r.RemovedUnnecessaryParFors > 0 {
		table.Row("removed parfors", fmt.Sprintf("%d of %d recursive, %d unnecessary",
			r.RemovedRecursiveParFors, r.RecursiveParFors, r.RemovedUnnecessaryParFors))
	}
	return table
}
