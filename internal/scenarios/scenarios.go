// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package scenarios provides small canned programs with their ParFor plans, used to exercise the optimizer
// in tests and in the parfor_explain tool.
//
// All scenarios run on the same simulated cluster (see BaseConfig), each with its own overrides.
package scenarios

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/pkg/errors"
)

// BaseConfig is the optimizer configuration (in "key=value,..." format) shared by all scenarios: 8 local cores
// and 8GiB of local memory, 4 nodes running up to 32 concurrent tasks of 100MB each.
const BaseConfig = "platform=hybrid,local_par=8,remote_nodes=4,remote_par=32,local_mem=8GiB,remote_mem=100MB,mem_util=0.7"

// Scenario is a program and the plan of its outermost parallel loop, ready to be optimized.
type Scenario struct {
	Name, Description string

	// Config holds the configuration overrides of the scenario, BaseConfig included.
	Config string

	Tree    *plan.Tree
	Context *program.ExecutionContext
}

var registry = map[string]func() *Scenario{
	"cp-only":                CPOnly,
	"large":                  Large,
	"partitioned-read":       PartitionedRead,
	"partitioned-read-large": PartitionedReadLarge,
	"result-partitioning":    ResultPartitioning,
	"nested-parallelism":     NestedParallelism,
	"recursive":              Recursive,
	"nested-local":           func() *Scenario { return NestedLocal(10) },
	"scattered-write":        ScatteredWrite,
}

// Names returns the names of all scenarios, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build creates a fresh instance of the named scenario.
func Build(name string) (*Scenario, error) {
	fn, found := registry[name]
	if !found {
		return nil, errors.Errorf("unknown scenario %q, valid scenarios are: %s", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

func withConfig(overrides string) string {
	if overrides == "" {
		return BaseConfig
	}
	return BaseConfig + "," + overrides
}

// CPOnly is a loop of 20 iterations reading a column of X and writing a row of a small result, all in memory.
// It stays local with 8 workers.
func CPOnly() *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 1000, 20, 20000)
	r := b.matrixHop("R", 20, 1000, 0)
	read := columnRead(x, "i", 8000)
	write := rowWrite(r, read, "i", 160000)
	g := &program.GenericBlock{Hops: []*program.Hop{write}}
	pf := program.NewParForBlock("i", "1", "20", "1", g)
	pf.ResultVariables = []string{"R"}
	pf.ReadOnlyParentVars = []string{"X"}
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 20,
		b.generic(g, b.hop(read, plan.ExecLocal), b.hop(write, plan.ExecLocal)))
	return b.build("cp-only", "small in-memory loop: local execution", withConfig(""), root)
}

// Large is a loop of 200 in-memory iterations: a large problem with more remote than local parallelism, so it
// runs distributed.
func Large() *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 1000, 200, 200000)
	r := b.matrixHop("R", 200, 1000, 0)
	read := columnRead(x, "i", 8000)
	write := rowWrite(r, read, "i", 1600000)
	g := &program.GenericBlock{Hops: []*program.Hop{write}}
	pf := program.NewParForBlock("i", "1", "200", "1", g)
	pf.ResultVariables = []string{"R"}
	pf.ReadOnlyParentVars = []string{"X"}
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 200,
		b.generic(g, b.hop(read, plan.ExecLocal), b.hop(write, plan.ExecLocal)))
	return b.build("large", "large in-memory loop: distributed execution", withConfig(""), root)
}

// PartitionedRead is a loop of 200 iterations reading one column of two large matrices X and Y with distributed
// indexing. Both are partitioned column-wise, and the tasks are colocated with the partitions of X, the one with
// more non-zeros.
func PartitionedRead() *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 1_000_000, 1000, 1_000_000_000)
	y := b.matrixHop("Y", 1_000_000, 1000, 500_000_000)
	r := b.matrixHop("R", 200, 10, 0)
	readX := columnRead(x, "i", 8_000_000_000)
	readY := columnRead(y, "i", 8_000_000_000)
	write := rowWrite(r, scalar("s"), "i", 16000)
	g := &program.GenericBlock{Hops: []*program.Hop{readX, readY, write}}
	pf := program.NewParForBlock("i", "1", "200", "1", g)
	pf.ResultVariables = []string{"R"}
	pf.ReadOnlyParentVars = []string{"X", "Y"}
	pf.AccessFormats["X"] = program.FormatColumnWise
	pf.AccessFormats["Y"] = program.FormatColumnWise
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 200,
		b.generic(g,
			b.hop(readX, plan.ExecDistributed),
			b.hop(readY, plan.ExecDistributed),
			b.hop(write, plan.ExecLocal)))
	return b.build("partitioned-read", "column-wise partitioned reads: distributed execution colocated with X",
		withConfig(""), root)
}

// PartitionedReadLarge reads columns of a matrix X with 10M rows: one partition needs 80MB, more than the remote
// task budget, so after partitioning the loop runs locally.
func PartitionedReadLarge() *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 10_000_000, 1000, 10_000_000_000)
	r := b.matrixHop("R", 200, 10, 0)
	read := columnRead(x, "i", 80_000_000_000)
	write := rowWrite(r, scalar("s"), "i", 16000)
	g := &program.GenericBlock{Hops: []*program.Hop{read, write}}
	pf := program.NewParForBlock("i", "1", "200", "1", g)
	pf.ResultVariables = []string{"R"}
	pf.ReadOnlyParentVars = []string{"X"}
	pf.AccessFormats["X"] = program.FormatColumnWise
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 200,
		b.generic(g, b.hop(read, plan.ExecDistributed), b.hop(write, plan.ExecLocal)))
	return b.build("partitioned-read-large", "partitions larger than the remote budget: local execution",
		withConfig(""), root)
}

// ResultPartitioning is a loop of 2000 iterations, each writing one row of an empty 2000×100000 result with a
// distributed left indexing. The result is partitioned by rows, so each task writes its own rows locally.
func ResultPartitioning() *Scenario {
	b := newBuilder()
	r := b.matrixHop("R", 2000, 100_000, 0)
	write := rowWrite(r, scalar("v"), "i", 1_600_000_000)
	g := &program.GenericBlock{Hops: []*program.Hop{write}}
	pf := program.NewParForBlock("i", "1", "2000", "1", g)
	pf.ResultVariables = []string{"R"}
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 2000, b.generic(g, b.hop(write, plan.ExecDistributed)))
	return b.build("result-partitioning", "row-wise result partitioning: distributed with constrained task size",
		withConfig(""), root)
}

// NestedParallelism is the Large scenario with nested parallelism enabled: the loop is split into one chunk per
// node, each processed by a local parallel loop.
func NestedParallelism() *Scenario {
	s := Large()
	s.Name = "nested-parallelism"
	s.Description = "large in-memory loop split into a distributed loop over local parallel loops"
	s.Config = withConfig("nested=true")
	return s
}

// Recursive is a loop inside a recursive function f, called from the loop body. The parallel loop reached
// through the recursive call is demoted to a sequential loop in an unfolded copy of f.
func Recursive() *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 1000, 10, 10000)
	read := columnRead(x, "i", 8000)
	g := &program.GenericBlock{
		Hops:         []*program.Hop{read},
		Instructions: []program.Instruction{program.NewFunctionCall(program.DefaultNamespace, "f", "X")},
	}
	pf := program.NewParForBlock("i", "1", "10", "1", g)
	pf.ReadOnlyParentVars = []string{"X"}
	fn := &program.FunctionBlock{Inputs: []string{"X"}, ChildBlocks: []program.Block{pf}}
	b.ec.Program.AddFunction(program.DefaultNamespace, "f", fn)
	b.ec.Program.Blocks = []program.Block{&program.GenericBlock{
		Instructions: []program.Instruction{program.NewFunctionCall(program.DefaultNamespace, "f", "X")},
	}}

	// The plan of the recursive call expands the function body once more.
	inner := b.parFor(pf, 10, b.generic(g, b.hop(read, plan.ExecLocal)))
	root := b.parFor(pf, 10,
		b.generic(g,
			b.hop(read, plan.ExecLocal),
			b.call(fn, true, inner)))
	return b.build("recursive", "parallel loop in a recursive function: unfolded and demoted", withConfig(""), root)
}

// NestedLocal is a local loop of 2 iterations over an inner parallel loop of innerIter iterations. The inner
// loop gets the local parallelism left over by the outer one.
func NestedLocal(innerIter int) *Scenario {
	b := newBuilder()
	x := b.matrixHop("X", 1000, int64(innerIter), 1000*int64(innerIter))
	r := b.matrixHop("R", int64(innerIter), 1000, 0)
	read := columnRead(x, "j", 8000)
	write := rowWrite(r, read, "j", 80000)
	g := &program.GenericBlock{Hops: []*program.Hop{write}}
	inner := program.NewParForBlock("j", "1", strconv.Itoa(innerIter), "1", g)
	inner.ResultVariables = []string{"R"}
	inner.ReadOnlyParentVars = []string{"X"}
	outer := program.NewParForBlock("i", "1", "2", "1", inner)
	outer.ResultVariables = []string{"R"}
	outer.ReadOnlyParentVars = []string{"X"}
	b.ec.Program.Blocks = []program.Block{outer}

	root := b.parFor(outer, 2,
		b.parFor(inner, innerIter,
			b.generic(g, b.hop(read, plan.ExecLocal), b.hop(write, plan.ExecLocal))))
	return b.build("nested-local", "local loop over a parallel loop: the inner loop gets the remaining parallelism",
		withConfig(""), root)
}

// ScatteredWrite is a local loop of 20 iterations, each writing a row of a non-empty 5000×5000 result with a
// distributed left indexing at a row computed in the body, so the result can't be partitioned.
func ScatteredWrite() *Scenario {
	b := newBuilder()
	r := b.matrixHop("R", 5000, 5000, 1_000_000)
	write := rowWrite(r, scalar("v"), "j", 200_000_000)
	g := &program.GenericBlock{Hops: []*program.Hop{write}}
	pf := program.NewParForBlock("i", "1", "20", "1", g)
	pf.ResultVariables = []string{"R"}
	b.ec.Program.Blocks = []program.Block{pf}

	root := b.parFor(pf, 20, b.generic(g, b.hop(write, plan.ExecDistributed)))
	return b.build("scattered-write", "distributed writes into a large result from a local loop: distributed merge",
		withConfig(""), root)
}
