// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"testing"

	"github.com/gomlx/parfor/internal/scenarios"
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEstimator counts the estimates requested of the wrapped estimator.
type countingEstimator struct {
	CostEstimator
	calls int
}

func (e *countingEstimator) Estimate(m Measure, id plan.NodeID, tree *plan.Tree) float64 {
	e.calls++
	return e.CostEstimator.Estimate(m, id, tree)
}

// failingRecompiler fails every recompilation.
type failingRecompiler struct{}

func (failingRecompiler) RecompileHopsDag([]*program.Hop, *program.Variables) ([]program.Instruction, error) {
	return nil, errors.Wrap(program.ErrRecompile, "operator DAG changed")
}

func scenarioConfig(t *testing.T, s *scenarios.Scenario, overrides ...string) Config {
	cfg, err := ParseConfig(DefaultConfig(), s.Config)
	require.NoError(t, err)
	for _, o := range overrides {
		cfg, err = ParseConfig(cfg, o)
		require.NoError(t, err)
	}
	return cfg
}

// optimizeScenario builds and optimizes the named scenario.
func optimizeScenario(t *testing.T, name string, overrides ...string) (*scenarios.Scenario, *Report) {
	s, err := scenarios.Build(name)
	require.NoError(t, err)
	return s, optimize(t, s, overrides...)
}

// optimize optimizes an already built scenario.
func optimize(t *testing.T, s *scenarios.Scenario, overrides ...string) *Report {
	o := NewRuleBased(scenarioConfig(t, s, overrides...), nil)
	report, err := o.Optimize(s.Tree, NewHopMemoryEstimator(), s.Context)
	require.NoError(t, err)
	require.NoError(t, s.Tree.Validate())
	return report
}

func rootParFor(t *testing.T, s *scenarios.Scenario) *program.ParForBlock {
	pf, err := s.Tree.ParForBlock(s.Tree.Root().ID)
	require.NoError(t, err)
	return pf
}

func TestOptimizeLeaf(t *testing.T) {
	tree := plan.NewTree()
	root := tree.NewNode(plan.NodeParFor, plan.ExecLocal)
	tree.SetRoot(root.ID)
	ec := program.NewExecutionContext(program.New())
	est := &countingEstimator{CostEstimator: NewHopMemoryEstimator()}
	report, err := NewRuleBased(DefaultConfig(), nil).Optimize(tree, est, ec)
	require.NoError(t, err)
	assert.True(t, report.NoOp)
	assert.Zero(t, est.calls)
	assert.Equal(t, 1, root.K)
	assert.Empty(t, root.Params())
}

func TestOptimizeInvalidInputs(t *testing.T) {
	o := NewRuleBased(DefaultConfig(), nil)
	s := scenarios.CPOnly()

	_, err := o.Optimize(nil, NewHopMemoryEstimator(), s.Context)
	assert.ErrorIs(t, err, ErrOptimizationFailed)
	_, err = o.Optimize(s.Tree, nil, s.Context)
	assert.ErrorIs(t, err, ErrOptimizationFailed)

	// Root without iteration count.
	s.Tree.Root().DeleteParam(plan.ParamNumIterations)
	_, err = o.Optimize(s.Tree, NewHopMemoryEstimator(), s.Context)
	assert.ErrorIs(t, err, ErrOptimizationFailed)

	// Root that is not a parallel loop.
	s = scenarios.CPOnly()
	s.Tree.Root().Type = plan.NodeFor
	_, err = o.Optimize(s.Tree, NewHopMemoryEstimator(), s.Context)
	assert.ErrorIs(t, err, ErrOptimizationFailed)

	// Invalid configuration.
	cfg := DefaultConfig()
	cfg.RemoteNodes = 0
	_, err = NewRuleBased(cfg, nil).Optimize(scenarios.CPOnly().Tree, NewHopMemoryEstimator(), s.Context)
	assert.ErrorIs(t, err, ErrOptimizationFailed)
}

func TestOptimizeMissingBinding(t *testing.T) {
	s := scenarios.PartitionedRead()
	s.Context.Vars = program.NewVariables()
	_, err := NewRuleBased(scenarioConfig(t, s), nil).Optimize(s.Tree, NewHopMemoryEstimator(), s.Context)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOptimizationFailed)
	assert.Contains(t, err.Error(), `"X"`)
}

func TestOptimizeCPOnly(t *testing.T) {
	s, report := optimizeScenario(t, "cp-only")
	root := s.Tree.Root()
	pf := rootParFor(t, s)

	assert.Equal(t, plan.ExecLocal, root.ExecType)
	assert.Equal(t, program.ExecLocal, pf.ExecMode)
	assert.Equal(t, 8, root.K)
	assert.Equal(t, 8, pf.DegreeOfParallelism)
	assert.Equal(t, program.PartitionerNone, pf.DataPartitioner)
	assert.Equal(t, program.TaskPartitionerFactoring, pf.TaskPartitioner)
	assert.Equal(t, program.ResultMergeLocalMem, pf.ResultMerge)
	assert.InDelta(t, report.Budget.LocalMem/8, pf.RecompileMemoryBudget, 1)
	assert.Equal(t, 8, report.TotalK)
	assert.False(t, report.NoOp)
	assert.Equal(t, 20, report.NumIterations)
	assert.Len(t, report.RunID, 36)

	// Decisions are visible in the plan.
	explain := s.Tree.Explain(root.ID)
	assert.Contains(t, explain, "TASK_PARTITIONER=FACTORING")
	assert.Contains(t, explain, "RESULT_MERGE=LOCAL_MEM")
	assert.Contains(t, report.String(), "degree of parallelism: 8")
}

func TestOptimizeLarge(t *testing.T) {
	s, report := optimizeScenario(t, "large")
	root := s.Tree.Root()
	pf := rootParFor(t, s)

	assert.Equal(t, plan.ExecDistributed, root.ExecType)
	assert.Equal(t, program.ExecDistributed, pf.ExecMode)
	assert.Equal(t, 32, pf.DegreeOfParallelism)
	assert.Equal(t, 4, pf.ExportReplication)
	assert.Equal(t, program.DefaultWriteReplicationFactor, pf.PartitionReplication)
	assert.Equal(t, program.TaskPartitionerFactoring, pf.TaskPartitioner)
	assert.Equal(t, program.ResultMergeLocalMem, pf.ResultMerge)
	assert.Equal(t, 1, report.TotalK, "distributed loops count as 1 locally")
	assert.False(t, report.NestedParallelism)

	// Single node platforms always run locally.
	s, _ = optimizeScenario(t, "large", "platform=singlenode")
	assert.Equal(t, plan.ExecLocal, s.Tree.Root().ExecType)
	assert.Equal(t, 8, s.Tree.Root().K)
}

func TestOptimizePartitionedRead(t *testing.T) {
	s, report := optimizeScenario(t, "partitioned-read")
	root := s.Tree.Root()
	pf := rootParFor(t, s)

	assert.Equal(t, program.PartitionerDistributed, pf.DataPartitioner)
	assert.Equal(t, "DISTRIBUTED", mustParam(t, root, plan.ParamDataPartitioner))
	assert.Equal(t, plan.ExecDistributed, root.ExecType)
	assert.Equal(t, "X", pf.ColocatedPartitionedMatrix)
	assert.Equal(t, "X", report.ColocatedMatrix)

	// Both reads were forced to local execution on one column-wise partition.
	numPartitioned := 0
	s.Tree.Walk(root.ID, func(n *plan.Node) bool {
		if n.Type == plan.NodeHop && n.OpString() == program.OpIndexing {
			assert.Equal(t, plan.ExecLocal, n.ExecType)
			assert.Equal(t, program.FormatColumnWise, n.PartitionFormat())
			assert.Equal(t, 8e6, s.Tree.Hop(n.ID).MemEstimate)
			numPartitioned++
		}
		return true
	})
	assert.Equal(t, 2, numPartitioned)
	assert.Equal(t, 8e6, report.MemoryAfterDataPartitioning)
}

func TestOptimizePartitionedReadLarge(t *testing.T) {
	s, err := scenarios.Build("partitioned-read-large")
	require.NoError(t, err)
	est := &countingEstimator{CostEstimator: NewHopMemoryEstimator()}
	report, err := NewRuleBased(scenarioConfig(t, s), nil).Optimize(s.Tree, est, s.Context)
	require.NoError(t, err)

	// Re-estimated after data and result partitioning.
	assert.Equal(t, 3, est.calls)
	assert.Equal(t, float64(DefaultDistributedOpMemory), report.MemorySerial)
	assert.Equal(t, 80e6, report.MemoryAfterDataPartitioning)

	// Before partitioning the loop would have been distributed; a partition doesn't fit a remote task.
	pf := rootParFor(t, s)
	assert.Equal(t, program.PartitionerDistributed, pf.DataPartitioner)
	assert.Equal(t, program.ExecLocal, pf.ExecMode)
	assert.Equal(t, 8, pf.DegreeOfParallelism)
	assert.Empty(t, pf.ColocatedPartitionedMatrix)
}

func TestOptimizeResultPartitioning(t *testing.T) {
	s, report := optimizeScenario(t, "result-partitioning")
	root := s.Tree.Root()
	pf := rootParFor(t, s)

	assert.True(t, report.ResultPartitioning)
	assert.Equal(t, program.ExecDistributed, pf.ExecMode)
	assert.Equal(t, program.TaskPartitionerFactoringCMax, pf.TaskPartitioner)
	// floor(70MB / (100000 columns * 8 bytes)).
	assert.Equal(t, 87, pf.TaskSize)
	assert.False(t, pf.WorkerReuse)
	assert.Equal(t, program.ResultMergeDistributed, pf.ResultMerge)

	var lix *plan.Node
	s.Tree.Walk(root.ID, func(n *plan.Node) bool {
		if n.OpString() == program.OpLeftIndexing {
			lix = n
		}
		return true
	})
	require.NotNil(t, lix)
	assert.Equal(t, plan.ExecLocal, lix.ExecType)
	taskSize, ok := lix.TaskSize()
	require.True(t, ok)
	assert.Equal(t, 87, taskSize)
	h := s.Tree.Hop(lix.ID)
	assert.Equal(t, program.ExecLocal, h.ForcedExecType)
	assert.Equal(t, report.Budget.RemoteMem-1, h.MemEstimate)

	// The containing block was recompiled with the forced local left indexing.
	g := s.Tree.Block(s.Tree.Parent(lix.ID).ID).(*program.GenericBlock)
	require.Len(t, g.Instructions, 1)
	assert.Equal(t, program.OpLeftIndexing, g.Instructions[0].Opcode)
	assert.Equal(t, program.ExecLocal, g.Instructions[0].ExecType)
}

func TestOptimizeRecompileFailure(t *testing.T) {
	s := scenarios.ResultPartitioning()
	_, err := NewRuleBased(scenarioConfig(t, s), failingRecompiler{}).Optimize(s.Tree, NewHopMemoryEstimator(), s.Context)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOptimizationFailed)
	assert.ErrorIs(t, err, program.ErrRecompile)
}

func TestOptimizeNestedParallelism(t *testing.T) {
	s, report := optimizeScenario(t, "nested-parallelism")
	root := s.Tree.Root()
	pf := rootParFor(t, s)

	require.True(t, report.NestedParallelism)
	assert.Equal(t, NestedIterVar, pf.IterVar())
	assert.Equal(t, "50", pf.IterablePredicateVars[3])
	assert.Equal(t, 4, pf.DegreeOfParallelism)
	assert.Equal(t, program.TaskPartitionerStatic, pf.TaskPartitioner)

	// The new inner level runs each chunk of 50 iterations locally in parallel.
	children := s.Tree.Children(root.ID)
	require.Len(t, children, 1)
	nest := children[0]
	require.Equal(t, plan.NodeParFor, nest.Type)
	numIter, _ := nest.NumIterations()
	assert.Equal(t, 50, numIter)
	assert.Equal(t, 8, nest.K)
	inner, err := s.Tree.ParForBlock(nest.ID)
	require.NoError(t, err)
	assert.Equal(t, []program.Block{inner}, pf.ChildBlocks)
	assert.Equal(t, "i", inner.IterVar())
	assert.Equal(t, NestedIterVar, inner.IterablePredicateVars[1])
	assert.Equal(t, program.TaskPartitionerFactoring, inner.TaskPartitioner)
	assert.Equal(t, 8, inner.DegreeOfParallelism)
	require.Len(t, inner.ToInstructions, 1)
	assert.Equal(t, []string{NestedIterVar, "49"}, inner.ToInstructions[0].Operands[:2])
}

func TestOptimizeRecursive(t *testing.T) {
	s, report := optimizeScenario(t, "recursive")
	root := s.Tree.Root()
	pf := rootParFor(t, s)
	prog := s.Context.Program

	assert.Equal(t, 1, report.RecursiveParFors)
	assert.Equal(t, 1, report.RemovedRecursiveParFors)
	assert.Equal(t, 8, pf.DegreeOfParallelism, "root keeps its own decisions")

	// The recursive function was unfolded, and the loop calls the copy.
	copyFn, found := prog.Function(program.DefaultNamespace, FunctionUnfoldPrefix+"f")
	require.True(t, found)
	orig, found := prog.Function(program.DefaultNamespace, "f")
	require.True(t, found)
	assert.Same(t, pf, orig.ChildBlocks[0], "original function keeps its parallel loop")
	_, isFor := copyFn.ChildBlocks[0].(*program.ForBlock)
	assert.True(t, isFor, "the copy's loop is sequential")

	callKey := program.FunctionKey(program.DefaultNamespace, FunctionUnfoldPrefix+"f")
	var call *plan.Node
	s.Tree.Walk(root.ID, func(n *plan.Node) bool {
		if n.Type == plan.NodeFuncCall {
			call = n
		}
		return true
	})
	require.NotNil(t, call)
	assert.Equal(t, callKey, call.OpString())
	g := s.Tree.Block(s.Tree.Parent(call.ID).ID).(*program.GenericBlock)
	assert.Equal(t, FunctionUnfoldPrefix+"f", g.Instructions[0].FunctionName)
	copyBody := copyFn.ChildBlocks[0].(*program.ForBlock).ChildBlocks[0].(*program.GenericBlock)
	assert.Equal(t, FunctionUnfoldPrefix+"f", copyBody.Instructions[0].FunctionName, "recursion stays within the copy")
	top := prog.Blocks[0].(*program.GenericBlock)
	assert.Equal(t, "f", top.Instructions[0].FunctionName)

	children := s.Tree.Children(call.ID)
	require.Len(t, children, 1)
	assert.Equal(t, plan.NodeFor, children[0].Type)
	assert.Same(t, copyFn.ChildBlocks[0], s.Tree.Block(children[0].ID))
}

func TestCleanupIdempotent(t *testing.T) {
	for _, name := range []string{"recursive", "cp-only", "nested-parallelism"} {
		s, _ := optimizeScenario(t, name)
		before := s.Tree.Explain(s.Tree.Root().ID)
		numFunctions := s.Context.Program.NumFunctions()

		cfg := scenarioConfig(t, s)
		r := &rewriter{
			ResourceBudget: cfg.Budget(),
			cfg:            cfg,
			tree:           s.Tree,
			ec:             s.Context,
			vars:           s.Context.Vars,
			report:         &Report{RunID: "0123456789"},
			converted:      make(map[*program.ParForBlock]*program.ForBlock),
		}
		r.removeRecursiveParFor(s.Tree.Root())
		r.removeUnnecessaryParFor(s.Tree.Root())
		assert.Zero(t, r.report.RemovedRecursiveParFors, name)
		assert.Zero(t, r.report.RemovedUnnecessaryParFors, name)
		assert.Equal(t, before, s.Tree.Explain(s.Tree.Root().ID), name)
		assert.Equal(t, numFunctions, s.Context.Program.NumFunctions(), name)
	}
}

func TestTotalParallelismWithinBudget(t *testing.T) {
	for _, name := range scenarios.Names() {
		s, report := optimizeScenario(t, name)
		root := s.Tree.Root()
		if root.ExecType == plan.ExecLocal {
			assert.LessOrEqual(t, report.TotalK, report.Budget.LocalMaxParCP, name)
		}
		assert.GreaterOrEqual(t, root.K, 1, name)
		s.Tree.Walk(root.ID, func(n *plan.Node) bool {
			if n.Type == plan.NodeParFor && n.ID != root.ID {
				assert.Greater(t, n.K, 1, "%s: parallel loop %s with k=1 should have been removed", name, n)
			}
			return true
		})
	}
}

func TestOptimizeResultMerge(t *testing.T) {
	emptyCellResult := func(s *scenarios.Scenario) {
		mo, ok := s.Context.Vars.Matrix("R")
		require.True(t, ok)
		mo.NonZeros = 0
		mo.Format = program.FormatTextCell
	}
	localWrite := func(s *scenarios.Scenario) {
		s.Tree.Walk(s.Tree.Root().ID, func(n *plan.Node) bool {
			if n.Type == plan.NodeHop {
				n.ExecType = plan.ExecLocal
			}
			return true
		})
	}
	testCases := []struct {
		name      string
		modify    []func(s *scenarios.Scenario)
		overrides []string
		want      program.ResultMerge
	}{
		{"non-empty result", nil, nil, program.ResultMergeDistributed},
		{"empty cell result", []func(*scenarios.Scenario){emptyCellResult}, nil, program.ResultMergeLocalAutomatic},
		{"empty cell result without copy", []func(*scenarios.Scenario){emptyCellResult},
			[]string{"copy_cellfiles=false"}, program.ResultMergeDistributed},
		{"local write", []func(*scenarios.Scenario){localWrite}, nil, program.ResultMergeLocalAutomatic},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := scenarios.ScatteredWrite()
			for _, fn := range tc.modify {
				fn(s)
			}
			report := optimize(t, s, tc.overrides...)
			root := s.Tree.Root()
			pf := rootParFor(t, s)
			assert.Equal(t, plan.ExecLocal, root.ExecType, "the loop itself stays local")
			assert.False(t, report.ResultPartitioning)
			assert.Equal(t, tc.want, pf.ResultMerge)
			assert.Equal(t, tc.want, report.ResultMerge)
			assert.Equal(t, tc.want.String(), mustParam(t, root, plan.ParamResultMerge))
		})
	}
}

func TestOptimizeNestedLocal(t *testing.T) {
	testCases := []struct {
		innerIter, wantInnerK, wantTotalK int
	}{
		{10, 4, 8},
		{3, 3, 6},
	}
	for _, tc := range testCases {
		s := scenarios.NestedLocal(tc.innerIter)
		report := optimize(t, s)
		root := s.Tree.Root()
		assert.Equal(t, plan.ExecLocal, root.ExecType)
		assert.Equal(t, 2, root.K)

		children := s.Tree.Children(root.ID)
		require.Len(t, children, 1)
		inner := children[0]
		require.Equal(t, plan.NodeParFor, inner.Type, "inner loop with k>1 is kept")
		assert.Equal(t, tc.wantInnerK, inner.K, "inner iterations %d", tc.innerIter)
		innerPF, err := s.Tree.ParForBlock(inner.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.wantInnerK, innerPF.DegreeOfParallelism)
		assert.Equal(t, program.ResultMergeLocalMem, innerPF.ResultMerge)

		assert.Equal(t, tc.wantTotalK, report.TotalK)
		assert.LessOrEqual(t, report.TotalK, report.Budget.LocalMaxParCP)
		assert.InDelta(t, report.Budget.LocalMem/float64(tc.wantTotalK), rootParFor(t, s).RecompileMemoryBudget, 1)
	}
}

func mustParam(t *testing.T, n *plan.Node, p plan.ParamType) string {
	v, found := n.Param(p)
	require.True(t, found, "param %s of %s", p, n)
	return v
}
