// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package opt implements the rule-based ParFor optimizer: an ordered pipeline of rewrites that turns the abstract
// plan of a parallel loop into a concrete execution strategy (local or distributed execution, data and result
// partitioning, degree of parallelism at each nesting level, task partitioning and result merge).
//
// Decisions are written both to the plan nodes and to the mapped program blocks, the channel through which
// they reach the execution engine.
package opt

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/parfor/pkg/core/plan"
	"github.com/gomlx/parfor/pkg/runtime/program"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Thresholds and limits of the rule-based rewrites.
const (
	// ProbSizeThresholdRemote is the number of top-level iterations from which a problem is considered large.
	// Nested problem sizes use 10 times this value.
	ProbSizeThresholdRemote = 100

	// ProbSizeThresholdPartitioning is the problem size from which data partitioning is considered.
	ProbSizeThresholdPartitioning = 2

	MaxReplicationFactorPartitioning = 5
	MaxReplicationFactorExport       = 5

	// FunctionUnfoldPrefix is prepended to the name of functions duplicated to remove recursive parallel loops.
	FunctionUnfoldPrefix = "__unfold_"

	// NestedIterVar is the iteration variable of the outer loop created by the nested parallelism rewrite.
	NestedIterVar = "__pixid"
)

// ErrOptimizationFailed is matched (with errors.Is) by every error returned by Optimize.
var ErrOptimizationFailed = errors.New("parfor optimization failed")

// optimizationError wraps the cause of a failed optimization. It matches ErrOptimizationFailed and unwraps to
// its cause.
type optimizationError struct {
	runID string
	cause error
}

func (e *optimizationError) Error() string {
	return fmt.Sprintf("parfor optimization (run %s) failed: %v", e.runID, e.cause)
}

func (e *optimizationError) Unwrap() error { return e.cause }

func (e *optimizationError) Is(target error) bool { return target == ErrOptimizationFailed }

// OptMode identifies an optimizer.
type OptMode int

const (
	ModeRuleBased OptMode = iota
)

//go:generate go tool enumer -type=OptMode -trimprefix=Mode -transform=upper -output=gen_optmode_enumer.go optimizer.go

// Optimizer optimizes the plan of a ParFor loop, mutating the plan and the mapped program in place.
type Optimizer interface {
	Mode() OptMode
	Optimize(tree *plan.Tree, est CostEstimator, ec *program.ExecutionContext) (*Report, error)
}

// RuleBasedOptimizer applies 13 ordered, heuristic rewrites in a single pass over the plan.
//
// It holds no per-run state and can be reused, but each Optimize call must own its tree and program.
type RuleBasedOptimizer struct {
	cfg        Config
	recompiler program.Recompiler
}

var _ Optimizer = (*RuleBasedOptimizer)(nil)

// NewRuleBased creates a rule-based optimizer for the given infrastructure.
//
// If recompiler is nil, a program.BudgetRecompiler with the local memory budget is used.
func NewRuleBased(cfg Config, recompiler program.Recompiler) *RuleBasedOptimizer {
	if recompiler == nil {
		recompiler = program.BudgetRecompiler{MemoryBudget: cfg.Budget().LocalMem}
	}
	return &RuleBasedOptimizer{cfg: cfg, recompiler: recompiler}
}

// Mode implements Optimizer.
func (o *RuleBasedOptimizer) Mode() OptMode { return ModeRuleBased }

// Config returns the configuration of the optimizer.
func (o *RuleBasedOptimizer) Config() Config { return o.cfg }

// rewriter holds the state of one optimization run.
type rewriter struct {
	ResourceBudget

	cfg        Config
	recompiler program.Recompiler
	tree       *plan.Tree
	est        CostEstimator
	ec         *program.ExecutionContext
	vars       *program.Variables
	report     *Report

	// numIter (N) is the iteration count of the root loop and maxProblemSize (Nmax) the largest nested problem size.
	numIter, maxProblemSize int

	// converted maps ParFor blocks already replaced by sequential loops to their replacement.
	converted map[*program.ParForBlock]*program.ForBlock
}

// Optimize implements Optimizer.
//
// It returns a report of the decisions taken. On failure the plan and program are left partially mutated, and
// the returned error matches ErrOptimizationFailed.
func (o *RuleBasedOptimizer) Optimize(tree *plan.Tree, est CostEstimator, ec *program.ExecutionContext) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Mode: o.Mode()}
	fail := func(err error) (*Report, error) {
		return report, &optimizationError{runID: report.RunID, cause: err}
	}
	if tree == nil || est == nil || ec == nil || ec.Vars == nil {
		return fail(errors.New("Optimize requires a plan, a cost estimator and an execution context with variables"))
	}
	if err := tree.Validate(); err != nil {
		return fail(err)
	}
	if err := o.cfg.Validate(); err != nil {
		return fail(err)
	}
	root := tree.Root()
	klog.V(1).Infof("--- %s OPTIMIZER (run %s) -------", o.Mode(), report.RunID)
	if root.IsLeaf() {
		report.NoOp = true
		return report, nil
	}
	if root.Type != plan.NodeParFor {
		return fail(errors.Errorf("plan root must be a %s node, got %s", plan.NodeParFor, root.Type))
	}
	numIter, ok := root.NumIterations()
	if !ok {
		return fail(errors.Errorf("plan root %d has no valid %s parameter", root.ID, plan.ParamNumIterations))
	}

	r := &rewriter{
		ResourceBudget: o.cfg.Budget(),
		cfg:            o.cfg,
		recompiler:     o.recompiler,
		tree:           tree,
		est:            est,
		ec:             ec,
		vars:           ec.Vars,
		report:         report,
		numIter:        numIter,
		maxProblemSize: tree.MaxProblemSize(root.ID),
		converted:      make(map[*program.ParForBlock]*program.ForBlock),
	}
	err := exceptions.TryCatch[error](func() { r.optimize(root) })
	if err != nil {
		klog.Warningf("%s: %+v", r.logPrefix(), err)
		return fail(err)
	}
	return report, nil
}

func (r *rewriter) logPrefix() string {
	return fmt.Sprintf("%s OPT[%s]", ModeRuleBased, r.report.RunID[:8])
}

// optimize runs the rewrite pipeline. Failures are raised as panics with an error.
func (r *rewriter) optimize(pn *plan.Node) {
	r.report.NumIterations = r.numIter
	r.report.MaxProblemSize = r.maxProblemSize
	r.report.Budget = r.ResourceBudget
	klog.V(1).Infof("%s: optimize with local_max_mem=%s and remote_max_mem=%s", r.logPrefix(),
		humanize.Bytes(uint64(r.LocalMem)), humanize.Bytes(uint64(r.RemoteMem)))

	// Memory estimate of the serial execution.
	r.tree.SetSerialParFor(pn.ID)
	mem := r.estimate(pn)
	r.report.MemorySerial = mem
	klog.V(1).Infof("%s: estimated mem (serial exec) M=%s", r.logPrefix(), humanize.Bytes(uint64(mem)))

	// 1) Data partitioning (re-estimate afterwards).
	r.setDataPartitioner(pn)
	mem = r.estimate(pn)
	r.report.MemoryAfterDataPartitioning = mem

	// 2) Result partitioning (re-estimate afterwards).
	flagLIX := r.setResultPartitioning(pn, mem)
	mem = r.estimate(pn)
	r.report.MemoryAfterResultPartitioning = mem

	// 3) Execution strategy.
	r.setExecutionStrategy(pn, mem, flagLIX)

	if pn.ExecType == plan.ExecDistributed {
		// 4) to 9), distributed only.
		r.dataColocation(pn)
		r.setPartitionReplicationFactor(pn)
		r.setExportReplicationFactor(pn)
		flagNested := r.nestedParallelism(pn, mem, flagLIX)
		r.setDegreeOfParallelism(pn, mem, flagNested)
		r.setTaskPartitioner(pn, flagNested, flagLIX)
		r.report.NestedParallelism = flagNested
	} else {
		// 8) and 9).
		r.setDegreeOfParallelism(pn, mem, false)
		r.setTaskPartitioner(pn, false, false)
	}

	r.setResultMerge(pn)           // 10)
	r.setRecompileMemoryBudget(pn) // 11)

	// Cleanup rewrites.
	r.removeRecursiveParFor(pn)   // 12)
	r.removeUnnecessaryParFor(pn) // 13)

	// Before unfolding, a recursive call may have mapped nested nodes to the root's block: the root's own
	// decisions win.
	pf := r.parFor(pn)
	pf.ExecMode = pn.ExecType
	pf.DegreeOfParallelism = pn.K
	r.report.ExecMode = pf.ExecMode
	r.report.DataPartitioner = pf.DataPartitioner
	r.report.ResultPartitioning = flagLIX
	r.report.ColocatedMatrix = pf.ColocatedPartitionedMatrix
	r.report.PartitionReplication = pf.PartitionReplication
	r.report.ExportReplication = pf.ExportReplication
	r.report.DegreeOfParallelism = pf.DegreeOfParallelism
	r.report.TaskPartitioner = pf.TaskPartitioner
	r.report.TaskSize = pf.TaskSize
	r.report.ResultMerge = pf.ResultMerge
	r.report.RecompileMemoryBudget = pf.RecompileMemoryBudget
	r.report.TotalK = r.tree.TotalK(pn.ID)
}

func (r *rewriter) estimate(pn *plan.Node) float64 {
	return r.est.Estimate(MeasureMemoryUsage, pn.ID, r.tree)
}

// parFor returns the ParFor program block mapped to the node, or panics.
func (r *rewriter) parFor(n *plan.Node) *program.ParForBlock {
	pf, err := r.tree.ParForBlock(n.ID)
	if err != nil {
		panic(err)
	}
	return pf
}

// hop returns the operator mapped to the node, or panics.
func (r *rewriter) hop(n *plan.Node) *program.Hop {
	h := r.tree.Hop(n.ID)
	if h == nil {
		exceptions.Panicf("plan node %s is not mapped to an operator", n)
	}
	return h
}

// matrix returns the metadata bound to a variable, or panics if the variable is not bound to a matrix.
func (r *rewriter) matrix(name string) *program.MatrixObject {
	mo, ok := r.vars.Matrix(name)
	if !ok {
		exceptions.Panicf("variable %q is not bound to a matrix (got %T)", name, r.vars.Get(name))
	}
	return mo
}

// memoryBoundPar returns floor(mem / m), the parallelism allowed by the memory budget mem for tasks of size m.
// Non-positive task sizes impose no bound.
func memoryBoundPar(mem, m float64) int {
	if m <= 0 {
		return math.MaxInt32
	}
	k := math.Floor(mem / m)
	if k >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(k)
}

// ceilDiv returns ceil(a / b) for positive b.
func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(a) / float64(b)))
}
