// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package spoof executes fused cellwise kernels: a chain of elementwise operators evaluated over every cell of a
// main input in a single pass, optionally summed per row or over the whole matrix.
//
// Kernels are compiled from a cplan graph (see Compile and KernelCache) or created directly from a KernelFunc.
// Execution is dense or sparse aware, and rows are statically partitioned over a per-call pool of workers.
package spoof

import (
	"github.com/dustin/go-humanize"
	"github.com/gomlx/parfor/pkg/codegen/cplan"
	"github.com/gomlx/parfor/pkg/core/matrix"
	"github.com/gomlx/parfor/pkg/support/workers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ParallelCellThreshold is the number of cells of the main input below which execution is always single-threaded.
const ParallelCellThreshold = 1 << 20

var (
	// ErrInvalidArguments is wrapped by failures due to an invalid invocation: nothing is executed.
	ErrInvalidArguments = errors.New("invalid arguments to cellwise kernel")

	// ErrTaskFailed is wrapped by failures of the kernel during execution.
	ErrTaskFailed = workers.ErrTaskFailed
)

// KernelFunc computes the value of one cell: a is the value of the main input at (rowIndex, colIndex), side are
// the densified side inputs, and the main input has m rows and n columns.
type KernelFunc func(a float64, side [][]float64, scalars []float64, n, m, rowIndex, colIndex int) float64

// Cellwise is an executable fused cellwise kernel. It is immutable and safe for concurrent use.
type Cellwise struct {
	cellType cplan.CellType
	fn       KernelFunc

	// code is the generated text of compiled kernels, empty for kernels created with NewCellwise.
	code string

	numSide, numScalars int
	parallelThreshold   int64
}

// NewCellwise creates a kernel from a hand-written KernelFunc.
func NewCellwise(cellType cplan.CellType, fn KernelFunc) *Cellwise {
	return &Cellwise{cellType: cellType, fn: fn, parallelThreshold: ParallelCellThreshold}
}

// WithParallelThreshold returns a copy of the kernel that runs multi-threaded for inputs of at least numCells cells.
func (c *Cellwise) WithParallelThreshold(numCells int64) *Cellwise {
	c2 := *c
	c2.parallelThreshold = numCells
	return &c2
}

// CellType returns how per-cell results are combined.
func (c *Cellwise) CellType() cplan.CellType { return c.cellType }

// Code returns the generated code of a compiled kernel.
func (c *Cellwise) Code() string { return c.code }

// execArgs are the resolved arguments of one execution.
type execArgs struct {
	a       *matrix.Block
	side    [][]float64
	scalars []float64
	m, n    int

	// sparseSafe is set when a is sparse and the kernel can skip its implicit zeros.
	sparseSafe bool
}

// ExecuteScalar runs a FullAgg kernel and returns the sum of the kernel over all cells of inputs[0].
// inputs[1:] are the side inputs.
func (c *Cellwise) ExecuteScalar(inputs []*matrix.Block, scalars []float64, k int) (float64, error) {
	if c.cellType != cplan.FullAgg {
		return 0, errors.Wrapf(ErrInvalidArguments, "ExecuteScalar requires a %s kernel, got %s", cplan.FullAgg, c.cellType)
	}
	args, err := c.prepare(inputs, scalars)
	if err != nil {
		return 0, err
	}
	k = c.effectiveParallelism(args, k)
	tasks := rowTasks(args.m, k, func(rl, ru int) (float64, error) {
		sum := c.aggregateRows(args, rl, ru)
		return sum.Sum, nil
	})
	partials, err := workers.Run(k, tasks)
	if err != nil {
		return 0, errors.WithMessagef(err, "cellwise %s kernel", c.cellType)
	}
	return matrix.KahanSum(partials...), nil
}

// Execute runs a NoAgg or RowAgg kernel over inputs[0] and writes the result to out, which is reset to a dense
// m×n (NoAgg) or m×1 (RowAgg) matrix. The number of non-zeros of out is updated and its format re-evaluated.
// out must not be one of the inputs.
func (c *Cellwise) Execute(inputs []*matrix.Block, scalars []float64, out *matrix.Block, k int) error {
	if c.cellType == cplan.FullAgg || !c.cellType.IsValid() {
		return errors.Wrapf(ErrInvalidArguments, "Execute requires a %s or %s kernel, got %s",
			cplan.NoAgg, cplan.RowAgg, c.cellType)
	}
	if out == nil {
		return errors.Wrap(ErrInvalidArguments, "nil output matrix")
	}
	for ii, in := range inputs {
		if in == out {
			return errors.Wrapf(ErrInvalidArguments, "output matrix is also input #%d", ii)
		}
	}
	args, err := c.prepare(inputs, scalars)
	if err != nil {
		return err
	}
	outCols := args.n
	if c.cellType == cplan.RowAgg {
		outCols = 1
	}
	out.Reset(args.m, outCols, false)
	buf := out.AllocateDense()

	k = c.effectiveParallelism(args, k)
	tasks := rowTasks(args.m, k, func(rl, ru int) (int64, error) {
		return c.writeRows(args, buf, rl, ru), nil
	})
	counts, err := workers.Run(k, tasks)
	if err != nil {
		return errors.WithMessagef(err, "cellwise %s kernel", c.cellType)
	}
	var nnz int64
	for _, count := range counts {
		nnz += count
	}
	out.SetNonZeros(nnz)
	out.ExamSparsity()
	return nil
}

// prepare validates the invocation and densifies the side inputs.
func (c *Cellwise) prepare(inputs []*matrix.Block, scalars []float64) (*execArgs, error) {
	if len(inputs) == 0 || inputs[0] == nil {
		return nil, errors.Wrap(ErrInvalidArguments, "missing main input")
	}
	if c.fn == nil {
		return nil, errors.Wrap(ErrInvalidArguments, "kernel has no function")
	}
	if len(inputs)-1 < c.numSide {
		return nil, errors.Wrapf(ErrInvalidArguments, "kernel reads %d side inputs, %d given", c.numSide, len(inputs)-1)
	}
	if len(scalars) < c.numScalars {
		return nil, errors.Wrapf(ErrInvalidArguments, "kernel reads %d scalars, %d given", c.numScalars, len(scalars))
	}
	side, err := prepInputMatrices(inputs[1:])
	if err != nil {
		return nil, err
	}
	a := inputs[0]
	args := &execArgs{a: a, side: side, scalars: scalars, m: a.Rows(), n: a.Cols()}
	if a.IsSparse() && len(side) == 0 {
		// Heuristic: a kernel mapping 0 to 0 without side inputs is assumed to map every implicit zero to 0.
		args.sparseSafe = c.fn(0, side, scalars, args.n, args.m, 0, 0) == 0
	}
	return args, nil
}

// prepInputMatrices returns the row-major values of each side input, with zeros for the implicit values.
func prepInputMatrices(inputs []*matrix.Block) ([][]float64, error) {
	side := make([][]float64, len(inputs))
	for ii, b := range inputs {
		if b == nil {
			return nil, errors.Wrapf(ErrInvalidArguments, "side input #%d is nil", ii)
		}
		if values := b.DenseValues(); values != nil {
			side[ii] = values
		} else {
			side[ii] = b.DenseCopy()
		}
	}
	return side, nil
}

// effectiveParallelism returns the number of workers to use: small inputs run single-threaded.
func (c *Cellwise) effectiveParallelism(args *execArgs, k int) int {
	if k > 1 && args.a.NumCells() < c.parallelThreshold {
		k = 1
	}
	if klog.V(2).Enabled() {
		klog.Infof("cellwise %s: %dx%d main input (%s cells, sparse=%v, sparse-safe=%v), %d side inputs, k=%d",
			c.cellType, args.m, args.n, humanize.Comma(args.a.NumCells()), args.a.IsSparse(), args.sparseSafe,
			len(args.side), k)
	}
	return k
}

// partitionRows splits rows [0, m) into contiguous ranges for k workers: min(8k, m/32) rounded up to a multiple
// of k chunks of equal length, the last one truncated.
func partitionRows(m, k int) [][2]int {
	if k <= 1 {
		return [][2]int{{0, m}}
	}
	nk := matrix.RoundToNext(min(8*k, m/32), k)
	blockLen := (m + nk - 1) / nk
	var ranges [][2]int
	for i := 0; i < nk && i*blockLen < m; i++ {
		ranges = append(ranges, [2]int{i * blockLen, min((i+1)*blockLen, m)})
	}
	return ranges
}

func rowTasks[T any](m, k int, fn func(rl, ru int) (T, error)) []workers.Task[T] {
	ranges := partitionRows(m, k)
	tasks := make([]workers.Task[T], len(ranges))
	for ii, r := range ranges {
		tasks[ii] = func() (T, error) { return fn(r[0], r[1]) }
	}
	return tasks
}

// aggregateRows returns the compensated sum of the kernel over rows [rl, ru).
func (c *Cellwise) aggregateRows(args *execArgs, rl, ru int) (sum matrix.Kahan) {
	fn, side, scalars, m, n := c.fn, args.side, args.scalars, args.m, args.n
	if !args.a.IsSparse() {
		a := args.a.DenseValues()
		for i := rl; i < ru; i++ {
			for j := range n {
				var v float64
				if a != nil {
					v = a[i*n+j]
				}
				sum.Add(fn(v, side, scalars, n, m, i, j))
			}
		}
		return
	}
	for i := rl; i < ru; i++ {
		row := args.a.SparseRow(i)
		if args.sparseSafe {
			if row.IsEmpty() {
				continue
			}
			values := row.Values()
			for pos, j := range row.Indexes() {
				sum.Add(fn(values[pos], side, scalars, n, m, i, j))
			}
			continue
		}
		forEachCell(row, n, func(j int, v float64) {
			sum.Add(fn(v, side, scalars, n, m, i, j))
		})
	}
	return
}

// writeRows writes the kernel results of rows [rl, ru) to out and returns the number of non-zeros written.
func (c *Cellwise) writeRows(args *execArgs, out []float64, rl, ru int) (nnz int64) {
	fn, side, scalars, m, n := c.fn, args.side, args.scalars, args.m, args.n
	rowAgg := c.cellType == cplan.RowAgg
	var rowSum matrix.Kahan
	emit := func(i, j int, v float64) {
		if rowAgg {
			rowSum.Add(v)
			return
		}
		out[i*n+j] = v
		if v != 0 {
			nnz++
		}
	}
	for i := rl; i < ru; i++ {
		rowSum.Reset()
		switch {
		case !args.a.IsSparse():
			a := args.a.DenseValues()
			for j := range n {
				var v float64
				if a != nil {
					v = a[i*n+j]
				}
				emit(i, j, fn(v, side, scalars, n, m, i, j))
			}
		case args.sparseSafe:
			row := args.a.SparseRow(i)
			if !row.IsEmpty() {
				values := row.Values()
				for pos, j := range row.Indexes() {
					emit(i, j, fn(values[pos], side, scalars, n, m, i, j))
				}
			}
		default:
			forEachCell(args.a.SparseRow(i), n, func(j int, v float64) {
				emit(i, j, fn(v, side, scalars, n, m, i, j))
			})
		}
		if rowAgg {
			out[i] = rowSum.Sum
			if rowSum.Sum != 0 {
				nnz++
			}
		}
	}
	return
}

// forEachCell calls fn for every column of a sparse row, including implicit zeros. row may be nil.
func forEachCell(row *matrix.SparseRow, n int, fn func(j int, v float64)) {
	var indexes []int
	var values []float64
	if !row.IsEmpty() {
		indexes, values = row.Indexes(), row.Values()
	}
	pos := 0
	for j := range n {
		v := 0.0
		if pos < len(indexes) && indexes[pos] == j {
			v = values[pos]
			pos++
		}
		fn(j, v)
	}
}
