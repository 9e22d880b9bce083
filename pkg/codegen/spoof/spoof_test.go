// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package spoof

import (
	"math"
	"testing"

	"github.com/gomlx/parfor/pkg/codegen/cplan"
	"github.com/gomlx/parfor/pkg/core/matrix"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testValues returns m×n row-major values with roughly 10% non-zeros, some of them negative.
func testValues(m, n int) []float64 {
	values := make([]float64, m*n)
	for i := range m {
		for j := range n {
			if (i*7+j*3)%10 == 0 {
				values[i*n+j] = float64(i+j+1) * math.Pow(-1, float64(j))
			}
		}
	}
	return values
}

func testMatrix(m, n int, sparse bool) *matrix.Block {
	if sparse {
		return matrix.NewSparseFromDense(m, n, testValues(m, n))
	}
	return matrix.NewDense(m, n, testValues(m, n))
}

func unaryKernel(t cplan.CellType, op cplan.UnaryType) *Cellwise {
	return must.M1(Compile(cplan.NewCell(t, cplan.NewUnary(op, cplan.Main()))))
}

func TestPow2Vector(t *testing.T) {
	const m = 10_000
	values := make([]float64, m)
	for i := range values {
		values[i] = float64(i%7 - 3)
	}
	in := matrix.NewDense(m, 1, values)
	kernel := unaryKernel(cplan.NoAgg, cplan.UnaryPow2)
	out := matrix.New(0, 0, true)
	require.NoError(t, kernel.Execute([]*matrix.Block{in}, nil, out, 4))
	require.Equal(t, m, out.Rows())
	require.Equal(t, 1, out.Cols())
	assert.False(t, out.IsSparse())
	var nnz int64
	for i, v := range values {
		require.Equal(t, v*v, out.Get(i, 0), "row %d", i)
		if v != 0 {
			nnz++
		}
	}
	assert.Equal(t, nnz, out.NonZeros())
}

func TestSparseMatchesDense(t *testing.T) {
	const m, n = 40, 50
	a := cplan.Main()
	kernels := map[string]*Cellwise{
		"mult2 no-agg":   unaryKernel(cplan.NoAgg, cplan.UnaryMult2),
		"pow2 row-agg":   unaryKernel(cplan.RowAgg, cplan.UnaryPow2),
		"exp no-agg":     unaryKernel(cplan.NoAgg, cplan.UnaryExp),
		"a+1 row-agg":    must.M1(Compile(cplan.NewCell(cplan.RowAgg, cplan.NewBinary(cplan.BinaryPlus, a, cplan.Literal(1))))),
		"sigmoid no-agg": unaryKernel(cplan.NoAgg, cplan.UnarySigmoid),
	}
	for name, kernel := range kernels {
		for _, k := range []int{1, 3} {
			kernel := kernel.WithParallelThreshold(1)
			dense, sparse := matrix.New(0, 0, false), matrix.New(0, 0, false)
			require.NoError(t, kernel.Execute([]*matrix.Block{testMatrix(m, n, false)}, nil, dense, k), name)
			require.NoError(t, kernel.Execute([]*matrix.Block{testMatrix(m, n, true)}, nil, sparse, k), name)
			assert.True(t, matrix.EqualValues(dense, sparse, 1e-12), "%s, k=%d", name, k)
			assert.Equal(t, dense.NonZeros(), sparse.NonZeros(), "%s, k=%d", name, k)
		}
	}

	abs := unaryKernel(cplan.FullAgg, cplan.UnaryAbs)
	denseSum := must.M1(abs.ExecuteScalar([]*matrix.Block{testMatrix(m, n, false)}, nil, 1))
	sparseSum := must.M1(abs.ExecuteScalar([]*matrix.Block{testMatrix(m, n, true)}, nil, 1))
	assert.InDelta(t, denseSum, sparseSum, 1e-9)
	assert.Greater(t, denseSum, 0.0)
}

func TestNotSparseSafe(t *testing.T) {
	// f(0) != 0: implicit zeros of a sparse input must be visited.
	const m, n = 20, 10
	kernel := must.M1(Compile(cplan.NewCell(cplan.NoAgg,
		cplan.NewBinary(cplan.BinaryPlus, cplan.Main(), cplan.Literal(1)))))
	in := testMatrix(m, n, true)
	out := matrix.New(0, 0, false)
	require.NoError(t, kernel.Execute([]*matrix.Block{in}, nil, out, 1))
	values := testValues(m, n)
	for i := range m {
		for j := range n {
			require.Equal(t, values[i*n+j]+1, out.Get(i, j), "(%d, %d)", i, j)
		}
	}
	assert.Equal(t, int64(m*n), out.NonZeros()+int64(countEqual(values, -1)))

	// An empty dense input is all zeros, and still goes through the kernel.
	sum := must.M1(Compile(cplan.NewCell(cplan.FullAgg,
		cplan.NewBinary(cplan.BinaryPlus, cplan.Main(), cplan.Literal(1)))))
	assert.Equal(t, float64(m*n), must.M1(sum.ExecuteScalar([]*matrix.Block{matrix.New(m, n, false)}, nil, 1)))
}

func countEqual(values []float64, target float64) int {
	count := 0
	for _, v := range values {
		if v == target {
			count++
		}
	}
	return count
}

func TestAggregations(t *testing.T) {
	const m, n = 100, 100
	pow2 := unaryKernel(cplan.FullAgg, cplan.UnaryPow2)
	for _, in := range []*matrix.Block{
		matrix.NewDense(m, n, make([]float64, m*n)),
		matrix.New(m, n, true),
		matrix.New(m, n, false),
	} {
		sum, err := pow2.ExecuteScalar([]*matrix.Block{in}, nil, 4)
		require.NoError(t, err)
		assert.Exactly(t, 0.0, sum)
	}

	rowSums := unaryKernel(cplan.RowAgg, cplan.UnaryAbs)
	for _, sparse := range []bool{false, true} {
		out := matrix.New(0, 0, false)
		require.NoError(t, rowSums.Execute([]*matrix.Block{testMatrix(m, 7, sparse)}, nil, out, 2))
		assert.Equal(t, m, out.Rows())
		assert.Equal(t, 1, out.Cols())
		values := testValues(m, 7)
		for i := range m {
			var want float64
			for _, v := range values[i*7 : (i+1)*7] {
				want += math.Abs(v)
			}
			assert.InDelta(t, want, out.Get(i, 0), 1e-12, "row %d", i)
		}
	}

	noAgg := unaryKernel(cplan.NoAgg, cplan.UnaryAbs)
	out := matrix.New(0, 0, false)
	require.NoError(t, noAgg.Execute([]*matrix.Block{testMatrix(13, 17, true)}, nil, out, 2))
	assert.Equal(t, 13, out.Rows())
	assert.Equal(t, 17, out.Cols())
}

func TestParallelMatchesSerial(t *testing.T) {
	const m, n = 1000, 20
	in := []*matrix.Block{testMatrix(m, n, false)}
	for _, cellType := range []cplan.CellType{cplan.NoAgg, cplan.RowAgg} {
		serial := unaryKernel(cellType, cplan.UnarySigmoid)
		parallel := serial.WithParallelThreshold(1)
		want, got := matrix.New(0, 0, false), matrix.New(0, 0, false)
		require.NoError(t, serial.Execute(in, nil, want, 1))
		for _, k := range []int{2, 3, 8} {
			require.NoError(t, parallel.Execute(in, nil, got, k))
			assert.True(t, matrix.EqualValues(want, got, 0), "%s, k=%d", cellType, k)
			assert.Equal(t, want.NonZeros(), got.NonZeros())
		}
	}

	serial := unaryKernel(cplan.FullAgg, cplan.UnarySigmoid)
	want := must.M1(serial.ExecuteScalar(in, nil, 1))
	for _, k := range []int{2, 5, 16} {
		got := must.M1(serial.WithParallelThreshold(1).ExecuteScalar(in, nil, k))
		assert.InDelta(t, want, got, 1e-9, "k=%d", k)
	}

	// Below the threshold, k is ignored.
	assert.Equal(t, want, must.M1(serial.ExecuteScalar(in, nil, 8)))
}

func TestPartitionRows(t *testing.T) {
	ranges := partitionRows(10_000, 4)
	require.Len(t, ranges, 32)
	assert.Equal(t, [2]int{0, 313}, ranges[0])
	assert.Equal(t, [2]int{31 * 313, 10_000}, ranges[31])
	for ii := 1; ii < len(ranges); ii++ {
		assert.Equal(t, ranges[ii-1][1], ranges[ii][0], "ranges must be contiguous")
	}

	assert.Equal(t, [][2]int{{0, 25}, {25, 50}, {50, 75}, {75, 100}}, partitionRows(100, 4))
	assert.Equal(t, [][2]int{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, partitionRows(10, 4))
	assert.Equal(t, [][2]int{{0, 10}}, partitionRows(10, 1))
	assert.Empty(t, partitionRows(0, 4))
}

func TestSideInputsAndScalars(t *testing.T) {
	const m, n = 30, 6
	// a * b[0][i,j] + scalars[1] * b[1][i]
	cell := cplan.NewCell(cplan.NoAgg, cplan.NewBinary(cplan.BinaryPlus,
		cplan.NewBinary(cplan.BinaryMult, cplan.Main(), cplan.NewUnary(cplan.UnaryLookupRC, cplan.Side(0))),
		cplan.NewBinary(cplan.BinaryMult, cplan.Scalar(1), cplan.NewUnary(cplan.UnaryLookupR, cplan.Side(1)))))
	kernel := must.M1(Compile(cell))
	assert.Contains(t, kernel.Code(), "b[1][rowIndex]")

	a := testValues(m, n)
	side0 := make([]float64, m*n)
	for ii := range side0 {
		side0[ii] = float64(ii % 5)
	}
	side1 := make([]float64, m)
	for ii := range side1 {
		side1[ii] = float64(ii)
	}
	inputs := []*matrix.Block{
		matrix.NewSparseFromDense(m, n, a),
		matrix.NewSparseFromDense(m, n, side0),
		matrix.NewDense(m, 1, side1),
	}
	scalars := []float64{-1, 0.5}
	out := matrix.New(0, 0, false)
	require.NoError(t, kernel.Execute(inputs, scalars, out, 1))
	for i := range m {
		for j := range n {
			want := a[i*n+j]*side0[i*n+j] + 0.5*side1[i]
			require.InDelta(t, want, out.Get(i, j), 1e-12, "(%d, %d)", i, j)
		}
	}
}

func TestInvalidArguments(t *testing.T) {
	noAgg := unaryKernel(cplan.NoAgg, cplan.UnaryExp)
	fullAgg := unaryKernel(cplan.FullAgg, cplan.UnaryExp)
	in := []*matrix.Block{testMatrix(3, 3, false)}
	out := matrix.New(0, 0, false)

	assert.ErrorIs(t, noAgg.Execute(nil, nil, out, 1), ErrInvalidArguments)
	assert.ErrorIs(t, noAgg.Execute([]*matrix.Block{nil}, nil, out, 1), ErrInvalidArguments)
	assert.ErrorIs(t, noAgg.Execute(in, nil, nil, 1), ErrInvalidArguments)
	assert.ErrorIs(t, fullAgg.Execute(in, nil, out, 1), ErrInvalidArguments)

	// Writing over the input would clear it before it is read.
	before := in[0].Get(1, 2)
	assert.ErrorIs(t, noAgg.Execute(in, nil, in[0], 1), ErrInvalidArguments)
	assert.Equal(t, 3, in[0].Rows())
	assert.Equal(t, before, in[0].Get(1, 2), "input left untouched")
	_, err := noAgg.ExecuteScalar(in, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidArguments)
	_, err = fullAgg.ExecuteScalar(nil, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidArguments)

	lookup := must.M1(Compile(cplan.NewCell(cplan.NoAgg, cplan.NewBinary(cplan.BinaryMult,
		cplan.Scalar(0), cplan.NewUnary(cplan.UnaryLookup0, cplan.Side(0))))))
	assert.ErrorIs(t, lookup.Execute(in, []float64{1}, out, 1), ErrInvalidArguments, "missing side input")
	assert.ErrorIs(t, lookup.Execute(append(in, in[0]), nil, out, 1), ErrInvalidArguments, "missing scalar")
	assert.ErrorIs(t, lookup.Execute(append(in, nil), []float64{1}, out, 1), ErrInvalidArguments, "nil side input")
	side := matrix.NewDense(3, 3, make([]float64, 9))
	assert.ErrorIs(t, lookup.Execute(append(in, side), []float64{1}, side, 1), ErrInvalidArguments, "output is a side input")
	require.NoError(t, lookup.Execute(append(in, in[0]), []float64{2}, out, 1))
	assert.Equal(t, 2*in[0].Get(0, 0), out.Get(2, 2))

	_, err = Compile(cplan.NewCell(cplan.NoAgg, cplan.NewUnary(cplan.UnaryRowSums, cplan.Main())))
	assert.ErrorIs(t, err, cplan.ErrUnsupportedOperator)
}

func TestTaskFailure(t *testing.T) {
	// The side input is shorter than the main input: the lookup goes out of range from row 5 on.
	kernel := must.M1(Compile(cplan.NewCell(cplan.RowAgg, cplan.NewBinary(cplan.BinaryPlus,
		cplan.Main(), cplan.NewUnary(cplan.UnaryLookupR, cplan.Side(0))))))
	inputs := []*matrix.Block{testMatrix(100, 3, false), matrix.NewDense(5, 1, []float64{1, 2, 3, 4, 5})}
	for _, k := range []int{1, 4} {
		out := matrix.New(0, 0, false)
		err := kernel.WithParallelThreshold(1).Execute(inputs, nil, out, k)
		require.Error(t, err, "k=%d", k)
		assert.ErrorIs(t, err, ErrTaskFailed, "k=%d", k)
	}

	panicky := NewCellwise(cplan.FullAgg, func(a float64, _ [][]float64, _ []float64, _, _, rowIndex, _ int) float64 {
		if rowIndex == 7 {
			panic("bad row")
		}
		return a
	})
	_, err := panicky.ExecuteScalar([]*matrix.Block{testMatrix(10, 2, false)}, nil, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskFailed)
	assert.Contains(t, err.Error(), "bad row")
}

func TestKernelCache(t *testing.T) {
	build := func(cellType cplan.CellType) *cplan.Cell {
		a := cplan.Main()
		return cplan.NewCell(cellType, cplan.NewBinary(cplan.BinaryMult, cplan.NewUnary(cplan.UnarySqrt, a), a))
	}
	cache := NewKernelCache()
	first := must.M1(cache.Get(build(cplan.NoAgg)))
	second := must.M1(cache.Get(build(cplan.NoAgg)))
	assert.Same(t, first, second, "structurally equal graphs share the compiled kernel")
	assert.Equal(t, 1, cache.Len())

	rowAgg := must.M1(cache.Get(build(cplan.RowAgg)))
	assert.NotSame(t, first, rowAgg)
	assert.Equal(t, cplan.RowAgg, rowAgg.CellType())
	assert.Equal(t, 2, cache.Len())

	_, err := cache.Get(cplan.NewCell(cplan.NoAgg, nil))
	assert.Error(t, err)
	assert.Equal(t, 2, cache.Len())

	out := matrix.New(0, 0, false)
	require.NoError(t, first.Execute([]*matrix.Block{matrix.NewDense(1, 2, []float64{4, 9})}, nil, out, 1))
	assert.Equal(t, []float64{8, 27}, out.DenseValues())
}
