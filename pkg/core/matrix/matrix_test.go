// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSetGet(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		b := New(3, 5, sparse)
		assert.True(t, b.IsEmpty())
		assert.Equal(t, 0.0, b.Get(2, 4))

		b.Set(0, 1, 2.5)
		b.Set(2, 4, -1)
		b.Set(2, 0, 7)
		assert.Equal(t, int64(3), b.NonZeros(), "sparse=%v", sparse)
		assert.Equal(t, 2.5, b.Get(0, 1))
		assert.Equal(t, -1.0, b.Get(2, 4))
		assert.Equal(t, 7.0, b.Get(2, 0))

		// Overwrite and delete.
		b.Set(0, 1, 3)
		b.Set(2, 4, 0)
		assert.Equal(t, int64(2), b.NonZeros(), "sparse=%v", sparse)
		assert.Equal(t, int64(2), b.RecomputeNonZeros(), "sparse=%v", sparse)
		assert.Equal(t, []float64{0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 7, 0, 0, 0, 0}, b.DenseCopy())
	}
}

func TestBlockOutOfBounds(t *testing.T) {
	b := New(2, 2, false)
	require.Panics(t, func() { b.Get(2, 0) })
	require.Panics(t, func() { b.Set(0, -1, 1) })
	require.Panics(t, func() { NewDense(2, 2, []float64{1}) })
}

func TestConversions(t *testing.T) {
	values := []float64{
		0, 0, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0, 3,
	}
	dense := NewDense(3, 6, append([]float64(nil), values...))
	sparse := NewSparseFromDense(3, 6, append([]float64(nil), values...))
	require.True(t, sparse.IsSparse())
	assert.Equal(t, int64(3), sparse.NonZeros())
	assert.Nil(t, sparse.SparseRow(1))
	assert.Equal(t, []int{0, 5}, sparse.SparseRow(2).Indexes())
	assert.Equal(t, []float64{2, 3}, sparse.SparseRow(2).Values())
	assert.True(t, EqualValues(dense, sparse, 0))

	sparse.ToDense()
	assert.False(t, sparse.IsSparse())
	assert.Equal(t, values, sparse.DenseValues())
}

func TestExamSparsity(t *testing.T) {
	// Low density, wide: goes sparse.
	b := New(10, 10, false)
	b.Set(3, 3, 1)
	b.ExamSparsity()
	assert.True(t, b.IsSparse())
	assert.Equal(t, 1.0, b.Get(3, 3))

	// Skinny matrices stay dense regardless of density.
	v := New(100, 1, false)
	v.Set(5, 0, 1)
	v.ExamSparsity()
	assert.False(t, v.IsSparse())

	// High density goes back to dense.
	b2 := NewSparseFromDense(2, 5, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 0})
	b2.ExamSparsity()
	assert.False(t, b2.IsSparse())
	assert.Equal(t, int64(9), b2.NonZeros())
}

func TestSparseRowOrdering(t *testing.T) {
	r := NewSparseRow(SparseRowInitialCapacity)
	r.Set(7, 1)
	r.Set(2, 2)
	r.Set(5, 3)
	r.Set(2, 4)
	assert.Equal(t, []int{2, 5, 7}, r.Indexes())
	assert.Equal(t, []float64{4, 3, 1}, r.Values())
	r.Set(5, 0)
	assert.Equal(t, []int{2, 7}, r.Indexes())
	assert.Equal(t, 0.0, r.Get(5))
}

func TestKahan(t *testing.T) {
	// 1 + 1e-16 * 10 loses everything with naive summation.
	values := []float64{1}
	for range 10 {
		values = append(values, 1e-16)
	}
	naive := 0.0
	for _, v := range values {
		naive += v
	}
	assert.Equal(t, 1.0, naive)
	assert.InDelta(t, 1e-15, KahanSum(values...)-1, 3e-16)

	var k Kahan
	k.Add(1)
	k.Reset()
	assert.Equal(t, Kahan{}, k)
}

func TestRoundToNext(t *testing.T) {
	assert.Equal(t, 32, RoundToNext(32, 4))
	assert.Equal(t, 36, RoundToNext(33, 4))
	assert.Equal(t, 4, RoundToNext(0, 4))
	assert.Equal(t, 4, RoundToNext(3, 4))
	assert.Equal(t, int64(8), RoundToNext(int64(5), int64(8)))
}
