// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix implements the in-memory matrix block consumed and produced by the fused operators.
//
// A Block is a rows×cols matrix of float64 values kept either in a dense row-major buffer or in
// a sparse representation with one SparseRow per row. The number of non-zeros is tracked
// explicitly, and ExamSparsity switches the representation after bulk writes.
package matrix

import (
	"math"

	"github.com/gomlx/exceptions"
)

const (
	// SparsityTurnPoint is the density below which a block is better kept in sparse format.
	SparsityTurnPoint = 0.4

	// SkinnyMatrixTurnPoint is the number of columns up to which a block is always kept dense:
	// narrow matrices don't benefit from the per-row index overhead.
	SkinnyMatrixTurnPoint = 4
)

// Block is an in-memory matrix with a dense or a sparse representation.
//
// A dense block with a nil buffer, or a sparse block with nil rows, is "empty": all its values are 0.
type Block struct {
	rows, cols int
	nonZeros   int64
	sparse     bool

	dense      []float64
	sparseRows []*SparseRow
}

// New creates an empty rows×cols block in the given format. No storage is allocated until the first write.
func New(rows, cols int, sparse bool) *Block {
	if rows < 0 || cols < 0 {
		exceptions.Panicf("matrix.New: invalid dimensions %dx%d", rows, cols)
	}
	return &Block{rows: rows, cols: cols, sparse: sparse}
}

// NewDense creates a dense block owning the given row-major values. The number of non-zeros is computed.
func NewDense(rows, cols int, values []float64) *Block {
	if len(values) != rows*cols {
		exceptions.Panicf("matrix.NewDense: %d values given for a %dx%d matrix", len(values), rows, cols)
	}
	b := New(rows, cols, false)
	b.dense = values
	b.RecomputeNonZeros()
	return b
}

// NewSparseFromDense creates a sparse block with the non-zero values of the given row-major values.
func NewSparseFromDense(rows, cols int, values []float64) *Block {
	b := NewDense(rows, cols, values)
	b.ToSparse()
	return b
}

// Rows returns the number of rows.
func (b *Block) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Block) Cols() int { return b.cols }

// NumCells returns rows×cols.
func (b *Block) NumCells() int64 { return int64(b.rows) * int64(b.cols) }

// NonZeros returns the number of non-zero values currently recorded for the block.
func (b *Block) NonZeros() int64 { return b.nonZeros }

// SetNonZeros records the number of non-zeros, typically after a bulk write into DenseValues.
func (b *Block) SetNonZeros(nnz int64) { b.nonZeros = nnz }

// IsSparse returns whether the block uses the sparse representation.
func (b *Block) IsSparse() bool { return b.sparse }

// IsEmpty returns whether no storage is allocated for the current representation.
func (b *Block) IsEmpty() bool {
	if b.sparse {
		return b.sparseRows == nil
	}
	return b.dense == nil
}

// DenseValues returns the row-major dense buffer, or nil if the block is sparse or empty.
func (b *Block) DenseValues() []float64 {
	if b.sparse {
		return nil
	}
	return b.dense
}

// SparseRow returns the sparse row i, or nil if the block is dense or the row is empty.
func (b *Block) SparseRow(i int) *SparseRow {
	if !b.sparse || b.sparseRows == nil {
		return nil
	}
	return b.sparseRows[i]
}

// Reset sets new dimensions and format, dropping all values.
func (b *Block) Reset(rows, cols int, sparse bool) {
	b.rows, b.cols = rows, cols
	b.sparse = sparse
	b.nonZeros = 0
	b.dense = nil
	b.sparseRows = nil
}

// AllocateDense allocates (zeroed) the dense buffer if it is not yet allocated and returns it.
// It panics if the block is sparse.
func (b *Block) AllocateDense() []float64 {
	if b.sparse {
		exceptions.Panicf("matrix.AllocateDense: block is in sparse format")
	}
	if b.dense == nil {
		b.dense = make([]float64, b.rows*b.cols)
	}
	return b.dense
}

func (b *Block) checkIndex(i, j int) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		exceptions.Panicf("matrix: index (%d, %d) out of bounds for %dx%d block", i, j, b.rows, b.cols)
	}
}

// Get returns the value at row i, column j.
func (b *Block) Get(i, j int) float64 {
	b.checkIndex(i, j)
	if b.sparse {
		if b.sparseRows == nil || b.sparseRows[i] == nil {
			return 0
		}
		return b.sparseRows[i].Get(j)
	}
	if b.dense == nil {
		return 0
	}
	return b.dense[i*b.cols+j]
}

// Set writes the value at row i, column j, keeping the non-zero count up to date.
func (b *Block) Set(i, j int, v float64) {
	b.checkIndex(i, j)
	old := b.Get(i, j)
	if b.sparse {
		if v == 0 && (b.sparseRows == nil || b.sparseRows[i] == nil) {
			return
		}
		if b.sparseRows == nil {
			b.sparseRows = make([]*SparseRow, b.rows)
		}
		if b.sparseRows[i] == nil {
			b.sparseRows[i] = NewSparseRow(SparseRowInitialCapacity)
		}
		b.sparseRows[i].Set(j, v)
	} else {
		if v == 0 && b.dense == nil {
			return
		}
		b.AllocateDense()[i*b.cols+j] = v
	}
	switch {
	case old == 0 && v != 0:
		b.nonZeros++
	case old != 0 && v == 0:
		b.nonZeros--
	}
}

// RecomputeNonZeros counts the non-zeros of the current representation, records and returns it.
func (b *Block) RecomputeNonZeros() int64 {
	var nnz int64
	if b.sparse {
		for _, row := range b.sparseRows {
			if row != nil {
				for _, v := range row.values {
					if v != 0 {
						nnz++
					}
				}
			}
		}
	} else {
		for _, v := range b.dense {
			if v != 0 {
				nnz++
			}
		}
	}
	b.nonZeros = nnz
	return nnz
}

// EvalSparseFormat returns whether a rows×cols matrix with nnz non-zeros should be kept in sparse format.
func EvalSparseFormat(rows, cols int, nnz int64) bool {
	if rows == 0 || cols == 0 {
		return false
	}
	sparsity := float64(nnz) / float64(rows) / float64(cols)
	return cols > SkinnyMatrixTurnPoint && sparsity < SparsityTurnPoint
}

// ExamSparsity re-evaluates the representation based on the recorded number of non-zeros and converts
// the block if the other format is a better fit.
func (b *Block) ExamSparsity() {
	wantSparse := EvalSparseFormat(b.rows, b.cols, b.nonZeros)
	switch {
	case wantSparse && !b.sparse:
		b.ToSparse()
	case !wantSparse && b.sparse:
		b.ToDense()
	}
}

// ToSparse converts the block to the sparse representation.
func (b *Block) ToSparse() {
	if b.sparse {
		return
	}
	dense := b.dense
	b.sparse = true
	b.dense = nil
	b.sparseRows = nil
	if dense == nil {
		return
	}
	b.sparseRows = make([]*SparseRow, b.rows)
	for i := range b.rows {
		var row *SparseRow
		for j, v := range dense[i*b.cols : (i+1)*b.cols] {
			if v == 0 {
				continue
			}
			if row == nil {
				row = NewSparseRow(SparseRowInitialCapacity)
			}
			row.Append(j, v)
		}
		b.sparseRows[i] = row
	}
}

// ToDense converts the block to the dense representation.
func (b *Block) ToDense() {
	if !b.sparse {
		return
	}
	rows := b.sparseRows
	b.sparse = false
	b.sparseRows = nil
	b.dense = nil
	if rows == nil {
		return
	}
	dense := b.AllocateDense()
	for i, row := range rows {
		if row == nil {
			continue
		}
		for pos, j := range row.indexes {
			dense[i*b.cols+j] = row.values[pos]
		}
	}
}

// DenseCopy returns a row-major copy of all values, with zeros for implicit cells.
func (b *Block) DenseCopy() []float64 {
	out := make([]float64, b.rows*b.cols)
	if b.sparse {
		for i, row := range b.sparseRows {
			if row == nil {
				continue
			}
			for pos, j := range row.indexes {
				out[i*b.cols+j] = row.values[pos]
			}
		}
	} else if b.dense != nil {
		copy(out, b.dense)
	}
	return out
}

// EqualValues returns whether both blocks have the same shape and all values are within delta,
// regardless of their representation.
func EqualValues(a, b *Block, delta float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := range a.rows {
		for j := range a.cols {
			va, vb := a.Get(i, j), b.Get(i, j)
			if va == vb {
				continue
			}
			if math.IsNaN(va) && math.IsNaN(vb) {
				continue
			}
			if math.Abs(va-vb) > delta {
				return false
			}
		}
	}
	return true
}
