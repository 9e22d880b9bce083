// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "sort"

// SparseRowInitialCapacity is the number of entries preallocated for a new sparse row.
//
// The ParFor optimizer uses it as well, to estimate the footprint of a task writing one
// cell-wise or column-wise slice of a sparse result.
const SparseRowInitialCapacity = 4

// SparseRow holds the non-zero values of one matrix row, sorted by column index.
type SparseRow struct {
	indexes []int
	values  []float64
}

// NewSparseRow creates an empty row with the given capacity.
func NewSparseRow(capacity int) *SparseRow {
	return &SparseRow{
		indexes: make([]int, 0, capacity),
		values:  make([]float64, 0, capacity),
	}
}

// Size returns the number of stored entries.
func (r *SparseRow) Size() int { return len(r.indexes) }

// IsEmpty returns whether the row stores no entries.
func (r *SparseRow) IsEmpty() bool { return r == nil || len(r.indexes) == 0 }

// Indexes returns the column indexes of the stored entries. Callers must not modify it.
func (r *SparseRow) Indexes() []int { return r.indexes }

// Values returns the stored values, aligned with Indexes. Callers must not modify it.
func (r *SparseRow) Values() []float64 { return r.values }

func (r *SparseRow) search(col int) (int, bool) {
	pos := sort.SearchInts(r.indexes, col)
	return pos, pos < len(r.indexes) && r.indexes[pos] == col
}

// Get returns the value at column col, 0 if not stored.
func (r *SparseRow) Get(col int) float64 {
	if pos, found := r.search(col); found {
		return r.values[pos]
	}
	return 0
}

// Set writes the value at column col. Writing 0 removes the entry.
func (r *SparseRow) Set(col int, v float64) {
	pos, found := r.search(col)
	switch {
	case found && v == 0:
		r.indexes = append(r.indexes[:pos], r.indexes[pos+1:]...)
		r.values = append(r.values[:pos], r.values[pos+1:]...)
	case found:
		r.values[pos] = v
	case v != 0:
		r.indexes = append(r.indexes, 0)
		r.values = append(r.values, 0)
		copy(r.indexes[pos+1:], r.indexes[pos:])
		copy(r.values[pos+1:], r.values[pos:])
		r.indexes[pos] = col
		r.values[pos] = v
	}
}

// Append adds an entry after all current ones: col must be larger than any stored column.
func (r *SparseRow) Append(col int, v float64) {
	r.indexes = append(r.indexes, col)
	r.values = append(r.values, v)
}
