// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

// Data is the value bound to a variable: *MatrixObject or *ScalarObject.
type Data interface {
	isData()
}

// MatrixObject is the metadata of a materialized matrix. Unknown values are -1.
type MatrixObject struct {
	Rows, Cols, NonZeros int64
	Format               MatrixFormat
}

func (*MatrixObject) isData() {}

// ScalarObject is a scalar value.
type ScalarObject struct {
	Value string
}

func (*ScalarObject) isData() {}

// Variables is the variable-binding table: variable name to its value or metadata.
type Variables struct {
	vars map[string]Data
}

// NewVariables creates an empty table.
func NewVariables() *Variables {
	return &Variables{vars: make(map[string]Data)}
}

// Put binds name to data.
func (v *Variables) Put(name string, data Data) {
	v.vars[name] = data
}

// PutMatrix binds name to the metadata of a rows×cols matrix with nnz non-zeros in binary block format.
func (v *Variables) PutMatrix(name string, rows, cols, nnz int64) *MatrixObject {
	mo := &MatrixObject{Rows: rows, Cols: cols, NonZeros: nnz, Format: FormatBinaryBlock}
	v.vars[name] = mo
	return mo
}

// Get returns the value bound to name, or nil.
func (v *Variables) Get(name string) Data {
	return v.vars[name]
}

// Has returns whether name is bound.
func (v *Variables) Has(name string) bool {
	_, found := v.vars[name]
	return found
}

// Matrix returns the matrix bound to name, if name is bound to a matrix.
func (v *Variables) Matrix(name string) (*MatrixObject, bool) {
	mo, ok := v.vars[name].(*MatrixObject)
	return mo, ok
}

// Len returns the number of bound variables.
func (v *Variables) Len() int {
	return len(v.vars)
}
