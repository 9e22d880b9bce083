// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"fmt"
	"strings"
)

// Operator strings of the high-level operators the ParFor optimizer inspects.
const (
	// OpIndexing is right indexing, X[rl:ru, cl:cu]. Inputs: X, rl, ru, cl, cu.
	OpIndexing = "rix"

	// OpLeftIndexing is left indexing, X[rl:ru, cl:cu] = Y. Inputs: X, Y, rl, ru, cl, cu.
	OpLeftIndexing = "lix"

	// OpFunctionCall calls a user function.
	OpFunctionCall = "fcall"

	// OpData reads a named variable.
	OpData = "data"
)

// Input positions of the indexing operators.
const (
	IndexingInputMatrix = 0
	IndexingInputRowL   = 1
	IndexingInputRowU   = 2
	IndexingInputColL   = 3
	IndexingInputColU   = 4

	LeftIndexingInputTarget = 0
	LeftIndexingInputSource = 1
	LeftIndexingInputRowL   = 2
	LeftIndexingInputRowU   = 3
	LeftIndexingInputColL   = 4
	LeftIndexingInputColU   = 5
)

// Hop is a high-level operator of a statement block's operator DAG.
//
// Data operators (Op == OpData) reference a named variable; their Name is the variable name.
type Hop struct {
	Name   string
	Op     string
	Inputs []*Hop

	// Dim1 and Dim2 are the output dimensions, -1 if unknown.
	Dim1, Dim2 int64

	// MemEstimate is the estimated memory footprint in bytes of executing the operator in the local engine.
	MemEstimate float64

	// ForcedExecType, if not ExecUnspecified, overrides the memory based choice during recompilation.
	ForcedExecType ExecType
}

// NewData creates a data operator reading the variable name.
func NewData(name string, dim1, dim2 int64) *Hop {
	return &Hop{Name: name, Op: OpData, Dim1: dim1, Dim2: dim2}
}

// NewIndexing creates a right indexing operator X[rl:ru, cl:cu].
func NewIndexing(x, rl, ru, cl, cu *Hop) *Hop {
	return &Hop{Name: "rix(" + x.Name + ")", Op: OpIndexing, Inputs: []*Hop{x, rl, ru, cl, cu}, Dim1: -1, Dim2: -1}
}

// NewLeftIndexing creates a left indexing operator X[rl:ru, cl:cu] = y.
func NewLeftIndexing(x, y, rl, ru, cl, cu *Hop) *Hop {
	return &Hop{Name: "lix(" + x.Name + ")", Op: OpLeftIndexing, Inputs: []*Hop{x, y, rl, ru, cl, cu},
		Dim1: x.Dim1, Dim2: x.Dim2}
}

// IsData returns whether the operator reads a named variable.
func (h *Hop) IsData() bool { return h.Op == OpData }

// Input returns the i-th input, or nil if there is none.
func (h *Hop) Input(i int) *Hop {
	if i < 0 || i >= len(h.Inputs) {
		return nil
	}
	return h.Inputs[i]
}

// InputName returns the name of the i-th input, or "" if there is none.
func (h *Hop) InputName(i int) string {
	if in := h.Input(i); in != nil {
		return in.Name
	}
	return ""
}

// String implements fmt.Stringer.
func (h *Hop) String() string {
	if h.IsData() {
		return h.Name
	}
	parts := make([]string, 0, len(h.Inputs))
	for _, in := range h.Inputs {
		parts = append(parts, in.Name)
	}
	return fmt.Sprintf("%s(%s)", h.Op, strings.Join(parts, ", "))
}
