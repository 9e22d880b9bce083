// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"github.com/pkg/errors"
)

// ErrRecompile is wrapped by all failures to produce an instruction sequence from an operator DAG.
var ErrRecompile = errors.New("recompilation failed")

// Recompiler regenerates the instructions of a statement block from its operator DAG.
type Recompiler interface {
	RecompileHopsDag(hops []*Hop, vars *Variables) ([]Instruction, error)
}

// BudgetRecompiler is a Recompiler that selects each operator's execution type by comparing its memory
// estimate against MemoryBudget, unless the operator has a forced execution type.
type BudgetRecompiler struct {
	MemoryBudget float64
}

var _ Recompiler = BudgetRecompiler{}

// RecompileHopsDag implements Recompiler.
//
// Instructions are emitted in topological order, one per non-data operator. Every data operator must reference
// a variable bound in vars or be a scalar literal (an operator without dimensions).
func (r BudgetRecompiler) RecompileHopsDag(hops []*Hop, vars *Variables) ([]Instruction, error) {
	var insts []Instruction
	visited := make(map[*Hop]bool)
	var visit func(h *Hop) error
	visit = func(h *Hop) error {
		if h == nil {
			return errors.Wrap(ErrRecompile, "nil operator in DAG")
		}
		if visited[h] {
			return nil
		}
		visited[h] = true
		for ii, in := range h.Inputs {
			if err := visit(in); err != nil {
				return errors.WithMessagef(err, "input #%d of %s", ii, h.Name)
			}
		}
		if h.IsData() {
			if h.Dim1 > 0 && h.Dim2 > 0 && !vars.Has(h.Name) {
				return errors.Wrapf(ErrRecompile, "matrix variable %q is not bound", h.Name)
			}
			return nil
		}
		inst := Instruction{Opcode: h.Op, ExecType: r.execType(h)}
		for _, in := range h.Inputs {
			inst.Operands = append(inst.Operands, in.Name)
		}
		inst.Operands = append(inst.Operands, h.Name)
		insts = append(insts, inst)
		return nil
	}
	for _, h := range hops {
		if err := visit(h); err != nil {
			return nil, err
		}
	}
	return insts, nil
}

func (r BudgetRecompiler) execType(h *Hop) ExecType {
	if h.ForcedExecType != ExecUnspecified {
		return h.ForcedExecType
	}
	if h.MemEstimate < r.MemoryBudget {
		return ExecLocal
	}
	return ExecDistributed
}
