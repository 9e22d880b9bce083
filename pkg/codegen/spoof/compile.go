// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package spoof

import (
	"github.com/gomlx/parfor/pkg/codegen/cplan"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Compile validates the fused operator graph and turns it into an executable kernel.
func Compile(cell *cplan.Cell) (*Cellwise, error) {
	code, err := cell.Codegen()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to compile cellwise kernel")
	}
	return compile(cell, code)
}

func compile(cell *cplan.Cell, code string) (*Cellwise, error) {
	compiled := make(map[cplan.CNode]KernelFunc)
	fn, err := compileNode(cell.Output, compiled)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to compile cellwise kernel")
	}
	klog.V(2).Infof("compiled cellwise %s kernel:\n%s", cell.Type, code)
	return &Cellwise{
		cellType:          cell.Type,
		fn:                fn,
		code:              code,
		numSide:           cell.NumSideInputs(),
		numScalars:        cell.NumScalars(),
		parallelThreshold: ParallelCellThreshold,
	}, nil
}

// compileNode returns a closure computing node. Shared nodes are compiled once.
func compileNode(node cplan.CNode, compiled map[cplan.CNode]KernelFunc) (KernelFunc, error) {
	if fn, found := compiled[node]; found {
		return fn, nil
	}
	var fn KernelFunc
	switch n := node.(type) {
	case *cplan.Data:
		switch n.Kind {
		case cplan.DataMain:
			fn = func(a float64, _ [][]float64, _ []float64, _, _, _, _ int) float64 { return a }
		case cplan.DataScalar:
			idx := n.Index
			fn = func(_ float64, _ [][]float64, scalars []float64, _, _, _, _ int) float64 { return scalars[idx] }
		case cplan.DataLiteral:
			v := n.Value
			fn = func(_ float64, _ [][]float64, _ []float64, _, _, _, _ int) float64 { return v }
		default:
			return nil, errors.Errorf("side input %d can only be read through a lookup", n.Index)
		}

	case *cplan.Unary:
		if n.Type.IsLookup() {
			return compileLookup(n)
		}
		input, err := compileNode(n.Input, compiled)
		if err != nil {
			return nil, err
		}
		if n.Type == cplan.UnaryRowSums || !n.Type.IsValid() {
			return nil, errors.Wrapf(cplan.ErrUnsupportedOperator, "unary operator %s in cellwise kernel", n.Type)
		}
		apply := n.Type.Apply
		fn = func(a float64, side [][]float64, scalars []float64, n, m, rowIndex, colIndex int) float64 {
			return apply(input(a, side, scalars, n, m, rowIndex, colIndex))
		}

	case *cplan.Binary:
		left, err := compileNode(n.Left, compiled)
		if err != nil {
			return nil, err
		}
		right, err := compileNode(n.Right, compiled)
		if err != nil {
			return nil, err
		}
		if !n.Type.IsValid() {
			return nil, errors.Wrapf(cplan.ErrUnsupportedOperator, "binary operator %s in cellwise kernel", n.Type)
		}
		apply := n.Type.Apply
		fn = func(a float64, side [][]float64, scalars []float64, n, m, rowIndex, colIndex int) float64 {
			return apply(left(a, side, scalars, n, m, rowIndex, colIndex), right(a, side, scalars, n, m, rowIndex, colIndex))
		}

	default:
		return nil, errors.Errorf("unknown fused operator node %T", node)
	}
	compiled[node] = fn
	return fn, nil
}

// compileLookup returns a closure reading a side input at a position given by the current cell.
func compileLookup(u *cplan.Unary) (KernelFunc, error) {
	d, ok := u.Input.(*cplan.Data)
	if !ok || d.Kind != cplan.DataSide {
		return nil, errors.Errorf("%s requires a side input", u.Type)
	}
	idx := d.Index
	switch u.Type {
	case cplan.UnaryLookupR:
		return func(_ float64, side [][]float64, _ []float64, _, _, rowIndex, _ int) float64 {
			return side[idx][rowIndex]
		}, nil
	case cplan.UnaryLookupRC:
		return func(_ float64, side [][]float64, _ []float64, n, _, rowIndex, colIndex int) float64 {
			return side[idx][rowIndex*n+colIndex]
		}, nil
	default:
		return func(_ float64, side [][]float64, _ []float64, _, _, _, _ int) float64 {
			return side[idx][0]
		}, nil
	}
}
