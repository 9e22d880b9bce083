// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cplan holds the fused operator graph of a cellwise kernel: a DAG of elementwise operators over the
// cells of a main input, with side inputs, scalars and literals as leaves, and a Cell root that selects how the
// per-cell results are combined.
//
// Graphs are built once and then only read: spoof compiles them into kernels, and Codegen renders the kernel
// as text, which is used as the kernel cache key.
package cplan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CellType is the output combination mode of a cellwise kernel.
type CellType int

const (
	// NoAgg writes one output per input cell.
	NoAgg CellType = iota

	// FullAgg sums all per-cell results into a scalar.
	FullAgg

	// RowAgg sums the per-cell results of each row into a column vector.
	RowAgg
)

//go:generate go tool enumer -type=CellType -transform=snake-upper -output=gen_celltype_enumer.go cplan.go

// IsValid returns whether t is one of the defined cell types.
func (t CellType) IsValid() bool { return t.IsACellType() }

// CNode is a node of the fused operator graph.
type CNode interface {
	// Inputs of the node, in operand order. Leaves return nil.
	Inputs() []CNode

	fmt.Stringer
}

// DataKind identifies what a Data leaf refers to.
type DataKind int

const (
	// DataMain is the value of the current cell of the main input.
	DataMain DataKind = iota

	// DataSide is a whole side input, only usable through a lookup operator.
	DataSide

	// DataScalar is one of the scalar arguments.
	DataScalar

	// DataLiteral is a constant.
	DataLiteral
)

// Data is a leaf of the graph.
type Data struct {
	Kind DataKind

	// Index of the side input or scalar, for DataSide and DataScalar.
	Index int

	// Value of a DataLiteral.
	Value float64
}

// Main returns a leaf for the current cell value of the main input.
func Main() *Data { return &Data{Kind: DataMain} }

// Side returns a leaf for side input idx.
func Side(idx int) *Data { return &Data{Kind: DataSide, Index: idx} }

// Scalar returns a leaf for scalar argument idx.
func Scalar(idx int) *Data { return &Data{Kind: DataScalar, Index: idx} }

// Literal returns a constant leaf.
func Literal(v float64) *Data { return &Data{Kind: DataLiteral, Value: v} }

// Inputs implements CNode.
func (d *Data) Inputs() []CNode { return nil }

// VarName returns the expression used to read the leaf in generated code.
func (d *Data) VarName() string {
	switch d.Kind {
	case DataMain:
		return "a"
	case DataSide:
		return fmt.Sprintf("b[%d]", d.Index)
	case DataScalar:
		return fmt.Sprintf("scalars[%d]", d.Index)
	default:
		return formatLiteral(d.Value)
	}
}

func formatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 {
		s = "(" + s + ")"
	}
	return s
}

// String implements fmt.Stringer.
func (d *Data) String() string { return d.VarName() }

// Unary applies a unary operator to its input.
type Unary struct {
	Input CNode
	Type  UnaryType
}

// NewUnary creates a Unary node.
func NewUnary(t UnaryType, input CNode) *Unary { return &Unary{Input: input, Type: t} }

// Inputs implements CNode.
func (u *Unary) Inputs() []CNode { return []CNode{u.Input} }

// String implements fmt.Stringer.
func (u *Unary) String() string { return fmt.Sprintf("%s(%v)", u.Type, u.Input) }

// Binary applies a binary operator to its inputs.
type Binary struct {
	Left, Right CNode
	Type        BinaryType
}

// NewBinary creates a Binary node.
func NewBinary(t BinaryType, left, right CNode) *Binary {
	return &Binary{Left: left, Right: right, Type: t}
}

// Inputs implements CNode.
func (b *Binary) Inputs() []CNode { return []CNode{b.Left, b.Right} }

// String implements fmt.Stringer.
func (b *Binary) String() string { return fmt.Sprintf("%s(%v, %v)", b.Type, b.Left, b.Right) }

// Cell is the root of a cellwise kernel.
type Cell struct {
	Output CNode
	Type   CellType
}

// NewCell creates the root of a kernel.
func NewCell(t CellType, output CNode) *Cell { return &Cell{Output: output, Type: t} }

// String implements fmt.Stringer.
func (c *Cell) String() string { return fmt.Sprintf("%s[%v]", c.Type, c.Output) }

// Validate checks that the graph is a well-formed DAG the executor can run: no nil nodes, no cycles, valid
// operator kinds, lookups reading side inputs, and side inputs only read through lookups.
func (c *Cell) Validate() error {
	if c == nil || c.Output == nil {
		return errors.New("cellwise kernel has no output")
	}
	if !c.Type.IsValid() {
		return errors.Errorf("invalid cell type %s", c.Type)
	}
	if d, ok := c.Output.(*Data); ok && d != nil && d.Kind == DataSide {
		return errors.Errorf("side input %d can only be read through a lookup", d.Index)
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[CNode]int)
	var visit func(node CNode) error
	visit = func(node CNode) error {
		switch state[node] {
		case visiting:
			return errors.Errorf("cycle in fused operator graph at %s", nodeKind(node))
		case done:
			return nil
		}
		state[node] = visiting
		if err := validateNode(node); err != nil {
			return err
		}
		for _, input := range node.Inputs() {
			if err := visit(input); err != nil {
				return err
			}
		}
		state[node] = done
		return nil
	}
	return visit(c.Output)
}

// nodeKind describes a node without walking its inputs, so it is safe on cyclic graphs.
func nodeKind(node CNode) string {
	switch n := node.(type) {
	case *Unary:
		return n.Type.String()
	case *Binary:
		return n.Type.String()
	case *Data:
		if n != nil {
			return n.VarName()
		}
	}
	return fmt.Sprintf("%T", node)
}

func validateNode(node CNode) error {
	switch n := node.(type) {
	case *Data:
		if n == nil {
			return errors.New("nil data node")
		}
		if (n.Kind == DataSide || n.Kind == DataScalar) && n.Index < 0 {
			return errors.Errorf("negative input index %d", n.Index)
		}
		if n.Kind < DataMain || n.Kind > DataLiteral {
			return errors.Errorf("invalid data kind %d", n.Kind)
		}
	case *Unary:
		if n == nil || n.Input == nil {
			return errors.New("unary operator without input")
		}
		if !n.Type.IsValid() {
			return errors.Wrapf(ErrUnsupportedOperator, "invalid unary operator %s", n.Type)
		}
		if n.Type == UnaryRowSums {
			return errors.Wrapf(ErrUnsupportedOperator, "%s is a vector operator, not supported in cellwise kernels", n.Type)
		}
		d, isData := n.Input.(*Data)
		isSide := isData && d != nil && d.Kind == DataSide
		if n.Type.IsLookup() && !isSide {
			return errors.Errorf("%s requires a side input, got %s", n.Type, nodeKind(n.Input))
		}
		if !n.Type.IsLookup() && isSide {
			return errors.Errorf("side input %d can only be read through a lookup, not %s", d.Index, n.Type)
		}
	case *Binary:
		if n == nil || n.Left == nil || n.Right == nil {
			return errors.New("binary operator with missing input")
		}
		if !n.Type.IsValid() {
			return errors.Wrapf(ErrUnsupportedOperator, "invalid binary operator %s", n.Type)
		}
		for _, input := range n.Inputs() {
			if d, ok := input.(*Data); ok && d != nil && d.Kind == DataSide {
				return errors.Errorf("side input %d can only be read through a lookup, not %s", d.Index, n.Type)
			}
		}
	case nil:
		return errors.New("nil node in fused operator graph")
	default:
		return errors.Errorf("unknown fused operator node %T", node)
	}
	return nil
}

// NumSideInputs returns the number of side inputs the kernel reads: one more than the largest side index.
func (c *Cell) NumSideInputs() int { return c.maxIndex(DataSide) + 1 }

// NumScalars returns the number of scalar arguments the kernel reads: one more than the largest scalar index.
func (c *Cell) NumScalars() int { return c.maxIndex(DataScalar) + 1 }

func (c *Cell) maxIndex(kind DataKind) int {
	maxIdx := -1
	Walk(c.Output, func(node CNode) {
		if d, ok := node.(*Data); ok && d.Kind == kind && d.Index > maxIdx {
			maxIdx = d.Index
		}
	})
	return maxIdx
}

// Walk calls fn once per distinct node reachable from root, inputs before the nodes using them.
// The graph must be acyclic, see Cell.Validate.
func Walk(root CNode, fn func(node CNode)) {
	seen := make(map[CNode]bool)
	var visit func(node CNode)
	visit = func(node CNode) {
		if node == nil || seen[node] {
			return
		}
		seen[node] = true
		for _, input := range node.Inputs() {
			visit(input)
		}
		fn(node)
	}
	visit(root)
}

// Codegen renders the kernel as the text of a genexec function. Nodes shared in the DAG are computed once.
// The graph is validated first.
func (c *Cell) Codegen() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	var body strings.Builder
	vars := make(map[CNode]string)
	numTmp := 0
	var err error
	Walk(c.Output, func(node CNode) {
		if err != nil {
			return
		}
		var tmpl string
		var inputs []string
		switch n := node.(type) {
		case *Data:
			vars[node] = n.VarName()
			return
		case *Unary:
			tmpl, err = n.Type.Template(false)
			inputs = []string{vars[n.Input]}
		case *Binary:
			tmpl, err = n.Type.Template()
			inputs = []string{vars[n.Left], vars[n.Right]}
		}
		if err != nil {
			return
		}
		numTmp++
		name := "tmp" + strconv.Itoa(numTmp)
		vars[node] = name
		replacements := []string{"%TMP%", name}
		for ii, in := range inputs {
			replacements = append(replacements, fmt.Sprintf("%%IN%d%%", ii+1), in)
		}
		body.WriteString(strings.NewReplacer(replacements...).Replace(tmpl))
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("func genexec(a float64, b [][]float64, scalars []float64, n, m, rowIndex, colIndex int) float64 {\n%s\treturn %s\n}\n",
		body.String(), vars[c.Output]), nil
}
