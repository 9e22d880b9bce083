// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"sync/atomic"
)

// Block is a program block: one of *GenericBlock, *ForBlock, *ParForBlock, *WhileBlock, *IfBlock or *FunctionBlock.
//
// The set is closed: consumers switch over the concrete types and treat anything else as an error.
type Block interface {
	isBlock()
}

// Container is a Block (or Program) holding child blocks.
type Container interface {
	// ReplaceChild replaces the direct child old with replacement, and returns whether old was found.
	ReplaceChild(old, replacement Block) bool
}

func replaceIn(blocks []Block, old, replacement Block) bool {
	found := false
	for ii, b := range blocks {
		if b == old {
			blocks[ii] = replacement
			found = true
		}
	}
	return found
}

// GenericBlock is a straight-line statement block: the operator DAG and the instructions compiled from it.
type GenericBlock struct {
	Hops         []*Hop
	Instructions []Instruction
}

func (*GenericBlock) isBlock() {}

// ForBlock is a sequential for loop.
type ForBlock struct {
	// IterablePredicateVars are: iteration variable, from, to and increment.
	IterablePredicateVars [4]string

	FromInstructions      []Instruction
	ToInstructions        []Instruction
	IncrementInstructions []Instruction

	ChildBlocks []Block
}

func (*ForBlock) isBlock() {}

// ReplaceChild implements Container.
func (f *ForBlock) ReplaceChild(old, replacement Block) bool {
	return replaceIn(f.ChildBlocks, old, replacement)
}

// IterVar returns the name of the iteration variable.
func (f *ForBlock) IterVar() string { return f.IterablePredicateVars[0] }

// parForIDs generates unique ParForBlock ids.
var parForIDs atomic.Int64

// ParForBlock is a parallel for loop, together with the annotations set by the ParFor optimizer
// for the execution engine.
type ParForBlock struct {
	ForBlock

	// ID is unique per ParForBlock instance, including copies.
	ID int64

	// Params are the user given loop parameters (e.g. "par=4").
	Params map[string]string

	// ResultVariables are the variables the loop writes and whose task results are merged.
	ResultVariables []string

	// ReadOnlyParentVars are outer-scope variables only read by the loop body, and AccessFormats the partition
	// format of their accesses as determined by the statement block analysis (missing means FormatNone).
	ReadOnlyParentVars []string
	AccessFormats      map[string]PartitionFormat

	ExecMode                   ExecType
	DataPartitioner            DataPartitioner
	ColocatedPartitionedMatrix string
	PartitionReplication       int
	ExportReplication          int
	DegreeOfParallelism        int
	TaskPartitioner            TaskPartitioner
	TaskSize                   int
	ResultMerge                ResultMerge
	RecompileMemoryBudget      float64

	// WorkerReuse allows remote workers to run several tasks in the same environment.
	WorkerReuse bool
}

// NewParForBlock creates a ParFor block over iterVar from..to by incr, with default annotations.
func NewParForBlock(iterVar, from, to, incr string, children ...Block) *ParForBlock {
	return &ParForBlock{
		ForBlock: ForBlock{
			IterablePredicateVars: [4]string{iterVar, from, to, incr},
			ChildBlocks:           children,
		},
		ID:                   parForIDs.Add(1),
		Params:               make(map[string]string),
		AccessFormats:        make(map[string]PartitionFormat),
		ExecMode:             ExecLocal,
		DegreeOfParallelism:  1,
		PartitionReplication: DefaultWriteReplicationFactor,
		WorkerReuse:          true,
	}
}

// DefaultWriteReplicationFactor is the replication of files written by the runtime, unless changed by the optimizer.
const DefaultWriteReplicationFactor = 1

// AccessFormat returns the partition format in which the loop accesses the given read-only variable.
func (p *ParForBlock) AccessFormat(varName string) PartitionFormat {
	if f, found := p.AccessFormats[varName]; found {
		return f
	}
	return FormatNone
}

// NewForFromParFor returns a sequential loop equivalent to p: a shallow copy sharing the child blocks
// and instructions.
func NewForFromParFor(p *ParForBlock) *ForBlock {
	f := p.ForBlock
	return &f
}

// WhileBlock is a while loop.
type WhileBlock struct {
	PredicateInstructions []Instruction
	ChildBlocks           []Block
}

func (*WhileBlock) isBlock() {}

// ReplaceChild implements Container.
func (w *WhileBlock) ReplaceChild(old, replacement Block) bool {
	return replaceIn(w.ChildBlocks, old, replacement)
}

// IfBlock is a conditional.
type IfBlock struct {
	PredicateInstructions []Instruction
	Then, Else            []Block
}

func (*IfBlock) isBlock() {}

// ReplaceChild implements Container.
func (b *IfBlock) ReplaceChild(old, replacement Block) bool {
	inThen := replaceIn(b.Then, old, replacement)
	inElse := replaceIn(b.Else, old, replacement)
	return inThen || inElse
}

// FunctionBlock is the body of a user function.
type FunctionBlock struct {
	Namespace, Name string
	Inputs, Outputs []string
	ChildBlocks     []Block
}

func (*FunctionBlock) isBlock() {}

// ReplaceChild implements Container.
func (f *FunctionBlock) ReplaceChild(old, replacement Block) bool {
	return replaceIn(f.ChildBlocks, old, replacement)
}

// ChildBlocks returns the direct children of a block, in order. It returns nil for generic blocks.
func ChildBlocks(b Block) []Block {
	switch b := b.(type) {
	case *GenericBlock:
		return nil
	case *ForBlock:
		return b.ChildBlocks
	case *ParForBlock:
		return b.ChildBlocks
	case *WhileBlock:
		return b.ChildBlocks
	case *IfBlock:
		return append(append([]Block(nil), b.Then...), b.Else...)
	case *FunctionBlock:
		return b.ChildBlocks
	}
	return nil
}

// Compile-time checks of the containers.
var (
	_ Container = (*ForBlock)(nil)
	_ Container = (*ParForBlock)(nil)
	_ Container = (*WhileBlock)(nil)
	_ Container = (*IfBlock)(nil)
	_ Container = (*FunctionBlock)(nil)
	_ Container = (*Program)(nil)
)
