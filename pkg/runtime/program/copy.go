// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"maps"
	"slices"

	"github.com/gomlx/exceptions"
)

// CopyMap records the correspondence between original and copied blocks and operators of a deep copy.
type CopyMap struct {
	Blocks map[Block]Block
	Hops   map[*Hop]*Hop
}

func newCopyMap() *CopyMap {
	return &CopyMap{Blocks: make(map[Block]Block), Hops: make(map[*Hop]*Hop)}
}

// DeepCopyFunction returns an independent copy of fn: no block, operator, instruction or annotation map is
// shared with the original. ParFor blocks in the copy get fresh IDs.
//
// The returned CopyMap maps every original block and operator to its copy.
func DeepCopyFunction(fn *FunctionBlock) (*FunctionBlock, *CopyMap) {
	cm := newCopyMap()
	fnCopy := cm.copyBlock(fn).(*FunctionBlock)
	return fnCopy, cm
}

func (cm *CopyMap) copyBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for ii, b := range blocks {
		out[ii] = cm.copyBlock(b)
	}
	return out
}

func (cm *CopyMap) copyFor(f *ForBlock) ForBlock {
	return ForBlock{
		IterablePredicateVars: f.IterablePredicateVars,
		FromInstructions:      cloneInstructions(f.FromInstructions),
		ToInstructions:        cloneInstructions(f.ToInstructions),
		IncrementInstructions: cloneInstructions(f.IncrementInstructions),
		ChildBlocks:           cm.copyBlocks(f.ChildBlocks),
	}
}

func (cm *CopyMap) copyBlock(b Block) Block {
	if c, found := cm.Blocks[b]; found {
		return c
	}
	var c Block
	switch b := b.(type) {
	case *GenericBlock:
		hops := make([]*Hop, len(b.Hops))
		for ii, h := range b.Hops {
			hops[ii] = cm.copyHop(h)
		}
		c = &GenericBlock{Hops: hops, Instructions: cloneInstructions(b.Instructions)}
	case *ForBlock:
		f := cm.copyFor(b)
		c = &f
	case *ParForBlock:
		p := *b
		p.ForBlock = cm.copyFor(&b.ForBlock)
		p.ID = parForIDs.Add(1)
		p.Params = maps.Clone(b.Params)
		p.AccessFormats = maps.Clone(b.AccessFormats)
		p.ResultVariables = slices.Clone(b.ResultVariables)
		p.ReadOnlyParentVars = slices.Clone(b.ReadOnlyParentVars)
		c = &p
	case *WhileBlock:
		c = &WhileBlock{
			PredicateInstructions: cloneInstructions(b.PredicateInstructions),
			ChildBlocks:           cm.copyBlocks(b.ChildBlocks),
		}
	case *IfBlock:
		c = &IfBlock{
			PredicateInstructions: cloneInstructions(b.PredicateInstructions),
			Then:                  cm.copyBlocks(b.Then),
			Else:                  cm.copyBlocks(b.Else),
		}
	case *FunctionBlock:
		c = &FunctionBlock{
			Namespace:   b.Namespace,
			Name:        b.Name,
			Inputs:      slices.Clone(b.Inputs),
			Outputs:     slices.Clone(b.Outputs),
			ChildBlocks: cm.copyBlocks(b.ChildBlocks),
		}
	default:
		exceptions.Panicf("cannot copy unknown program block type %T", b)
	}
	cm.Blocks[b] = c
	return c
}

// copyHop copies the operator DAG rooted at h, preserving shared inputs.
func (cm *CopyMap) copyHop(h *Hop) *Hop {
	if h == nil {
		return nil
	}
	if c, found := cm.Hops[h]; found {
		return c
	}
	c := *h
	cm.Hops[h] = &c
	c.Inputs = make([]*Hop, len(h.Inputs))
	for ii, in := range h.Inputs {
		c.Inputs[ii] = cm.copyHop(in)
	}
	return &c
}

// RenameFunctionCalls rewrites the function call instructions of the generic blocks in blocks (recursively,
// not following calls) from namespace::oldName to namespace::newName. It returns the number of
// instructions rewritten.
func RenameFunctionCalls(blocks []Block, namespace, oldName, newName string) int {
	count := 0
	for _, b := range blocks {
		if g, ok := b.(*GenericBlock); ok {
			count += g.RenameFunctionCalls(namespace, oldName, newName)
			continue
		}
		count += RenameFunctionCalls(ChildBlocks(b), namespace, oldName, newName)
	}
	return count
}

// RenameFunctionCalls rewrites the block's calls to namespace::oldName into calls to namespace::newName.
func (g *GenericBlock) RenameFunctionCalls(namespace, oldName, newName string) int {
	count := 0
	for ii := range g.Instructions {
		inst := &g.Instructions[ii]
		if inst.IsFunctionCall() && inst.FunctionNamespace == namespace && inst.FunctionName == oldName {
			inst.FunctionName = newName
			count++
		}
	}
	return count
}
