// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"fmt"
	"strings"
)

// Instruction is one low-level instruction of a program block.
type Instruction struct {
	Opcode   string
	ExecType ExecType
	Operands []string

	// FunctionNamespace and FunctionName are only set for function call instructions.
	FunctionNamespace, FunctionName string
}

// NewFunctionCall creates a local function call instruction.
func NewFunctionCall(namespace, name string, operands ...string) Instruction {
	return Instruction{
		Opcode:            OpFunctionCall,
		ExecType:          ExecLocal,
		Operands:          operands,
		FunctionNamespace: namespace,
		FunctionName:      name,
	}
}

// IsFunctionCall returns whether the instruction calls a function.
func (inst Instruction) IsFunctionCall() bool { return inst.Opcode == OpFunctionCall }

// clone returns a copy not sharing the operands slice.
func (inst Instruction) clone() Instruction {
	inst.Operands = append([]string(nil), inst.Operands...)
	return inst
}

// String implements fmt.Stringer.
func (inst Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", inst.ExecType, inst.Opcode)
	if inst.IsFunctionCall() {
		fmt.Fprintf(&sb, " %s", FunctionKey(inst.FunctionNamespace, inst.FunctionName))
	}
	for _, op := range inst.Operands {
		fmt.Fprintf(&sb, " %s", op)
	}
	return sb.String()
}

func cloneInstructions(insts []Instruction) []Instruction {
	if insts == nil {
		return nil
	}
	out := make([]Instruction, len(insts))
	for ii, inst := range insts {
		out[ii] = inst.clone()
	}
	return out
}

// NestedToInstructions creates the "to" instructions of the inner loop created by the nested parallelism
// rewrite: to = iterVar + offset.
func NestedToInstructions(iterVar string, offset int) []Instruction {
	return []Instruction{{
		Opcode:   "+",
		ExecType: ExecLocal,
		Operands: []string{iterVar, fmt.Sprint(offset), iterVar + "_to"},
	}}
}
