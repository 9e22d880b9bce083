// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package program is the executable representation of a script that the ParFor optimizer annotates:
// program blocks (generic, loops, conditionals and functions), their high-level operators (Hop),
// low-level instructions, and the variable bindings known at compile time.
package program

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

// KeyDelim separates namespace and name in function keys.
const KeyDelim = "::"

// DefaultNamespace is the namespace of functions defined in the main script.
const DefaultNamespace = ".defaultNS"

// FunctionKey returns the unique key of a function.
func FunctionKey(namespace, name string) string {
	return namespace + KeyDelim + name
}

// SplitFunctionKey is the inverse of FunctionKey.
func SplitFunctionKey(key string) (namespace, name string, err error) {
	idx := strings.Index(key, KeyDelim)
	if idx < 0 {
		return "", "", errors.Errorf("invalid function key %q: missing %q", key, KeyDelim)
	}
	return key[:idx], key[idx+len(KeyDelim):], nil
}

// Program is a compiled script: its top-level blocks and its functions.
type Program struct {
	Blocks []Block

	// functions are ordered by key, so enumeration is deterministic.
	functions btree.Map[string, *FunctionBlock]
}

// New creates an empty program.
func New() *Program {
	return &Program{}
}

// ReplaceChild implements Container for top-level blocks.
func (p *Program) ReplaceChild(old, replacement Block) bool {
	return replaceIn(p.Blocks, old, replacement)
}

// AddFunction registers (or replaces) the function namespace::name.
func (p *Program) AddFunction(namespace, name string, fn *FunctionBlock) {
	fn.Namespace, fn.Name = namespace, name
	p.functions.Set(FunctionKey(namespace, name), fn)
}

// Function returns the function namespace::name.
func (p *Program) Function(namespace, name string) (*FunctionBlock, bool) {
	return p.functions.Get(FunctionKey(namespace, name))
}

// NumFunctions returns the number of registered functions.
func (p *Program) NumFunctions() int {
	return p.functions.Len()
}

// EnumerateFunctions calls fn for every function in key order.
func (p *Program) EnumerateFunctions(fn func(key string, f *FunctionBlock)) {
	p.functions.Scan(func(key string, f *FunctionBlock) bool {
		fn(key, f)
		return true
	})
}

// ExecutionContext is the compile-time context of the optimizer: the program and the current variable bindings.
type ExecutionContext struct {
	Program *Program
	Vars    *Variables
}

// NewExecutionContext creates a context for the program with empty variables.
func NewExecutionContext(prog *Program) *ExecutionContext {
	return &ExecutionContext{Program: prog, Vars: NewVariables()}
}
