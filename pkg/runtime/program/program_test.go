// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionKey(t *testing.T) {
	key := FunctionKey(DefaultNamespace, "f")
	assert.Equal(t, ".defaultNS::f", key)
	ns, name, err := SplitFunctionKey(key)
	require.NoError(t, err)
	assert.Equal(t, DefaultNamespace, ns)
	assert.Equal(t, "f", name)

	_, _, err = SplitFunctionKey("no_delimiter")
	assert.Error(t, err)
}

func TestProgramFunctions(t *testing.T) {
	prog := New()
	prog.AddFunction("ns", "zeta", &FunctionBlock{})
	prog.AddFunction("ns", "alpha", &FunctionBlock{})
	prog.AddFunction("a", "omega", &FunctionBlock{})
	assert.Equal(t, 3, prog.NumFunctions())

	fn, found := prog.Function("ns", "alpha")
	require.True(t, found)
	assert.Equal(t, "alpha", fn.Name)
	assert.Equal(t, "ns", fn.Namespace)
	_, found = prog.Function("ns", "missing")
	assert.False(t, found)

	var keys []string
	prog.EnumerateFunctions(func(key string, _ *FunctionBlock) { keys = append(keys, key) })
	assert.Equal(t, []string{"a::omega", "ns::alpha", "ns::zeta"}, keys)
}

func TestReplaceChild(t *testing.T) {
	g1, g2 := &GenericBlock{}, &GenericBlock{}
	pf := NewParForBlock("i", "1", "10", "1", g1)
	prog := New()
	prog.Blocks = []Block{pf}

	f := NewForFromParFor(pf)
	assert.Equal(t, pf.IterablePredicateVars, f.IterablePredicateVars)
	assert.Same(t, g1, f.ChildBlocks[0])
	assert.True(t, prog.ReplaceChild(pf, f))
	assert.Same(t, f, prog.Blocks[0].(*ForBlock))
	assert.False(t, prog.ReplaceChild(pf, f))

	ifb := &IfBlock{Then: []Block{g1}, Else: []Block{g2}}
	assert.True(t, ifb.ReplaceChild(g2, g1))
	assert.Equal(t, []Block{g1, g1}, ChildBlocks(ifb))
}

func TestDeepCopyFunction(t *testing.T) {
	x := NewData("X", 100, 10)
	i := NewData("i", 0, 0)
	rix := NewIndexing(x, i, i, NewData("1", 0, 0), NewData("10", 0, 0))
	g := &GenericBlock{
		Hops:         []*Hop{rix, x},
		Instructions: []Instruction{NewFunctionCall("ns", "f", "X", "out")},
	}
	pf := NewParForBlock("i", "1", "100", "1", g)
	pf.ResultVariables = []string{"R"}
	pf.AccessFormats["X"] = FormatRowWise
	fn := &FunctionBlock{Namespace: "ns", Name: "f", Inputs: []string{"X"}, ChildBlocks: []Block{pf}}

	fnCopy, cm := DeepCopyFunction(fn)
	require.NotSame(t, fn, fnCopy)
	assert.Len(t, cm.Blocks, 3)
	pfCopy := fnCopy.ChildBlocks[0].(*ParForBlock)
	assert.Same(t, pfCopy, cm.Blocks[pf])
	assert.NotEqual(t, pf.ID, pfCopy.ID)
	assert.Equal(t, FormatRowWise, pfCopy.AccessFormat("X"))

	gCopy := pfCopy.ChildBlocks[0].(*GenericBlock)
	// The shared input X remains shared within the copy.
	assert.Same(t, gCopy.Hops[1], gCopy.Hops[0].Input(IndexingInputMatrix))
	assert.Same(t, cm.Hops[rix], gCopy.Hops[0])
	assert.NotSame(t, rix, gCopy.Hops[0])

	// Mutating the copy leaves the original untouched.
	pfCopy.ResultVariables[0] = "S"
	pfCopy.AccessFormats["X"] = FormatColumnWise
	gCopy.Hops[0].MemEstimate = 42
	assert.Equal(t, 1, RenameFunctionCalls(fnCopy.ChildBlocks, "ns", "f", "__unfold_f"))
	assert.Equal(t, "R", pf.ResultVariables[0])
	assert.Equal(t, FormatRowWise, pf.AccessFormat("X"))
	assert.Equal(t, 0.0, rix.MemEstimate)
	assert.Equal(t, "f", g.Instructions[0].FunctionName)
	assert.Equal(t, "__unfold_f", gCopy.Instructions[0].FunctionName)
}

func TestBudgetRecompiler(t *testing.T) {
	vars := NewVariables()
	vars.PutMatrix("X", 1000, 1000, -1)
	vars.PutMatrix("R", 1000, 1000, 0)
	x := NewData("X", 1000, 1000)
	r := NewData("R", 1000, 1000)
	i := NewData("i", 0, 0)
	rix := NewIndexing(x, i, i, NewData("1", 0, 0), NewData("1000", 0, 0))
	rix.MemEstimate = 8000
	lix := NewLeftIndexing(r, rix, i, i, NewData("1", 0, 0), NewData("1000", 0, 0))
	lix.MemEstimate = 16e6

	rc := BudgetRecompiler{MemoryBudget: 1e6}
	insts, err := rc.RecompileHopsDag([]*Hop{lix}, vars)
	require.NoError(t, err)
	require.Len(t, insts, 2)
	assert.Equal(t, OpIndexing, insts[0].Opcode)
	assert.Equal(t, ExecLocal, insts[0].ExecType)
	assert.Equal(t, OpLeftIndexing, insts[1].Opcode)
	assert.Equal(t, ExecDistributed, insts[1].ExecType)
	assert.Equal(t, lix.Name, insts[1].Operands[len(insts[1].Operands)-1])

	lix.ForcedExecType = ExecLocal
	insts, err = rc.RecompileHopsDag([]*Hop{lix}, vars)
	require.NoError(t, err)
	assert.Equal(t, ExecLocal, insts[1].ExecType)

	// Unbound matrices cannot be recompiled.
	y := NewData("Y", 10, 10)
	_, err = rc.RecompileHopsDag([]*Hop{NewIndexing(y, i, i, i, i)}, vars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecompile))
}

func TestEnums(t *testing.T) {
	for _, tp := range []TaskPartitioner{TaskPartitionerStatic, TaskPartitionerFactoring, TaskPartitionerFactoringCMax} {
		parsed, err := TaskPartitionerString(tp.String())
		require.NoError(t, err)
		assert.Equal(t, tp, parsed)
	}
	f, err := PartitionFormatString("COLUMN_WISE")
	require.NoError(t, err)
	assert.Equal(t, FormatColumnWise, f)
	assert.Equal(t, "BLOCK_WISE_M_N", FormatBlockWise.String())
	merge, err := ResultMergeString("local_automatic")
	require.NoError(t, err)
	assert.Equal(t, ResultMergeLocalAutomatic, merge)
	assert.Equal(t, "FACTORING_CMIN", TaskPartitionerFactoringCMin.String())
	assert.Len(t, ExecTypeValues(), 3)
	_, err = ResultMergeString("BOGUS")
	assert.Error(t, err)
	assert.Equal(t, "ExecType(7)", ExecType(7).String())
	assert.True(t, FormatTextCell.IsCellFormat())
	assert.False(t, FormatBinaryBlock.IsCellFormat())
}
