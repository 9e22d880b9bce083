// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cplan

import (
	"math"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnaryApply(t *testing.T) {
	testCases := []struct {
		t    UnaryType
		x    float64
		want float64
	}{
		{UnaryExp, 0, 1},
		{UnaryPow2, -3, 9},
		{UnaryMult2, 2.5, 5},
		{UnarySqrt, 16, 4},
		{UnaryLog, 1, 0},
		{UnaryAbs, -7, 7},
		{UnaryRound, 2.5, 3},
		{UnaryRound, -2.5, -2},
		{UnaryRound, 1.4, 1},
		{UnaryCeil, 1.2, 2},
		{UnaryFloor, -1.2, -2},
		{UnarySign, -4, -1},
		{UnarySign, 0, 0},
		{UnarySign, 3, 1},
		{UnarySin, 0, 0},
		{UnaryCos, 0, 1},
		{UnaryTan, 0, 0},
		{UnaryASin, 1, math.Pi / 2},
		{UnaryACos, 1, 0},
		{UnaryATan, 0, 0},
		{UnarySelP, -1, 0},
		{UnarySelP, 2, 2},
		{UnarySProp, 0.5, 0.25},
		{UnarySigmoid, 0, 0.5},
		{UnaryLogNZ, 0, 0},
		{UnaryLogNZ, math.E, 1},
	}
	for _, tc := range testCases {
		assert.InDelta(t, tc.want, tc.t.Apply(tc.x), 1e-12, "%s(%g)", tc.t, tc.x)
	}

	for _, unsupported := range []UnaryType{UnaryRowSums, UnaryLookupR, UnaryLookupRC, UnaryLookup0, UnaryInvalid, UnaryType(99)} {
		err := exceptions.TryCatch[error](func() { unsupported.Apply(1) })
		require.Error(t, err, "%s", unsupported)
		assert.True(t, errors.Is(err, ErrUnsupportedOperator), "%s", unsupported)
	}
}

func TestBinaryApply(t *testing.T) {
	testCases := []struct {
		t    BinaryType
		x, y float64
		want float64
	}{
		{BinaryPlus, 1, 2, 3},
		{BinaryMinus, 1, 2, -1},
		{BinaryMult, 3, 2, 6},
		{BinaryDiv, 3, 2, 1.5},
		{BinaryModulus, 7, 3, 1},
		{BinaryModulus, -7, 3, 2},
		{BinaryIntDiv, 7, 2, 3},
		{BinaryIntDiv, -7, 2, -4},
		{BinaryLess, 1, 2, 1},
		{BinaryLessEqual, 2, 2, 1},
		{BinaryGreater, 1, 2, 0},
		{BinaryGreaterEqual, 1, 2, 0},
		{BinaryEqual, 2, 2, 1},
		{BinaryNotEqual, 2, 2, 0},
		{BinaryMin, 2, -1, -1},
		{BinaryMax, 2, -1, 2},
		{BinaryAnd, 2, 0, 0},
		{BinaryOr, 2, 0, 1},
		{BinaryPow, 2, 10, 1024},
		{BinaryMinus1Mult, 2, 3, -5},
		{BinaryMinusNZ, 0, 3, 0},
		{BinaryMinusNZ, 5, 3, 2},
		{BinaryLogNZ, 0, 2, 0},
		{BinaryLogNZ, 8, 2, 3},
	}
	for _, tc := range testCases {
		assert.InDelta(t, tc.want, tc.t.Apply(tc.x, tc.y), 1e-12, "%s(%g, %g)", tc.t, tc.x, tc.y)
	}
	err := exceptions.TryCatch[error](func() { BinaryInvalid.Apply(1, 2) })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestOperatorNames(t *testing.T) {
	for _, ut := range UnaryTypeValues()[1:] {
		parsed, err := ParseUnaryType(ut.String())
		require.NoError(t, err)
		assert.Equal(t, ut, parsed)
		_, err = ut.Template(false)
		assert.NoError(t, err, "%s", ut)
	}
	for _, bt := range BinaryTypeValues()[1:] {
		parsed, err := ParseBinaryType(bt.String())
		require.NoError(t, err)
		assert.Equal(t, bt, parsed)
		_, err = bt.Template()
		assert.NoError(t, err, "%s", bt)
	}
	_, err := ParseUnaryType("TANH")
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = ParseUnaryType("INVALID")
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
	sigmoid, err := ParseUnaryType("sigmoid")
	require.NoError(t, err)
	assert.Equal(t, UnarySigmoid, sigmoid)
	assert.Equal(t, "MINUS1_MULT", BinaryMinus1Mult.String())
	assert.Equal(t, "ROW_AGG", RowAgg.String())
	assert.False(t, CellType(3).IsValid())
	_, err = UnaryInvalid.Template(false)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
	_, err = BinaryType(99).Template()
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
	assert.Equal(t, "BinaryType(99)", BinaryType(99).String())

	sparse, err := UnaryRowSums.Template(true)
	require.NoError(t, err)
	assert.Contains(t, sparse, "%IN1v%")
}

func TestValidate(t *testing.T) {
	a := Main()
	valid := NewCell(RowAgg, NewBinary(BinaryMult, NewUnary(UnaryPow2, a), NewUnary(UnaryLookupR, Side(1))))
	require.NoError(t, valid.Validate())
	assert.Equal(t, 2, valid.NumSideInputs())
	assert.Equal(t, 0, valid.NumScalars())

	invalid := map[string]*Cell{
		"no output":         NewCell(NoAgg, nil),
		"cell type":         NewCell(CellType(7), a),
		"nil input":         NewCell(NoAgg, NewUnary(UnaryExp, nil)),
		"row sums":          NewCell(NoAgg, NewUnary(UnaryRowSums, a)),
		"invalid unary":     NewCell(NoAgg, NewUnary(UnaryInvalid, a)),
		"invalid binary":    NewCell(NoAgg, NewBinary(BinaryInvalid, a, a)),
		"lookup on main":    NewCell(NoAgg, NewUnary(UnaryLookup0, a)),
		"side without look": NewCell(NoAgg, NewBinary(BinaryPlus, a, Side(0))),
		"side as output":    NewCell(NoAgg, Side(0)),
		"negative scalar":   NewCell(NoAgg, NewBinary(BinaryPlus, a, Scalar(-1))),
	}
	for name, cell := range invalid {
		assert.Error(t, cell.Validate(), name)
	}
	assert.ErrorIs(t, invalid["row sums"].Validate(), ErrUnsupportedOperator)

	// Cycle: x = exp(x + a).
	plus := NewBinary(BinaryPlus, nil, a)
	loop := NewUnary(UnaryExp, plus)
	plus.Left = loop
	err := NewCell(NoAgg, loop).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestCodegen(t *testing.T) {
	a := Main()
	sq := NewUnary(UnaryPow2, a)
	// Shared subexpression: (a^2 + a^2) * scalars[0] - 1.5.
	cell := NewCell(FullAgg, NewBinary(BinaryMinus,
		NewBinary(BinaryMult, NewBinary(BinaryPlus, sq, sq), Scalar(0)),
		Literal(1.5)))
	code, err := cell.Codegen()
	require.NoError(t, err)
	want := "func genexec(a float64, b [][]float64, scalars []float64, n, m, rowIndex, colIndex int) float64 {\n" +
		"\ttmp1 := a * a\n" +
		"\ttmp2 := tmp1 + tmp1\n" +
		"\ttmp3 := tmp2 * scalars[0]\n" +
		"\ttmp4 := tmp3 - 1.5\n" +
		"\treturn tmp4\n}\n"
	assert.Equal(t, want, code)
	assert.Equal(t, 1, cell.NumScalars())

	code, err = NewCell(NoAgg, NewUnary(UnaryLookupRC, Side(0))).Codegen()
	require.NoError(t, err)
	assert.Contains(t, code, "tmp1 := b[0][rowIndex*n+colIndex]\n")

	_, err = NewCell(NoAgg, NewUnary(UnaryRowSums, a)).Codegen()
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}
