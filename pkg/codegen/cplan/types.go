// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cplan

import (
	"math"

	"github.com/pkg/errors"
)

// ErrUnsupportedOperator is wrapped by failures on operator kinds that have no scalar semantics or no template.
var ErrUnsupportedOperator = errors.New("unsupported fused operator")

// UnaryType is the closed set of unary fused operators.
type UnaryType int

const (
	UnaryInvalid UnaryType = iota // INVALID

	// Vector and lookup operators, specific to generated code.
	UnaryRowSums  // ROW_SUMS
	UnaryLookupR  // LOOKUP_R
	UnaryLookupRC // LOOKUP_RC
	UnaryLookup0  // LOOKUP0

	UnaryExp     // EXP
	UnaryPow2    // POW2
	UnaryMult2   // MULT2
	UnarySqrt    // SQRT
	UnaryLog     // LOG
	UnaryAbs     // ABS
	UnaryRound   // ROUND
	UnaryCeil    // CEIL
	UnaryFloor   // FLOOR
	UnarySign    // SIGN
	UnarySin     // SIN
	UnaryCos     // COS
	UnaryTan     // TAN
	UnaryASin    // ASIN
	UnaryACos    // ACOS
	UnaryATan    // ATAN
	UnarySelP    // SELP
	UnarySProp   // SPROP
	UnarySigmoid // SIGMOID
	UnaryLogNZ   // LOG_NZ
)

//go:generate go tool enumer -type=UnaryType -linecomment -output=gen_unarytype_enumer.go types.go

// ParseUnaryType is the inverse of UnaryType.String, excluding UnaryInvalid.
func ParseUnaryType(s string) (UnaryType, error) {
	t, err := UnaryTypeString(s)
	if err != nil || t == UnaryInvalid {
		return UnaryInvalid, errors.Wrapf(ErrUnsupportedOperator, "unknown unary operator %q", s)
	}
	return t, nil
}

// IsValid returns whether t is one of the defined operators.
func (t UnaryType) IsValid() bool { return t != UnaryInvalid && t.IsAUnaryType() }

// IsLookup returns whether t reads a side input at a position given by the current cell.
func (t UnaryType) IsLookup() bool {
	return t == UnaryLookupR || t == UnaryLookupRC || t == UnaryLookup0
}

// Apply returns the operator applied to x. It panics with an error wrapping ErrUnsupportedOperator for
// operators without scalar semantics: lookups, row sums and invalid kinds.
func (t UnaryType) Apply(x float64) float64 {
	switch t {
	case UnaryExp:
		return math.Exp(x)
	case UnaryPow2:
		return x * x
	case UnaryMult2:
		return x + x
	case UnarySqrt:
		return math.Sqrt(x)
	case UnaryLog:
		return math.Log(x)
	case UnaryAbs:
		return math.Abs(x)
	case UnaryRound:
		// Half-way values round up.
		return math.Floor(x + 0.5)
	case UnaryCeil:
		return math.Ceil(x)
	case UnaryFloor:
		return math.Floor(x)
	case UnarySign:
		return sign(x)
	case UnarySin:
		return math.Sin(x)
	case UnaryCos:
		return math.Cos(x)
	case UnaryTan:
		return math.Tan(x)
	case UnaryASin:
		return math.Asin(x)
	case UnaryACos:
		return math.Acos(x)
	case UnaryATan:
		return math.Atan(x)
	case UnarySelP:
		if x > 0 {
			return x
		}
		return 0
	case UnarySProp:
		return x * (1 - x)
	case UnarySigmoid:
		return 1 / (1 + math.Exp(-x))
	case UnaryLogNZ:
		if x == 0 {
			return 0
		}
		return math.Log(x)
	default:
		panic(errors.Wrapf(ErrUnsupportedOperator, "unary operator %s has no scalar semantics", t))
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	// 0, -0 and NaN.
	return x
}

// Template returns the code template of the operator. Placeholders: %TMP% (the result variable), %IN1% (the
// input); the sparse row sum also uses %IN1v%, %IN1i% (values and indexes), %POS1% and %LEN%.
func (t UnaryType) Template(sparse bool) (string, error) {
	var expr string
	switch t {
	case UnaryRowSums:
		if sparse {
			return "\t%TMP% := vectSum(%IN1v%, %IN1i%, %POS1%, %LEN%)\n", nil
		}
		return "\t%TMP% := vectSum(%IN1%, %POS1%, %LEN%)\n", nil
	case UnaryLookupR:
		expr = "%IN1%[rowIndex]"
	case UnaryLookupRC:
		expr = "%IN1%[rowIndex*n+colIndex]"
	case UnaryLookup0:
		expr = "%IN1%[0]"
	case UnaryExp:
		expr = "math.Exp(%IN1%)"
	case UnaryPow2:
		expr = "%IN1% * %IN1%"
	case UnaryMult2:
		expr = "%IN1% + %IN1%"
	case UnarySqrt:
		expr = "math.Sqrt(%IN1%)"
	case UnaryLog:
		expr = "math.Log(%IN1%)"
	case UnaryAbs:
		expr = "math.Abs(%IN1%)"
	case UnaryRound:
		expr = "math.Floor(%IN1% + 0.5)"
	case UnaryCeil:
		expr = "math.Ceil(%IN1%)"
	case UnaryFloor:
		expr = "math.Floor(%IN1%)"
	case UnarySign:
		expr = "sign(%IN1%)"
	case UnarySin:
		expr = "math.Sin(%IN1%)"
	case UnaryCos:
		expr = "math.Cos(%IN1%)"
	case UnaryTan:
		expr = "math.Tan(%IN1%)"
	case UnaryASin:
		expr = "math.Asin(%IN1%)"
	case UnaryACos:
		expr = "math.Acos(%IN1%)"
	case UnaryATan:
		expr = "math.Atan(%IN1%)"
	case UnarySelP:
		expr = "selp(%IN1%)"
	case UnarySProp:
		expr = "%IN1% * (1 - %IN1%)"
	case UnarySigmoid:
		expr = "1 / (1 + math.Exp(-%IN1%))"
	case UnaryLogNZ:
		expr = "logNZ(%IN1%)"
	default:
		return "", errors.Wrapf(ErrUnsupportedOperator, "invalid unary operator %s", t)
	}
	return "\t%TMP% := " + expr + "\n", nil
}

// BinaryType is the closed set of binary fused operators.
type BinaryType int

const (
	BinaryInvalid BinaryType = iota // INVALID

	BinaryPlus         // PLUS
	BinaryMinus        // MINUS
	BinaryMult         // MULT
	BinaryDiv          // DIV
	BinaryModulus      // MODULUS
	BinaryIntDiv       // INTDIV
	BinaryLess         // LESS
	BinaryLessEqual    // LESSEQUAL
	BinaryGreater      // GREATER
	BinaryGreaterEqual // GREATEREQUAL
	BinaryEqual        // EQUAL
	BinaryNotEqual     // NOTEQUAL
	BinaryMin          // MIN
	BinaryMax          // MAX
	BinaryAnd          // AND
	BinaryOr           // OR
	BinaryPow          // POW
	BinaryMinus1Mult   // MINUS1_MULT
	BinaryMinusNZ      // MINUS_NZ
	BinaryLogNZ        // LOG_NZ
)

//go:generate go tool enumer -type=BinaryType -linecomment -output=gen_binarytype_enumer.go types.go

// ParseBinaryType is the inverse of BinaryType.String, excluding BinaryInvalid.
func ParseBinaryType(s string) (BinaryType, error) {
	t, err := BinaryTypeString(s)
	if err != nil || t == BinaryInvalid {
		return BinaryInvalid, errors.Wrapf(ErrUnsupportedOperator, "unknown binary operator %q", s)
	}
	return t, nil
}

// IsValid returns whether t is one of the defined operators.
func (t BinaryType) IsValid() bool { return t != BinaryInvalid && t.IsABinaryType() }

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Apply returns x op y. It panics with an error wrapping ErrUnsupportedOperator for invalid kinds.
func (t BinaryType) Apply(x, y float64) float64 {
	switch t {
	case BinaryPlus:
		return x + y
	case BinaryMinus:
		return x - y
	case BinaryMult:
		return x * y
	case BinaryDiv:
		return x / y
	case BinaryModulus:
		// Result has the sign of the divisor.
		return x - math.Floor(x/y)*y
	case BinaryIntDiv:
		return math.Floor(x / y)
	case BinaryLess:
		return boolToFloat(x < y)
	case BinaryLessEqual:
		return boolToFloat(x <= y)
	case BinaryGreater:
		return boolToFloat(x > y)
	case BinaryGreaterEqual:
		return boolToFloat(x >= y)
	case BinaryEqual:
		return boolToFloat(x == y)
	case BinaryNotEqual:
		return boolToFloat(x != y)
	case BinaryMin:
		return math.Min(x, y)
	case BinaryMax:
		return math.Max(x, y)
	case BinaryAnd:
		return boolToFloat(x != 0 && y != 0)
	case BinaryOr:
		return boolToFloat(x != 0 || y != 0)
	case BinaryPow:
		return math.Pow(x, y)
	case BinaryMinus1Mult:
		return 1 - x*y
	case BinaryMinusNZ:
		if x == 0 {
			return 0
		}
		return x - y
	case BinaryLogNZ:
		if x == 0 {
			return 0
		}
		return math.Log(x) / math.Log(y)
	default:
		panic(errors.Wrapf(ErrUnsupportedOperator, "invalid binary operator %s", t))
	}
}

// Template returns the code template of the operator. Placeholders: %TMP% (the result variable), %IN1% and
// %IN2% (the inputs).
func (t BinaryType) Template() (string, error) {
	var expr string
	switch t {
	case BinaryPlus:
		expr = "%IN1% + %IN2%"
	case BinaryMinus:
		expr = "%IN1% - %IN2%"
	case BinaryMult:
		expr = "%IN1% * %IN2%"
	case BinaryDiv:
		expr = "%IN1% / %IN2%"
	case BinaryModulus:
		expr = "mod(%IN1%, %IN2%)"
	case BinaryIntDiv:
		expr = "math.Floor(%IN1% / %IN2%)"
	case BinaryLess:
		expr = "b2f(%IN1% < %IN2%)"
	case BinaryLessEqual:
		expr = "b2f(%IN1% <= %IN2%)"
	case BinaryGreater:
		expr = "b2f(%IN1% > %IN2%)"
	case BinaryGreaterEqual:
		expr = "b2f(%IN1% >= %IN2%)"
	case BinaryEqual:
		expr = "b2f(%IN1% == %IN2%)"
	case BinaryNotEqual:
		expr = "b2f(%IN1% != %IN2%)"
	case BinaryMin:
		expr = "math.Min(%IN1%, %IN2%)"
	case BinaryMax:
		expr = "math.Max(%IN1%, %IN2%)"
	case BinaryAnd:
		expr = "b2f(%IN1% != 0 && %IN2% != 0)"
	case BinaryOr:
		expr = "b2f(%IN1% != 0 || %IN2% != 0)"
	case BinaryPow:
		expr = "math.Pow(%IN1%, %IN2%)"
	case BinaryMinus1Mult:
		expr = "1 - %IN1% * %IN2%"
	case BinaryMinusNZ:
		expr = "minusNZ(%IN1%, %IN2%)"
	case BinaryLogNZ:
		expr = "logNZ2(%IN1%, %IN2%)"
	default:
		return "", errors.Wrapf(ErrUnsupportedOperator, "invalid binary operator %s", t)
	}
	return "\t%TMP% := " + expr + "\n", nil
}
