// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Kahan is a running sum with compensation of the floating point rounding error (Kahan summation).
//
// The zero value is an empty sum.
type Kahan struct {
	Sum, Correction float64
}

// Add v to the running sum.
func (k *Kahan) Add(v float64) {
	if math.IsInf(v, 0) || math.IsInf(k.Sum, 0) {
		// Compensation is meaningless (and would turn into NaN) with infinities.
		k.Sum += v
		k.Correction = 0
		return
	}
	corrected := v + k.Correction
	sum := k.Sum + corrected
	k.Correction = corrected - (sum - k.Sum)
	k.Sum = sum
}

// Reset the sum to 0.
func (k *Kahan) Reset() {
	k.Sum, k.Correction = 0, 0
}

// KahanSum returns the compensated sum of values.
func KahanSum(values ...float64) float64 {
	var k Kahan
	for _, v := range values {
		k.Add(v)
	}
	return k.Sum
}

// RoundToNext rounds val up to the next multiple of factor, with a minimum of factor.
func RoundToNext[T constraints.Integer](val, factor T) T {
	pval := max(val, factor)
	return ((pval + factor - 1) / factor) * factor
}
