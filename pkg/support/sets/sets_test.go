// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := Make[string](4)
	assert.Empty(t, s)
	s.Insert("X", "Y", "X")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("X"))
	assert.False(t, s.Has("R"))

	s.Remove("Y", "missing")
	assert.Equal(t, Set[string]{"X": {}}, s)

	s2 := Make[string]()
	s2.Insert("Y", "R")
	s.Union(s2)
	assert.Len(t, s, 3)
	assert.True(t, s.Has("R"))
	assert.Len(t, s2, 2, "union leaves its argument untouched")
}

func TestSetOfPointers(t *testing.T) {
	type block struct{ id int }
	b1, b2 := &block{1}, &block{1}
	s := Make[*block]()
	s.Insert(b1)
	assert.True(t, s.Has(b1))
	assert.False(t, s.Has(b2), "elements are compared by identity")
}
