// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"github.com/gomlx/parfor/pkg/core/plan"
)

// Measure is the kind of cost estimated.
type Measure int

const (
	// MeasureMemoryUsage is the peak memory footprint in bytes.
	MeasureMemoryUsage Measure = iota
)

//go:generate go tool enumer -type=Measure -trimprefix=Measure -transform=snake-upper -output=gen_measure_enumer.go cost.go

// CostEstimator estimates the cost of executing a plan node, given its current annotations.
//
// The optimizer treats the estimate as authoritative and re-queries it after every rewrite that can change
// memory consumption.
type CostEstimator interface {
	Estimate(m Measure, id plan.NodeID, tree *plan.Tree) float64
}

// DefaultDistributedOpMemory is the local memory footprint assumed for an operator executed as a distributed job.
const DefaultDistributedOpMemory = 20 << 20

// HopMemoryEstimator estimates memory from the operators' own estimates: an operator executed locally costs its
// estimate; one executed distributed costs DistributedOpMemory; a local parallel loop costs K times its most
// expensive child; other nodes cost their most expensive child.
type HopMemoryEstimator struct {
	DistributedOpMemory float64
}

// NewHopMemoryEstimator returns a HopMemoryEstimator with the default distributed operator memory.
func NewHopMemoryEstimator() *HopMemoryEstimator {
	return &HopMemoryEstimator{DistributedOpMemory: DefaultDistributedOpMemory}
}

var _ CostEstimator = (*HopMemoryEstimator)(nil)

// Estimate implements CostEstimator.
func (e *HopMemoryEstimator) Estimate(m Measure, id plan.NodeID, tree *plan.Tree) float64 {
	n := tree.Node(id)
	if n == nil || m != MeasureMemoryUsage {
		return 0
	}
	if n.IsLeaf() {
		if n.Type != plan.NodeHop {
			return 0
		}
		if n.ExecType == plan.ExecDistributed {
			return e.DistributedOpMemory
		}
		if h := tree.Hop(id); h != nil {
			return h.MemEstimate
		}
		return 0
	}
	var maxMem float64
	for _, c := range tree.ChildIDs(id) {
		maxMem = max(maxMem, e.Estimate(m, c, tree))
	}
	if n.Type == plan.NodeParFor && n.ExecType == plan.ExecLocal {
		maxMem *= float64(n.K)
	}
	return maxMem
}
