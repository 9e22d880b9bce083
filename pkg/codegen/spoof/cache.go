// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package spoof

import (
	"github.com/gomlx/parfor/pkg/codegen/cplan"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"k8s.io/klog/v2"
)

// KernelCache memoizes compiled kernels by their generated code and cell type. It is safe for concurrent use.
type KernelCache struct {
	kernels *xsync.MapOf[string, *Cellwise]
}

// NewKernelCache creates an empty cache.
func NewKernelCache() *KernelCache {
	return &KernelCache{kernels: xsync.NewMapOf[string, *Cellwise]()}
}

// Get returns the compiled kernel for cell, compiling it on a miss. Concurrent misses for the same kernel may
// compile it more than once, but all callers get the same instance.
func (kc *KernelCache) Get(cell *cplan.Cell) (*Cellwise, error) {
	code, err := cell.Codegen()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to compile cellwise kernel")
	}
	key := cell.Type.String() + "\n" + code
	if cw, found := kc.kernels.Load(key); found {
		return cw, nil
	}
	cw, err := compile(cell, code)
	if err != nil {
		return nil, err
	}
	actual, loaded := kc.kernels.LoadOrStore(key, cw)
	if !loaded {
		klog.V(1).Infof("kernel cache: added %s kernel, %d kernels cached", cell.Type, kc.kernels.Size())
	}
	return actual, nil
}

// Len returns the number of cached kernels.
func (kc *KernelCache) Len() int { return kc.kernels.Size() }
