// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package workers

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squares(n int) []Task[int] {
	tasks := make([]Task[int], n)
	for ii := range tasks {
		tasks[ii] = func() (int, error) { return ii * ii, nil }
	}
	return tasks
}

func TestRun(t *testing.T) {
	for _, k := range []int{0, 1, 3, 16} {
		results, err := Run(k, squares(10))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}, results, "k=%d", k)
	}
	results, err := Run(4, []Task[int](nil))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunLimit(t *testing.T) {
	const k = 3
	var running, maxRunning atomic.Int32
	tasks := make([]Task[struct{}], 12)
	for ii := range tasks {
		tasks[ii] = func() (struct{}, error) {
			current := running.Add(1)
			for {
				prev := maxRunning.Load()
				if current <= prev || maxRunning.CompareAndSwap(prev, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		}
	}
	_, err := Run(k, tasks)
	require.NoError(t, err)
	assert.LessOrEqual(t, maxRunning.Load(), int32(k))
	assert.Zero(t, running.Load())
}

func TestRunFailures(t *testing.T) {
	cause := errors.New("bad chunk")
	for _, k := range []int{1, 4} {
		var finished atomic.Int32
		tasks := squares(8)
		for ii := range tasks {
			task := tasks[ii]
			tasks[ii] = func() (int, error) {
				defer finished.Add(1)
				switch ii {
				case 2:
					return 0, cause
				case 5:
					panic("out of range")
				}
				return task()
			}
		}
		results, err := Run(k, tasks)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTaskFailed)
		assert.Equal(t, int32(8), finished.Load(), "all tasks must run to completion, k=%d", k)
		assert.Equal(t, 49, results[7])
		if k == 1 {
			assert.ErrorIs(t, err, cause, "sequential execution returns the first failure in task order")
		}
	}

	_, err := Run(2, []Task[int]{func() (int, error) { panic(errors.New("boom")) }})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskFailed)
	assert.Contains(t, err.Error(), "boom")
}
