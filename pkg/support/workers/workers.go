// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workers runs a batch of independent tasks on a fixed number of goroutines, created per call.
//
// There is no work stealing, cancellation or retry: every task runs to completion, and Run returns once all
// of them are done.
package workers

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrTaskFailed is wrapped by the error returned when a task fails or panics.
var ErrTaskFailed = errors.New("task failed")

// Task is one unit of work, returning a partial result.
type Task[T any] func() (T, error)

// Run executes the tasks with at most k of them running at the same time, and returns their results in task
// order.
//
// If one or more tasks fail, Run waits for all the others to finish and returns the first failure, wrapping
// ErrTaskFailed. Panics in a task are converted to failures. With k <= 1, or a single task, tasks run
// sequentially in the calling goroutine.
func Run[T any](k int, tasks []Task[T]) ([]T, error) {
	results := make([]T, len(tasks))
	if k <= 1 || len(tasks) <= 1 {
		var firstErr error
		for ii, task := range tasks {
			var err error
			results[ii], err = call(ii, task)
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return results, firstErr
	}

	var g errgroup.Group
	g.SetLimit(k)
	for ii, task := range tasks {
		g.Go(func() error {
			var err error
			results[ii], err = call(ii, task)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// call runs the task, converting failures and panics into an error wrapping ErrTaskFailed.
func call[T any](idx int, task Task[T]) (result T, err error) {
	exception := exceptions.Try(func() {
		result, err = task()
	})
	if exception != nil {
		if e, ok := exception.(error); ok {
			err = e
		} else {
			err = errors.Errorf("panic: %v", exception)
		}
	}
	if err != nil {
		return result, &taskError{idx: idx, cause: err}
	}
	return result, nil
}

// taskError matches ErrTaskFailed and unwraps to the cause of the failure.
type taskError struct {
	idx   int
	cause error
}

func (e *taskError) Error() string { return fmt.Sprintf("task #%d failed: %v", e.idx, e.cause) }

func (e *taskError) Unwrap() error { return e.cause }

func (e *taskError) Is(target error) bool { return target == ErrTaskFailed }
