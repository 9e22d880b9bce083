// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/parfor/pkg/codegen/cplan"
	"github.com/gomlx/parfor/pkg/codegen/spoof"
	"github.com/gomlx/parfor/pkg/core/matrix"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

// executeOnce runs the kernel over in and describes its result.
func executeOnce(kernel *spoof.Cellwise, in *matrix.Block) (string, error) {
	if kernel.CellType() == cplan.FullAgg {
		sum, err := kernel.ExecuteScalar([]*matrix.Block{in}, nil, *flagK)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", sum), nil
	}
	out := matrix.New(0, 0, false)
	if err := kernel.Execute([]*matrix.Block{in}, nil, out, *flagK); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d x %d, %s non-zeros, sparse=%v",
		out.Rows(), out.Cols(), humanize.Comma(out.NonZeros()), out.IsSparse()), nil
}

// runKernel executes the single-operator kernel selected by the flags over a random matrix.
func runKernel() error {
	op, err := cplan.ParseUnaryType(*flagKernel)
	if err != nil {
		return err
	}
	cellType, err := cplan.CellTypeString(*flagAgg)
	if err != nil {
		return errors.WithMessagef(err, "-agg must be one of %q", cplan.CellTypeStrings())
	}
	if *flagRepeat < 1 || *flagRows <= 0 || *flagCols <= 0 || *flagSparsity <= 0 || *flagSparsity > 1 {
		return errors.Errorf("invalid kernel input %dx%d with sparsity %g, repeated %d times",
			*flagRows, *flagCols, *flagSparsity, *flagRepeat)
	}
	kernel, err := spoof.Compile(cplan.NewCell(cellType, cplan.NewUnary(op, cplan.Main())))
	if err != nil {
		return err
	}

	m, n := *flagRows, *flagCols
	values := make([]float64, m*n)
	for ii := range values {
		if rand.Float64() < *flagSparsity {
			values[ii] = rand.NormFloat64()
		}
	}
	in := matrix.NewDense(m, n, values)
	in.ExamSparsity()

	fmt.Println(titleStyle.Render(fmt.Sprintf("Cellwise %s kernel", cellType)))
	fmt.Print(kernel.Code())
	table := newPlainTable(false)
	table.Row("input", fmt.Sprintf("%s x %s, %s non-zeros, sparse=%v",
		humanize.Comma(int64(m)), humanize.Comma(int64(n)), humanize.Comma(in.NonZeros()), in.IsSparse()))
	table.Row("k", fmt.Sprint(*flagK))

	var bar *progressbar.ProgressBar
	if *flagRepeat > 1 {
		bar = progressbar.Default(int64(*flagRepeat), "Executing kernel")
	}
	var result string
	start := time.Now()
	for range *flagRepeat {
		if result, err = executeOnce(kernel, in); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	elapsed := time.Since(start)
	table.Row("result", result)
	table.Row("mean time", (elapsed / time.Duration(*flagRepeat)).String())
	fmt.Println(table.Render())
	return nil
}
