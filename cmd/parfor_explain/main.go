// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// parfor_explain runs the rule-based ParFor optimizer on canned scenarios and prints the annotated plans and
// the decisions taken. With -kernel it instead runs a single-operator cellwise kernel over a generated matrix.
//
// Examples:
//
//	parfor_explain -list
//	parfor_explain -scenario=large -config=remote_nodes=8 -v=1
//	parfor_explain -kernel=SIGMOID -agg=ROW_AGG -rows=100000 -cols=100 -k=8 -repeat=20
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/parfor/internal/scenarios"
	"github.com/gomlx/parfor/pkg/parfor/opt"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagList     = flag.Bool("list", false, "List the available scenarios.")
	flagScenario = flag.String("scenario", "all", "Scenario to optimize, or \"all\". See -list.")
	flagConfig   = flag.String("config", "",
		"Optimizer configuration overrides (\"key=value,...\"), applied on top of the scenario's configuration.")
	flagPlan = flag.Bool("plan", true, "Print the annotated plan after optimization.")

	flagKernel   = flag.String("kernel", "", "Unary operator (e.g. EXP, SIGMOID) of a cellwise kernel to run instead of the optimizer.")
	flagAgg      = flag.String("agg", "NO_AGG", "Cell type of the kernel: NO_AGG, ROW_AGG or FULL_AGG.")
	flagRows     = flag.Int("rows", 10_000, "Number of rows of the kernel input.")
	flagCols     = flag.Int("cols", 100, "Number of columns of the kernel input.")
	flagSparsity = flag.Float64("sparsity", 1.0, "Fraction of non-zero cells of the kernel input.")
	flagK        = flag.Int("k", 4, "Degree of parallelism of the kernel execution.")
	flagRepeat   = flag.Int("repeat", 1, "Number of times the kernel is executed, the mean time is reported.")
)

var titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagList {
		listScenarios()
		return
	}
	if *flagKernel != "" {
		must.M(runKernel())
		return
	}

	names := scenarios.Names()
	if *flagScenario != "all" {
		names = strings.Split(*flagScenario, ",")
	}
	for _, name := range names {
		if err := explain(name); err != nil {
			klog.Errorf("Scenario %q failed: %+v", name, err)
			os.Exit(1)
		}
	}
}

func listScenarios() {
	fmt.Println(titleStyle.Render("Scenarios"))
	table := newPlainTable(true)
	table.Headers("Name", "Description")
	for _, name := range scenarios.Names() {
		s := must.M1(scenarios.Build(name))
		table.Row(name, s.Description)
	}
	fmt.Println(table.Render())
}

// explain optimizes the named scenario and prints its report.
func explain(name string) error {
	s, err := scenarios.Build(name)
	if err != nil {
		return err
	}
	cfg, err := opt.ParseConfig(opt.DefaultConfig(), s.Config)
	if err != nil {
		return errors.WithMessagef(err, "scenario %q configuration", name)
	}
	cfg, err = opt.ParseConfig(cfg, *flagConfig)
	if err != nil {
		return errors.WithMessage(err, "-config")
	}
	optimizer := opt.NewRuleBased(cfg, nil)
	report, err := optimizer.Optimize(s.Tree, opt.NewHopMemoryEstimator(), s.Context)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Scenario %q", name)))
	fmt.Println(s.Description)
	fmt.Println(reportTable(cfg, report).Render())
	if *flagPlan {
		fmt.Println(s.Tree.Explain(s.Tree.Root().ID))
	}
	return nil
}
