// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package opt

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
)

// Platform is the runtime platform the program runs on.
type Platform int

const (
	// PlatformHybrid can execute operations both locally and as distributed jobs, and recompile in between.
	PlatformHybrid Platform = iota
	// PlatformSingleNode only executes locally.
	PlatformSingleNode
	// PlatformDistributed executes everything as distributed jobs.
	PlatformDistributed
)

//go:generate go tool enumer -type=Platform -trimprefix=Platform -transform=lower -output=gen_platform_enumer.go config.go

// Config describes the infrastructure the optimizer allocates resources from.
//
// Memory values are in bytes.
type Config struct {
	Platform Platform

	// LocalParallelism is the number of cores of the local (control program) node.
	LocalParallelism int

	// RemoteNodes is the number of cluster nodes, and RemoteParallelism the number of concurrent remote tasks
	// over all nodes.
	RemoteNodes, RemoteParallelism int

	// LocalMaxMemory and RemoteMaxMemory are the maximum memory of the local process and of each remote task.
	LocalMaxMemory, RemoteMaxMemory int64

	// MemUtilFactor is the fraction of the maximum memory the optimizer plans to use.
	MemUtilFactor float64

	// ParFactor scales the available parallelism into the maximum parallelism, and ParMRFactor does the same for
	// local loops that also issue distributed jobs.
	ParFactor, ParMRFactor float64

	// NestedParallelism enables the nested parallelism rewrite.
	NestedParallelism bool

	// AllowCopyCellFiles allows the local result merge to copy cell files of empty results instead of comparing them.
	AllowCopyCellFiles bool

	// CPThreshold is the dimension threshold of in-memory operations: results with fewer than CPThreshold² cells
	// are merged in memory.
	CPThreshold int64

	// WriteReplicationFactor is the default replication of files written by the runtime.
	WriteReplicationFactor int
}

// Defaults of Config values that don't depend on the machine.
const (
	DefaultMemUtilFactor          = 0.7
	DefaultCPThreshold            = 2000
	DefaultWriteReplicationFactor = 1
	DefaultRemoteMaxMemory        = 2 << 30
	fallbackLocalMaxMemory        = 4 << 30
)

// EnvConfig is the environment variable with configuration overrides, see ParseConfig for the format.
const EnvConfig = "PARFOR_OPT_CONFIG"

// DefaultConfig returns a configuration for the current machine, acting as a single node cluster.
func DefaultConfig() Config {
	localMem := int64(fallbackLocalMaxMemory)
	if total := memory.TotalMemory(); total > 0 && total < math.MaxInt64 {
		localMem = int64(total)
	}
	return Config{
		Platform:               PlatformHybrid,
		LocalParallelism:       runtime.NumCPU(),
		RemoteNodes:            1,
		RemoteParallelism:      runtime.NumCPU(),
		LocalMaxMemory:         localMem,
		RemoteMaxMemory:        DefaultRemoteMaxMemory,
		MemUtilFactor:          DefaultMemUtilFactor,
		ParFactor:              1.0,
		ParMRFactor:            1.0,
		AllowCopyCellFiles:     true,
		CPThreshold:            DefaultCPThreshold,
		WriteReplicationFactor: DefaultWriteReplicationFactor,
	}
}

// ConfigFromEnv returns DefaultConfig with the overrides given in the environment variable EnvConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	s, found := os.LookupEnv(EnvConfig)
	if !found {
		return cfg, nil
	}
	cfg, err := ParseConfig(cfg, s)
	if err != nil {
		return cfg, errors.WithMessagef(err, "parsing environment variable %s", EnvConfig)
	}
	return cfg, nil
}

// ParseConfig returns base with the overrides given in s, formatted as "key=value,key=value".
//
// Keys: platform, local_par, remote_nodes, remote_par, local_mem, remote_mem, mem_util, par_factor,
// par_mr_factor, nested, copy_cellfiles, cp_threshold, write_replication.
// Memory values accept humanized sizes, e.g. "local_mem=8GiB".
func ParseConfig(base Config, s string) (Config, error) {
	cfg := base
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return base, errors.Errorf("invalid config entry %q: expected key=value", part)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		var err error
		switch key {
		case "platform":
			cfg.Platform, err = PlatformString(value)
		case "local_par":
			cfg.LocalParallelism, err = strconv.Atoi(value)
		case "remote_nodes":
			cfg.RemoteNodes, err = strconv.Atoi(value)
		case "remote_par":
			cfg.RemoteParallelism, err = strconv.Atoi(value)
		case "local_mem":
			cfg.LocalMaxMemory, err = parseBytes(value)
		case "remote_mem":
			cfg.RemoteMaxMemory, err = parseBytes(value)
		case "mem_util":
			cfg.MemUtilFactor, err = strconv.ParseFloat(value, 64)
		case "par_factor":
			cfg.ParFactor, err = strconv.ParseFloat(value, 64)
		case "par_mr_factor":
			cfg.ParMRFactor, err = strconv.ParseFloat(value, 64)
		case "nested":
			cfg.NestedParallelism, err = strconv.ParseBool(value)
		case "copy_cellfiles":
			cfg.AllowCopyCellFiles, err = strconv.ParseBool(value)
		case "cp_threshold":
			cfg.CPThreshold, err = strconv.ParseInt(value, 10, 64)
		case "write_replication":
			cfg.WriteReplicationFactor, err = strconv.Atoi(value)
		default:
			return base, errors.Errorf("unknown config key %q in %q", key, s)
		}
		if err != nil {
			return base, errors.Wrapf(err, "invalid value for config key %q", key)
		}
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func parseBytes(value string) (int64, error) {
	v, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return 0, errors.Errorf("memory size %q too large", value)
	}
	return int64(v), nil
}

// Validate checks that all values are within range.
func (c Config) Validate() error {
	switch {
	case c.LocalParallelism < 1:
		return errors.Errorf("LocalParallelism must be >= 1, got %d", c.LocalParallelism)
	case c.RemoteNodes < 1:
		return errors.Errorf("RemoteNodes must be >= 1, got %d", c.RemoteNodes)
	case c.RemoteParallelism < 1:
		return errors.Errorf("RemoteParallelism must be >= 1, got %d", c.RemoteParallelism)
	case c.LocalMaxMemory <= 0 || c.RemoteMaxMemory <= 0:
		return errors.Errorf("memory limits must be positive, got local=%d, remote=%d", c.LocalMaxMemory, c.RemoteMaxMemory)
	case c.MemUtilFactor <= 0 || c.MemUtilFactor > 1:
		return errors.Errorf("MemUtilFactor must be in (0, 1], got %g", c.MemUtilFactor)
	case c.ParFactor <= 0 || c.ParMRFactor <= 0:
		return errors.Errorf("parallelism factors must be positive, got %g and %g", c.ParFactor, c.ParMRFactor)
	case c.CPThreshold < 0:
		return errors.Errorf("CPThreshold must be >= 0, got %d", c.CPThreshold)
	case c.WriteReplicationFactor < 1:
		return errors.Errorf("WriteReplicationFactor must be >= 1, got %d", c.WriteReplicationFactor)
	}
	return nil
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("platform=%s, local_par=%d, remote_nodes=%d, remote_par=%d, local_mem=%s, remote_mem=%s, mem_util=%g, nested=%v",
		c.Platform, c.LocalParallelism, c.RemoteNodes, c.RemoteParallelism,
		humanize.IBytes(uint64(c.LocalMaxMemory)), humanize.IBytes(uint64(c.RemoteMaxMemory)), c.MemUtilFactor, c.NestedParallelism)
}

// ResourceBudget is the set of resource figures derived from a Config for one optimization run.
type ResourceBudget struct {
	// LocalPar (lk) is the local parallelism; LocalMaxParCP and LocalMaxParMR are the maximum local
	// parallelism when the loop body is local only, or also issues distributed jobs.
	LocalPar, LocalMaxParCP, LocalMaxParMR int

	// RemoteNodes (rnk), RemotePar (rk) and RemoteMaxPar (rkmax).
	RemoteNodes, RemotePar, RemoteMaxPar int

	// LocalMem (lm) and RemoteMem (rm) are the memory budgets.
	LocalMem, RemoteMem float64
}

// Budget computes the resource budget of the configuration.
func (c Config) Budget() ResourceBudget {
	return ResourceBudget{
		LocalPar:      c.LocalParallelism,
		LocalMaxParCP: int(math.Ceil(c.ParFactor * float64(c.LocalParallelism))),
		LocalMaxParMR: int(math.Ceil(c.ParMRFactor * float64(c.LocalParallelism))),
		RemoteNodes:   c.RemoteNodes,
		RemotePar:     c.RemoteParallelism,
		RemoteMaxPar:  int(math.Ceil(c.ParFactor * float64(c.RemoteParallelism))),
		LocalMem:      c.MemUtilFactor * float64(c.LocalMaxMemory),
		RemoteMem:     c.MemUtilFactor * float64(c.RemoteMaxMemory),
	}
}

// InMemoryResultMerge returns whether a result of rows×cols cells is merged in memory.
func (c Config) InMemoryResultMerge(rows, cols int64) bool {
	threshold := float64(c.CPThreshold)
	return rows >= 0 && cols >= 0 && float64(rows)*float64(cols) < threshold*threshold
}
