// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package program

// ExecType is where an operator, instruction or loop executes.
type ExecType int

const (
	ExecUnspecified ExecType = iota
	// ExecLocal is in-process execution in the local (control program) engine.
	ExecLocal
	// ExecDistributed is execution as distributed cluster jobs.
	ExecDistributed
)

//go:generate go tool enumer -type=ExecType -trimprefix=Exec -transform=snake-upper -output=gen_exectype_enumer.go enums.go

// DataPartitioner is the strategy used to pre-partition read-only inputs of a ParFor loop.
type DataPartitioner int

const (
	PartitionerNone DataPartitioner = iota
	PartitionerLocal
	PartitionerDistributed
)

//go:generate go tool enumer -type=DataPartitioner -trimprefix=Partitioner -transform=snake-upper -output=gen_datapartitioner_enumer.go enums.go

// PartitionFormat is the layout of a partitioned matrix.
type PartitionFormat int

const (
	FormatNone PartitionFormat = iota // NONE

	FormatRowWise    // ROW_WISE
	FormatColumnWise // COLUMN_WISE
	// FormatBlockWise partitions into blocks of m×n cells. It is not supported by the optimizer.
	FormatBlockWise // BLOCK_WISE_M_N
)

//go:generate go tool enumer -type=PartitionFormat -linecomment -output=gen_partitionformat_enumer.go enums.go

// TaskPartitioner is the strategy assigning loop iterations to tasks.
type TaskPartitioner int

const (
	TaskPartitionerUnspecified TaskPartitioner = iota // UNSPECIFIED

	TaskPartitionerFixed         // FIXED
	TaskPartitionerNaive         // NAIVE
	TaskPartitionerStatic        // STATIC
	TaskPartitionerFactoring     // FACTORING
	TaskPartitionerFactoringCMin // FACTORING_CMIN
	TaskPartitionerFactoringCMax // FACTORING_CMAX
)

//go:generate go tool enumer -type=TaskPartitioner -linecomment -output=gen_taskpartitioner_enumer.go enums.go

// ResultMerge is the strategy combining the per-task partial results of a ParFor loop.
type ResultMerge int

const (
	ResultMergeUnspecified ResultMerge = iota
	ResultMergeLocalMem
	ResultMergeLocalFile
	ResultMergeLocalAutomatic
	ResultMergeDistributed
)

//go:generate go tool enumer -type=ResultMerge -trimprefix=ResultMerge -transform=snake-upper -output=gen_resultmerge_enumer.go enums.go

// MatrixFormat is the on-disk format of a materialized matrix.
type MatrixFormat int

const (
	FormatBinaryBlock MatrixFormat = iota
	FormatBinaryCell
	FormatTextCell
)

//go:generate go tool enumer -type=MatrixFormat -trimprefix=Format -transform=snake-upper -output=gen_matrixformat_enumer.go enums.go

// IsCellFormat returns whether values are stored cell by cell (as opposed to blocks).
func (f MatrixFormat) IsCellFormat() bool { return f == FormatBinaryCell || f == FormatTextCell }

