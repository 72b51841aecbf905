// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package arch isolates the two architecture-specific inputs the
// generator needs — a per-segment alignment callback (spec §4.3) and the MPU
// page-table synthesis constraints (spec §4.5) that parameterize the shared
// synthesizer in internal/pagetable — so that adding RISC-V, MIPS, or
// Tricore later touches only an architecture's own package (spec §9).
package arch

import (
	"rmegen/internal/model"
	"rmegen/internal/pagetable"
)

// AlignFunc applies an architecture's alignment rule to a single segment,
// filling in Align and, for Auto-start segments, rounding Size (spec §4.3).
type AlignFunc func(seg *model.MemorySegment) error

// Architecture bundles one target family's alignment callback, page-table
// synthesis constraints and bounds. It carries no synthesizer of its own:
// page tables are always built by pagetable.Synthesize.
type Architecture struct {
	Name                 string
	Align                AlignFunc
	PageTableConstraints pagetable.Constraints
	// MaxTotalOrder bounds the page-table bounding box (spec §4.5); 32 on a
	// 32-bit target.
	MaxTotalOrder int
	// VectorGlobalIDBase is the architecture-supplied base of the vector
	// endpoint global-ID pool (spec §4.6): "created by the kernel at boot,
	// their IDs start at a fixed, architecture-supplied base".
	VectorGlobalIDBase int
}
