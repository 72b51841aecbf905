// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package armv7m is the ARMv7-M exemplar architecture back end (spec §4.3,
// §4.5): Cortex-M MPU alignment rules and page-table synthesis constants.
package armv7m

import (
	"fmt"

	"rmegen/internal/arch"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
	"rmegen/internal/pagetable"
)

// fixedAlignment is the required start/size alignment for segments with a
// concrete Start (spec §4.3).
const fixedAlignment = 32

// New returns the ARMv7-M architecture binding.
func New() arch.Architecture {
	return arch.Architecture{
		Name:  "armv7m",
		Align: Align,
		PageTableConstraints: pagetable.Constraints{
			MinTotalOrder: 8, // smallest MPU region is 256 bytes (2^8)
			MinNumOrder:   1,
			MaxNumOrder:   3, // up to 8 subregions
		},
		MaxTotalOrder:      32,
		VectorGlobalIDBase: 1 << 20, // architecture-reserved pool, well above any realistic object count
	}
}

// Align implements spec §4.3 for ARMv7-M:
//
//   - A segment with a concrete Start must be 32-byte aligned in both start
//     and size; otherwise fail.
//   - A segment with Start = Auto: compute the smallest power-of-two P >=
//     size; set Align = P/8; round size down to a multiple of Align (the
//     Cortex-M MPU subregion granularity).
func Align(seg *model.MemorySegment) error {
	if seg.Start.IsConcrete() {
		if seg.Start.Value%fixedAlignment != 0 || seg.Size%fixedAlignment != 0 {
			return generrors.New(generrors.Placement, "",
				fmt.Sprintf("segment at 0x%08X size 0x%X is not 32-byte aligned", seg.Start.Value, seg.Size))
		}
		seg.Align = fixedAlignment
		return nil
	}

	p := nextPowerOfTwo(seg.Size)
	align := p / 8
	if align == 0 {
		align = 1
	}
	seg.Align = align
	seg.Size = (seg.Size / align) * align
	return nil
}

// nextPowerOfTwo returns the smallest power of two >= v (v > 0).
func nextPowerOfTwo(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	p := uint32(1)
	for p < v {
		p <<= 1
	}
	return p
}
