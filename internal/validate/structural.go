// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package validate

import (
	"fmt"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Structural enforces the per-process and per-segment invariants from spec
// §3 that do not require cross-process resolution: every process has at
// least one code and one data segment; every declared segment has a
// positive size and fits in 32 bits; every device segment is fully
// contained in some chip device segment.
func Structural(proj *model.Project, chip *model.Chip) error {
	for pi, p := range proj.Processes {
		ppath := fmt.Sprintf("Project.Process[%d]", pi)
		if len(p.CodeSegments) == 0 {
			return generrors.New(generrors.Semantic, ppath, "process "+p.Name+" has no code segment")
		}
		if len(p.DataSegments) == 0 {
			return generrors.New(generrors.Semantic, ppath, "process "+p.Name+" has no data segment")
		}
		for i, seg := range p.AllSegments() {
			if seg.Size == 0 {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Memory[%d]", ppath, i),
					"segment size must be greater than 0")
			}
			if seg.Start.IsConcrete() && uint64(seg.Start.Value)+uint64(seg.Size) > 1<<32 {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Memory[%d]", ppath, i),
					"segment exceeds the 32-bit address space")
			}
		}
		for i, dev := range p.DeviceSegments {
			if !containedInAny(dev, chip.DeviceSegments) {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Memory[device %d]", ppath, i),
					"device segment is not contained in any chip device segment")
			}
		}
	}
	return nil
}

func containedInAny(seg model.MemorySegment, chipSegs []model.MemorySegment) bool {
	if !seg.Start.IsConcrete() {
		return false
	}
	segEnd := uint64(seg.Start.Value) + uint64(seg.Size)
	for _, c := range chipSegs {
		cEnd := uint64(c.Start.Value) + uint64(c.Size)
		if uint64(c.Start.Value) <= uint64(seg.Start.Value) && segEnd <= cEnd {
			return true
		}
	}
	return false
}
