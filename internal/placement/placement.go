// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package placement implements spec §4.3 (memory alignment) and §4.4
// (memory placement): stages 4 and 5 of the pipeline.
package placement

import (
	"fmt"
	"sort"

	"rmegen/internal/arch"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Align applies the architecture's alignment callback to every declared
// process code/data segment (spec §4.3). Device segments are never aligned
// or placed — they are only checked for chip containment (validate.Structural).
func Align(a arch.Architecture, proj *model.Project) error {
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.CodeSegments {
			if err := a.Align(&p.CodeSegments[i]); err != nil {
				return generrors.Wrapf(err, generrors.Placement, "Project.Process[%d].Memory(code %d)", pi, i)
			}
		}
		for i := range p.DataSegments {
			if err := a.Align(&p.DataSegments[i]); err != nil {
				return generrors.Wrapf(err, generrors.Placement, "Project.Process[%d].Memory(data %d)", pi, i)
			}
		}
	}
	return nil
}

// Place implements spec §4.4 for both code and data memory kinds.
func Place(proj *model.Project, chip *model.Chip) error {
	if err := placeKind(proj, chip, model.SegmentCode); err != nil {
		return err
	}
	if err := placeKind(proj, chip, model.SegmentData); err != nil {
		return err
	}
	return nil
}

func placeKind(proj *model.Project, chip *model.Chip, kind model.SegmentKind) error {
	chipSegs := append([]model.MemorySegment(nil), chip.SegmentsOfKind(kind)...)
	sort.Slice(chipSegs, func(i, j int) bool {
		return chipSegs[i].Start.Value < chipSegs[j].Start.Value
	})
	if len(chipSegs) == 0 {
		return generrors.New(generrors.Placement, "", fmt.Sprintf("chip declares no %s segments", kind))
	}

	maps := make([]*chipSegmentMap, len(chipSegs))
	for i, seg := range chipSegs {
		maps[i] = newChipSegmentMap(seg)
	}

	findContaining := func(start uint32, size uint32) (int, error) {
		for i, m := range maps {
			if uint64(start) >= uint64(m.chipSeg.Start.Value) && uint64(start)+uint64(size) <= m.end() {
				return i, nil
			}
		}
		return -1, generrors.New(generrors.Placement, "", fmt.Sprintf("invalid address designated: 0x%08X size 0x%X", start, size))
	}

	markFixed := func(idx int, start, size uint32, what string) error {
		m := maps[idx]
		rel := start - m.chipSeg.Start.Value
		if !m.isClear(rel, size) {
			return generrors.New(generrors.Placement, "", fmt.Sprintf("%s overlaps another segment at 0x%08X", what, start))
		}
		m.mark(rel, size)
		return nil
	}

	// Step 2: mark RME's section, then RVM's immediately following it.
	var rmeStart, rmeSize, rvmSize uint32
	if kind == model.SegmentCode {
		rmeStart, rmeSize, rvmSize = proj.RME.CodeStart.Value, proj.RME.CodeSize, proj.RVM.CodeSize
	} else {
		rmeStart, rmeSize, rvmSize = proj.RME.DataStart.Value, proj.RME.DataSize, proj.RVM.DataSize
	}
	rmeIdx, err := findContaining(rmeStart, rmeSize)
	if err != nil {
		return err
	}
	if err := markFixed(rmeIdx, rmeStart, rmeSize, "RME section"); err != nil {
		return err
	}
	rvmStart := rmeStart + rmeSize
	rvmIdx, err := findContaining(rvmStart, rvmSize)
	if err != nil {
		return err
	}
	if err := markFixed(rvmIdx, rvmStart, rvmSize, "RVM section"); err != nil {
		return err
	}
	if kind == model.SegmentCode {
		proj.RVM.CodeStart = model.Concrete(rvmStart)
	} else {
		proj.RVM.DataStart = model.Concrete(rvmStart)
	}

	// Step 3: mark every process segment of this kind that has a concrete start.
	var autoSegs []*model.MemorySegment
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		segs := segmentsOfKind(p, kind)
		for i := range segs {
			seg := segs[i]
			if seg.Start.IsAuto() {
				autoSegs = append(autoSegs, seg)
				continue
			}
			idx, err := findContaining(seg.Start.Value, seg.Size)
			if err != nil {
				return err
			}
			if err := markFixed(idx, seg.Start.Value, seg.Size, fmt.Sprintf("process %s segment", p.Name)); err != nil {
				return err
			}
		}
	}

	// Step 4: collect remaining Auto segments, sorted ascending by size.
	sort.SliceStable(autoSegs, func(i, j int) bool { return autoSegs[i].Size < autoSegs[j].Size })

	// Step 5: place each Auto segment, scanning chip segments in index order.
	for _, seg := range autoSegs {
		placed := false
		for _, m := range maps {
			start := roundUp(m.chipSeg.Start.Value, seg.Align)
			for uint64(start)+uint64(seg.Size) <= m.end() {
				rel := start - m.chipSeg.Start.Value
				if m.isClear(rel, seg.Size) {
					m.mark(rel, seg.Size)
					seg.Start = model.Concrete(start)
					placed = true
					break
				}
				start += seg.Align
			}
			if placed {
				break
			}
		}
		if !placed {
			return generrors.New(generrors.Placement, "", fmt.Sprintf("no fit found for Auto %s segment of size 0x%X", kind, seg.Size))
		}
	}

	return nil
}

func segmentsOfKind(p *model.Process, kind model.SegmentKind) []*model.MemorySegment {
	var src []model.MemorySegment
	switch kind {
	case model.SegmentCode:
		src = p.CodeSegments
	case model.SegmentData:
		src = p.DataSegments
	}
	out := make([]*model.MemorySegment, len(src))
	switch kind {
	case model.SegmentCode:
		for i := range p.CodeSegments {
			out[i] = &p.CodeSegments[i]
		}
	case model.SegmentData:
		for i := range p.DataSegments {
			out[i] = &p.DataSegments[i]
		}
	}
	return out
}

func roundUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + (align - rem)
}
