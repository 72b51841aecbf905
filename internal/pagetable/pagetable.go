// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package pagetable implements the recursive MPU region-tree synthesis
// algorithm from spec §4.5. The algorithm is architecture-generic; the
// ARMv7-M-specific constants (minimum total order, subregion count range)
// are passed in by the caller (internal/arch/armv7m), per spec §9's
// instruction that the synthesizer is "isolated behind [an] injected
// callback" so other architectures can supply their own constants later.
package pagetable

import (
	"fmt"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Constraints parameterizes the synthesizer for a given MPU architecture.
type Constraints struct {
	MinTotalOrder int // smallest region size order accepted (ARMv7-M: 8, i.e. 256 bytes)
	MinNumOrder   int // smallest subregion-count order to try (ARMv7-M: 1)
	MaxNumOrder   int // largest subregion-count order to try (ARMv7-M: 3, i.e. 8 subregions)
}

// Subregion is one of a Node's 2^NumOrder equally-sized slices.
type Subregion struct {
	Mapped bool
	Attrs  model.Attr
	Child  *Node // non-nil when this subregion recurses into a finer subtree
}

// Node is one level of the synthesized region tree.
type Node struct {
	Base       uint64
	TotalOrder int
	NumOrder   int
	SizeOrder  int // TotalOrder - NumOrder
	Subregions []Subregion
}

// Synthesize builds the region tree covering segments, recursively, per
// spec §4.5. Returns nil if segments is empty — there is nothing to cover.
func Synthesize(c Constraints, segments []model.MemorySegment, maxTotalOrder int) (*Node, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	start, end := boundingBox(segments)
	totalOrder := c.MinTotalOrder
	for {
		base := (start >> uint(totalOrder)) << uint(totalOrder)
		if base+(uint64(1)<<uint(totalOrder)) >= end {
			break
		}
		totalOrder++
		if totalOrder > maxTotalOrder {
			return nil, generrors.New(generrors.Placement, "",
				fmt.Sprintf("page-table bounding box for [0x%X,0x%X) exceeds max_total_order %d", start, end, maxTotalOrder))
		}
	}
	base := (start >> uint(totalOrder)) << uint(totalOrder)

	// Step 2: directly-mappable?
	if attrs, ok := directlyMappable(segments, base, totalOrder); ok {
		subs := make([]Subregion, 8)
		for i := range subs {
			subs[i] = Subregion{Mapped: true, Attrs: attrs}
		}
		return &Node{Base: base, TotalOrder: totalOrder, NumOrder: 3, SizeOrder: totalOrder - 3, Subregions: subs}, nil
	}

	// Step 3: choose num_order.
	numOrder := chooseNumOrder(c, segments, base, totalOrder)
	sizeOrder := totalOrder - numOrder
	count := 1 << uint(numOrder)
	subregionSize := uint64(1) << uint(sizeOrder)

	node := &Node{Base: base, TotalOrder: totalOrder, NumOrder: numOrder, SizeOrder: sizeOrder, Subregions: make([]Subregion, count)}

	for i := 0; i < count; i++ {
		subStart := base + uint64(i)*subregionSize
		subEnd := subStart + subregionSize

		var fullyCovering []model.MemorySegment
		var intersecting []model.MemorySegment
		for _, seg := range segments {
			segStart := uint64(seg.Start.Value)
			segEnd := seg.End()
			if segEnd <= subStart || segStart >= subEnd {
				continue
			}
			intersecting = append(intersecting, seg)
			if segStart <= subStart && segEnd >= subEnd {
				fullyCovering = append(fullyCovering, seg)
			}
		}

		if len(fullyCovering) == 0 {
			if len(intersecting) == 0 {
				continue // uncovered hole: leave unmapped, no child
			}
			clipped := clipAll(intersecting, subStart, subEnd)
			child, err := Synthesize(c, clipped, sizeOrder)
			if err != nil {
				return nil, err
			}
			node.Subregions[i] = Subregion{Child: child}
			continue
		}

		// first-wins: adopt the first fully-covering segment's attrs.
		adopted := fullyCovering[0].Attrs
		var leftover []model.MemorySegment
		for _, seg := range intersecting {
			segStart := uint64(seg.Start.Value)
			segEnd := seg.End()
			fullyCovers := segStart <= subStart && segEnd >= subEnd
			if fullyCovers && seg.Attrs == adopted {
				continue // absorbed into the direct mapping
			}
			leftover = append(leftover, seg)
		}
		if len(leftover) == 0 {
			node.Subregions[i] = Subregion{Mapped: true, Attrs: adopted}
			continue
		}
		clipped := clipAll(leftover, subStart, subEnd)
		child, err := Synthesize(c, clipped, sizeOrder)
		if err != nil {
			return nil, err
		}
		node.Subregions[i] = Subregion{Child: child}
	}

	return node, nil
}

func boundingBox(segments []model.MemorySegment) (start, end uint64) {
	start = ^uint64(0)
	for _, seg := range segments {
		segStart := uint64(seg.Start.Value)
		segEnd := seg.End()
		if segStart < start {
			start = segStart
		}
		if segEnd > end {
			end = segEnd
		}
	}
	return
}

// directlyMappable implements spec §4.5 step 2: all segments share identical
// attributes and each segment's start and size are multiples of
// 2^(total_order-3).
func directlyMappable(segments []model.MemorySegment, base uint64, totalOrder int) (model.Attr, bool) {
	granularity := uint64(1) << uint(totalOrder-3)
	attrs := segments[0].Attrs
	for _, seg := range segments {
		if seg.Attrs != attrs {
			return 0, false
		}
		if (uint64(seg.Start.Value)-base)%granularity != 0 || uint64(seg.Size)%granularity != 0 {
			return 0, false
		}
	}
	return attrs, true
}

// chooseNumOrder implements spec §4.5 step 3: prefer the largest num_order
// under which no segment straddles a subregion boundary; fall back to the
// smallest if every candidate straddles.
func chooseNumOrder(c Constraints, segments []model.MemorySegment, base uint64, totalOrder int) int {
	for numOrder := c.MaxNumOrder; numOrder >= c.MinNumOrder; numOrder-- {
		granularity := uint64(1) << uint(totalOrder-numOrder)
		straddles := false
		for _, seg := range segments {
			if segmentStraddles(seg, base, granularity) {
				straddles = true
				break
			}
		}
		if !straddles {
			return numOrder
		}
	}
	return c.MinNumOrder
}

// segmentStraddles reports whether seg occupies more than one subregion of
// the given granularity — i.e. a subregion boundary falls inside it.
func segmentStraddles(seg model.MemorySegment, base uint64, granularity uint64) bool {
	relStart := uint64(seg.Start.Value) - base
	size := uint64(seg.Size)
	lowIdx := relStart / granularity
	highIdx := (relStart + size - 1) / granularity
	return lowIdx != highIdx
}

// clipAll clips every segment in segs to [lo, hi), dropping the portions
// outside the range.
func clipAll(segs []model.MemorySegment, lo, hi uint64) []model.MemorySegment {
	out := make([]model.MemorySegment, 0, len(segs))
	for _, seg := range segs {
		segStart := uint64(seg.Start.Value)
		segEnd := seg.End()
		clippedStart := segStart
		if clippedStart < lo {
			clippedStart = lo
		}
		clippedEnd := segEnd
		if clippedEnd > hi {
			clippedEnd = hi
		}
		if clippedStart >= clippedEnd {
			continue
		}
		clipped := seg
		clipped.Start = model.Concrete(uint32(clippedStart))
		clipped.Size = uint32(clippedEnd - clippedStart)
		out = append(out, clipped)
	}
	return out
}
