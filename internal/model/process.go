// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package model

// Process is a protection domain: its own capability table, page table, and
// object inventory (spec §3, GLOSSARY).
type Process struct {
	Name        string
	ExtraCaptbl uint32
	Compiler    CompilerOptions

	CodeSegments   []MemorySegment
	DataSegments   []MemorySegment
	DeviceSegments []MemorySegment

	Threads     []Thread
	Invocations []Invocation
	Ports       []Port
	Receives    []Receive
	Sends       []Send
	Vectors     []Vector

	// CaptblFrontier is the dense count of local capability IDs assigned
	// to this process (§4.6); the process's capability table is sized
	// CaptblFrontier + ExtraCaptbl.
	CaptblFrontier int

	// CaptblGlobalID and ProcessGlobalID are this process's own global
	// linear IDs (§4.6, global ID categories 1 and 2).
	CaptblGlobalID  int
	ProcessGlobalID int
}

// NewProcess returns a Process with all ID fields initialized to
// UnassignedID, ready for ingestion to populate.
func NewProcess(name string) Process {
	return Process{
		Name:            name,
		CaptblGlobalID:  UnassignedID,
		ProcessGlobalID: UnassignedID,
	}
}

// FindInvocation returns the invocation with the given name (case-sensitive
// exact match; callers perform case-insensitive lookup via validate) and
// whether it was found.
func (p *Process) FindInvocation(name string) (*Invocation, bool) {
	for i := range p.Invocations {
		if p.Invocations[i].Name == name {
			return &p.Invocations[i], true
		}
	}
	return nil, false
}

// FindReceive returns the receive endpoint with the given name and whether
// it was found.
func (p *Process) FindReceive(name string) (*Receive, bool) {
	for i := range p.Receives {
		if p.Receives[i].Name == name {
			return &p.Receives[i], true
		}
	}
	return nil, false
}

// AllSegments returns every memory segment declared by the process, across
// all three kinds, in declaration order.
func (p *Process) AllSegments() []MemorySegment {
	all := make([]MemorySegment, 0, len(p.CodeSegments)+len(p.DataSegments)+len(p.DeviceSegments))
	all = append(all, p.CodeSegments...)
	all = append(all, p.DataSegments...)
	all = append(all, p.DeviceSegments...)
	return all
}
