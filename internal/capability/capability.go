// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package capability implements spec §4.6: local capability-ID assignment
// within each process, global linear-ID assignment across the whole
// project, and back-resolution of ports and sends to the objects they name.
package capability

import (
	"fmt"

	"rmegen/internal/arch"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
	"rmegen/internal/validate"
)

// AssignLocal assigns dense, per-process local capability-table slots in the
// fixed order Threads, Invocations, Ports, Receives, Sends, Vectors (spec
// §4.6). CaptblFrontier records the slot count before ExtraCaptbl padding.
func AssignLocal(proj *model.Project) {
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		next := 0
		for i := range p.Threads {
			p.Threads[i].LocalID = next
			next++
		}
		for i := range p.Invocations {
			p.Invocations[i].LocalID = next
			next++
		}
		for i := range p.Ports {
			p.Ports[i].LocalID = next
			next++
		}
		for i := range p.Receives {
			p.Receives[i].LocalID = next
			next++
		}
		for i := range p.Sends {
			p.Sends[i].LocalID = next
			next++
		}
		for i := range p.Vectors {
			p.Vectors[i].LocalID = next
			next++
		}
		p.CaptblFrontier = next
	}
}

// AssignGlobal assigns global linear capability IDs in the fixed category
// order: capability tables, then processes, then threads, invocations and
// receives across every process (spec §4.6). Ports, Sends and Vectors do not
// receive IDs here; see Resolve and AssignVectors.
func AssignGlobal(proj *model.Project) {
	next := 0
	for pi := range proj.Processes {
		proj.Processes[pi].CaptblGlobalID = next
		next++
	}
	for pi := range proj.Processes {
		proj.Processes[pi].ProcessGlobalID = next
		next++
	}
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.Threads {
			p.Threads[i].GlobalID = next
			next++
		}
	}
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.Invocations {
			p.Invocations[i].GlobalID = next
			next++
		}
	}
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.Receives {
			p.Receives[i].GlobalID = next
			next++
		}
	}
}

// AssignVectors assigns each declared interrupt vector a global ID from the
// architecture's reserved vector pool (spec §4.6, §4.3 architecture binding).
// Vectors are kernel-created at boot; the generator only delegates them.
func AssignVectors(a arch.Architecture, proj *model.Project) {
	next := a.VectorGlobalIDBase
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.Vectors {
			p.Vectors[i].GlobalID = next
			next++
		}
	}
}

// Resolve back-resolves every port and send to the invocation or receive it
// names, copying the resolved object's global ID (spec §4.2, §4.6). The
// pipeline runs this after its liveness check (built on
// validate.ResolvePortTarget/ResolveSendTarget) has already proven every
// target exists; a resolution failure here still surfaces as
// a generrors.Semantic error rather than a panic, matching the rest of the
// pipeline's no-local-recovery style.
func Resolve(proj *model.Project) error {
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i := range p.Ports {
			_, inv, ok := validate.ResolvePortTarget(proj, p.Ports[i])
			if !ok || inv == nil {
				return generrors.New(generrors.Semantic, fmt.Sprintf("Project.Process[%s].Port[%s]", p.Name, p.Ports[i].Name),
					"port target did not resolve during capability assignment")
			}
			p.Ports[i].GlobalID = inv.GlobalID
		}
		for i := range p.Sends {
			_, recv, ok := validate.ResolveSendTarget(proj, p.Sends[i])
			if !ok || recv == nil {
				return generrors.New(generrors.Semantic, fmt.Sprintf("Project.Process[%s].Send[%s]", p.Name, p.Sends[i].Name),
					"send target did not resolve during capability assignment")
			}
			p.Sends[i].GlobalID = recv.GlobalID
		}
	}
	return nil
}
