// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package validate

import (
	"rmegen/internal/model"
)

// ResolvePortTarget finds the invocation a port names: the process named
// port.Target, then the invocation named port.Name within it (spec §4.2,
// §4.6). Matching is case-insensitive per spec §4.2.
func ResolvePortTarget(proj *model.Project, port model.Port) (*model.Process, *model.Invocation, bool) {
	proc, ok := findProcessFold(proj, port.Target)
	if !ok {
		return nil, nil, false
	}
	inv, ok := findInvocationFold(proc, port.Name)
	if !ok {
		return proc, nil, false
	}
	return proc, inv, true
}

// ResolveSendTarget finds the receive endpoint a send names: the process
// named send.Target, then a *receive* (never a send) named send.Name within
// it (spec §4.2, §4.6).
func ResolveSendTarget(proj *model.Project, send model.Send) (*model.Process, *model.Receive, bool) {
	proc, ok := findProcessFold(proj, send.Target)
	if !ok {
		return nil, nil, false
	}
	recv, ok := findReceiveFold(proc, send.Name)
	if !ok {
		return proc, nil, false
	}
	return proc, recv, true
}

func findProcessFold(proj *model.Project, name string) (*model.Process, bool) {
	folded := foldName(name)
	for i := range proj.Processes {
		if foldName(proj.Processes[i].Name) == folded {
			return &proj.Processes[i], true
		}
	}
	return nil, false
}

func findInvocationFold(p *model.Process, name string) (*model.Invocation, bool) {
	folded := foldName(name)
	for i := range p.Invocations {
		if foldName(p.Invocations[i].Name) == folded {
			return &p.Invocations[i], true
		}
	}
	return nil, false
}

func findReceiveFold(p *model.Process, name string) (*model.Receive, bool) {
	folded := foldName(name)
	for i := range p.Receives {
		if foldName(p.Receives[i].Name) == folded {
			return &p.Receives[i], true
		}
	}
	return nil, false
}
