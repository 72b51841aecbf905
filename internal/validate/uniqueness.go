// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package validate

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/cases"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

var fold = cases.Fold(cases.Compact)

// foldName case-folds a name for case-insensitive comparison, per spec §4.2
// ("all comparisons case-insensitive"), using golang.org/x/text/cases
// instead of ad hoc strings.ToLower so multi-byte/locale edge cases fold the
// same way the rest of the toolchain would.
func foldName(s string) string {
	return fold.String(s)
}

// Names checks the identifier rule (spec §4.2) for every process name,
// kernel-object name, and cross-reference target name in the project.
func Names(proj *model.Project) error {
	if err := Identifier("Project.Name", proj.Name); err != nil {
		return err
	}
	for pi, p := range proj.Processes {
		ppath := fmt.Sprintf("Project.Process[%d]", pi)
		if err := Identifier(ppath+".General.Name", p.Name); err != nil {
			return err
		}
		for i, t := range p.Threads {
			if err := Identifier(fmt.Sprintf("%s.Thread[%d].Name", ppath, i), t.Name); err != nil {
				return err
			}
		}
		for i, inv := range p.Invocations {
			if err := Identifier(fmt.Sprintf("%s.Invocation[%d].Name", ppath, i), inv.Name); err != nil {
				return err
			}
		}
		for i, port := range p.Ports {
			if err := Identifier(fmt.Sprintf("%s.Port[%d].Name", ppath, i), port.Name); err != nil {
				return err
			}
			if err := Identifier(fmt.Sprintf("%s.Port[%d].Process", ppath, i), port.Target); err != nil {
				return err
			}
		}
		for i, r := range p.Receives {
			if err := Identifier(fmt.Sprintf("%s.Receive[%d].Name", ppath, i), r.Name); err != nil {
				return err
			}
		}
		for i, s := range p.Sends {
			if err := Identifier(fmt.Sprintf("%s.Send[%d].Name", ppath, i), s.Name); err != nil {
				return err
			}
			if err := Identifier(fmt.Sprintf("%s.Send[%d].Process", ppath, i), s.Target); err != nil {
				return err
			}
		}
		for i, v := range p.Vectors {
			if err := Identifier(fmt.Sprintf("%s.Vector[%d].Name", ppath, i), v.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Uniqueness enforces every case-insensitive uniqueness rule in spec §4.2.
func Uniqueness(proj *model.Project) error {
	processNames := mapset.NewSet[string]()
	for pi, p := range proj.Processes {
		folded := foldName(p.Name)
		if processNames.Contains(folded) {
			return generrors.New(generrors.Semantic, fmt.Sprintf("Project.Process[%d].General.Name", pi),
				"duplicate process name: "+p.Name)
		}
		processNames.Add(folded)
	}

	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		ppath := fmt.Sprintf("Project.Process[%d]", pi)

		threadNames := mapset.NewSet[string]()
		for i, t := range p.Threads {
			folded := foldName(t.Name)
			if threadNames.Contains(folded) {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Thread[%d].Name", ppath, i),
					"duplicate thread name in process "+p.Name+": "+t.Name)
			}
			threadNames.Add(folded)
		}

		invocationNames := mapset.NewSet[string]()
		for i, inv := range p.Invocations {
			folded := foldName(inv.Name)
			if invocationNames.Contains(folded) {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Invocation[%d].Name", ppath, i),
					"duplicate invocation name in process "+p.Name+": "+inv.Name)
			}
			invocationNames.Add(folded)
		}

		receiveNames := mapset.NewSet[string]()
		for i, r := range p.Receives {
			folded := foldName(r.Name)
			if receiveNames.Contains(folded) {
				return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Receive[%d].Name", ppath, i),
					"duplicate receive endpoint name in process "+p.Name+": "+r.Name)
			}
			receiveNames.Add(folded)
		}

		if err := checkPorts(p, ppath); err != nil {
			return err
		}
		if err := checkSends(p, ppath); err != nil {
			return err
		}
	}

	return checkVectorNamespace(proj)
}

func checkPorts(p *model.Process, ppath string) error {
	seen := mapset.NewSet[string]()
	for i, port := range p.Ports {
		if foldName(port.Target) == foldName(p.Name) {
			return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Port[%d]", ppath, i),
				"port cannot target its own process: "+p.Name)
		}
		key := foldName(port.Target) + "\x00" + foldName(port.Name)
		if seen.Contains(key) {
			return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Port[%d]", ppath, i),
				fmt.Sprintf("duplicate port (target=%s, name=%s) in process %s", port.Target, port.Name, p.Name))
		}
		seen.Add(key)
	}
	return nil
}

func checkSends(p *model.Process, ppath string) error {
	seen := mapset.NewSet[string]()
	for i, s := range p.Sends {
		key := foldName(s.Target) + "\x00" + foldName(s.Name)
		if seen.Contains(key) {
			return generrors.New(generrors.Semantic, fmt.Sprintf("%s.Send[%d]", ppath, i),
				fmt.Sprintf("duplicate send (target=%s, name=%s) in process %s", s.Target, s.Name, p.Name))
		}
		seen.Add(key)
	}
	return nil
}

// checkVectorNamespace enforces that vector endpoints are globally unique,
// including against every process's receive-endpoint names — vectors and
// receives share a dispatch namespace (spec §4.2).
func checkVectorNamespace(proj *model.Project) error {
	namespace := mapset.NewSet[string]()
	owner := map[string]string{}

	// Receive names only need to be unique within their own process (checked
	// above), so equal receive names in different processes share one entry.
	for _, p := range proj.Processes {
		for _, r := range p.Receives {
			folded := foldName(r.Name)
			if !namespace.Contains(folded) {
				owner[folded] = fmt.Sprintf("process %s receive %s", p.Name, r.Name)
			}
			namespace.Add(folded)
		}
	}
	for pi, p := range proj.Processes {
		for i, v := range p.Vectors {
			folded := foldName(v.Name)
			path := fmt.Sprintf("Project.Process[%d].Vector[%d].Name", pi, i)
			if namespace.Contains(folded) {
				return generrors.New(generrors.Semantic, path,
					fmt.Sprintf("vector %s collides with %s in the shared vector/receive namespace", v.Name, owner[folded]))
			}
			namespace.Add(folded)
			owner[folded] = fmt.Sprintf("process %s vector %s", p.Name, v.Name)
		}
	}
	return nil
}
