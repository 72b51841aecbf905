// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package makefile emits a plain GNU Makefile, one of the three
// IDE/Makefile formats selectable by the -f flag (spec §4.7 group 4). Per
// §9's open question, this is derived mechanically from the same
// CompilerOptions model the Keil and Eclipse emitters use, rather than
// reverse-engineered from the unavailable original Makefile template.
package makefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmegen/internal/emit"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Emitter writes a GNU Makefile.
type Emitter struct{}

// New returns a Makefile Emitter.
func New() emit.Emitter { return Emitter{} }

// WriteProjectFile writes <dir>/Makefile.
func (Emitter) WriteProjectFile(dir string, proj *model.Project) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Makefile for %s, generated by rmegen\n\n", proj.Name)

	writeVars := func(prefix string, compiler model.CompilerOptions) {
		fmt.Fprintf(&b, "%s_CFLAGS = %s\n", prefix, strings.Join(emit.CompilerFlags(compiler), " "))
	}
	writeVars("RME", proj.RME.Compiler)
	writeVars("RVM", proj.RVM.Compiler)
	for _, p := range proj.Processes {
		writeVars(strings.ToUpper(p.Name), p.Compiler)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, ".PHONY: all rme rvm", processTargets(proj))
	fmt.Fprintln(&b, "all: rme rvm", processTargets(proj))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "rme:")
	fmt.Fprintln(&b, "\t$(CC) $(RME_CFLAGS) -o rme.elf M7M1_MuEukaron/MEukaron/*.c")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "rvm:")
	fmt.Fprintln(&b, "\t$(CC) $(RVM_CFLAGS) -o rvm.elf M7M2_MuAmmonite/MAmmonite/*.c")
	for _, p := range proj.Processes {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s:\n", p.Name)
		fmt.Fprintf(&b, "\t$(CC) $(%s_CFLAGS) -o %s.elf %s/*.c\n", strings.ToUpper(p.Name), p.Name, p.Name)
	}

	path := filepath.Join(dir, "Makefile")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, path)
	}
	return path, nil
}

func processTargets(proj *model.Project) string {
	names := make([]string, len(proj.Processes))
	for i, p := range proj.Processes {
		names[i] = p.Name
	}
	return strings.Join(names, " ")
}
