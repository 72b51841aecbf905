// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package keil emits a Keil uVision project file (.uvprojx), one of the
// three IDE/Makefile formats selectable by the -f flag (spec §4.7 group 4).
package keil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmegen/internal/emit"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Emitter writes Keil uVision project files.
type Emitter struct{}

// New returns a Keil Emitter.
func New() emit.Emitter { return Emitter{} }

// WriteProjectFile writes <dir>/<proj.Name>.uvprojx.
func (Emitter) WriteProjectFile(dir string, proj *model.Project) (string, error) {
	var b strings.Builder
	fmt.Fprintln(&b, `<?xml version="1.0" encoding="UTF-8" standalone="no" ?>`)
	fmt.Fprintln(&b, "<Project>")
	fmt.Fprintf(&b, "  <Name>%s</Name>\n", proj.Name)
	fmt.Fprintf(&b, "  <Device>%s</Device>\n", proj.ChipFull)
	fmt.Fprintln(&b, "  <Targets>")

	writeTarget := func(name string, compiler model.CompilerOptions) {
		fmt.Fprintf(&b, "    <Target Name=%q>\n", name)
		for _, flag := range emit.CompilerFlags(compiler) {
			fmt.Fprintf(&b, "      <CFlag>%s</CFlag>\n", flag)
		}
		fmt.Fprintln(&b, "    </Target>")
	}

	writeTarget("RME", proj.RME.Compiler)
	writeTarget("RVM", proj.RVM.Compiler)
	for _, p := range proj.Processes {
		writeTarget(p.Name, p.Compiler)
	}

	fmt.Fprintln(&b, "  </Targets>")
	fmt.Fprintln(&b, "</Project>")

	path := filepath.Join(dir, proj.Name+".uvprojx")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, path)
	}
	return path, nil
}
