// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package eclipse emits an Eclipse CDT project (.cproject/.project pair),
// one of the three IDE/Makefile formats selectable by the -f flag (spec
// §4.7 group 4).
package eclipse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmegen/internal/emit"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Emitter writes Eclipse CDT project files.
type Emitter struct{}

// New returns an Eclipse Emitter.
func New() emit.Emitter { return Emitter{} }

// WriteProjectFile writes <dir>/.project and <dir>/.cproject, returning the
// path of the primary .project file.
func (Emitter) WriteProjectFile(dir string, proj *model.Project) (string, error) {
	var project strings.Builder
	fmt.Fprintln(&project, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(&project, "<projectDescription>")
	fmt.Fprintf(&project, "  <name>%s</name>\n", proj.Name)
	fmt.Fprintln(&project, "  <natures>")
	fmt.Fprintln(&project, "    <nature>org.eclipse.cdt.core.cnature</nature>")
	fmt.Fprintln(&project, "  </natures>")
	fmt.Fprintln(&project, "</projectDescription>")

	projectPath := filepath.Join(dir, ".project")
	if err := os.WriteFile(projectPath, []byte(project.String()), 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, projectPath)
	}

	var cproject strings.Builder
	fmt.Fprintln(&cproject, `<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintln(&cproject, "<cproject>")

	writeConfig := func(name string, compiler model.CompilerOptions) {
		fmt.Fprintf(&cproject, "  <configuration name=%q>\n", name)
		for _, flag := range emit.CompilerFlags(compiler) {
			fmt.Fprintf(&cproject, "    <option flag=%q/>\n", flag)
		}
		fmt.Fprintln(&cproject, "  </configuration>")
	}

	writeConfig("RME", proj.RME.Compiler)
	writeConfig("RVM", proj.RVM.Compiler)
	for _, p := range proj.Processes {
		writeConfig(p.Name, p.Compiler)
	}
	fmt.Fprintln(&cproject, "</cproject>")

	cprojectPath := filepath.Join(dir, ".cproject")
	if err := os.WriteFile(cprojectPath, []byte(cproject.String()), 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, cprojectPath)
	}

	return projectPath, nil
}
