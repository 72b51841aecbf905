// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"rmegen/internal/app"
	"rmegen/internal/emit/eclipse"
	"rmegen/internal/emit/keil"
	"rmegen/internal/emit/makefile"
	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// Result collects every path emission wrote, so the caller can build a
// manifest without re-walking the output tree.
type Result struct {
	Tree            *Tree
	LinkerScripts   []string
	BootScriptPath  string
	ProjectFilePath string
}

// Run performs every stage-8 artifact group against the placed, allocated
// project model: static source copy, linker scripts, the boot capability
// script, and the selected IDE/Makefile project file.
func Run(outputDir, rmeRoot, rvmRoot string, format app.Format, proj *model.Project) (*Result, error) {
	tree, err := BuildTree(outputDir, proj)
	if err != nil {
		return nil, err
	}
	if err := CopySources(tree, rmeRoot, rvmRoot); err != nil {
		return nil, err
	}

	linkerFormat := LinkerLD
	if format == app.FormatKeil {
		linkerFormat = LinkerScatter
	}
	scripts, err := LinkerScripts(tree, proj, linkerFormat)
	if err != nil {
		return nil, err
	}

	bootPath, err := BootCapabilityScript(tree, proj)
	if err != nil {
		return nil, err
	}

	emitter, err := emitterFor(format)
	if err != nil {
		return nil, err
	}
	projectFilePath, err := emitter.WriteProjectFile(tree.Root, proj)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tree:            tree,
		LinkerScripts:   scripts,
		BootScriptPath:  bootPath,
		ProjectFilePath: projectFilePath,
	}, nil
}

func emitterFor(format app.Format) (Emitter, error) {
	switch format {
	case app.FormatKeil:
		return keil.New(), nil
	case app.FormatEclipse:
		return eclipse.New(), nil
	case app.FormatMakefile:
		return makefile.New(), nil
	default:
		return nil, generrors.New(generrors.CommandLine, "", "unknown project format: "+string(format))
	}
}
