// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package emit writes the four artifact groups of spec §4.7: the static
// kernel/runtime source-tree copy, linker/scatter scripts, the boot-time
// capability script, and an IDE/Makefile project file in one of three
// formats (internal/emit/keil, internal/emit/eclipse, internal/emit/makefile).
package emit

import (
	"path/filepath"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
	"rmegen/internal/util"
)

// Tree is the prescribed output skeleton under Output_Path (spec §6).
type Tree struct {
	Root      string
	RMERoot   string // <Root>/M7M1_MuEukaron
	RVMRoot   string // <Root>/M7M2_MuAmmonite
	Processes map[string]string // process name -> <Root>/<process name>
}

// BuildTree creates the prescribed directory skeleton for proj under root
// and returns the resolved paths. Any directory-create failure is fatal
// (spec §6).
func BuildTree(root string, proj *model.Project) (*Tree, error) {
	t := &Tree{
		Root:      root,
		RMERoot:   filepath.Join(root, "M7M1_MuEukaron"),
		RVMRoot:   filepath.Join(root, "M7M2_MuAmmonite"),
		Processes: make(map[string]string, len(proj.Processes)),
	}

	rmeDirs := []string{
		"Documents",
		filepath.Join("MEukaron", "Include", "Kernel"),
		filepath.Join("MEukaron", "Include", "Platform", proj.Platform, "Chips", proj.ChipClass),
		filepath.Join("MEukaron", "Kernel"),
		filepath.Join("MEukaron", "Platform", proj.Platform),
		"Project",
	}
	for _, d := range rmeDirs {
		if err := util.CreateIfNotExists(filepath.Join(t.RMERoot, d), 0755); err != nil {
			return nil, generrors.Wrap(err, generrors.Emission, t.RMERoot)
		}
	}

	rvmDirs := []string{
		"Documents",
		filepath.Join("MAmmonite", "Include", "Platform", proj.Platform, "Chips", proj.ChipClass),
		filepath.Join("MAmmonite", "Kernel"),
		"Project",
	}
	for _, d := range rvmDirs {
		if err := util.CreateIfNotExists(filepath.Join(t.RVMRoot, d), 0755); err != nil {
			return nil, generrors.Wrap(err, generrors.Emission, t.RVMRoot)
		}
	}

	for _, p := range proj.Processes {
		dir := filepath.Join(root, p.Name)
		if err := util.CreateIfNotExists(dir, 0755); err != nil {
			return nil, generrors.Wrap(err, generrors.Emission, dir)
		}
		if err := util.CreateIfNotExists(filepath.Join(dir, "Project"), 0755); err != nil {
			return nil, generrors.Wrap(err, generrors.Emission, dir)
		}
		t.Processes[p.Name] = dir
	}

	return t, nil
}

// CopySources copies the RME and RVM source roots verbatim into the output
// tree (spec §4.7 group 1). A missing source file fails the run.
func CopySources(t *Tree, rmeRoot, rvmRoot string) error {
	if exists, _ := util.DirectoryExists(rmeRoot); !exists {
		return generrors.New(generrors.Emission, rmeRoot, "RME source root does not exist")
	}
	if err := util.CopyDirectory(rmeRoot, filepath.Join(t.RMERoot, "MEukaron")); err != nil {
		return generrors.Wrap(err, generrors.Emission, rmeRoot)
	}
	if exists, _ := util.DirectoryExists(rvmRoot); !exists {
		return generrors.New(generrors.Emission, rvmRoot, "RVM source root does not exist")
	}
	if err := util.CopyDirectory(rvmRoot, filepath.Join(t.RVMRoot, "MAmmonite")); err != nil {
		return generrors.Wrap(err, generrors.Emission, rvmRoot)
	}
	return nil
}
