// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"rmegen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkerFixture() (*Tree, *model.Project) {
	proj := skeletonFixture()
	proj.RME.CodeStart = model.Concrete(0x08000000)
	proj.RME.CodeSize = 0x4000
	proj.RME.DataStart = model.Concrete(0x20000000)
	proj.RME.DataSize = 0x1000
	proj.RVM.CodeStart = model.Concrete(0x08004000)
	proj.RVM.CodeSize = 0x4000
	proj.RVM.DataStart = model.Concrete(0x20001000)
	proj.RVM.DataSize = 0x1000

	proj.Processes[0].CodeSegments = []model.MemorySegment{
		{Name: "shell_code", Start: model.Concrete(0x08008000), Size: 0x1000, Kind: model.SegmentCode, Attrs: model.AttrR | model.AttrX},
	}
	proj.Processes[0].DataSegments = []model.MemorySegment{
		{Name: "shell_data", Start: model.Concrete(0x20002000), Size: 0x1000, Kind: model.SegmentData, Attrs: model.AttrR | model.AttrW},
	}
	proj.Processes[1].CodeSegments = []model.MemorySegment{
		{Name: "init_code", Start: model.Concrete(0x08009000), Size: 0x1000, Kind: model.SegmentCode, Attrs: model.AttrR | model.AttrX},
	}
	proj.Processes[1].DataSegments = []model.MemorySegment{
		{Name: "init_data", Start: model.Concrete(0x20003000), Size: 0x1000, Kind: model.SegmentData, Attrs: model.AttrR | model.AttrW},
	}

	tree := &Tree{
		Root:    "root",
		RMERoot: filepath.Join("root", "M7M1_MuEukaron"),
		RVMRoot: filepath.Join("root", "M7M2_MuAmmonite"),
		Processes: map[string]string{
			"shell": filepath.Join("root", "shell"),
			"init":  filepath.Join("root", "init"),
		},
	}
	return tree, proj
}

func setupLinkerDirs(t *testing.T, tree *Tree) {
	t.Helper()
	for _, dir := range []string{
		filepath.Join(tree.RMERoot, "Project"),
		filepath.Join(tree.RVMRoot, "Project"),
		filepath.Join(tree.Processes["shell"], "Project"),
		filepath.Join(tree.Processes["init"], "Project"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
}

func TestLinkerScriptsScatterFormat(t *testing.T) {
	root := t.TempDir()
	tree, proj := linkerFixture()
	tree.Root = root
	tree.RMERoot = filepath.Join(root, "M7M1_MuEukaron")
	tree.RVMRoot = filepath.Join(root, "M7M2_MuAmmonite")
	tree.Processes["shell"] = filepath.Join(root, "shell")
	tree.Processes["init"] = filepath.Join(root, "init")
	setupLinkerDirs(t, tree)

	written, err := LinkerScripts(tree, proj, LinkerScatter)
	require.NoError(t, err)
	assert.Len(t, written, 4) // RME, RVM, shell, init

	rmeContents, err := os.ReadFile(filepath.Join(tree.RMERoot, "Project", "RME.sct"))
	require.NoError(t, err)
	assert.Contains(t, string(rmeContents), "LR_RME_Code 0x08000000 0x4000")
}

func TestLinkerScriptsLDFormat(t *testing.T) {
	root := t.TempDir()
	tree, proj := linkerFixture()
	tree.Root = root
	tree.RMERoot = filepath.Join(root, "M7M1_MuEukaron")
	tree.RVMRoot = filepath.Join(root, "M7M2_MuAmmonite")
	tree.Processes["shell"] = filepath.Join(root, "shell")
	tree.Processes["init"] = filepath.Join(root, "init")
	setupLinkerDirs(t, tree)

	written, err := LinkerScripts(tree, proj, LinkerLD)
	require.NoError(t, err)
	assert.Len(t, written, 4)

	shellContents, err := os.ReadFile(filepath.Join(tree.Processes["shell"], "Project", "shell.ld"))
	require.NoError(t, err)
	assert.Contains(t, string(shellContents), "ORIGIN = 0x08008000")
	assert.Contains(t, string(shellContents), "shell_code (rx)")
}

func TestLinkerScriptsFailsOnAutoStart(t *testing.T) {
	root := t.TempDir()
	tree, proj := linkerFixture()
	tree.Root = root
	tree.RMERoot = filepath.Join(root, "M7M1_MuEukaron")
	tree.RVMRoot = filepath.Join(root, "M7M2_MuAmmonite")
	tree.Processes["shell"] = filepath.Join(root, "shell")
	tree.Processes["init"] = filepath.Join(root, "init")
	setupLinkerDirs(t, tree)

	proj.Processes[0].CodeSegments[0].Start = model.Auto

	_, err := LinkerScripts(tree, proj, LinkerLD)
	assert.Error(t, err)
}

func TestLinkerScriptsFailsOnUnknownProcessDir(t *testing.T) {
	root := t.TempDir()
	tree, proj := linkerFixture()
	tree.Root = root
	tree.RMERoot = filepath.Join(root, "M7M1_MuEukaron")
	tree.RVMRoot = filepath.Join(root, "M7M2_MuAmmonite")
	setupLinkerDirs(t, tree)
	tree.Processes = map[string]string{} // no process dirs registered

	_, err := LinkerScripts(tree, proj, LinkerLD)
	assert.Error(t, err)
}
