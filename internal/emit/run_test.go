// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"rmegen/internal/app"
	"rmegen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFixtureProject() *model.Project {
	proj := skeletonFixture()
	proj.ChipFull = "TM4C1294NCPDT"
	proj.RME.CodeStart = model.Concrete(0x08000000)
	proj.RME.CodeSize = 0x4000
	proj.RME.DataStart = model.Concrete(0x20000000)
	proj.RME.DataSize = 0x1000
	proj.RVM.CodeStart = model.Concrete(0x08004000)
	proj.RVM.CodeSize = 0x4000
	proj.RVM.DataStart = model.Concrete(0x20001000)
	proj.RVM.DataSize = 0x1000

	for i := range proj.Processes {
		proj.Processes[i].CodeSegments = []model.MemorySegment{
			{Name: proj.Processes[i].Name + "_code", Start: model.Concrete(0x08008000 + uint32(i)*0x1000), Size: 0x1000, Kind: model.SegmentCode, Attrs: model.AttrR | model.AttrX},
		}
		proj.Processes[i].DataSegments = []model.MemorySegment{
			{Name: proj.Processes[i].Name + "_data", Start: model.Concrete(0x20002000 + uint32(i)*0x1000), Size: 0x1000, Kind: model.SegmentData, Attrs: model.AttrR | model.AttrW},
		}
	}
	return proj
}

func setupRunSources(t *testing.T, root string) (rmeRoot, rvmRoot string) {
	t.Helper()
	rmeRoot = filepath.Join(root, "rme-src")
	rvmRoot = filepath.Join(root, "rvm-src")
	require.NoError(t, os.MkdirAll(rmeRoot, 0755))
	require.NoError(t, os.MkdirAll(rvmRoot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rmeRoot, "kernel.c"), []byte("// kernel\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(rvmRoot, "runtime.c"), []byte("// runtime\n"), 0644))
	return rmeRoot, rvmRoot
}

func TestRunMakefileFormat(t *testing.T) {
	root := t.TempDir()
	rmeRoot, rvmRoot := setupRunSources(t, root)
	outputDir := filepath.Join(root, "out")
	proj := runFixtureProject()

	result, err := Run(outputDir, rmeRoot, rvmRoot, app.FormatMakefile, proj)
	require.NoError(t, err)

	assert.Len(t, result.LinkerScripts, 4)
	assert.FileExists(t, result.BootScriptPath)
	assert.FileExists(t, result.ProjectFilePath)
	assert.Equal(t, filepath.Join(outputDir, "Makefile"), result.ProjectFilePath)
	assert.FileExists(t, filepath.Join(result.Tree.RMERoot, "MEukaron", "kernel.c"))
}

func TestRunKeilFormatUsesScatterScripts(t *testing.T) {
	root := t.TempDir()
	rmeRoot, rvmRoot := setupRunSources(t, root)
	outputDir := filepath.Join(root, "out")
	proj := runFixtureProject()

	result, err := Run(outputDir, rmeRoot, rvmRoot, app.FormatKeil, proj)
	require.NoError(t, err)

	for _, path := range result.LinkerScripts {
		assert.Contains(t, path, ".sct")
	}
}

func TestRunUnknownFormatFails(t *testing.T) {
	root := t.TempDir()
	rmeRoot, rvmRoot := setupRunSources(t, root)
	outputDir := filepath.Join(root, "out")
	proj := runFixtureProject()

	_, err := Run(outputDir, rmeRoot, rvmRoot, app.Format("bogus"), proj)
	assert.Error(t, err)
}

func TestRunMissingSourceRootFails(t *testing.T) {
	root := t.TempDir()
	outputDir := filepath.Join(root, "out")
	proj := runFixtureProject()

	_, err := Run(outputDir, filepath.Join(root, "no-rme"), filepath.Join(root, "no-rvm"), app.FormatMakefile, proj)
	assert.Error(t, err)
}
