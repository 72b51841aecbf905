// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package eclipse

import (
	"os"
	"path/filepath"
	"testing"

	"rmegen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProjectFile(t *testing.T) {
	dir := t.TempDir()
	proj := &model.Project{
		Name: "demo",
		RME:  model.RMEConfig{Compiler: model.CompilerOptions{Optimization: model.OptO2}},
		RVM:  model.RVMConfig{Compiler: model.CompilerOptions{Optimization: model.OptO2}},
		Processes: []model.Process{
			model.NewProcess("shell"),
		},
	}

	path, err := New().WriteProjectFile(dir, proj)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".project"), path)
	assert.FileExists(t, filepath.Join(dir, ".cproject"))

	projContents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(projContents), "<name>demo</name>")

	cprojContents, err := os.ReadFile(filepath.Join(dir, ".cproject"))
	require.NoError(t, err)
	s := string(cprojContents)
	assert.Contains(t, s, `<configuration name="RME">`)
	assert.Contains(t, s, `<option flag="-O2"/>`)
	assert.Contains(t, s, `<configuration name="shell">`)
}
