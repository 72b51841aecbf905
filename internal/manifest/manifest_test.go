package manifest

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestManifestWrite(t *testing.T) {
	m := New("1.0.0", "demo", "keil", "2026-07-31_00-00-00")
	m.Add("emit", "project.uvprojx")
	m.Add("emit", "startup.s")

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, m.Write(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var roundTripped Manifest
	require.NoError(t, yaml.Unmarshal(raw, &roundTripped))
	assert.Equal(t, "rmegen", roundTripped.Generator)
	assert.Equal(t, "demo", roundTripped.Project)
	assert.Len(t, roundTripped.Files, 2)
	assert.Equal(t, "emit", roundTripped.Files[0].Stage)
}
