package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyAndCopyDirectory(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "sub", "b.txt"), []byte("b"), 0644))

	require.NoError(t, CopyDirectory(srcDir, dstDir))

	aBytes, err := os.ReadFile(filepath.Join(dstDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(aBytes))

	bBytes, err := os.ReadFile(filepath.Join(dstDir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(bBytes))
}

func TestExistsAndCreateIfNotExists(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b")
	assert.False(t, Exists(nested))
	require.NoError(t, CreateIfNotExists(nested, 0755))
	assert.True(t, Exists(nested))
	// calling again on an existing directory is a no-op, not an error
	require.NoError(t, CreateIfNotExists(nested, 0755))
}
