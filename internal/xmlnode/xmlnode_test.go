// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package xmlnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildsTree(t *testing.T) {
	data := []byte(`<Root><A id="1">hello</A><B><C>nested</C></B></Root>`)
	root, err := Parse(data, "Root")
	require.NoError(t, err)

	a, ok := root.Child("A")
	require.True(t, ok)
	assert.Equal(t, "hello", a.Text)
	assert.Equal(t, "1", a.Attrs["id"])

	b, ok := root.Child("B")
	require.True(t, ok)
	c, ok := b.Child("C")
	require.True(t, ok)
	assert.Equal(t, "nested", c.Text)
}

func TestParseWrongRootFails(t *testing.T) {
	data := []byte(`<Other/>`)
	_, err := Parse(data, "Root")
	assert.Error(t, err)
}

func TestChildrenOf(t *testing.T) {
	data := []byte(`<Root><Item>1</Item><Item>2</Item></Root>`)
	root, err := Parse(data, "Root")
	require.NoError(t, err)

	items := root.ChildrenOf("Item")
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Text)
	assert.Equal(t, "2", items[1].Text)
}

func TestRequireChildMissing(t *testing.T) {
	root, err := Parse([]byte(`<Root/>`), "Root")
	require.NoError(t, err)

	_, err = root.RequireChild("Missing")
	assert.Error(t, err)
}

func TestRequireTextEmpty(t *testing.T) {
	root, err := Parse([]byte(`<Root><Empty/></Root>`), "Root")
	require.NoError(t, err)
	empty, ok := root.Child("Empty")
	require.True(t, ok)
	_, err = empty.RequireText()
	assert.Error(t, err)
}
