// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package ingest

import (
	"testing"

	"rmegen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	addr, err := ParseHex("p", "0x1000")
	require.NoError(t, err)
	assert.True(t, addr.IsConcrete())
	assert.Equal(t, uint32(0x1000), addr.Value)

	addr, err = ParseHex("p", "Auto")
	require.NoError(t, err)
	assert.True(t, addr.IsAuto())

	_, err = ParseHex("p", "1000")
	assert.Error(t, err)

	_, err = ParseHex("p", "0xZZ")
	assert.Error(t, err)
}

func TestParseUnsigned(t *testing.T) {
	addr, err := ParseUnsigned("p", "42")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), addr.Value)

	addr, err = ParseUnsigned("p", "Auto")
	require.NoError(t, err)
	assert.True(t, addr.IsAuto())

	_, err = ParseUnsigned("p", "-1")
	assert.Error(t, err)

	_, err = ParseUnsigned("p", "")
	assert.Error(t, err)
}

func TestParseRequiredHexRejectsAuto(t *testing.T) {
	_, err := ParseRequiredHex("p", "Auto")
	assert.Error(t, err)

	v, err := ParseRequiredHex("p", "0x20")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20), v)
}

func TestParseRequiredUint32RejectsAuto(t *testing.T) {
	_, err := ParseRequiredUint32("p", "Auto")
	assert.Error(t, err)

	v, err := ParseRequiredUint32("p", "7")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestParseMemAttr(t *testing.T) {
	attrs, err := ParseMemAttr("p", "RWXBCS")
	require.NoError(t, err)
	assert.True(t, attrs.Has(model.AttrR))
	assert.True(t, attrs.Has(model.AttrW))
	assert.True(t, attrs.Has(model.AttrX))
	assert.True(t, attrs.Has(model.AttrBufferable))
	assert.True(t, attrs.Has(model.AttrCacheable))
	assert.True(t, attrs.Has(model.AttrStatic))
}

func TestParseMemAttrRequiresAccessBit(t *testing.T) {
	_, err := ParseMemAttr("p", "BCS")
	assert.Error(t, err)
}

func TestParseMemAttrRejectsUnknownLetter(t *testing.T) {
	_, err := ParseMemAttr("p", "RQ")
	assert.Error(t, err)
}
