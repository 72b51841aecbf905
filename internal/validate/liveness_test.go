// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package validate

import (
	"testing"

	"rmegen/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePortTarget(t *testing.T) {
	proj := uniquenessFixture()
	_, inv, ok := ResolvePortTarget(proj, proj.Processes[1].Ports[0])
	require.True(t, ok)
	assert.Equal(t, "do_thing", inv.Name)
}

func TestResolvePortTargetCaseInsensitive(t *testing.T) {
	proj := uniquenessFixture()
	port := model.Port{Name: "DO_THING", Target: "SERVER"}
	_, inv, ok := ResolvePortTarget(proj, port)
	require.True(t, ok)
	assert.Equal(t, "do_thing", inv.Name)
}

func TestResolvePortTargetMissingProcess(t *testing.T) {
	proj := uniquenessFixture()
	port := model.Port{Name: "do_thing", Target: "nobody"}
	_, _, ok := ResolvePortTarget(proj, port)
	assert.False(t, ok)
}

func TestResolveSendTarget(t *testing.T) {
	proj := uniquenessFixture()
	_, recv, ok := ResolveSendTarget(proj, proj.Processes[1].Sends[0])
	require.True(t, ok)
	assert.Equal(t, "inbox", recv.Name)
}

func TestResolveSendTargetMissingReceive(t *testing.T) {
	proj := uniquenessFixture()
	send := model.Send{Name: "nonexistent", Target: "server"}
	_, _, ok := ResolveSendTarget(proj, send)
	assert.False(t, ok)
}
