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

func bootFixture() *model.Project {
	server := model.NewProcess("server")
	server.CaptblGlobalID = 1
	server.ProcessGlobalID = 2
	server.CaptblFrontier = 3
	server.ExtraCaptbl = 2
	server.Threads = []model.Thread{{Name: "main", Priority: 4, LocalID: 0, GlobalID: 10}}
	server.Invocations = []model.Invocation{{Name: "do_thing", LocalID: 1, GlobalID: 11}}
	server.Receives = []model.Receive{{Name: "inbox", LocalID: 2, GlobalID: 12}}

	client := model.NewProcess("client")
	client.CaptblGlobalID = 3
	client.ProcessGlobalID = 4
	client.CaptblFrontier = 2
	client.Ports = []model.Port{{Name: "do_thing", Target: "server", LocalID: 0, GlobalID: 11}}
	client.Sends = []model.Send{{Name: "inbox", Target: "server", LocalID: 1, GlobalID: 12}}
	client.Vectors = []model.Vector{{Name: "irq0", InterruptNumber: 0, LocalID: 2, GlobalID: 20}}

	return &model.Project{Name: "demo", Processes: []model.Process{server, client}}
}

func TestBootCapabilityScriptWritesCreationOrder(t *testing.T) {
	root := t.TempDir()
	tree := &Tree{RMERoot: filepath.Join(root, "M7M1_MuEukaron")}
	require.NoError(t, os.MkdirAll(filepath.Join(tree.RMERoot, "Project"), 0755))

	path, err := BootCapabilityScript(tree, bootFixture())
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(contents)

	assert.Contains(t, s, "RME_Boot_Create_Captbl(1, 5)")
	assert.Contains(t, s, "RME_Boot_Create_Process(2, 1)")
	assert.Contains(t, s, "RME_Boot_Create_Thread(10, 2, 4)")
	assert.Contains(t, s, "RME_Boot_Create_Invocation(11, 2)")
	assert.Contains(t, s, "RME_Boot_Create_Receive(12, 2)")
	assert.Contains(t, s, "RME_Boot_Delegate(3, 0, 11)")
	assert.Contains(t, s, "RME_Boot_Delegate(3, 1, 12)")
	assert.Contains(t, s, "RME_Boot_Delegate(3, 2, 20)")
}

func TestBootCapabilityScriptFailsOnUnresolvedPort(t *testing.T) {
	root := t.TempDir()
	tree := &Tree{RMERoot: filepath.Join(root, "M7M1_MuEukaron")}
	require.NoError(t, os.MkdirAll(filepath.Join(tree.RMERoot, "Project"), 0755))

	proj := bootFixture()
	proj.Processes[1].Ports[0].GlobalID = model.UnassignedID

	_, err := BootCapabilityScript(tree, proj)
	assert.Error(t, err)
}

func TestBootCapabilityScriptFailsOnUnresolvedSend(t *testing.T) {
	root := t.TempDir()
	tree := &Tree{RMERoot: filepath.Join(root, "M7M1_MuEukaron")}
	require.NoError(t, os.MkdirAll(filepath.Join(tree.RMERoot, "Project"), 0755))

	proj := bootFixture()
	proj.Processes[1].Sends[0].GlobalID = model.UnassignedID

	_, err := BootCapabilityScript(tree, proj)
	assert.Error(t, err)
}
