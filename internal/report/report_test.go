// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmegen/internal/model"
)

func reportFixture() *model.Project {
	server := model.NewProcess("server")
	server.CaptblGlobalID = 1
	server.ProcessGlobalID = 2
	server.Threads = []model.Thread{{Name: "main", LocalID: 0, GlobalID: 10}}
	server.Invocations = []model.Invocation{{Name: "do_thing", LocalID: 1, GlobalID: 11}}
	server.CodeSegments = []model.MemorySegment{
		{Name: "server_code", Start: model.Concrete(0x08008000), Size: 0x1000, Kind: model.SegmentCode, Attrs: model.AttrR | model.AttrX},
	}
	server.DataSegments = []model.MemorySegment{
		{Name: "server_data", Start: model.Auto, Size: 0x1000, Kind: model.SegmentData, Attrs: model.AttrR | model.AttrW},
	}

	return &model.Project{
		Name: "demo",
		RME: model.RMEConfig{
			CodeStart: model.Concrete(0x08000000), CodeSize: 0x4000,
			DataStart: model.Concrete(0x20000000), DataSize: 0x1000,
		},
		RVM: model.RVMConfig{
			CodeStart: model.Concrete(0x08004000), CodeSize: 0x4000,
			DataStart: model.Concrete(0x20001000), DataSize: 0x1000,
		},
		Processes: []model.Process{server},
	}
}

func TestBuildProducesValidWorkbook(t *testing.T) {
	data, err := Build(reportFixture())
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetMemoryMap)
	assert.Contains(t, sheets, sheetCapTable)

	header, err := f.GetCellValue(sheetMemoryMap, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Owner", header)

	rmeCodeOwner, err := f.GetCellValue(sheetMemoryMap, "A2")
	require.NoError(t, err)
	assert.Equal(t, "RME", rmeCodeOwner)

	capHeader, err := f.GetCellValue(sheetCapTable, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Process", capHeader)
}

func TestBuildAutoSegmentHasEmptyEnd(t *testing.T) {
	data, err := Build(reportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetMemoryMap)
	require.NoError(t, err)

	var found bool
	for _, row := range rows {
		if len(row) >= 3 && row[2] == "Auto" {
			found = true
			require.Len(t, row, 6)
			assert.Equal(t, "", row[4]) // End column left blank for an unresolved start
			assert.Equal(t, "RW", row[5])
		}
	}
	assert.True(t, found, "expected an Auto-start data segment row")
}
