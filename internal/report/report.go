// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report renders the placed memory map and the global capability
// table into a layout.xlsx workbook, using the same excelize cell-by-cell
// idiom PerfSpect uses to build its own spreadsheet reports.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"rmegen/internal/model"
)

const (
	sheetMemoryMap = "Memory Map"
	sheetCapTable  = "Capability Table"
)

func cellName(col, row int) string {
	name, _ := excelize.JoinCellName(columnLetter(col), row)
	return name
}

func columnLetter(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// Build renders proj into an in-memory layout.xlsx workbook.
func Build(proj *model.Project) ([]byte, error) {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", sheetMemoryMap)
	_, _ = f.NewSheet(sheetCapTable)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	if err := renderMemoryMap(f, proj, headerStyle); err != nil {
		return nil, err
	}
	if err := renderCapabilityTable(f, proj, headerStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write layout.xlsx to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMemoryMap(f *excelize.File, proj *model.Project, headerStyle int) error {
	_ = f.SetColWidth(sheetMemoryMap, "A", "A", 22)
	_ = f.SetColWidth(sheetMemoryMap, "B", "F", 16)

	cols := []string{"Owner", "Kind", "Start", "Size", "End", "Attrs"}
	row := 1
	for i, c := range cols {
		_ = f.SetCellValue(sheetMemoryMap, cellName(i+1, row), c)
		_ = f.SetCellStyle(sheetMemoryMap, cellName(i+1, row), cellName(i+1, row), headerStyle)
	}
	row++

	writeRow := func(owner string, kind model.SegmentKind, seg model.MemorySegment) {
		_ = f.SetCellValue(sheetMemoryMap, cellName(1, row), owner)
		_ = f.SetCellValue(sheetMemoryMap, cellName(2, row), kind.String())
		_ = f.SetCellValue(sheetMemoryMap, cellName(3, row), seg.Start.String())
		_ = f.SetCellValue(sheetMemoryMap, cellName(4, row), fmt.Sprintf("0x%X", seg.Size))
		if seg.Start.IsConcrete() {
			_ = f.SetCellValue(sheetMemoryMap, cellName(5, row), fmt.Sprintf("0x%X", seg.End()))
		} else {
			_ = f.SetCellValue(sheetMemoryMap, cellName(5, row), "")
		}
		_ = f.SetCellValue(sheetMemoryMap, cellName(6, row), seg.Attrs.String())
		row++
	}

	writeRow("RME", model.SegmentCode, model.MemorySegment{Start: proj.RME.CodeStart, Size: proj.RME.CodeSize, Kind: model.SegmentCode})
	writeRow("RME", model.SegmentData, model.MemorySegment{Start: proj.RME.DataStart, Size: proj.RME.DataSize, Kind: model.SegmentData})
	writeRow("RVM", model.SegmentCode, model.MemorySegment{Start: proj.RVM.CodeStart, Size: proj.RVM.CodeSize, Kind: model.SegmentCode})
	writeRow("RVM", model.SegmentData, model.MemorySegment{Start: proj.RVM.DataStart, Size: proj.RVM.DataSize, Kind: model.SegmentData})

	procs := append([]model.Process(nil), proj.Processes...)
	sort.Slice(procs, func(i, j int) bool { return procs[i].Name < procs[j].Name })
	for _, p := range procs {
		for _, seg := range p.CodeSegments {
			writeRow(p.Name, model.SegmentCode, seg)
		}
		for _, seg := range p.DataSegments {
			writeRow(p.Name, model.SegmentData, seg)
		}
		for _, seg := range p.DeviceSegments {
			writeRow(p.Name, model.SegmentDevice, seg)
		}
	}
	return nil
}

func renderCapabilityTable(f *excelize.File, proj *model.Project, headerStyle int) error {
	_ = f.SetColWidth(sheetCapTable, "A", "A", 22)
	_ = f.SetColWidth(sheetCapTable, "B", "E", 16)

	cols := []string{"Process", "Object", "Name", "LocalID", "GlobalID"}
	row := 1
	for i, c := range cols {
		_ = f.SetCellValue(sheetCapTable, cellName(i+1, row), c)
		_ = f.SetCellStyle(sheetCapTable, cellName(i+1, row), cellName(i+1, row), headerStyle)
	}
	row++

	writeRow := func(proc, kind, name string, local, global int) {
		_ = f.SetCellValue(sheetCapTable, cellName(1, row), proc)
		_ = f.SetCellValue(sheetCapTable, cellName(2, row), kind)
		_ = f.SetCellValue(sheetCapTable, cellName(3, row), name)
		_ = f.SetCellValue(sheetCapTable, cellName(4, row), local)
		_ = f.SetCellValue(sheetCapTable, cellName(5, row), global)
		row++
	}

	for _, p := range proj.Processes {
		writeRow(p.Name, "Captbl", p.Name, -1, p.CaptblGlobalID)
		writeRow(p.Name, "Process", p.Name, -1, p.ProcessGlobalID)
		for _, t := range p.Threads {
			writeRow(p.Name, "Thread", t.Name, t.LocalID, t.GlobalID)
		}
		for _, inv := range p.Invocations {
			writeRow(p.Name, "Invocation", inv.Name, inv.LocalID, inv.GlobalID)
		}
		for _, port := range p.Ports {
			writeRow(p.Name, "Port", port.Name, port.LocalID, port.GlobalID)
		}
		for _, recv := range p.Receives {
			writeRow(p.Name, "Receive", recv.Name, recv.LocalID, recv.GlobalID)
		}
		for _, s := range p.Sends {
			writeRow(p.Name, "Send", s.Name, s.LocalID, s.GlobalID)
		}
		for _, v := range p.Vectors {
			writeRow(p.Name, "Vector", v.Name, v.LocalID, v.GlobalID)
		}
	}
	return nil
}
