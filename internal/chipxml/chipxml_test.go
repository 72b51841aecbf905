// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chipxml

import (
	"os"
	"path/filepath"
	"testing"

	"rmegen/internal/model"
	"rmegen/internal/xmlnode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChipXML = `<Chip>
  <Class>TM4C129</Class>
  <Compatible>tm4c129-generic</Compatible>
  <Vendor>TI</Vendor>
  <Platform>A9</Platform>
  <Cores>1</Cores>
  <Regions>8</Regions>
  <Attribute Name="CPU_Freq">120000000</Attribute>
  <Memory>
    <Start>0x08000000</Start>
    <Size>0x40000</Size>
    <Type>Code</Type>
    <Attribute>RXC</Attribute>
  </Memory>
  <Memory>
    <Start>0x20000000</Start>
    <Size>0x8000</Size>
    <Type>Data</Type>
    <Attribute>RWB</Attribute>
  </Memory>
  <Memory>
    <Start>0x40000000</Start>
    <Size>0x1000</Size>
    <Type>Device</Type>
    <Attribute>RW</Attribute>
  </Memory>
  <Option>
    <Name>Kmem_Order</Name>
    <Type>Range</Type>
    <Macro>RME_KMEM_ORDER</Macro>
    <Range>8-16</Range>
  </Option>
  <Vector>
    <Name>UART0</Name>
    <Number>5</Number>
  </Vector>
</Chip>`

func TestDerivePath(t *testing.T) {
	path := DerivePath("/rme", "A9", "TM4C129")
	assert.Equal(t, filepath.Join("/rme", "MEukaron", "Include", "Platform", "A9", "Chips", "TM4C129", "TM4C129.xml"), path)
}

func TestLoadValidChip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chip.xml")
	require.NoError(t, os.WriteFile(path, []byte(validChipXML), 0644))

	chip, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TM4C129", chip.Class)
	assert.Equal(t, "A9", chip.Platform)
	assert.Equal(t, 1, chip.Cores)
	assert.Equal(t, 8, chip.Regions)
	assert.Equal(t, "120000000", chip.Attributes["CPU_Freq"])
	require.Len(t, chip.CodeSegments, 1)
	require.Len(t, chip.DataSegments, 1)
	require.Len(t, chip.DeviceSegments, 1)
	require.Len(t, chip.Options, 1)
	assert.Equal(t, model.OptionRange, chip.Options[0].Type)
	require.Len(t, chip.Vectors, 1)
	assert.Equal(t, "UART0", chip.Vectors[0].Name)
	assert.Equal(t, 5, chip.Vectors[0].Number)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/no/such/chip.xml")
	assert.Error(t, err)
}

func TestLoadRejectsAutoMemoryStart(t *testing.T) {
	xml := `<Chip>
  <Class>C</Class><Compatible>c</Compatible><Vendor>V</Vendor><Platform>P</Platform>
  <Cores>1</Cores><Regions>8</Regions>
  <Memory><Start>Auto</Start><Size>0x1000</Size><Type>Code</Type><Attribute>RX</Attribute></Memory>
</Chip>`
	dir := t.TempDir()
	path := filepath.Join(dir, "chip.xml")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDecodeOptionRangeValid(t *testing.T) {
	n, err := xmlnode.Parse([]byte(`<Option><Name>N</Name><Type>Range</Type><Macro>M</Macro><Range>1-10</Range></Option>`), "Option")
	require.NoError(t, err)
	opt, err := decodeOption(n, "Chip.Option[0]")
	require.NoError(t, err)
	assert.Equal(t, model.OptionRange, opt.Type)
	assert.Equal(t, "1-10", opt.Range)
}

func TestDecodeOptionRangeMissingBoundsFails(t *testing.T) {
	n, err := xmlnode.Parse([]byte(`<Option><Name>N</Name><Type>Range</Type><Macro>M</Macro></Option>`), "Option")
	require.NoError(t, err)
	_, err = decodeOption(n, "Chip.Option[0]")
	assert.Error(t, err)
}

func TestDecodeOptionRangeNonNumericBoundsFails(t *testing.T) {
	n, err := xmlnode.Parse([]byte(`<Option><Name>N</Name><Type>Range</Type><Macro>M</Macro><Range>a-b</Range></Option>`), "Option")
	require.NoError(t, err)
	_, err = decodeOption(n, "Chip.Option[0]")
	assert.Error(t, err)
}

func TestDecodeOptionSelectDoesNotRequireRange(t *testing.T) {
	n, err := xmlnode.Parse([]byte(`<Option><Name>N</Name><Type>Select</Type><Macro>M</Macro></Option>`), "Option")
	require.NoError(t, err)
	opt, err := decodeOption(n, "Chip.Option[0]")
	require.NoError(t, err)
	assert.Equal(t, model.OptionSelect, opt.Type)
}

func TestDecodeOptionUnknownTypeFails(t *testing.T) {
	n, err := xmlnode.Parse([]byte(`<Option><Name>N</Name><Type>Bogus</Type><Macro>M</Macro></Option>`), "Option")
	require.NoError(t, err)
	_, err = decodeOption(n, "Chip.Option[0]")
	assert.Error(t, err)
}
