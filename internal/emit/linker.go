// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

// LinkerFormat selects the scatter-file (Keil) or ld-script (GCC) textual
// convention for LinkerScripts (spec §6 "Linker/scatter output").
type LinkerFormat int

const (
	LinkerScatter LinkerFormat = iota
	LinkerLD
)

// LinkerScripts writes one linker/scatter script per built image — RME,
// RVM, and each process — bit-exact from the placed memory layout (spec
// §4.7 group 2, §6).
func LinkerScripts(t *Tree, proj *model.Project, format LinkerFormat) ([]string, error) {
	var written []string

	rmePath := filepath.Join(t.RMERoot, "Project", linkerFileName("RME", format))
	if err := writeLinkerScript(rmePath, "RME", []model.MemorySegment{
		{Name: "RME_Code", Start: proj.RME.CodeStart, Size: proj.RME.CodeSize, Kind: model.SegmentCode},
		{Name: "RME_Data", Start: proj.RME.DataStart, Size: proj.RME.DataSize, Kind: model.SegmentData},
	}, format); err != nil {
		return nil, err
	}
	written = append(written, rmePath)

	rvmPath := filepath.Join(t.RVMRoot, "Project", linkerFileName("RVM", format))
	if err := writeLinkerScript(rvmPath, "RVM", []model.MemorySegment{
		{Name: "RVM_Code", Start: proj.RVM.CodeStart, Size: proj.RVM.CodeSize, Kind: model.SegmentCode},
		{Name: "RVM_Data", Start: proj.RVM.DataStart, Size: proj.RVM.DataSize, Kind: model.SegmentData},
	}, format); err != nil {
		return nil, err
	}
	written = append(written, rvmPath)

	for _, p := range proj.Processes {
		dir, ok := t.Processes[p.Name]
		if !ok {
			return nil, generrors.New(generrors.Emission, p.Name, "process output directory was never created")
		}
		path := filepath.Join(dir, "Project", linkerFileName(p.Name, format))
		segs := append([]model.MemorySegment(nil), p.CodeSegments...)
		segs = append(segs, p.DataSegments...)
		if err := writeLinkerScript(path, p.Name, segs, format); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	return written, nil
}

func linkerFileName(image string, format LinkerFormat) string {
	if format == LinkerScatter {
		return image + ".sct"
	}
	return image + ".ld"
}

func writeLinkerScript(path, image string, segs []model.MemorySegment, format LinkerFormat) error {
	var b strings.Builder
	if format == LinkerScatter {
		fmt.Fprintf(&b, "; %s scatter file, generated by rmegen\n", image)
		for _, seg := range segs {
			if !seg.Start.IsConcrete() {
				return generrors.New(generrors.Emission, image, fmt.Sprintf("segment %s has no concrete address at emission time", seg.Name))
			}
			name := seg.Name
			if name == "" {
				name = image + "_" + seg.Kind.String()
			}
			fmt.Fprintf(&b, "LR_%s %s 0x%X {\n", name, seg.Start, seg.Size)
			fmt.Fprintf(&b, "  ER_%s %s 0x%X {\n    *.o (+%s)\n  }\n", name, seg.Start, seg.Size, regionContents(seg))
			fmt.Fprintf(&b, "}\n")
		}
	} else {
		fmt.Fprintf(&b, "/* %s linker script, generated by rmegen */\n", image)
		fmt.Fprintln(&b, "MEMORY")
		fmt.Fprintln(&b, "{")
		for _, seg := range segs {
			if !seg.Start.IsConcrete() {
				return generrors.New(generrors.Emission, image, fmt.Sprintf("segment %s has no concrete address at emission time", seg.Name))
			}
			name := seg.Name
			if name == "" {
				name = image + "_" + seg.Kind.String()
			}
			fmt.Fprintf(&b, "  %s (%s) : ORIGIN = %s, LENGTH = 0x%X\n", name, ldAttrs(seg), seg.Start, seg.Size)
		}
		fmt.Fprintln(&b, "}")
		fmt.Fprintln(&b, "SECTIONS")
		fmt.Fprintln(&b, "{")
		for _, seg := range segs {
			name := seg.Name
			if name == "" {
				name = image + "_" + seg.Kind.String()
			}
			fmt.Fprintf(&b, "  .%s : { *(.%s) } > %s\n", strings.ToLower(name), regionContents(seg), name)
		}
		fmt.Fprintln(&b, "}")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return generrors.Wrap(err, generrors.Emission, path)
	}
	return nil
}

func regionContents(seg model.MemorySegment) string {
	if seg.Kind == model.SegmentCode {
		return "RO"
	}
	return "RW"
}

func ldAttrs(seg model.MemorySegment) string {
	var s []byte
	if seg.Attrs.Has(model.AttrR) {
		s = append(s, 'r')
	}
	if seg.Attrs.Has(model.AttrW) {
		s = append(s, 'w')
	}
	if seg.Attrs.Has(model.AttrX) {
		s = append(s, 'x')
	}
	if len(s) == 0 {
		return "rwx"
	}
	return string(s)
}
