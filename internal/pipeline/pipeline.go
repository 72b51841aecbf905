// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package pipeline drives the generator's eight stages end to end: ingest,
// validate, align, place, synthesize page tables, assign capabilities,
// emit, and report — in that order, aborting on the first error (spec §5,
// §7).
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"rmegen/internal/app"
	"rmegen/internal/arch"
	"rmegen/internal/capability"
	"rmegen/internal/chipxml"
	"rmegen/internal/emit"
	"rmegen/internal/generrors"
	"rmegen/internal/manifest"
	"rmegen/internal/model"
	"rmegen/internal/pagetable"
	"rmegen/internal/placement"
	"rmegen/internal/progress"
	"rmegen/internal/projectxml"
	"rmegen/internal/report"
	"rmegen/internal/telemetry"
	"rmegen/internal/validate"
)

// Stage names, in run order, also used as progress-spinner labels.
const (
	StageIngest       = "ingest"
	StageValidate     = "validate"
	StageAlign        = "align"
	StagePlace        = "place"
	StagePageTable    = "page tables"
	StageCapabilities = "capabilities"
	StageEmit         = "emit"
	StageReport       = "report"
)

// Stages lists every stage name in run order.
var Stages = []string{StageIngest, StageValidate, StageAlign, StagePlace, StagePageTable, StageCapabilities, StageEmit, StageReport}

// Result carries the outputs of a completed run, for callers that want to
// inspect what happened beyond the written files (tests, in particular).
type Result struct {
	Project      *model.Project
	Chip         *model.Chip
	PageTables   map[string]*PageTables
	EmitResult   *emit.Result
	ManifestPath string
}

// PageTables holds the synthesized MPU region trees for one process.
type PageTables struct {
	Code *pagetable.Node
	Data *pagetable.Node
}

// Options configures one pipeline run (mirrors the five required CLI flags
// plus the resolved architecture binding).
type Options struct {
	ProjectXMLPath string
	OutputDir      string
	RMERoot        string
	RVMRoot        string
	Format         app.Format
	Arch           arch.Architecture
	Version        string
	Timestamp      string
}

// Run executes all eight stages and returns the accumulated result. sp may
// be nil; when non-nil, each stage reports its status as it starts and
// finishes.
func Run(opts Options, sp *progress.StageSpinner) (*Result, error) {
	status := func(stage, s string) {
		if sp != nil {
			_ = sp.SetStatus(stage, s)
		}
	}

	// Stage 1: ingest.
	status(StageIngest, "parsing project XML")
	proj, err := projectxml.Load(opts.ProjectXMLPath)
	if err != nil {
		return nil, err
	}
	chipPath := chipxml.DerivePath(opts.RMERoot, proj.Platform, proj.ChipClass)
	status(StageIngest, "parsing chip XML")
	chip, err := chipxml.Load(chipPath)
	if err != nil {
		return nil, err
	}
	status(StageIngest, "done")

	// Stage 2: validate.
	status(StageValidate, "checking identifiers")
	if err := validate.Names(&proj); err != nil {
		return nil, err
	}
	status(StageValidate, "checking uniqueness")
	if err := validate.Uniqueness(&proj); err != nil {
		return nil, err
	}
	status(StageValidate, "checking structure")
	if err := validate.Structural(&proj, &chip); err != nil {
		return nil, err
	}
	status(StageValidate, "resolving ports and sends")
	if err := resolveLiveness(&proj); err != nil {
		return nil, err
	}
	status(StageValidate, "done")

	// Stage 3: align.
	status(StageAlign, "aligning segments")
	if err := placement.Align(opts.Arch, &proj); err != nil {
		return nil, err
	}
	status(StageAlign, "done")

	// Stage 4: place.
	status(StagePlace, "placing memory")
	if err := placement.Place(&proj, &chip); err != nil {
		return nil, err
	}
	status(StagePlace, "done")

	// Stage 5: page tables.
	status(StagePageTable, "synthesizing MPU regions")
	tables, nodeCount, err := synthesizeAll(opts.Arch, &proj)
	if err != nil {
		return nil, err
	}
	status(StagePageTable, "done")

	// Stage 6: capabilities.
	status(StageCapabilities, "assigning local IDs")
	capability.AssignLocal(&proj)
	status(StageCapabilities, "assigning global IDs")
	capability.AssignGlobal(&proj)
	capability.AssignVectors(opts.Arch, &proj)
	status(StageCapabilities, "resolving ports and sends")
	if err := capability.Resolve(&proj); err != nil {
		return nil, err
	}
	status(StageCapabilities, "done")

	// Stage 7: emit.
	status(StageEmit, "writing output tree")
	emitResult, err := emit.Run(opts.OutputDir, opts.RMERoot, opts.RVMRoot, opts.Format, &proj)
	if err != nil {
		return nil, err
	}
	status(StageEmit, "done")

	// Stage 8: report.
	status(StageReport, "rendering workbook and manifest")
	manifestPath, err := writeReportAndManifest(opts, &proj, emitResult, nodeCount)
	if err != nil {
		return nil, err
	}
	status(StageReport, "done")

	return &Result{
		Project:      &proj,
		Chip:         &chip,
		PageTables:   tables,
		EmitResult:   emitResult,
		ManifestPath: manifestPath,
	}, nil
}

func resolveLiveness(proj *model.Project) error {
	for pi := range proj.Processes {
		p := &proj.Processes[pi]
		for i, port := range p.Ports {
			if _, _, ok := validate.ResolvePortTarget(proj, port); !ok {
				return generrors.New(generrors.Semantic, fmt.Sprintf("Project.Process[%d].Port[%d]", pi, i),
					fmt.Sprintf("port %s does not resolve to an invocation in process %s", port.Name, port.Target))
			}
		}
		for i, s := range p.Sends {
			if _, _, ok := validate.ResolveSendTarget(proj, s); !ok {
				return generrors.New(generrors.Semantic, fmt.Sprintf("Project.Process[%d].Send[%d]", pi, i),
					fmt.Sprintf("send %s does not resolve to a receive endpoint in process %s", s.Name, s.Target))
			}
		}
	}
	return nil
}

func synthesizeAll(a arch.Architecture, proj *model.Project) (map[string]*PageTables, int, error) {
	tables := make(map[string]*PageTables, len(proj.Processes))
	total := 0
	for _, p := range proj.Processes {
		codeNode, err := pagetable.Synthesize(a.PageTableConstraints, p.CodeSegments, a.MaxTotalOrder)
		if err != nil {
			return nil, 0, generrors.Wrapf(err, generrors.Placement, "Project.Process[%s].Memory(code)", p.Name)
		}
		dataNode, err := pagetable.Synthesize(a.PageTableConstraints, p.DataSegments, a.MaxTotalOrder)
		if err != nil {
			return nil, 0, generrors.Wrapf(err, generrors.Placement, "Project.Process[%s].Memory(data)", p.Name)
		}
		tables[p.Name] = &PageTables{Code: codeNode, Data: dataNode}
		total += countNodes(codeNode) + countNodes(dataNode)
	}
	return tables, total, nil
}

func countNodes(n *pagetable.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, sub := range n.Subregions {
		count += countNodes(sub.Child)
	}
	return count
}

func writeReportAndManifest(opts Options, proj *model.Project, er *emit.Result, nodeCount int) (string, error) {
	rec := telemetry.New()
	rec.ObserveProject(proj)
	rec.ObservePageTableNodes(nodeCount)
	metricsPath := filepath.Join(opts.OutputDir, "generator_metrics.prom")
	if err := rec.WriteSnapshot(metricsPath); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, metricsPath)
	}

	workbook, err := report.Build(proj)
	if err != nil {
		return "", generrors.Wrap(err, generrors.Emission, "layout.xlsx")
	}
	xlsxPath := filepath.Join(opts.OutputDir, "layout.xlsx")
	if err := os.WriteFile(xlsxPath, workbook, 0644); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, xlsxPath)
	}

	m := manifest.New(opts.Version, proj.Name, string(opts.Format), opts.Timestamp)
	for _, f := range er.LinkerScripts {
		m.Add(StageEmit, f)
	}
	m.Add(StageEmit, er.BootScriptPath)
	m.Add(StageEmit, er.ProjectFilePath)
	m.Add(StageReport, metricsPath)
	m.Add(StageReport, xlsxPath)

	manifestPath := filepath.Join(opts.OutputDir, "manifest.yaml")
	if err := m.Write(manifestPath); err != nil {
		return "", generrors.Wrap(err, generrors.Emission, manifestPath)
	}
	return manifestPath, nil
}
