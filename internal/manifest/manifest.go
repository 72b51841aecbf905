// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package manifest emits manifest.yaml: an index of every file the
// generator wrote during a run, keyed by the stage that produced it, so a
// downstream build or review step can enumerate the run's output without
// re-walking the output directory.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Entry is one emitted file.
type Entry struct {
	Path  string `yaml:"path"`
	Stage string `yaml:"stage"`
}

// Manifest is the full run record written to manifest.yaml.
type Manifest struct {
	Generator string  `yaml:"generator"`
	Version   string  `yaml:"version"`
	Timestamp string  `yaml:"timestamp"`
	Project   string  `yaml:"project"`
	Format    string  `yaml:"format"`
	Files     []Entry `yaml:"files"`
}

// New returns an empty Manifest for the given run.
func New(version, projectName, format string, timestamp string) *Manifest {
	return &Manifest{
		Generator: "rmegen",
		Version:   version,
		Timestamp: timestamp,
		Project:   projectName,
		Format:    format,
	}
}

// Add records one emitted file under the stage that produced it.
func (m *Manifest) Add(stage, path string) {
	m.Files = append(m.Files, Entry{Path: path, Stage: stage})
}

// Write marshals the manifest as YAML to path.
func (m *Manifest) Write(path string) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write manifest to %s: %w", path, err)
	}
	return nil
}
