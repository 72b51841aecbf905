// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package emit

import "rmegen/internal/model"

// Emitter writes the IDE/Makefile project file for one built image (spec
// §4.7 group 4). Each of internal/emit/keil, internal/emit/eclipse, and
// internal/emit/makefile implements this against the same CompilerOptions
// model so the three formats stay in lockstep by construction.
type Emitter interface {
	// WriteProjectFile writes the project file for proj into dir and
	// returns the path written.
	WriteProjectFile(dir string, proj *model.Project) (string, error)
}

// CompilerFlags translates a model.CompilerOptions into the flag set every
// emitter needs, so Keil, Eclipse, and Makefile output derive from the same
// source instead of three hand-maintained tables (spec §9 open question:
// Makefile emission is mechanical, not reverse-engineered).
func CompilerFlags(c model.CompilerOptions) []string {
	flags := []string{"-O" + string(optLevel(c.Optimization))}
	if c.PreferSize {
		flags = append(flags, "-Os-preferred")
	}
	return flags
}

func optLevel(o model.OptimizationLevel) string {
	switch o {
	case model.OptO0, model.OptO1, model.OptO2, model.OptO3, model.OptOS:
		return string(o)[1:]
	default:
		return "2"
	}
}
