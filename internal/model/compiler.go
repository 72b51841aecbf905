// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package model

// OptimizationLevel is one of the compiler optimization settings carried in
// a Compiler trunk (spec §3 RME/RVM config, Process).
type OptimizationLevel string

const (
	OptO0 OptimizationLevel = "O0"
	OptO1 OptimizationLevel = "O1"
	OptO2 OptimizationLevel = "O2"
	OptO3 OptimizationLevel = "O3"
	OptOS OptimizationLevel = "OS"
)

// CompilerOptions is the compiler configuration shared by RME, RVM, and
// every process (spec §3).
type CompilerOptions struct {
	Optimization OptimizationLevel
	PreferSize   bool // true prefers code size over execution time
}
