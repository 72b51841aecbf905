// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package app defines application-wide types, constants, and context that
// are shared across the generator pipeline.
package app

import (
	"os"
	"path/filepath"
)

// Name is the name of the application executable.
var Name = filepath.Base(os.Args[0])

// Context carries run-scoped state through the pipeline stages.
type Context struct {
	Timestamp   string // Timestamp is when the run started, formatted for use in file names.
	OutputDir   string // OutputDir is the (initially empty) directory the generator writes into.
	RMERoot     string // RMERoot is the RME kernel source root.
	RVMRoot     string // RVMRoot is the RVM runtime source root.
	Format      string // Format is the selected IDE/Makefile emitter: keil, eclipse, or makefile.
	LogFilePath string // LogFilePath is the path to the log file, empty if logging to stdout.
	Version     string // Version is the generator version.
	Debug       bool   // Debug enables verbose logging and source-annotated log entries.
}

// Flag names for the five required command-line flags (spec §6).
const (
	FlagInputName   = "i"
	FlagOutputName  = "o"
	FlagRMERootName = "k"
	FlagRVMRootName = "u"
	FlagFormatName  = "f"
)

// Flag names for ambient flags that configure the logging stack but do not
// participate in the spec's five-flag contract.
const (
	FlagDebugName     = "debug"
	FlagLogStdOutName = "log-stdout"
)

// Format is one of the three supported emitter targets.
type Format string

const (
	FormatKeil     Format = "keil"
	FormatEclipse  Format = "eclipse"
	FormatMakefile Format = "makefile"
)

// ValidFormats lists the accepted values for the -f flag, in the order they
// are reported in usage/error text.
var ValidFormats = []Format{FormatKeil, FormatEclipse, FormatMakefile}

// IsValidFormat reports whether f is one of the supported emitter formats.
func IsValidFormat(f string) bool {
	for _, valid := range ValidFormats {
		if string(valid) == f {
			return true
		}
	}
	return false
}
