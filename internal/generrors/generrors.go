// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package generrors defines the generator's fatal error taxonomy (spec §7).
// Every stage aborts the whole pipeline on the first error it returns; there
// is no local recovery and nothing is retried.
package generrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category is one of the five fatal error categories from spec §7.
type Category int

const (
	// CommandLine covers wrong argument counts and missing/non-empty directories.
	CommandLine Category = iota
	// XMLSyntax covers malformed documents, missing required tags, and
	// values that do not match their expected numeric or enumerated form.
	XMLSyntax
	// Semantic covers invalid identifiers, duplicate names, processes
	// without code/data segments, and ports/sends without a target.
	Semantic
	// Placement covers overlapping fixed segments, unfittable Auto
	// segments, out-of-range device segments, and page-table boxes that
	// exceed their max_total_order cap.
	Placement
	// Emission covers missing source files under the RME/RVM roots and
	// output I/O failures.
	Emission
)

func (c Category) String() string {
	switch c {
	case CommandLine:
		return "CommandLine"
	case XMLSyntax:
		return "XMLSyntax"
	case Semantic:
		return "Semantic"
	case Placement:
		return "Placement"
	case Emission:
		return "Emission"
	default:
		return "Unknown"
	}
}

// Error is a fatal, path-annotated pipeline error. Path is a breadcrumb like
// "Project.RME.General.Code_Size" naming the construct that failed.
type Error struct {
	Category Category
	Path     string
	Err      error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Category, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a categorized error wrapping msg with a path breadcrumb.
func New(category Category, path string, msg string) *Error {
	return &Error{Category: category, Path: path, Err: errors.New(msg)}
}

// Wrap attaches a category and path breadcrumb to an existing error. Returns
// nil if err is nil, so call sites can write `return generrors.Wrap(...)`
// unconditionally after an `if err != nil` guard, matching the teacher's
// pkg/errors.Wrap idiom.
func Wrap(err error, category Category, path string) error {
	if err == nil {
		return nil
	}
	return &Error{Category: category, Path: path, Err: err}
}

// Wrapf is Wrap with a formatted path breadcrumb.
func Wrapf(err error, category Category, pathFormat string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, category, fmt.Sprintf(pathFormat, args...))
}
