// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package validate implements spec §4.2: identifier rules, case-insensitive
// uniqueness, and port/send liveness resolution.
package validate

import (
	"regexp"

	"rmegen/internal/generrors"
)

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Identifier checks name against the spec's identifier rule
// ([A-Za-z_][A-Za-z0-9_]*), returning a Semantic error tagged with path if
// it does not match.
func Identifier(path, name string) error {
	if !identifierRE.MatchString(name) {
		return generrors.New(generrors.Semantic, path, path+" is not a valid identifier: "+name)
	}
	return nil
}
