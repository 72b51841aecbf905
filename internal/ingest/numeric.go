// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package ingest holds the numeric and attribute-string parsing rules
// shared by internal/projectxml and internal/chipxml (spec §4.1).
package ingest

import (
	"strconv"
	"strings"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
)

const autoLiteral = "Auto"

// ParseHex parses a "Hex" value per spec §4.1: "0x…"/"0X…" followed by
// hex digits, or the literal "Auto". Any other character fails. The parsed
// value is reduced mod 2^32.
func ParseHex(path, s string) (model.Address, error) {
	if s == autoLiteral {
		return model.Auto, nil
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "0x") {
		return model.Invalid, generrors.New(generrors.XMLSyntax, path,
			path+" is not a valid hex number")
	}
	digits := lower[2:]
	if digits == "" {
		return model.Invalid, generrors.New(generrors.XMLSyntax, path,
			path+" is not a valid hex number")
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return model.Invalid, generrors.New(generrors.XMLSyntax, path,
				path+" is not a valid hex number")
		}
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return model.Invalid, generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	return model.Concrete(uint32(v & 0xFFFFFFFF)), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// ParseUnsigned parses an "Unsigned integer" value per spec §4.1: decimal
// digits, or the literal "Auto". Any other character fails.
func ParseUnsigned(path, s string) (model.Address, error) {
	if s == autoLiteral {
		return model.Auto, nil
	}
	if s == "" {
		return model.Invalid, generrors.New(generrors.XMLSyntax, path,
			path+" is not a valid unsigned integer")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return model.Invalid, generrors.New(generrors.XMLSyntax, path,
				path+" is not a valid unsigned integer")
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return model.Invalid, generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	return model.Concrete(uint32(v & 0xFFFFFFFF)), nil
}

// ParseRequiredHex parses a Hex value that must be concrete (Auto rejected)
// — used for Size fields, which are Hex-typed (per the worked example in
// spec §4.1, "Project.RME.General.Code_Size is not a valid hex number") but
// can never themselves be "placement decides this": only a segment's Start
// may be Auto.
func ParseRequiredHex(path, s string) (uint32, error) {
	addr, err := ParseHex(path, s)
	if err != nil {
		return 0, err
	}
	if addr.IsAuto() {
		return 0, generrors.New(generrors.XMLSyntax, path, path+" may not be Auto")
	}
	return addr.Value, nil
}

// ParseRequiredUint32 parses a plain decimal unsigned integer with no Auto
// literal accepted — used for fields like priorities and kernel-priority
// counts that are never "placement decides this".
func ParseRequiredUint32(path, s string) (uint32, error) {
	addr, err := ParseUnsigned(path, s)
	if err != nil {
		return 0, err
	}
	if addr.IsAuto() {
		return 0, generrors.New(generrors.XMLSyntax, path, path+" may not be Auto")
	}
	return addr.Value, nil
}

// ParseMemAttr parses a "Memory attribute string" per spec §4.1: a
// set-of-letters among R,W,X (access) and B,C,S (bufferable/cacheable/
// static). At least one of R/W/X must be present.
func ParseMemAttr(path, s string) (model.Attr, error) {
	var attrs model.Attr
	for _, r := range s {
		var bit model.Attr
		switch r {
		case 'R':
			bit = model.AttrR
		case 'W':
			bit = model.AttrW
		case 'X':
			bit = model.AttrX
		case 'B':
			bit = model.AttrBufferable
		case 'C':
			bit = model.AttrCacheable
		case 'S':
			bit = model.AttrStatic
		default:
			return 0, generrors.New(generrors.XMLSyntax, path,
				path+" contains an invalid memory attribute letter")
		}
		attrs |= bit
	}
	if !attrs.HasAnyAccess() {
		return 0, generrors.New(generrors.XMLSyntax, path,
			path+" must contain at least one of R, W, X")
	}
	return attrs, nil
}
