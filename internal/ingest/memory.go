// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package ingest

import (
	"fmt"

	"rmegen/internal/generrors"
	"rmegen/internal/model"
	"rmegen/internal/xmlnode"
)

// ParseMemorySegment decodes one <Memory> trunk shared by the Chip and
// Process XML shapes (spec §6): Start, Size, Type, Attribute.
func ParseMemorySegment(n xmlnode.Node, path string) (model.MemorySegment, error) {
	startNode, err := n.RequireChild("Start")
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Start")
	}
	startText, err := startNode.RequireText()
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Start")
	}
	start, err := ParseHex(path+".Start", startText)
	if err != nil {
		return model.MemorySegment{}, err
	}

	sizeNode, err := n.RequireChild("Size")
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Size")
	}
	sizeText, err := sizeNode.RequireText()
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Size")
	}
	size, err := ParseRequiredHex(path+".Size", sizeText)
	if err != nil {
		return model.MemorySegment{}, err
	}

	typeNode, err := n.RequireChild("Type")
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Type")
	}
	typeText, err := typeNode.RequireText()
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Type")
	}
	kind, err := parseSegmentKind(path+".Type", typeText)
	if err != nil {
		return model.MemorySegment{}, err
	}

	attrNode, err := n.RequireChild("Attribute")
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Attribute")
	}
	attrText, err := attrNode.RequireText()
	if err != nil {
		return model.MemorySegment{}, generrors.Wrap(err, generrors.XMLSyntax, path+".Attribute")
	}
	attrs, err := ParseMemAttr(path+".Attribute", attrText)
	if err != nil {
		return model.MemorySegment{}, err
	}

	return model.MemorySegment{
		Start: start,
		Size:  size,
		Kind:  kind,
		Attrs: attrs,
	}, nil
}

func parseSegmentKind(path, s string) (model.SegmentKind, error) {
	switch s {
	case "Code":
		return model.SegmentCode, nil
	case "Data":
		return model.SegmentData, nil
	case "Device":
		return model.SegmentDevice, nil
	default:
		return 0, generrors.New(generrors.XMLSyntax, path,
			fmt.Sprintf("%s is not one of Code, Data, Device", path))
	}
}
