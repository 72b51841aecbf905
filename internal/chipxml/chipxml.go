// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package chipxml ingests the Chip XML description into a typed
// model.Chip (spec §4.1, §6).
package chipxml

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/casbin/govaluate"

	"rmegen/internal/generrors"
	"rmegen/internal/ingest"
	"rmegen/internal/model"
	"rmegen/internal/xmlnode"
)

// DerivePath computes the chip XML file's location under the RME root, from
// the platform and chip-class names (spec §6: "The chip XML file path is
// derived from platform and chip-class names, under the RME root").
func DerivePath(rmeRoot, platform, chipClass string) string {
	return filepath.Join(rmeRoot, "MEukaron", "Include", "Platform", platform, "Chips", chipClass, chipClass+".xml")
}

// Load reads and parses the chip XML file at path into a model.Chip.
func Load(path string) (model.Chip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Chip{}, generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	root, err := xmlnode.Parse(data, "Chip")
	if err != nil {
		return model.Chip{}, generrors.Wrap(err, generrors.XMLSyntax, "Chip")
	}
	return decodeChip(root)
}

func decodeChip(root xmlnode.Node) (model.Chip, error) {
	chip := model.Chip{Attributes: map[string]string{}}

	var err error
	if chip.Class, err = requiredText(root, "Chip.Class"); err != nil {
		return chip, err
	}
	if chip.Compatible, err = requiredText(root, "Chip.Compatible"); err != nil {
		return chip, err
	}
	if chip.Vendor, err = requiredText(root, "Chip.Vendor"); err != nil {
		return chip, err
	}
	if chip.Platform, err = requiredText(root, "Chip.Platform"); err != nil {
		return chip, err
	}

	coresText, err := requiredText(root, "Chip.Cores")
	if err != nil {
		return chip, err
	}
	cores, err := ingest.ParseRequiredUint32("Chip.Cores", coresText)
	if err != nil {
		return chip, err
	}
	chip.Cores = int(cores)

	regionsText, err := requiredText(root, "Chip.Regions")
	if err != nil {
		return chip, err
	}
	regions, err := ingest.ParseRequiredUint32("Chip.Regions", regionsText)
	if err != nil {
		return chip, err
	}
	chip.Regions = int(regions)

	for _, a := range root.ChildrenOf("Attribute") {
		name, ok := a.Attrs["Name"]
		if !ok {
			return chip, generrors.New(generrors.XMLSyntax, "Chip.Attribute", "Attribute is missing Name")
		}
		chip.Attributes[name] = a.Text
	}

	for i, m := range root.ChildrenOf("Memory") {
		path := fmt.Sprintf("Chip.Memory[%d]", i)
		seg, err := ingest.ParseMemorySegment(m, path)
		if err != nil {
			return chip, err
		}
		if seg.Start.IsAuto() {
			return chip, generrors.New(generrors.Semantic, path+".Start",
				"chip-declared segments must have a concrete Start")
		}
		switch seg.Kind {
		case model.SegmentCode:
			chip.CodeSegments = append(chip.CodeSegments, seg)
		case model.SegmentData:
			chip.DataSegments = append(chip.DataSegments, seg)
		case model.SegmentDevice:
			chip.DeviceSegments = append(chip.DeviceSegments, seg)
		}
	}

	for i, o := range root.ChildrenOf("Option") {
		path := fmt.Sprintf("Chip.Option[%d]", i)
		opt, err := decodeOption(o, path)
		if err != nil {
			return chip, err
		}
		chip.Options = append(chip.Options, opt)
	}

	for i, v := range root.ChildrenOf("Vector") {
		path := fmt.Sprintf("Chip.Vector[%d]", i)
		name, err := requiredText(v, path+".Name")
		if err != nil {
			return chip, err
		}
		numText, err := requiredChildText(v, "Number", path)
		if err != nil {
			return chip, err
		}
		num, err := ingest.ParseRequiredUint32(path+".Number", numText)
		if err != nil {
			return chip, err
		}
		chip.Vectors = append(chip.Vectors, model.InterruptVector{Name: name, Number: int(num)})
	}

	return chip, nil
}

func decodeOption(n xmlnode.Node, path string) (model.Option, error) {
	name, err := requiredChildText(n, "Name", path)
	if err != nil {
		return model.Option{}, err
	}
	typeText, err := requiredChildText(n, "Type", path)
	if err != nil {
		return model.Option{}, err
	}
	var typ model.OptionType
	switch typeText {
	case "Range":
		typ = model.OptionRange
	case "Select":
		typ = model.OptionSelect
	default:
		return model.Option{}, generrors.New(generrors.XMLSyntax, path+".Type",
			path+".Type must be Range or Select")
	}
	macro, err := requiredChildText(n, "Macro", path)
	if err != nil {
		return model.Option{}, err
	}
	rangeText := ""
	if rn, ok := n.Child("Range"); ok {
		rangeText = rn.Text
	}
	if typ == model.OptionRange {
		if rangeText == "" {
			return model.Option{}, generrors.New(generrors.XMLSyntax, path+".Range",
				path+".Range is required for Range options")
		}
		if err := validateRangeExpression(path+".Range", rangeText); err != nil {
			return model.Option{}, err
		}
	}
	return model.Option{Name: name, Type: typ, Macro: macro, Range: rangeText}, nil
}

// validateRangeExpression checks that a Range option's "min-max" declaration
// compiles into a well-formed bounds expression. govaluate is used to parse
// and sanity-evaluate "value >= min && value <= max" so malformed bounds
// (non-numeric, missing separator) are rejected at ingestion time rather
// than silently accepted and only noticed during emission.
func validateRangeExpression(path, rangeText string) error {
	parts := strings.SplitN(rangeText, "-", 2)
	if len(parts) != 2 {
		return generrors.New(generrors.XMLSyntax, path, path+" must be of the form \"min-max\"")
	}
	lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLo != nil || errHi != nil {
		return generrors.New(generrors.XMLSyntax, path, path+" bounds must be numeric")
	}
	expr, err := govaluate.NewEvaluableExpression("value >= min && value <= max")
	if err != nil {
		return generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	if _, err := expr.Evaluate(map[string]interface{}{"value": lo, "min": lo, "max": hi}); err != nil {
		return generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	return nil
}

func requiredText(n xmlnode.Node, path string) (string, error) {
	tag := path
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		tag = path[idx+1:]
	}
	child, err := n.RequireChild(tag)
	if err != nil {
		return "", generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	text, err := child.RequireText()
	if err != nil {
		return "", generrors.Wrap(err, generrors.XMLSyntax, path)
	}
	return text, nil
}

func requiredChildText(n xmlnode.Node, tag, parentPath string) (string, error) {
	child, err := n.RequireChild(tag)
	if err != nil {
		return "", generrors.Wrap(err, generrors.XMLSyntax, parentPath+"."+tag)
	}
	text, err := child.RequireText()
	if err != nil {
		return "", generrors.Wrap(err, generrors.XMLSyntax, parentPath+"."+tag)
	}
	return text, nil
}
