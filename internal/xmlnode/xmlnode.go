// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package xmlnode decodes a raw XML byte sequence into a generic tree of
// (tag, attributes, children, text) nodes. Ingestion (internal/projectxml,
// internal/chipxml) descends this tree deterministically; xmlnode itself
// knows nothing about the project/chip schema (spec §4.1).
package xmlnode

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of the decoded tree.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []Node
	Text     string
}

// Parse decodes data into a tree rooted at a single element and checks that
// the root tag matches expectedRoot.
func Parse(data []byte, expectedRoot string) (Node, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	root, err := decodeNext(dec)
	if err != nil {
		return Node{}, err
	}
	if root.Tag != expectedRoot {
		return Node{}, fmt.Errorf("expected root element <%s>, found <%s>", expectedRoot, root.Tag)
	}
	return root, nil
}

// decodeNext scans forward to the next start element and decodes it and its
// subtree.
func decodeNext(dec *xml.Decoder) (Node, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Node{}, fmt.Errorf("no root element found")
		}
		if err != nil {
			return Node{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, start)
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (Node, error) {
	n := Node{Tag: start.Name.Local, Attrs: map[string]string{}}
	for _, a := range start.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return Node{}, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}

// Child returns the first direct child with the given tag.
func (n Node) Child(tag string) (Node, bool) {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c, true
		}
	}
	return Node{}, false
}

// ChildrenOf returns every direct child with the given tag, in document order.
func (n Node) ChildrenOf(tag string) []Node {
	var out []Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// RequireChild returns the first direct child with the given tag, or an
// error naming the missing tag if none exists.
func (n Node) RequireChild(tag string) (Node, error) {
	c, ok := n.Child(tag)
	if !ok {
		return Node{}, fmt.Errorf("missing required section <%s>", tag)
	}
	return c, nil
}

// RequireText returns the node's trimmed text content, or an error if empty.
func (n Node) RequireText() (string, error) {
	if n.Text == "" {
		return "", fmt.Errorf("<%s> has no value", n.Tag)
	}
	return n.Text, nil
}
