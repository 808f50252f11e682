// Package xmlfeed holds the small set of xmlquery helpers shared by the
// Gameday XML parsers: parsing a document with an expected root element and
// reading required or optional attributes.
package xmlfeed

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Parse decodes data and returns its root element, which must be named root.
func Parse(data []byte, root string) (*xmlquery.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if n.Data != root {
			return nil, fmt.Errorf("root element is <%s>, want <%s>", n.Data, root)
		}
		return n, nil
	}
	return nil, fmt.Errorf("no <%s> root element", root)
}

// Children returns the direct child elements of n named name, in document order.
func Children(n *xmlquery.Node, name string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			out = append(out, c)
		}
	}
	return out
}

// Elements returns every direct child element of n in document order.
func Elements(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child element named name, or nil.
func Child(n *xmlquery.Node, name string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

// Attr returns the trimmed value of attribute name and whether it was present.
func Attr(n *xmlquery.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value), true
		}
	}
	return "", false
}

// String returns attribute name, or "" when absent.
func String(n *xmlquery.Node, name string) string {
	v, _ := Attr(n, name)
	return v
}

// Required returns attribute name, failing when it is absent or blank.
func Required(n *xmlquery.Node, name string) (string, error) {
	v, ok := Attr(n, name)
	if !ok || v == "" {
		return "", fmt.Errorf("<%s> missing %q attribute", n.Data, name)
	}
	return v, nil
}

// Int parses a required integer attribute.
func Int(n *xmlquery.Node, name string) (int, error) {
	v, err := Required(n, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("<%s> attribute %q: %q is not an integer", n.Data, name, v)
	}
	return i, nil
}

// IntOr parses an optional integer attribute, returning def when absent or blank.
func IntOr(n *xmlquery.Node, name string, def int) (int, error) {
	if v, ok := Attr(n, name); !ok || v == "" {
		return def, nil
	}
	return Int(n, name)
}

// Float parses a required floating point attribute.
func Float(n *xmlquery.Node, name string) (float64, error) {
	v, err := Required(n, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return 0, fmt.Errorf("<%s> attribute %q: %q is not a number", n.Data, name, v)
	}
	return f, nil
}

// OptionalFloat parses attribute name, reporting ok=false when it is absent,
// blank or not a finite number.
func OptionalFloat(n *xmlquery.Node, name string) (float64, bool) {
	v, ok := Attr(n, name)
	if !ok || v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}

// finite reports whether f is neither NaN nor an infinity.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
