// Package hierarchy turns an Android UI hierarchy dump into a flat,
// document-ordered list of nodes, each tagged with a positional path.
package hierarchy

import (
	"strconv"
	"strings"
)

// Well-known attribute names of UIAutomator / Appium page sources.
const (
	AttrResourceID = "resource-id"
	AttrText       = "text"
	AttrBounds     = "bounds"
	AttrFocused    = "focused"
	AttrClickable  = "clickable"
	AttrClass      = "class"
	AttrPackage    = "package"
	AttrEnabled    = "enabled"
)

// Node is one element of the hierarchy.
type Node struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes"`
	Path       string            `json:"xpath"`
}

// NodeList holds every node in document (pre-order) order.
type NodeList []*Node

// Attr returns the raw attribute value and whether the key is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

// Value returns the attribute value, or "" when absent.
func (n *Node) Value(name string) string {
	return n.Attributes[name]
}

// Text returns the trimmed text attribute.
func (n *Node) Text() string {
	return strings.TrimSpace(n.Attributes[AttrText])
}

// ResourceID returns the resource-id attribute. Dumps emit resource-id=""
// for views without one, so an empty value counts as missing.
func (n *Node) ResourceID() string {
	return n.Attributes[AttrResourceID]
}

// IsTrue reports whether a boolean attribute is the literal "true".
func (n *Node) IsTrue(name string) bool {
	return n.Attributes[name] == "true"
}

// Depth is the number of path segments; the document root has depth 1.
func (n *Node) Depth() int {
	return strings.Count(n.Path, "/")
}

// ParentPath returns the path of the immediate parent ("" for the root).
func (n *Node) ParentPath() string {
	i := strings.LastIndex(n.Path, "/")
	if i <= 0 {
		return ""
	}
	return n.Path[:i]
}

// IsDescendantOf reports whether n lies strictly below the node at path.
func (n *Node) IsDescendantOf(path string) bool {
	return strings.HasPrefix(n.Path, path+"/")
}

// ClassName returns the simple class name: the last dotted segment of the
// tag, or of the class attribute for generic <node> elements.
func (n *Node) ClassName() string {
	name := n.Tag
	if name == "node" {
		if c := n.Attributes[AttrClass]; c != "" {
			name = c
		}
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Bounds returns the parsed bounds attribute.
func (n *Node) Bounds() Bounds {
	return ParseBounds(n.Attributes[AttrBounds])
}

// Bounds represents element position and size.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// IsZero reports whether the bounds are unset or unparseable.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// ParseBounds parses Android bounds string "[x1,y1][x2,y2]" to Bounds.
func ParseBounds(s string) Bounds {
	s = strings.ReplaceAll(s, "][", ",")
	s = strings.Trim(s, "[]")
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Bounds{}
		}
		v[i] = n
	}

	return Bounds{
		X:      v[0],
		Y:      v[1],
		Width:  v[2] - v[0],
		Height: v[3] - v[1],
	}
}
