package hierarchy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
)

// frame is one open element on the traversal stack. Each frame owns its
// own child counter, so sibling indices restart under every parent.
type frame struct {
	path     string
	children map[string]int
}

// Build parses a UI hierarchy XML document into a NodeList.
//
// Every element is recorded, the document root included, with a path of
// the form /tag[n]/tag[n]... where n counts same-tag siblings under the
// same parent (1-based). Works for both UIAutomator dumps (class name as
// element tag) and Appium sources (<node> elements).
//
// Empty or whitespace-only input yields an empty list. Anything that is
// not well-formed XML returns core.ErrMalformedDocument.
func Build(xmlText string) (NodeList, error) {
	if strings.TrimSpace(xmlText) == "" {
		return NodeList{}, nil
	}

	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	decoder.Strict = true

	// stack[0] is the document itself; it is never recorded.
	stack := []*frame{{children: make(map[string]int)}}
	nodes := NodeList{}
	prefixes := make(map[string]string)
	rootClosed := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, malformed(fmt.Errorf("unexpected element <%s> after document root", t.Name.Local))
			}
			parent := stack[len(stack)-1]
			tag := t.Name.Local
			parent.children[tag]++
			path := fmt.Sprintf("%s/%s[%d]", parent.path, tag, parent.children[tag])

			nodes = append(nodes, &Node{
				Tag:        tag,
				Attributes: parseAttributes(t.Attr, prefixes),
				Path:       path,
			})
			stack = append(stack, &frame{path: path, children: make(map[string]int)})

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 1 {
				rootClosed = true
			}

		case xml.CharData:
			if len(stack) == 1 && len(strings.TrimSpace(string(t))) > 0 {
				return nil, malformed(fmt.Errorf("text outside of document root"))
			}
		}
	}

	if len(stack) != 1 {
		return nil, malformed(fmt.Errorf("unclosed element %s", stack[len(stack)-1].path))
	}
	if len(nodes) == 0 {
		return nil, malformed(fmt.Errorf("no root element"))
	}

	return nodes, nil
}

// parseAttributes copies element attributes into a map. Unqualified
// attributes are keyed by local name, qualified ones by prefix:local so
// that android:text and text never collide. Namespace declarations are
// recorded in prefixes rather than kept as attributes of the view.
func parseAttributes(attrs []xml.Attr, prefixes map[string]string) map[string]string {
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" {
			prefixes[attr.Value] = attr.Name.Local
		}
	}

	m := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		m[attrKey(attr.Name, prefixes)] = attr.Value
	}
	return m
}

// attrKey maps a resolved attribute name back to its prefixed form. The
// decoder leaves undeclared prefixes in Space untouched.
func attrKey(name xml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := prefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	return name.Space + ":" + name.Local
}

func malformed(err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return core.ErrMalformedDocument.WithCause(err).WithDetails(map[string]interface{}{
			"line": syntaxErr.Line,
		})
	}
	return core.ErrMalformedDocument.WithCause(err)
}
