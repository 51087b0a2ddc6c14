package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/hierarchy"
)

var csvHeader = []string{"xpath", "tag", "resource-id", "text", "class", "bounds", "center", "clickable", "focused"}

// WriteNodesCSV writes one row per node with its most used attributes.
// center is the tap point "x,y" derived from bounds, blank when bounds
// are missing or unparseable.
func WriteNodesCSV(w io.Writer, nodes hierarchy.NodeList) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, n := range nodes {
		row := []string{
			n.Path,
			n.Tag,
			n.ResourceID(),
			n.Value(hierarchy.AttrText),
			n.Value(hierarchy.AttrClass),
			n.Value(hierarchy.AttrBounds),
			center(n.Bounds()),
			n.Value(hierarchy.AttrClickable),
			n.Value(hierarchy.AttrFocused),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func center(b hierarchy.Bounds) string {
	if b.IsZero() {
		return ""
	}
	x, y := b.Center()
	return fmt.Sprintf("%d,%d", x, y)
}
