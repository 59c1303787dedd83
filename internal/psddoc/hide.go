package psddoc

import (
	"fmt"
	"strconv"
	"strings"
)

// WarningKind classifies a non-fatal hide-spec failure.
type WarningKind int

const (
	LayerNotFound WarningKind = iota
	LayerIndexOutOfRange
)

// Warning reports a hide-spec that matched no layer. The layer simply stays
// visible; processing of the file continues.
type Warning struct {
	Kind WarningKind
	Spec string
}

func (w Warning) String() string {
	switch w.Kind {
	case LayerIndexOutOfRange:
		return fmt.Sprintf("layer index %s out of range", w.Spec)
	default:
		return fmt.Sprintf("no layer named %q", w.Spec)
	}
}

// HideLayers applies the hide-specs to doc in order. A numeric spec is a
// 0-based index into the flat layer list; a textual spec hides the first
// layer whose name matches case-insensitively.
func HideLayers(doc *Document, specs []string) []Warning {
	var warnings []Warning
	for _, spec := range specs {
		if idx, err := strconv.Atoi(strings.TrimSpace(spec)); err == nil {
			if idx < 0 || idx >= len(doc.flat) {
				warnings = append(warnings, Warning{Kind: LayerIndexOutOfRange, Spec: spec})
				continue
			}
			doc.Hide(idx)
			continue
		}

		if i, ok := findLayer(doc, spec); ok {
			doc.Hide(i)
			continue
		}
		warnings = append(warnings, Warning{Kind: LayerNotFound, Spec: spec})
	}
	return warnings
}

func findLayer(doc *Document, name string) (int, bool) {
	for i, n := range doc.flat {
		if strings.EqualFold(n.name, name) {
			return i, true
		}
	}
	return 0, false
}
