// Package psddoc wraps the PSD parser behind a flat, index-ordered layer
// traversal and a composite operation that honors layer visibility.
package psddoc

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/oov/psd"

	"autosig/internal/errs"
)

// Layer describes one entry of the flat traversal.
type Layer struct {
	Index   int
	Name    string
	Visible bool
	Group   bool
}

type node struct {
	name     string
	visible  bool
	group    bool
	opacity  uint8
	rect     image.Rectangle
	pic      image.Image
	children []*node
}

// Document is a decoded layered document. Visibility mutations apply to this
// in-memory copy only and are never written back to the source file.
type Document struct {
	rect image.Rectangle
	top  []*node
	flat []*node
}

// Decode parses a PSD document from r.
func Decode(r io.Reader) (*Document, error) {
	p, _, err := psd.Decode(r, &psd.DecodeOptions{SkipMergedImage: true})
	if err != nil {
		return nil, errs.Wrap(errs.CategoryDecode, "psddoc.decode", err)
	}

	doc := &Document{rect: p.Config.Rect}
	doc.top = convert(p.Layer)
	for i := range doc.top {
		doc.walk(doc.top[i])
	}
	return doc, nil
}

func convert(layers []psd.Layer) []*node {
	out := make([]*node, 0, len(layers))
	for i := range layers {
		l := &layers[i]
		name := l.UnicodeName
		if name == "" {
			name = l.Name
		}
		n := &node{
			name:    name,
			visible: l.Visible(),
			group:   l.Folder(),
			opacity: l.Opacity,
			rect:    l.Rect,
		}
		if l.HasImage() {
			n.pic = l.Picker
		}
		n.children = convert(l.Layer)
		out = append(out, n)
	}
	return out
}

func (d *Document) walk(n *node) {
	d.flat = append(d.flat, n)
	for _, c := range n.children {
		d.walk(c)
	}
}

// Bounds returns the document canvas rectangle.
func (d *Document) Bounds() image.Rectangle { return d.rect }

// Layers returns the flat, index-ordered layer list.
func (d *Document) Layers() []Layer {
	out := make([]Layer, len(d.flat))
	for i, n := range d.flat {
		out[i] = Layer{Index: i, Name: n.name, Visible: n.visible, Group: n.group}
	}
	return out
}

// Hide marks the layer at the flat index invisible. Out-of-range indices are
// the caller's responsibility.
func (d *Document) Hide(index int) {
	d.flat[index].visible = false
}

// Composite flattens the document to RGBA, bottom layer first, honoring the
// current visibility flags and per-layer opacity. A hidden group hides its
// whole subtree. Blend modes other than normal render as normal.
func (d *Document) Composite() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, d.rect.Dx(), d.rect.Dy()))
	for _, n := range d.top {
		compositeNode(dst, n, d.rect.Min)
	}
	return dst
}

func compositeNode(dst *image.RGBA, n *node, origin image.Point) {
	if !n.visible {
		return
	}
	for _, c := range n.children {
		compositeNode(dst, c, origin)
	}
	if n.group || n.pic == nil {
		return
	}

	target := n.rect.Sub(origin)
	var mask image.Image
	if n.opacity < 0xff {
		mask = image.NewUniform(color.Alpha{A: n.opacity})
	}
	draw.DrawMask(dst, target, n.pic, n.rect.Min, mask, image.Point{}, draw.Over)
}
