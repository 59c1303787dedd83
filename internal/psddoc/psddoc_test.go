package psddoc

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"
)

// testDoc builds a 4x4 document: a background layer, a group holding a
// "Signature" layer, and a top-level "Watermark" layer.
func testDoc() *Document {
	bg := &node{
		name:    "Background",
		visible: true,
		opacity: 0xff,
		rect:    image.Rect(0, 0, 4, 4),
		pic:     image.NewUniform(color.RGBA{R: 255, A: 255}),
	}
	sig := &node{
		name:    "Signature",
		visible: true,
		opacity: 0xff,
		rect:    image.Rect(2, 2, 4, 4),
		pic:     image.NewUniform(color.RGBA{B: 255, A: 255}),
	}
	group := &node{
		name:     "Overlays",
		visible:  true,
		group:    true,
		opacity:  0xff,
		children: []*node{sig},
	}
	wm := &node{
		name:    "Watermark Text",
		visible: true,
		opacity: 0xff,
		rect:    image.Rect(0, 0, 2, 2),
		pic:     image.NewUniform(color.RGBA{G: 255, A: 255}),
	}

	doc := &Document{rect: image.Rect(0, 0, 4, 4), top: []*node{bg, group, wm}}
	for _, n := range doc.top {
		doc.walk(n)
	}
	return doc
}

func TestFlatTraversal(t *testing.T) {
	doc := testDoc()
	layers := doc.Layers()
	if len(layers) != 4 {
		t.Fatalf("flat list has %d entries, want 4", len(layers))
	}
	wantNames := []string{"Background", "Overlays", "Signature", "Watermark Text"}
	for i, want := range wantNames {
		if layers[i].Name != want || layers[i].Index != i {
			t.Errorf("layer %d = %q (index %d), want %q", i, layers[i].Name, layers[i].Index, want)
		}
	}
	if !layers[1].Group {
		t.Error("group flag missing on Overlays")
	}
	if layers[2].Group {
		t.Error("Signature wrongly marked as group")
	}
}

func TestHideLayersByName(t *testing.T) {
	doc := testDoc()
	warnings := HideLayers(doc, []string{"signature"}) // case-insensitive
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	img := doc.Composite()
	if _, _, b, _ := img.At(3, 3).RGBA(); b != 0 {
		t.Error("hidden signature layer still composited")
	}
	if r, _, _, _ := img.At(3, 3).RGBA(); r == 0 {
		t.Error("background missing where signature was hidden")
	}
}

func TestHideLayersByIndex(t *testing.T) {
	doc := testDoc()
	warnings := HideLayers(doc, []string{"3"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	img := doc.Composite()
	if _, g, _, _ := img.At(0, 0).RGBA(); g != 0 {
		t.Error("hidden watermark layer still composited")
	}
}

func TestHideLayersWarnings(t *testing.T) {
	doc := testDoc()
	warnings := HideLayers(doc, []string{"Watermark", "99", "-1", "signature"})
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
	if warnings[0].Kind != LayerNotFound {
		t.Errorf("warning 0 kind = %v, want LayerNotFound", warnings[0].Kind)
	}
	if warnings[1].Kind != LayerIndexOutOfRange || warnings[2].Kind != LayerIndexOutOfRange {
		t.Errorf("index warnings wrong: %v", warnings[1:])
	}
	// The valid spec in the list still applied.
	if doc.Layers()[2].Visible {
		t.Error("valid spec after warnings was not applied")
	}
}

func TestHiddenGroupHidesSubtree(t *testing.T) {
	doc := testDoc()
	if w := HideLayers(doc, []string{"Overlays"}); len(w) != 0 {
		t.Fatalf("unexpected warnings: %v", w)
	}
	img := doc.Composite()
	if _, _, b, _ := img.At(3, 3).RGBA(); b != 0 {
		t.Error("child of hidden group still composited")
	}
}

func TestCompositeOpacity(t *testing.T) {
	doc := testDoc()
	doc.flat[3].opacity = 128
	img := doc.Composite()
	r, g, _, _ := img.At(0, 0).RGBA()
	if g == 0 {
		t.Error("half-opacity layer missing entirely")
	}
	if r == 0 {
		t.Error("background should show through half-opacity layer")
	}
}

func TestCompositeIsFileLocal(t *testing.T) {
	doc := testDoc()
	HideLayers(doc, []string{"Signature"})

	fresh := testDoc()
	if !fresh.Layers()[2].Visible {
		t.Error("visibility mutation leaked across documents")
	}
}

// buildPSD assembles a minimal RGB document byte stream: a solid red 4x4
// "Backdrop" layer and a hidden 2x2 "Veil" layer, 8-bit, raw compression.
func buildPSD(t *testing.T) []byte {
	t.Helper()
	const w, h = 4, 4

	type rawLayer struct {
		name  string
		rect  image.Rectangle
		flags uint8
		rgb   [3][]byte
	}
	plane := func(n int, v byte) []byte {
		p := make([]byte, n)
		for i := range p {
			p[i] = v
		}
		return p
	}
	layers := []rawLayer{
		{
			name: "Backdrop",
			rect: image.Rect(0, 0, 4, 4),
			rgb:  [3][]byte{plane(16, 0xff), plane(16, 0), plane(16, 0)},
		},
		{
			name:  "Veil",
			rect:  image.Rect(1, 1, 3, 3),
			flags: 2, // hidden
			rgb:   [3][]byte{plane(4, 0), plane(4, 0), plane(4, 0xff)},
		},
	}

	records := new(bytes.Buffer)
	channels := new(bytes.Buffer)
	for _, l := range layers {
		for _, v := range []int32{
			int32(l.rect.Min.Y), int32(l.rect.Min.X),
			int32(l.rect.Max.Y), int32(l.rect.Max.X),
		} {
			binary.Write(records, binary.BigEndian, v)
		}
		binary.Write(records, binary.BigEndian, uint16(len(l.rgb)))
		for id, p := range l.rgb {
			binary.Write(records, binary.BigEndian, int16(id))
			binary.Write(records, binary.BigEndian, uint32(2+len(p)))
			binary.Write(channels, binary.BigEndian, uint16(0)) // raw
			channels.Write(p)
		}
		records.WriteString("8BIM")
		records.WriteString("norm")
		records.WriteByte(0xff) // opacity
		records.WriteByte(0)    // clipping
		records.WriteByte(l.flags)
		records.WriteByte(0) // filler

		extra := new(bytes.Buffer)
		binary.Write(extra, binary.BigEndian, uint32(0)) // no layer mask
		binary.Write(extra, binary.BigEndian, uint32(0)) // no blending ranges
		extra.WriteByte(byte(len(l.name)))               // Pascal name, 4-byte padded
		extra.WriteString(l.name)
		for (extra.Len()-8)%4 != 0 {
			extra.WriteByte(0)
		}
		binary.Write(records, binary.BigEndian, uint32(extra.Len()))
		records.Write(extra.Bytes())
	}

	layerInfo := new(bytes.Buffer)
	binary.Write(layerInfo, binary.BigEndian, int16(len(layers)))
	layerInfo.Write(records.Bytes())
	layerInfo.Write(channels.Bytes())
	if layerInfo.Len()%2 != 0 {
		layerInfo.WriteByte(0)
	}

	section := new(bytes.Buffer)
	binary.Write(section, binary.BigEndian, uint32(layerInfo.Len()))
	section.Write(layerInfo.Bytes())
	binary.Write(section, binary.BigEndian, uint32(0)) // no global layer mask

	out := new(bytes.Buffer)
	out.WriteString("8BPS")
	binary.Write(out, binary.BigEndian, uint16(1)) // version
	out.Write(make([]byte, 6))                     // reserved
	binary.Write(out, binary.BigEndian, uint16(3)) // channels
	binary.Write(out, binary.BigEndian, uint32(h))
	binary.Write(out, binary.BigEndian, uint32(w))
	binary.Write(out, binary.BigEndian, uint16(8)) // depth
	binary.Write(out, binary.BigEndian, uint16(3)) // RGB
	binary.Write(out, binary.BigEndian, uint32(0)) // no color mode data
	binary.Write(out, binary.BigEndian, uint32(0)) // no image resources
	binary.Write(out, binary.BigEndian, uint32(section.Len()))
	out.Write(section.Bytes())
	binary.Write(out, binary.BigEndian, uint16(0)) // merged image, raw
	out.Write(make([]byte, 3*w*h))
	return out.Bytes()
}

func TestDecodeMinimalDocument(t *testing.T) {
	doc, err := Decode(bytes.NewReader(buildPSD(t)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got := doc.Bounds(); got != image.Rect(0, 0, 4, 4) {
		t.Errorf("bounds = %v, want (0,0)-(4,4)", got)
	}

	layers := doc.Layers()
	if len(layers) != 2 {
		t.Fatalf("layer count = %d, want 2", len(layers))
	}
	if layers[0].Name != "Backdrop" || !layers[0].Visible || layers[0].Group {
		t.Errorf("layer 0 = %+v", layers[0])
	}
	if layers[1].Name != "Veil" || layers[1].Visible || layers[1].Group {
		t.Errorf("layer 1 = %+v", layers[1])
	}

	// The hidden layer must not reach the composite; the backdrop must.
	img := doc.Composite()
	r, _, b, a := img.At(2, 2).RGBA()
	if r>>8 != 255 || b>>8 != 0 {
		t.Errorf("composite at (2,2) = %d,-,%d, want pure red", r>>8, b>>8)
	}
	if a == 0 {
		t.Error("composite fully transparent; layer pixels not decoded")
	}
}

func TestDecodeMinimalDocumentHideByName(t *testing.T) {
	doc, err := Decode(bytes.NewReader(buildPSD(t)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w := HideLayers(doc, []string{"backdrop"}); len(w) != 0 {
		t.Fatalf("unexpected warnings: %v", w)
	}
	img := doc.Composite()
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Error("hidden backdrop still composited")
	}
}
