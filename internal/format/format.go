// Package format holds the canonical list of supported image formats and
// resolves the extension aliases between them.
package format

import (
	"fmt"
	"sort"
	"strings"

	"autosig/internal/errs"
)

// Tag is the canonical identifier of a supported format.
type Tag string

const (
	PSD  Tag = "psd"
	PNG  Tag = "png"
	JPG  Tag = "jpg"
	GIF  Tag = "gif"
	TIFF Tag = "tiff"
	BMP  Tag = "bmp"
	WebP Tag = "webp"
)

type spec struct {
	aliases    []string // accepted extensions / tag spellings, canonical first
	layered    bool
	multiFrame bool
	opaque     bool // encoding discards the alpha channel
	writable   bool
}

var specs = map[Tag]spec{
	PSD:  {aliases: []string{"psd"}, layered: true},
	PNG:  {aliases: []string{"png"}, writable: true},
	JPG:  {aliases: []string{"jpg", "jpeg"}, opaque: true, writable: true},
	GIF:  {aliases: []string{"gif"}, multiFrame: true, writable: true},
	TIFF: {aliases: []string{"tiff", "tif"}, writable: true},
	BMP:  {aliases: []string{"bmp"}, writable: true},
	WebP: {aliases: []string{"webp"}, writable: true},
}

var byAlias = func() map[string]Tag {
	m := make(map[string]Tag)
	for tag, s := range specs {
		for _, a := range s.aliases {
			m[a] = tag
		}
	}
	return m
}()

// Canonicalize resolves a format tag or file extension (with or without a
// leading dot, any case) to its canonical Tag.
func Canonicalize(tag string) (Tag, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "."))
	if t, ok := byAlias[key]; ok {
		return t, nil
	}
	return "", errs.Wrap(errs.CategoryConfig, "format.canonicalize",
		fmt.Errorf("%w: %q", errs.ErrUnsupportedFormat, tag))
}

// Expand resolves a set of tag spellings to canonical tags, applying the
// bidirectional aliases (jpg/jpeg, tiff/tif). A filter naming either alias
// matches both spellings on disk because discovery canonicalizes extensions
// through the same table.
func Expand(tags []string) (map[Tag]bool, error) {
	out := make(map[Tag]bool, len(tags))
	for _, raw := range tags {
		t, err := Canonicalize(raw)
		if err != nil {
			return nil, err
		}
		out[t] = true
	}
	return out, nil
}

// All returns every supported tag in stable order.
func All() []Tag {
	tags := make([]Tag, 0, len(specs))
	for t := range specs {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// AllSet returns the default input filter covering every supported format.
func AllSet() map[Tag]bool {
	out := make(map[Tag]bool, len(specs))
	for t := range specs {
		out[t] = true
	}
	return out
}

// IsMultiFrame reports whether the format may carry more than one frame.
// Such files are processed using their first frame only.
func IsMultiFrame(t Tag) bool { return specs[t].multiFrame }

// IsLayered reports whether the format is a layered document.
func IsLayered(t Tag) bool { return specs[t].layered }

// IsOpaque reports whether encoding to this format discards the alpha
// channel, requiring a flatten onto white first.
func IsOpaque(t Tag) bool { return specs[t].opaque }

// CanEncode reports whether the format is a valid output target.
func CanEncode(t Tag) bool { return specs[t].writable }

// Extension returns the output file extension (without dot) for a tag.
func Extension(t Tag) string { return specs[t].aliases[0] }

// Aliases returns every accepted spelling for a tag, canonical first.
func Aliases(t Tag) []string { return specs[t].aliases }
