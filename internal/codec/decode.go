// Package codec decodes source images and encodes pipeline output, keyed by
// canonical format tag.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"autosig/internal/errs"
	"autosig/internal/format"
	"autosig/internal/imaging"
	"autosig/internal/psddoc"
)

// Image is a decoded source image.
type Image struct {
	Format format.Tag
	Pixels image.Image      // nil for layered documents until flattened
	Doc    *psddoc.Document // non-nil for layered formats
	Frames int              // >1 when a multi-frame file had extra frames
}

// Flatten returns the raster pixels, compositing layered documents with
// their current visibility flags.
func (im *Image) Flatten() image.Image {
	if im.Doc != nil {
		return im.Doc.Composite()
	}
	return im.Pixels
}

// Bounds returns the pixel dimensions without forcing a layered composite.
func (im *Image) Bounds() image.Rectangle {
	if im.Doc != nil {
		return im.Doc.Bounds()
	}
	return im.Pixels.Bounds()
}

// DecodeFile reads and decodes the image at path. The format is derived from
// the file extension. JPEG and TIFF sources are rotated upright according to
// their EXIF orientation tag so later ratio checks see the image as displayed.
func DecodeFile(path string) (*Image, error) {
	tag, err := format.Canonicalize(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.CategoryDecode, "codec.read", err)
	}

	im, err := decode(tag, data)
	if err != nil {
		return nil, errs.Wrap(errs.CategoryDecode, "codec.decode",
			fmt.Errorf("%w: %s: %v", errs.ErrUnreadableImage, filepath.Base(path), err))
	}
	return im, nil
}

func decode(tag format.Tag, data []byte) (*Image, error) {
	r := bytes.NewReader(data)
	im := &Image{Format: tag}

	switch tag {
	case format.PSD:
		doc, err := psddoc.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Doc = doc
		return im, nil

	case format.GIF:
		g, err := gif.DecodeAll(r)
		if err != nil {
			return nil, err
		}
		im.Frames = len(g.Image)
		im.Pixels = firstFrame(g)

	case format.JPG:
		img, err := jpeg.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Pixels = orientUpright(img, data)

	case format.TIFF:
		img, err := tiff.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Pixels = orientUpright(img, data)

	case format.PNG:
		img, err := png.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Pixels = img

	case format.BMP:
		img, err := bmp.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Pixels = img

	case format.WebP:
		img, err := webp.Decode(r)
		if err != nil {
			return nil, err
		}
		im.Pixels = img

	default:
		return nil, errs.ErrUnsupportedFormat
	}
	return im, nil
}

// firstFrame renders the first frame of an animation onto the logical canvas.
// Frames may be smaller than the canvas and offset within it.
func firstFrame(g *gif.GIF) image.Image {
	frame := g.Image[0]
	canvas := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if g.Config.Width == 0 || g.Config.Height == 0 || frame.Bounds() == canvas {
		return frame
	}
	dst := image.NewRGBA(canvas)
	fb := frame.Bounds()
	for y := fb.Min.Y; y < fb.Max.Y; y++ {
		for x := fb.Min.X; x < fb.Max.X; x++ {
			dst.Set(x, y, frame.At(x, y))
		}
	}
	return dst
}

func orientUpright(img image.Image, data []byte) image.Image {
	// EXIF problems never fail a decode; the image is used as stored.
	o, err := imaging.ReadOrientation(bytes.NewReader(data))
	if err != nil || o <= 1 {
		return img
	}
	return imaging.ApplyOrientation(img, o)
}
