package codec

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"autosig/internal/errs"
	"autosig/internal/format"
	"autosig/internal/imaging"
)

// Encode writes img to w in the target format. When the target has no alpha
// channel, sources that carry alpha are flattened onto opaque white first;
// all others keep alpha end-to-end. Quality applies to the lossy formats only.
func Encode(w io.Writer, img image.Image, tag format.Tag, quality int) error {
	if !format.CanEncode(tag) {
		return errs.Wrap(errs.CategoryEncode, "codec.encode",
			fmt.Errorf("%w: %s is not a write target", errs.ErrUnsupportedFormat, tag))
	}
	if format.IsOpaque(tag) && hasAlpha(img) {
		img = imaging.FlattenWhite(img)
	}

	var err error
	switch tag {
	case format.JPG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case format.PNG:
		err = png.Encode(w, img)
	case format.GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	case format.TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case format.BMP:
		err = bmp.Encode(w, img)
	case format.WebP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
	default:
		err = errs.ErrUnsupportedFormat
	}
	return errs.Wrap(errs.CategoryEncode, "codec.encode", err)
}

// WriteFile encodes img to path atomically: the bytes go to a temp file in
// the destination directory which is renamed over path only after a
// successful encode, so no partial file is ever left behind.
func WriteFile(path string, img image.Image, tag format.Tag, quality int) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".autosig-*.tmp")
	if err != nil {
		return errs.Wrap(errs.CategoryWrite, "codec.write", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, img, tag, quality); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(errs.CategoryWrite, "codec.write", err)
	}
	if err := replaceFile(tmp.Name(), path); err != nil {
		return errs.Wrap(errs.CategoryWrite, "codec.write", err)
	}
	return nil
}

// hasAlpha reports whether any pixel of img is non-opaque. Images that do not
// expose an Opaque check are assumed to carry alpha.
func hasAlpha(img image.Image) bool {
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	return true
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
