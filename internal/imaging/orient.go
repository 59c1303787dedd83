package imaging

import (
	"image"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// ReadOrientation extracts the EXIF orientation value (1-8) from rs. Returns
// 1 (upright) when the file carries no EXIF data or no orientation tag; a
// missing tag is never an error.
func ReadOrientation(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 1, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return 1, nil
		}
		return 1, err
	}

	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		if v := orientationValue(tag.Value); v >= 1 && v <= 8 {
			return v, nil
		}
	}
	return 1, nil
}

func orientationValue(v interface{}) int {
	switch t := v.(type) {
	case []uint16:
		if len(t) > 0 {
			return int(t[0])
		}
	case []uint32:
		if len(t) > 0 {
			return int(t[0])
		}
	case uint16:
		return int(t)
	case int:
		return t
	}
	return 0
}

func isNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// ApplyOrientation rotates/mirrors img so it displays upright, per the EXIF
// orientation value. Value 1 (and anything out of range) is the identity.
func ApplyOrientation(img image.Image, orientation int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	var mapPt func(x, y int) (int, int) // dst coords -> src offsets within bounds

	switch orientation {
	case 2: // mirrored horizontally
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		mapPt = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // rotated 180
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		mapPt = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // mirrored vertically
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		mapPt = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // mirrored then rotated 270 CW
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		mapPt = func(x, y int) (int, int) { return y, x }
	case 6: // rotated 90 CW
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		mapPt = func(x, y int) (int, int) { return y, h - 1 - x }
	case 7: // mirrored then rotated 90 CW
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		mapPt = func(x, y int) (int, int) { return w - 1 - y, h - 1 - x }
	case 8: // rotated 270 CW
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
		mapPt = func(x, y int) (int, int) { return w - 1 - y, x }
	default:
		return img
	}

	db := dst.Bounds()
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			sx, sy := mapPt(x, y)
			dst.Set(x, y, img.At(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return dst
}
