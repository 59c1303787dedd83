package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ResizeToMax scales img uniformly so its larger dimension equals max,
// preserving aspect ratio. Images already within bounds (or a zero max) pass
// through untouched. Uses Catmull-Rom resampling.
func ResizeToMax(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return img
	}

	var newW, newH int
	if w >= h {
		newW = max
		newH = scaleDim(h, max, w)
	} else {
		newH = max
		newW = scaleDim(w, max, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// scaleDim scales dim by max/larger, rounded to nearest, floored at 1.
func scaleDim(dim, max, larger int) int {
	v := (dim*max + larger/2) / larger
	if v < 1 {
		return 1
	}
	return v
}
