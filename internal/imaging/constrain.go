package imaging

import (
	"image"
	"image/draw"
)

// Constrain center-crops img when its ratio exceeds the configured maximum
// for its orientation. Portrait (and square) images taller than allowed lose
// height; landscape images wider than allowed lose width. A zero max disables
// the corresponding check. Cropping only ever reduces the image; odd
// remainders bias the crop window toward the top/left edge.
func Constrain(img image.Image, o Orientation, maxPortrait, maxLandscape float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ratio := float64(w) / float64(h)

	switch o {
	case Portrait, Square:
		if maxPortrait <= 0 || ratio >= maxPortrait {
			return img
		}
		newH := int(float64(w) / maxPortrait)
		if newH >= h {
			return img
		}
		top := (h - newH) / 2
		return crop(img, image.Rect(b.Min.X, b.Min.Y+top, b.Max.X, b.Min.Y+top+newH))
	case Landscape:
		if maxLandscape <= 0 || ratio <= maxLandscape {
			return img
		}
		newW := int(float64(h) * maxLandscape)
		if newW >= w {
			return img
		}
		left := (w - newW) / 2
		return crop(img, image.Rect(b.Min.X+left, b.Min.Y, b.Min.X+left+newW, b.Max.Y))
	}
	return img
}

func crop(img image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// ToRGBA returns img as *image.RGBA, copying only when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
