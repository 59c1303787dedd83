package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"autosig/internal/errs"
)

// Placement is the resolved pixel offset of the signature from the
// bottom-right corner of the target image.
type Placement struct {
	OffsetX int
	OffsetY int
}

// PixelPlacement uses the same literal offset on both axes.
func PixelPlacement(px int) Placement {
	return Placement{OffsetX: px, OffsetY: px}
}

// PercentPlacement derives the offset from the target dimensions. The percent
// value is validated to [0,50] at configuration time.
func PercentPlacement(width, height int, percent float64) Placement {
	return Placement{
		OffsetX: int(float64(width) * percent / 100),
		OffsetY: int(float64(height) * percent / 100),
	}
}

// Composite alpha-blends sig onto img with the signature's bottom-right
// corner inset by the placement offset. Fails when the signature does not fit
// inside the image at that offset.
func Composite(img image.Image, sig image.Image, p Placement) (*image.RGBA, error) {
	ib, sb := img.Bounds(), sig.Bounds()
	x := ib.Dx() - sb.Dx() - p.OffsetX
	y := ib.Dy() - sb.Dy() - p.OffsetY
	if x < 0 || y < 0 {
		return nil, errs.Wrap(errs.CategoryEncode, "imaging.composite",
			fmt.Errorf("%w: signature %dx%d on image %dx%d at offset (%d,%d)",
				errs.ErrSignatureTooLarge, sb.Dx(), sb.Dy(), ib.Dx(), ib.Dy(), p.OffsetX, p.OffsetY))
	}

	dst := ToRGBA(img)
	target := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	draw.Draw(dst, target, sig, sb.Min, draw.Over)
	return dst, nil
}

// FlattenWhite composites img onto an opaque white background. Output formats
// without an alpha channel go through this before encoding.
func FlattenWhite(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
