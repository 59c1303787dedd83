package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"autosig/internal/errs"
)

func TestCompositePlacement(t *testing.T) {
	img := solid(100, 100, color.RGBA{R: 255, A: 255})
	sig := solid(10, 10, color.RGBA{B: 255, A: 255})

	got, err := Composite(img, sig, PixelPlacement(20))
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	// Signature top-left lands at (100-10-20, 100-10-20) = (70, 70).
	if _, _, b, _ := got.At(70, 70).RGBA(); b == 0 {
		t.Error("signature missing at (70,70)")
	}
	if _, _, b, _ := got.At(69, 70).RGBA(); b != 0 {
		t.Error("signature bled left of placement")
	}
	if _, _, b, _ := got.At(80, 80).RGBA(); b != 0 {
		t.Error("signature extends past its bounds")
	}
}

func TestCompositeAlphaBlend(t *testing.T) {
	img := solid(50, 50, color.RGBA{R: 200, A: 255})
	sig := solid(10, 10, color.RGBA{B: 100, A: 128}) // premultiplied semi-transparent

	got, err := Composite(img, sig, PixelPlacement(0))
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	r, _, b, a := got.At(45, 45).RGBA()
	if a>>8 != 255 {
		t.Errorf("alpha = %d, want opaque", a>>8)
	}
	// Over operator: some red shows through, blue from the signature present.
	if r == 0 || b == 0 {
		t.Errorf("expected blended pixel, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestCompositeTooLarge(t *testing.T) {
	img := solid(200, 200, color.RGBA{A: 255})
	sig := solid(300, 300, color.RGBA{A: 255})

	if _, err := Composite(img, sig, PixelPlacement(20)); !errors.Is(err, errs.ErrSignatureTooLarge) {
		t.Fatalf("expected ErrSignatureTooLarge, got %v", err)
	}

	// Exact fit at zero offset is allowed.
	exact := solid(200, 200, color.RGBA{A: 255})
	if _, err := Composite(img, exact, PixelPlacement(0)); err != nil {
		t.Fatalf("exact fit should succeed: %v", err)
	}
}

func TestPercentPlacement(t *testing.T) {
	p := PercentPlacement(1000, 400, 5)
	if p.OffsetX != 50 || p.OffsetY != 20 {
		t.Errorf("got offsets (%d,%d), want (50,20)", p.OffsetX, p.OffsetY)
	}
}

func TestFlattenWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2)) // fully transparent
	got := FlattenWhite(img)
	r, g, b, a := got.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("transparent pixel flattened to %d,%d,%d,%d; want white", r>>8, g>>8, b>>8, a>>8)
	}
}
