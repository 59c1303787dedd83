package format

import (
	"errors"
	"testing"

	"autosig/internal/errs"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Tag
		wantErr bool
	}{
		{"jpg", "jpg", JPG, false},
		{"jpeg alias", "jpeg", JPG, false},
		{"tif alias", "tif", TIFF, false},
		{"tiff", "tiff", TIFF, false},
		{"extension with dot", ".PNG", PNG, false},
		{"psd", "psd", PSD, false},
		{"webp", "webp", WebP, false},
		{"unknown", "raw", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Canonicalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errs.ErrUnsupportedFormat) {
					t.Errorf("error %v does not wrap ErrUnsupportedFormat", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandAliases(t *testing.T) {
	set, err := Expand([]string{"tiff", "jpeg"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !set[TIFF] || !set[JPG] {
		t.Fatalf("expected tiff and jpg in set, got %v", set)
	}

	// Either alias spelling must land on the same canonical tag, so a filter
	// on "tiff" matches ".tif" files and vice versa.
	for _, ext := range []string{"tif", "tiff", "jpg", "jpeg"} {
		tag, err := Canonicalize(ext)
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", ext, err)
		}
		if !set[tag] {
			t.Errorf("filter does not match extension %q", ext)
		}
	}
}

func TestExpandRejectsUnknown(t *testing.T) {
	if _, err := Expand([]string{"png", "xcf"}); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestCapabilities(t *testing.T) {
	if !IsMultiFrame(GIF) {
		t.Error("gif should be multi-frame")
	}
	if IsMultiFrame(PNG) {
		t.Error("png should not be multi-frame")
	}
	if !IsLayered(PSD) {
		t.Error("psd should be layered")
	}
	if !IsOpaque(JPG) {
		t.Error("jpg should be opaque")
	}
	if IsOpaque(PNG) {
		t.Error("png should preserve alpha")
	}
	if CanEncode(PSD) {
		t.Error("psd must not be a write target")
	}
	if !CanEncode(WebP) {
		t.Error("webp should be writable")
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(JPG); got != "jpg" {
		t.Errorf("Extension(JPG) = %q, want jpg", got)
	}
	if got := Extension(TIFF); got != "tiff" {
		t.Errorf("Extension(TIFF) = %q, want tiff", got)
	}
}
