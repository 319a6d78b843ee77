package playpen

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-wipe", "after-wipe"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteRegionPNG(t *testing.T) {
	r := NewRegion("roof/left", Vec2{}, NewSolidMask(12, 8), ColorWhite)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteRegionPNG(r, dir, "first pass")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "_roof_left_first_pass.png") {
		t.Errorf("path = %q, want suffix _roof_left_first_pass.png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("image size = %dx%d, want 12x8", b.Dx(), b.Dy())
	}
}
