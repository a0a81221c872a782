package artwork

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(200, 100, 42)
	b := Generate(200, 100, 42)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different images")
	}

	c := Generate(200, 100, 43)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different seeds produced identical images")
	}
}

func TestGenerate_Bounds(t *testing.T) {
	img := Generate(320, 180, 1)
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 180 {
		t.Errorf("bounds = %v, want 320x180", bounds)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := Save(path, 120, 80, 7); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open saved file: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("decoded bounds = %v, want 120x80", img.Bounds())
	}
}
