package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestReadDimensions_PNG(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "small.png", 320, 240)

	w, h, err := readDimensions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 320 || h != 240 {
		t.Errorf("got %dx%d, want 320x240", w, h)
	}
}

func TestReadDimensions_NotAnImage(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "junk.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, _, err := readDimensions(path); err == nil {
		t.Error("expected error for non-image content")
	}
}

func TestReadDimensions_MissingFile(t *testing.T) {
	if _, _, err := readDimensions(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadHEICDimensions_NoToolsNoMeta(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.heic")
	if err := os.WriteFile(path, []byte("not a heic container"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, _, tempFile, err := readHEICDimensions(path, toolSet{})
	if err == nil {
		t.Error("expected error for undecodable HEIC without exiftool")
	}
	if tempFile != "" {
		t.Errorf("no temp file should be created, got %q", tempFile)
	}
}
