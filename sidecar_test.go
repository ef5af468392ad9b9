package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSidecarCaption_Found(t *testing.T) {
	tmpDir := t.TempDir()
	photoPath := filepath.Join(tmpDir, "IMG_0042.heic")
	sidecarPath := filepath.Join(tmpDir, "IMG_0042.AAE")

	sidecarContent := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<string name="description">Sunset over the bay</string>
</dict>
</plist>`

	if err := os.WriteFile(photoPath, []byte("photo"), 0644); err != nil {
		t.Fatalf("failed to write photo file: %v", err)
	}
	if err := os.WriteFile(sidecarPath, []byte(sidecarContent), 0644); err != nil {
		t.Fatalf("failed to write sidecar file: %v", err)
	}

	caption, ok := readSidecarCaption(photoPath)
	if !ok {
		t.Fatal("expected a caption from the sidecar")
	}
	if caption != "Sunset over the bay" {
		t.Errorf("caption = %q, want %q", caption, "Sunset over the bay")
	}
}

func TestReadSidecarCaption_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	photoPath := filepath.Join(tmpDir, "IMG_0001.jpg")

	if _, ok := readSidecarCaption(photoPath); ok {
		t.Error("missing sidecar must be silent, not produce a caption")
	}
}

func TestReadSidecarCaption_NoDescriptionElement(t *testing.T) {
	tmpDir := t.TempDir()
	photoPath := filepath.Join(tmpDir, "IMG_0002.jpg")
	sidecarPath := filepath.Join(tmpDir, "IMG_0002.AAE")

	if err := os.WriteFile(sidecarPath, []byte("<dict><string name=\"other\">x</string></dict>"), 0644); err != nil {
		t.Fatalf("failed to write sidecar file: %v", err)
	}

	if _, ok := readSidecarCaption(photoPath); ok {
		t.Error("sidecar without a description element must contribute nothing")
	}
}
