package main

import "testing"

func TestParseExiftoolOutput_SingleObject(t *testing.T) {
	out := []byte(`[{
		"SourceFile": "photo.heic",
		"EXIF:ImageDescription": "Harbour at dawn",
		"EXIF:GPSLatitude": 59.9139,
		"EXIF:GPSLongitude": 10.7522
	}]`)

	bag, err := parseExiftoolOutput(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bag["EXIF:ImageDescription"] != "Harbour at dawn" {
		t.Errorf("description = %v", bag["EXIF:ImageDescription"])
	}
	if lat, ok := bag["EXIF:GPSLatitude"].(float64); !ok || !almostEqual(lat, 59.9139) {
		t.Errorf("latitude = %v", bag["EXIF:GPSLatitude"])
	}
}

func TestParseExiftoolOutput_EmptyArray(t *testing.T) {
	bag, err := parseExiftoolOutput([]byte("[]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bag) != 0 {
		t.Errorf("expected empty bag, got %v", bag)
	}
}

func TestParseExiftoolOutput_Garbage(t *testing.T) {
	if _, err := parseExiftoolOutput([]byte("exiftool: command not found")); err == nil {
		t.Error("expected error for non-JSON output")
	}
}

func TestParseExiftoolOutput_TrailingWhitespace(t *testing.T) {
	bag, err := parseExiftoolOutput([]byte("[{\"XMP:Title\": \"ok\"}]\n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bag["XMP:Title"] != "ok" {
		t.Errorf("title = %v", bag["XMP:Title"])
	}
}
