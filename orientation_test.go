package main

import "testing"

func TestExtractOrientation_ExiftoolFirst(t *testing.T) {
	tags := MetadataBag{"GPSImgDirection": 10.0}
	meta := MetadataBag{"EXIF:GPSImgDirection": 271.5}

	bearing, ok := extractOrientation(tags, meta)
	if !ok {
		t.Fatal("expected a bearing")
	}
	if !almostEqual(bearing, 271.5) {
		t.Errorf("bearing = %f, want 271.5 (exiftool source wins)", bearing)
	}
}

func TestExtractOrientation_FieldPriority(t *testing.T) {
	meta := MetadataBag{
		"EXIF:GPSDestBearing": 45.0,
		"XMP:GPSImgDirection": 180.25,
	}

	bearing, ok := extractOrientation(MetadataBag{}, meta)
	if !ok {
		t.Fatal("expected a bearing")
	}
	if !almostEqual(bearing, 180.25) {
		t.Errorf("bearing = %f, want GPSImgDirection to win over GPSDestBearing", bearing)
	}
}

func TestExtractOrientation_ExifFallback(t *testing.T) {
	tags := MetadataBag{"GPSDestBearing": 92.0}

	bearing, ok := extractOrientation(tags, MetadataBag{})
	if !ok {
		t.Fatal("expected a bearing")
	}
	if !almostEqual(bearing, 92) {
		t.Errorf("bearing = %f, want 92", bearing)
	}
}

func TestExtractOrientation_SkipsUnparsableValues(t *testing.T) {
	meta := MetadataBag{"EXIF:GPSImgDirection": "not a number"}
	tags := MetadataBag{"GPSImgDirection": 33.0}

	bearing, ok := extractOrientation(tags, meta)
	if !ok {
		t.Fatal("expected a bearing from the embedded tags")
	}
	if !almostEqual(bearing, 33) {
		t.Errorf("bearing = %f, want 33", bearing)
	}
}

func TestExtractOrientation_Absent(t *testing.T) {
	if _, ok := extractOrientation(MetadataBag{}, MetadataBag{}); ok {
		t.Error("no bearing fields should yield absence")
	}
}

func TestExtractOrientation_NumericString(t *testing.T) {
	meta := MetadataBag{"XMP:GPSDestBearing": "118.5"}

	bearing, ok := extractOrientation(MetadataBag{}, meta)
	if !ok {
		t.Fatal("expected a bearing")
	}
	if !almostEqual(bearing, 118.5) {
		t.Errorf("bearing = %f, want 118.5", bearing)
	}
}
