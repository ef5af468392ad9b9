package main

import (
	"github.com/rs/zerolog/log"
)

// exiftoolBearingKeys lists the exiftool fields that may carry the compass
// bearing, in priority order.
var exiftoolBearingKeys = []string{
	"EXIF:GPSImgDirection",
	"XMP:GPSImgDirection",
	"GPS:GPSImgDirection",
	"GPS:ImgDirection",
	"EXIF:GPSDestBearing",
	"XMP:GPSDestBearing",
}

// exifBearingKeys lists the embedded-tag bearing fields.
var exifBearingKeys = []string{
	"GPSImgDirection",
	"GPSDestBearing",
}

// extractOrientation resolves the compass bearing the camera was pointed when
// the photo was taken. The bulk exiftool bag is consulted first, then the
// embedded EXIF bag. Values that cannot be coerced to a number are skipped.
func extractOrientation(tags, toolMeta MetadataBag) (float64, bool) {
	for _, key := range exiftoolBearingKeys {
		v, ok := toolMeta[key]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			continue
		}
		log.Debug().Str("key", key).Float64("bearing", f).Msg("found orientation in exiftool metadata")
		return f, true
	}

	for _, key := range exifBearingKeys {
		v, ok := tags[key]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			continue
		}
		log.Debug().Str("key", key).Float64("bearing", f).Msg("found orientation in EXIF tags")
		return f, true
	}

	return 0, false
}
