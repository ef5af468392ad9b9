package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// convertGPSToDecimal converts a GPS coordinate in one of several raw shapes
// into signed decimal degrees:
//
//   - a [degrees, minutes, seconds] triple (numeric slice)
//   - a string like `51 deg 30' 15.4" N` or a plain decimal string
//   - an already-decimal number
//
// If ref is "S" or "W" the result is negated. Callers that determined the raw
// value is inherently signed pass an empty ref to skip hemisphere correction.
func convertGPSToDecimal(raw any, ref string) (float64, error) {
	var decimal float64

	switch v := raw.(type) {
	case []float64:
		if len(v) != 3 {
			return 0, fmt.Errorf("expected 3 coordinate components, got %d", len(v))
		}
		decimal = v[0] + v[1]/60.0 + v[2]/3600.0
	case []any:
		if len(v) != 3 {
			return 0, fmt.Errorf("expected 3 coordinate components, got %d", len(v))
		}
		var parts [3]float64
		for i, elem := range v {
			f, err := toFloat(elem)
			if err != nil {
				return 0, fmt.Errorf("coordinate component %d: %w", i, err)
			}
			parts[i] = f
		}
		decimal = parts[0] + parts[1]/60.0 + parts[2]/3600.0
	case string:
		d, err := parseGPSString(v)
		if err != nil {
			return 0, err
		}
		decimal = d
	case float64:
		decimal = v
	case float32:
		decimal = float64(v)
	case int:
		decimal = float64(v)
	case int64:
		decimal = float64(v)
	default:
		return 0, fmt.Errorf("unrecognized GPS format %T: %v", raw, raw)
	}

	if ref == "S" || ref == "W" {
		decimal = -decimal
	}

	return decimal, nil
}

// parseGPSString parses textual coordinates such as `51 deg 30' 15.4"`.
// Unit markers are stripped, then the remaining whitespace-separated tokens
// are read as degrees, minutes, seconds; missing minutes/seconds default to 0.
func parseGPSString(s string) (float64, error) {
	cleaned := strings.NewReplacer("deg", "", "'", "", `"`, "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)

	parts := strings.Fields(cleaned)
	if len(parts) == 0 {
		return strconv.ParseFloat(cleaned, 64)
	}

	degrees, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		// Not a DMS string; last resort is the whole text as a plain decimal.
		return strconv.ParseFloat(cleaned, 64)
	}

	var minutes, seconds float64
	if len(parts) > 1 {
		if minutes, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("invalid minutes %q: %w", parts[1], err)
		}
	}
	if len(parts) > 2 {
		if seconds, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("invalid seconds %q: %w", parts[2], err)
		}
	}

	return degrees + minutes/60.0 + seconds/3600.0, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// validGPSRange reports whether the pair is a plausible coordinate.
func validGPSRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// gpsKeyPair names the exiftool keys for one candidate coordinate source.
// An empty ref key means the value carries its own sign.
type gpsKeyPair struct {
	lat, latRef, lon, lonRef string
}

// exiftoolGPSKeys lists the key pairs tried against the bulk exiftool bag,
// most specific first. Composite:GPSPosition is a single "lat, lon" string.
var exiftoolGPSKeys = []gpsKeyPair{
	{"EXIF:GPSLatitude", "EXIF:GPSLatitudeRef", "EXIF:GPSLongitude", "EXIF:GPSLongitudeRef"},
	{"Composite:GPSLatitude", "Composite:GPSLatitudeRef", "Composite:GPSLongitude", "Composite:GPSLongitudeRef"},
	{"XMP:GPSLatitude", "XMP:GPSLatitudeRef", "XMP:GPSLongitude", "XMP:GPSLongitudeRef"},
	{"GPS:Latitude", "GPS:LatitudeRef", "GPS:Longitude", "GPS:LongitudeRef"},
	{"EXIF:GPSLatitude", "", "EXIF:GPSLongitude", ""},
	{"Composite:GPSPosition", "", "", ""},
}

// extractGPSData resolves latitude/longitude by trying, in order: the bulk
// exiftool bag, the embedded EXIF bag, the macOS metadata service, and a
// narrow exiftool GPS query. A result is accepted only when both coordinates
// are present and in range; otherwise both are absent.
func extractGPSData(tags, toolMeta MetadataBag, path string, tools toolSet) (float64, float64, bool) {
	lat, lon, found := gpsFromExiftool(toolMeta, path)

	if !found {
		lat, lon, found = gpsFromExifTags(tags, path)
	}

	if !found && tools.mdls {
		lat, lon, found = gpsFromMdls(path)
	}

	if !found && tools.exiftool {
		lat, lon, found = gpsFromExiftoolDirect(path)
	}

	if !found {
		log.Debug().Str("path", path).Msg("no GPS coordinates found")
		return 0, 0, false
	}

	if !validGPSRange(lat, lon) {
		log.Warn().Str("path", path).
			Float64("lat", lat).Float64("lon", lon).
			Msg("discarding out-of-range GPS coordinates")
		return 0, 0, false
	}

	log.Debug().Str("path", path).
		Float64("lat", lat).Float64("lon", lon).
		Msg("resolved GPS coordinates")
	return lat, lon, true
}

// gpsFromExiftool tries the known key pairs against the bulk exiftool bag.
func gpsFromExiftool(meta MetadataBag, path string) (float64, float64, bool) {
	if len(meta) == 0 {
		return 0, 0, false
	}

	for _, keys := range exiftoolGPSKeys {
		// Combined "lat, lon" position string.
		if keys.lat == "Composite:GPSPosition" {
			pos, ok := meta[keys.lat].(string)
			if !ok || !strings.Contains(pos, ",") {
				continue
			}
			latStr, lonStr, _ := strings.Cut(pos, ",")
			lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
			lon, err2 := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
			if err1 != nil || err2 != nil {
				log.Debug().Str("path", path).Str("position", pos).
					Msg("unparsable composite GPS position")
				continue
			}
			return lat, lon, true
		}

		rawLat, okLat := meta[keys.lat]
		rawLon, okLon := meta[keys.lon]
		if !okLat || !okLon {
			continue
		}

		latRef := refFromBag(meta, keys.latRef, "N")
		lonRef := refFromBag(meta, keys.lonRef, "E")

		// Already-signed decimals need no hemisphere correction.
		if f, ok := rawLat.(float64); ok && f < 0 {
			latRef = ""
		}
		if f, ok := rawLon.(float64); ok && f < 0 {
			lonRef = ""
		}

		lat, err := convertGPSToDecimal(rawLat, latRef)
		if err != nil {
			log.Debug().Str("path", path).Str("key", keys.lat).Err(err).
				Msg("could not convert latitude")
			continue
		}
		lon, err := convertGPSToDecimal(rawLon, lonRef)
		if err != nil {
			log.Debug().Str("path", path).Str("key", keys.lon).Err(err).
				Msg("could not convert longitude")
			continue
		}
		return lat, lon, true
	}

	return 0, 0, false
}

// gpsFromExifTags reads the embedded GPS tags with their separate reference
// tags from the shallow EXIF bag.
func gpsFromExifTags(tags MetadataBag, path string) (float64, float64, bool) {
	if len(tags) == 0 {
		return 0, 0, false
	}

	rawLat, okLat := tags["GPSLatitude"]
	rawLon, okLon := tags["GPSLongitude"]
	if !okLat || !okLon {
		return 0, 0, false
	}

	latRef := refFromBag(tags, "GPSLatitudeRef", "N")
	lonRef := refFromBag(tags, "GPSLongitudeRef", "E")

	lat, err := convertGPSToDecimal(rawLat, latRef)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("could not convert EXIF latitude")
		return 0, 0, false
	}
	lon, err := convertGPSToDecimal(rawLon, lonRef)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("could not convert EXIF longitude")
		return 0, 0, false
	}

	return lat, lon, true
}

// refFromBag returns the hemisphere reference stored under key, or def when
// the key is absent or an empty ref key was requested.
func refFromBag(meta MetadataBag, key, def string) string {
	if key == "" {
		return ""
	}
	if v, ok := meta[key].(string); ok && v != "" {
		return strings.TrimSpace(v)
	}
	return def
}
