package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// toolSet records which external metadata tools are reachable. Detected once
// at first use; absence removes the corresponding strategies from the
// cascades, it is never an error.
type toolSet struct {
	exiftool bool
	mdls     bool
	sips     bool
}

var (
	toolsOnce     sync.Once
	detectedTools toolSet
)

// availableTools probes for the external collaborators once per process.
func availableTools() toolSet {
	toolsOnce.Do(func() {
		detectedTools = detectTools()
	})
	return detectedTools
}

func detectTools() toolSet {
	var t toolSet

	if _, err := exec.LookPath("exiftool"); err == nil {
		t.exiftool = true
	} else {
		log.Warn().Msg("exiftool not found in PATH; HEIC metadata support degraded. Install it: https://exiftool.org/")
	}

	if _, err := os.Stat(mdlsPath); err == nil {
		t.mdls = true
	}
	if _, err := os.Stat(sipsPath); err == nil {
		t.sips = true
	}

	return t
}

// runExiftool invokes exiftool for the full tag set of one photo and returns
// the parsed metadata as a flat bag. Flags request JSON output, numeric
// values, all tag groups, unknown tags, and group-1 prefixed keys. Any
// failure degrades to an empty bag.
func runExiftool(path string) MetadataBag {
	out, err := runExiftoolCommand("-j", "-n", "-a", "-u", "-G1", path)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("exiftool bulk query failed")
		return MetadataBag{}
	}

	bag, err := parseExiftoolOutput(out)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("could not parse exiftool output")
		return MetadataBag{}
	}
	return bag
}

// runExiftoolGPSQuery runs the narrow numeric GPS query and returns both
// coordinates, or ok=false when either is missing.
func runExiftoolGPSQuery(path string) (float64, float64, bool) {
	out, err := runExiftoolCommand("-n", "-json", "-GPSLatitude", "-GPSLongitude", path)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("exiftool GPS query failed")
		return 0, 0, false
	}

	bag, err := parseExiftoolOutput(out)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("could not parse exiftool GPS output")
		return 0, 0, false
	}

	lat, okLat := bag["GPSLatitude"].(float64)
	lon, okLon := bag["GPSLongitude"].(float64)
	if !okLat || !okLon {
		return 0, 0, false
	}
	return lat, lon, true
}

// gpsFromExiftoolDirect adapts the narrow query for the GPS cascade.
func gpsFromExiftoolDirect(path string) (float64, float64, bool) {
	lat, lon, ok := runExiftoolGPSQuery(path)
	if ok {
		log.Debug().Str("path", path).Msg("found GPS with direct exiftool query")
	}
	return lat, lon, ok
}

// extractPreviewImage writes the photo's embedded preview JPEG to dst.
// Used to obtain a universally decodable copy of a HEIC file.
func extractPreviewImage(path, dst string) error {
	out, err := runExiftoolCommand("-b", "-PreviewImage", path)
	if err != nil {
		return fmt.Errorf("preview extraction failed: %w", err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return fmt.Errorf("no embedded preview in %s", path)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("failed to write preview copy: %w", err)
	}
	return nil
}

func runExiftoolCommand(args ...string) ([]byte, error) {
	cmd := exec.Command("exiftool", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("exiftool: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return stdout.Bytes(), nil
}

// parseExiftoolOutput decodes exiftool's JSON output, an array holding
// exactly one object per queried file.
func parseExiftoolOutput(out []byte) (MetadataBag, error) {
	var results []MetadataBag
	if err := json.Unmarshal(bytes.TrimSpace(out), &results); err != nil {
		return nil, fmt.Errorf("invalid exiftool JSON: %w", err)
	}
	if len(results) == 0 {
		return MetadataBag{}, nil
	}
	return results[0], nil
}

// scanExiftoolDescriptionTags returns the bag entries whose key matches a
// caption keyword and whose value is non-blank.
func scanExiftoolDescriptionTags(meta MetadataBag, path string) []tagValue {
	var found []tagValue
	for _, key := range sortedKeys(meta) {
		if !captionKeywordMatch(key) {
			continue
		}
		s := strings.TrimSpace(stringifyBagValue(meta[key]))
		if s == "" {
			continue
		}
		found = append(found, tagValue{Name: key, Value: s})
		log.Debug().Str("path", path).Str("tag", key).Str("value", s).
			Msg("potential caption tag from exiftool")
	}
	return found
}
