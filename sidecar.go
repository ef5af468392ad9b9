package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// sidecarExtension is the iOS edit-sidecar suffix; the file shares the
// photo's base name.
const sidecarExtension = ".AAE"

// sidecarDescRe matches the description entry inside the sidecar's XML-like
// payload.
var sidecarDescRe = regexp.MustCompile(`<string name="description">([^<]+)</string>`)

// readSidecarCaption looks for a companion sidecar next to the photo and
// extracts its description text. A missing file or a payload without the
// description element is silent.
func readSidecarCaption(photoPath string) (string, bool) {
	base := strings.TrimSuffix(photoPath, filepath.Ext(photoPath))
	sidecarPath := base + sidecarExtension

	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Str("path", sidecarPath).Err(err).Msg("could not read sidecar file")
		}
		return "", false
	}

	m := sidecarDescRe.FindSubmatch(data)
	if m == nil {
		return "", false
	}

	caption := strings.TrimSpace(string(m[1]))
	if caption == "" {
		return "", false
	}

	log.Debug().Str("path", sidecarPath).Str("caption", caption).
		Msg("found caption in sidecar file")
	return caption, true
}
