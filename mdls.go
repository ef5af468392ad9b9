package main

import (
	"bytes"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// macOS metadata-service commands. Probed by absolute path in detectTools;
// on other platforms the strategies backed by them simply drop out.
const (
	mdlsPath = "/usr/bin/mdls"
	sipsPath = "/usr/bin/sips"
)

// mdlsCaptionAttributes are queried in order when resolving a caption through
// the metadata service; the dedicated description attribute comes first.
var mdlsCaptionAttributes = []string{
	"kMDItemDescription",
	"kMDItemTitle",
	"kMDItemSubject",
	"kMDItemComment",
	"kMDItemHeadline",
}

var (
	quotedValueRe   = regexp.MustCompile(`"([^"]+)"`)
	lineValueRe     = regexp.MustCompile(`= "(.*?)"`)
	signedDecimalRe = regexp.MustCompile(`= ([-\d.]+)`)
	sipsDescRe      = regexp.MustCompile(`"[dD]escription"\s*:\s*"([^"]+)"`)
)

// mdlsQueryAttribute runs the specific-field query `mdls -name <attr> <path>`
// and returns the quoted string value. The literal token "(null)" means the
// attribute is unset.
func mdlsQueryAttribute(path, attr string) (string, bool) {
	out, err := runCommand(mdlsPath, "-name", attr, path)
	if err != nil {
		log.Debug().Str("path", path).Str("attr", attr).Err(err).Msg("mdls query failed")
		return "", false
	}
	return parseMdlsAttribute(string(out), attr)
}

// parseMdlsAttribute extracts the quoted value from `attr = "value"` output.
func parseMdlsAttribute(output, attr string) (string, bool) {
	output = strings.TrimSpace(output)
	if !strings.Contains(output, attr) || strings.Contains(output, "(null)") {
		return "", false
	}
	m := quotedValueRe.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// mdlsQuerySigned parses the first signed decimal out of a specific-field
// query, for numeric attributes such as kMDItemLatitude.
func mdlsQuerySigned(path, attr string) (float64, bool) {
	out, err := runCommand(mdlsPath, "-name", attr, path)
	if err != nil {
		log.Debug().Str("path", path).Str("attr", attr).Err(err).Msg("mdls query failed")
		return 0, false
	}
	return parseMdlsSigned(string(out))
}

func parseMdlsSigned(output string) (float64, bool) {
	m := signedDecimalRe.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// gpsFromMdls queries the metadata service for both coordinates.
func gpsFromMdls(path string) (float64, float64, bool) {
	lat, okLat := mdlsQuerySigned(path, "kMDItemLatitude")
	lon, okLon := mdlsQuerySigned(path, "kMDItemLongitude")
	if !okLat || !okLon {
		return 0, 0, false
	}
	log.Debug().Str("path", path).Float64("lat", lat).Float64("lon", lon).
		Msg("found GPS via mdls")
	return lat, lon, true
}

// mdlsScanDescriptionTags runs the bulk query `mdls <path>` and collects
// every line whose key matches a caption keyword and whose value is a
// non-null quoted string.
func mdlsScanDescriptionTags(path string) []tagValue {
	out, err := runCommand(mdlsPath, path)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("mdls bulk query failed")
		return nil
	}
	return parseMdlsBulk(string(out))
}

func parseMdlsBulk(output string) []tagValue {
	var found []tagValue
	for _, line := range strings.Split(output, "\n") {
		if !captionKeywordMatch(line) {
			continue
		}
		m := lineValueRe.FindStringSubmatch(line)
		if m == nil || m[1] == "(null)" || m[1] == "" {
			continue
		}
		key, _, _ := strings.Cut(line, "=")
		found = append(found, tagValue{Name: "mdls:" + strings.TrimSpace(key), Value: m[1]})
	}
	return found
}

// sipsScanCaption runs the sips bulk metadata dump and pattern-matches a
// description value out of the raw output.
func sipsScanCaption(path string) (string, bool) {
	out, err := runCommand(sipsPath, "-j", "metadata", path)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("sips query failed")
		return "", false
	}
	return parseSipsDescription(string(out))
}

func parseSipsDescription(output string) (string, bool) {
	if !strings.Contains(strings.ToLower(output), "description") {
		return "", false
	}
	m := sipsDescRe.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func runCommand(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
