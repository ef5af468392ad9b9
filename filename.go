package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// filenameDateRe matches a YYYY MM DD sequence, optionally separated by
// hyphens or underscores, anywhere in a filename.
var filenameDateRe = regexp.MustCompile(`(\d{4})[-_]?(\d{2})[-_]?(\d{2})`)

// cameraPrefixRe strips the leading camera token common on phone photos.
var cameraPrefixRe = regexp.MustCompile(`^IMG_`)

// synthesizeCaption derives a caption from the filename. A valid calendar
// date embedded in the name yields "Photo taken on <Month> <Day>, <Year>";
// otherwise the extension is removed, the camera prefix stripped, and
// underscores become spaces.
func synthesizeCaption(filename string) string {
	if m := filenameDateRe.FindStringSubmatch(filename); m != nil {
		if caption, ok := dateCaption(m[1], m[2], m[3]); ok {
			return caption
		}
	}
	return cleanedFilenameCaption(filename)
}

// dateCaption validates the extracted year/month/day and formats the caption
// with the long month name.
func dateCaption(yearStr, monthStr, dayStr string) (string, bool) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); reject those.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return "", false
	}

	return fmt.Sprintf("Photo taken on %s", date.Format("January 2, 2006")), true
}

// cleanedFilenameCaption turns the bare filename into a readable caption.
func cleanedFilenameCaption(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = cameraPrefixRe.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "_", " ")
}
