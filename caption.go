package main

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// captionKeywords mark a metadata key as caption-like when scanning unknown
// tag sets.
var captionKeywords = []string{"descr", "comment", "caption", "title", "subject"}

func captionKeywordMatch(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range captionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// heicCaptionFields are the exiftool fields checked first for HEIC files,
// in priority order.
var heicCaptionFields = []string{
	"EXIF:ImageDescription",
	"XMP:Description",
	"XMP:Title",
	"XMP:Headline",
	"XMP:Caption",
	"XMP:CaptionWriter",
	"IPTC:Caption-Abstract",
	"IPTC:Headline",
	"QuickTime:Title",
	"QuickTime:Description",
	"Apple:Description",
}

// exifCaptionFields are the well-known embedded tags that may carry a
// description, comment, subject, or title.
var exifCaptionFields = []string{
	"ImageDescription",
	"UserComment",
	"XPComment",
	"XPSubject",
	"XPTitle",
}

// photoContext carries everything the caption strategies may consult for one
// photo. Adapter bags are populated by the orchestrator before resolution.
type photoContext struct {
	path     string
	filename string
	isHEIC   bool

	toolMeta        MetadataBag // bulk exiftool bag
	exifTags        MetadataBag // shallow embedded-tag bag (non-HEIC only)
	descriptionTags []tagValue  // keyword-scan findings across sources

	tools toolSet
}

// captionStrategy is one step of the caption cascade. A step returns the
// resolved caption or "" to pass to the next step.
type captionStrategy struct {
	name    string
	resolve func(*photoContext) string
}

// captionCascade is tried in order; the first non-empty result wins. The
// final filename step always produces a caption.
var captionCascade = []captionStrategy{
	{"exiftool-fields", captionFromToolFields},
	{"keyword-scan", captionFromDescriptionTags},
	{"exif-tags", captionFromExifTags},
	{"mdls-attribute", captionFromMdls},
	{"os-bulk-scan", captionFromBulkScan},
	{"sidecar", captionFromSidecar},
	{"filename", captionFromFilename},
}

// resolveCaption walks the cascade and returns the caption together with the
// name of the strategy that produced it.
func resolveCaption(ctx *photoContext) (string, string) {
	for _, step := range captionCascade {
		if caption := strings.TrimSpace(step.resolve(ctx)); caption != "" {
			log.Debug().Str("path", ctx.path).Str("strategy", step.name).
				Str("caption", caption).Msg("caption resolved")
			return caption, step.name
		}
	}
	// Unreachable: the filename step never returns "".
	return "", ""
}

// captionFromToolFields checks the prioritized exiftool description fields.
// Only used for HEIC files, where exiftool is the authoritative source.
func captionFromToolFields(ctx *photoContext) string {
	if !ctx.isHEIC {
		return ""
	}
	for _, field := range heicCaptionFields {
		if v, ok := ctx.toolMeta[field]; ok {
			if s := strings.TrimSpace(stringifyBagValue(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// captionFromDescriptionTags takes the first non-blank value collected by the
// keyword scan over all available sources.
func captionFromDescriptionTags(ctx *photoContext) string {
	for _, tag := range ctx.descriptionTags {
		if v := strings.TrimSpace(tag.Value); v != "" {
			return v
		}
	}
	return ""
}

// captionFromExifTags checks the fixed list of well-known embedded tags.
func captionFromExifTags(ctx *photoContext) string {
	for _, field := range exifCaptionFields {
		if v, ok := ctx.exifTags[field]; ok {
			if s := strings.TrimSpace(stringifyBagValue(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// captionFromMdls queries the macOS metadata service attributes in order.
func captionFromMdls(ctx *photoContext) string {
	if !ctx.tools.mdls {
		return ""
	}
	for _, attr := range mdlsCaptionAttributes {
		if v, ok := mdlsQueryAttribute(ctx.path, attr); ok {
			return v
		}
	}
	return ""
}

// captionFromBulkScan keyword-scans the bulk mdls output, then the sips
// metadata dump.
func captionFromBulkScan(ctx *photoContext) string {
	if ctx.tools.mdls {
		for _, tag := range mdlsScanDescriptionTags(ctx.path) {
			if v := strings.TrimSpace(tag.Value); v != "" {
				return v
			}
		}
	}
	if ctx.tools.sips {
		if v, ok := sipsScanCaption(ctx.path); ok {
			return v
		}
	}
	return ""
}

// captionFromSidecar reads the companion edit-sidecar file, if any.
func captionFromSidecar(ctx *photoContext) string {
	caption, ok := readSidecarCaption(ctx.path)
	if !ok {
		return ""
	}
	return caption
}

// captionFromFilename is the terminal fallback; it always succeeds.
func captionFromFilename(ctx *photoContext) string {
	return synthesizeCaption(ctx.filename)
}

// gatherDescriptionTags runs the keyword scan across the sources available
// for this photo: exiftool fields for HEIC, the embedded tag walk otherwise,
// plus the macOS metadata service when present.
func gatherDescriptionTags(path string, isHEIC bool, toolMeta MetadataBag, tools toolSet) []tagValue {
	var found []tagValue

	if isHEIC {
		found = append(found, scanExiftoolDescriptionTags(toolMeta, path)...)
	} else {
		// HEIC containers trip the embedded parser, so they skip this pass.
		found = append(found, scanExifDescriptionTags(path)...)
	}

	if tools.mdls {
		if v, ok := mdlsQueryAttribute(path, "kMDItemDescription"); ok {
			found = append(found, tagValue{Name: "mdls:kMDItemDescription", Value: v})
		}
		found = append(found, mdlsScanDescriptionTags(path)...)
	}

	return found
}
