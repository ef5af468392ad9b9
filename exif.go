package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

func init() {
	// Register maker note handlers
	exif.RegisterParsers(mknote.All...)
}

// shallowExifFields are the embedded tags needed for the main field
// extraction: caption candidates, GPS, and bearing.
var shallowExifFields = []exif.FieldName{
	exif.ImageDescription,
	exif.UserComment,
	exif.XPComment,
	exif.XPSubject,
	exif.XPTitle,
	exif.GPSLatitude,
	exif.GPSLatitudeRef,
	exif.GPSLongitude,
	exif.GPSLongitudeRef,
	exif.GPSImgDirection,
	exif.GPSDestBearing,
}

// readExifTags parses the file's embedded EXIF block into a MetadataBag.
// With details set, every tag present in the file is collected; otherwise only
// the fields the resolvers consume. HEIC files must not be routed here: their
// container structure trips the parser. Failures degrade to an empty bag.
func readExifTags(path string, details bool) MetadataBag {
	bag := MetadataBag{}

	f, err := os.Open(path)
	if err != nil {
		log.Debug().Str("path", path).Err(err).Msg("could not open file for EXIF read")
		return bag
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		// Many photos have no EXIF block at all; not an error worth surfacing.
		log.Debug().Str("path", path).Err(err).Msg("no usable EXIF data")
		return bag
	}

	if details {
		collector := &tagCollector{bag: bag}
		if err := x.Walk(collector); err != nil {
			log.Debug().Str("path", path).Err(err).Msg("EXIF tag walk aborted")
		}
		return bag
	}

	for _, name := range shallowExifFields {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if v := tagBagValue(tag); v != nil {
			bag[string(name)] = v
		}
	}

	return bag
}

// scanExifDescriptionTags walks every embedded tag and returns those whose
// name matches a caption keyword and whose value is non-blank.
func scanExifDescriptionTags(path string) []tagValue {
	bag := readExifTags(path, true)

	var found []tagValue
	for _, name := range sortedKeys(bag) {
		if !captionKeywordMatch(name) {
			continue
		}
		s := strings.TrimSpace(stringifyBagValue(bag[name]))
		if s == "" {
			continue
		}
		found = append(found, tagValue{Name: name, Value: s})
		log.Debug().Str("path", path).Str("tag", name).Str("value", s).
			Msg("potential caption tag in EXIF")
	}
	return found
}

// tagCollector gathers all walked tags into a bag.
type tagCollector struct {
	bag MetadataBag
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if v := tagBagValue(tag); v != nil {
		c.bag[string(name)] = v
	}
	return nil
}

// tagBagValue converts a raw TIFF tag to a bag value: strings stay strings,
// 3-component rationals become a DMS triple, single numbers become float64.
func tagBagValue(tag *tiff.Tag) any {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil
		}
		return strings.TrimSpace(s)
	case tiff.RatVal:
		if tag.Count == 3 {
			triple := make([]float64, 3)
			for i := 0; i < 3; i++ {
				num, den, err := tag.Rat2(i)
				if err != nil || den == 0 {
					return nil
				}
				triple[i] = float64(num) / float64(den)
			}
			return triple
		}
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return nil
		}
		return float64(num) / float64(den)
	case tiff.IntVal:
		n, err := tag.Int(0)
		if err != nil {
			return nil
		}
		return float64(n)
	case tiff.FloatVal:
		f, err := tag.Float(0)
		if err != nil {
			return nil
		}
		return f
	default:
		// UserComment and friends are undefined-format byte blobs; the
		// rendered form is close enough for caption use.
		return strings.Trim(strings.TrimSpace(tag.String()), `"`)
	}
}

// stringifyBagValue renders a bag value for caption comparison.
func stringifyBagValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
