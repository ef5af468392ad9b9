package main

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"
	"github.com/rs/zerolog/log"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// readDimensions decodes just enough of the image to learn its pixel size.
// Covers the formats registered above; HEIC goes through readHEICDimensions.
func readDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// readHEICDimensions reads a HEIC file's pixel size. The metadata block is
// tried first; failing that, the embedded preview JPEG is extracted to a
// temporary file and decoded. The temp path, when non-empty, must be recorded
// on the record for batch cleanup.
func readHEICDimensions(path string, tools toolSet) (width, height int, tempFile string, err error) {
	if w, h, err := heicDimensionsFromMeta(path); err == nil {
		return w, h, "", nil
	} else {
		log.Debug().Str("path", path).Err(err).Msg("no dimensions in HEIC metadata")
	}

	if !tools.exiftool {
		return 0, 0, "", fmt.Errorf("cannot read HEIC dimensions for %s without exiftool", path)
	}

	tmp, err := os.CreateTemp("", "photo-*.jpg")
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tempFile = tmp.Name()
	tmp.Close()

	if err := extractPreviewImage(path, tempFile); err != nil {
		os.Remove(tempFile)
		return 0, 0, "", err
	}

	width, height, err = readDimensions(tempFile)
	if err != nil {
		// Keep the temp file on the record anyway so cleanup owns it.
		return 0, 0, tempFile, err
	}
	return width, height, tempFile, nil
}

// heicDimensionsFromMeta pulls the pixel size out of the EXIF block that the
// metadata reader recovers from the BMFF container.
func heicDimensionsFromMeta(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ex, err := decodeImageMeta(f, path)
	if err != nil {
		return 0, 0, err
	}
	if ex.ImageWidth == 0 || ex.ImageHeight == 0 {
		return 0, 0, fmt.Errorf("metadata carries no pixel dimensions")
	}
	return int(ex.ImageWidth), int(ex.ImageHeight), nil
}

// decodeImageMeta protects against panics from the decoder on malformed
// containers.
func decodeImageMeta(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding metadata of %s: %v", path, rec)
		}
	}()

	ex, err = imagemeta.Decode(r)
	return ex, err
}
