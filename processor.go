package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PhotoProcessor drives photos through the metadata-resolution cascade
type PhotoProcessor struct {
	config       *Config
	stats        *ProcessStats
	startTime    time.Time
	lastProgress time.Time
}

// ProcessStats tracks statistics during processing
type ProcessStats struct {
	TotalPhotos      int
	ProcessedPhotos  int
	MetadataCaptions int // captions resolved from a metadata source
	FilenameCaptions int // captions synthesized from the filename
	WithGPS          int
	WithOrientation  int
	DimensionErrors  int
	ErrorPhotos      int
}

// NewPhotoProcessor creates a new photo processor
func NewPhotoProcessor(config *Config) *PhotoProcessor {
	return &PhotoProcessor{
		config: config,
		stats:  &ProcessStats{},
	}
}

// Process runs the full extraction over the configured photo set and prints
// the per-photo report and summary statistics.
func (p *PhotoProcessor) Process() error {
	p.startTime = time.Now()
	p.lastProgress = time.Now()

	// Probe the external collaborators up front so the warning for a missing
	// exiftool appears before any photo output.
	availableTools()

	paths := p.config.Paths
	if len(paths) == 0 {
		found, err := collectImageFiles(p.config.PhotoDir)
		if err != nil {
			return fmt.Errorf("failed to scan photo directory: %w", err)
		}
		paths = found
	}
	if len(paths) == 0 {
		return fmt.Errorf("no image files to process")
	}

	records := p.ExtractBatch(paths)
	defer CleanupTempFiles(records)

	printReport(records)
	p.printStats()

	return nil
}

// ExtractBatch processes the given paths strictly in order and returns one
// record per path. No error in a single photo aborts the batch.
func (p *PhotoProcessor) ExtractBatch(paths []string) []*PhotoRecord {
	p.stats.TotalPhotos = len(paths)
	if p.startTime.IsZero() {
		p.startTime = time.Now()
		p.lastProgress = p.startTime
	}

	records := make([]*PhotoRecord, 0, len(paths))
	for _, path := range paths {
		rec := p.processPhoto(path)
		records = append(records, rec)
		p.printProgress()
	}
	return records
}

// processPhoto resolves all metadata for a single photo. Unexpected failures
// are caught at this boundary and recorded on the (partial) record.
func (p *PhotoProcessor) processPhoto(path string) (rec *PhotoRecord) {
	rec = &PhotoRecord{
		Path:     path,
		Filename: filepath.Base(path),
	}

	defer func() {
		if r := recover(); r != nil {
			rec.Err = fmt.Errorf("unexpected failure processing %s: %v", path, r)
			p.stats.ErrorPhotos++
			log.Error().Str("path", path).Interface("panic", r).
				Msg("photo processing failed; continuing batch")
		}
	}()

	tools := availableTools()
	isHEIC := isHEICFile(path)

	log.Debug().Str("path", path).Bool("heic", isHEIC).Msg("processing photo")

	ctx := &photoContext{
		path:     path,
		filename: rec.Filename,
		isHEIC:   isHEIC,
		toolMeta: MetadataBag{},
		exifTags: MetadataBag{},
		tools:    tools,
	}

	// HEIC files are excluded from the embedded parser; exiftool is their
	// primary source.
	if isHEIC && tools.exiftool {
		ctx.toolMeta = runExiftool(path)
	}
	if !isHEIC {
		ctx.exifTags = readExifTags(path, false)
	}
	ctx.descriptionTags = gatherDescriptionTags(path, isHEIC, ctx.toolMeta, tools)

	caption, strategy := resolveCaption(ctx)
	rec.Caption = caption
	if strategy == "filename" {
		p.stats.FilenameCaptions++
	} else {
		p.stats.MetadataCaptions++
	}

	// Dimensions; a failure here leaves them absent and processing continues.
	if isHEIC {
		w, h, tempFile, err := readHEICDimensions(path, tools)
		rec.TempFile = tempFile
		if err != nil {
			p.stats.DimensionErrors++
			log.Warn().Str("path", path).Err(err).Msg("could not read HEIC dimensions")
		} else {
			rec.Width, rec.Height = w, h
		}
	} else {
		w, h, err := readDimensions(path)
		if err != nil {
			p.stats.DimensionErrors++
			log.Warn().Str("path", path).Err(err).Msg("could not read dimensions")
		} else {
			rec.Width, rec.Height = w, h
		}
	}

	// A fresh exiftool pass feeds GPS and orientation resolution regardless
	// of how the caption was found.
	freshMeta := MetadataBag{}
	if tools.exiftool {
		freshMeta = runExiftool(path)
	}

	if lat, lon, ok := extractGPSData(ctx.exifTags, freshMeta, path, tools); ok {
		rec.Latitude = lat
		rec.Longitude = lon
		rec.HasGPS = true
		p.stats.WithGPS++
	}

	if bearing, ok := extractOrientation(ctx.exifTags, freshMeta); ok {
		rec.Orientation = bearing
		rec.HasOrientation = true
		p.stats.WithOrientation++
	}

	p.stats.ProcessedPhotos++
	return rec
}

// ExtractMetadataFromPhotos processes the given photo paths in order and
// returns one record per path. This is the batch entry point consumed by the
// downstream report step.
func ExtractMetadataFromPhotos(paths []string) []*PhotoRecord {
	return NewPhotoProcessor(&Config{Paths: paths}).ExtractBatch(paths)
}

// CleanupTempFiles deletes every temporary file created during batch
// processing. Missing files are tolerated and deletion errors are logged,
// never returned. Safe to call more than once.
func CleanupTempFiles(records []*PhotoRecord) {
	for _, rec := range records {
		if rec == nil || rec.TempFile == "" {
			continue
		}
		if err := os.Remove(rec.TempFile); err != nil && !os.IsNotExist(err) {
			log.Warn().Str("path", rec.TempFile).Err(err).
				Msg("could not remove temp file")
		}
		rec.TempFile = ""
	}
}

// isHEICFile classifies the format by extension, case-insensitively.
func isHEICFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".heic" || ext == ".heif"
}

// isImageFile checks if a file is an image based on extension
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	imageExts := []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".heic", ".heif"}
	for _, imgExt := range imageExts {
		if ext == imgExt {
			return true
		}
	}
	return false
}

// collectImageFiles walks dir and returns every image file in walk order.
func collectImageFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("error accessing path")
			return nil
		}
		if info.IsDir() {
			// Skip @eaDir directories (Synology metadata)
			if strings.Contains(path, "@eaDir") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isImageFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// printProgress emits a progress line every 100 photos or every 10 seconds
func (p *PhotoProcessor) printProgress() {
	processed := p.stats.ProcessedPhotos + p.stats.ErrorPhotos
	if processed == 0 {
		return
	}

	now := time.Now()
	if processed%100 != 0 && now.Sub(p.lastProgress) < 10*time.Second {
		return
	}
	p.lastProgress = now

	elapsed := now.Sub(p.startTime)
	rate := float64(processed) / elapsed.Seconds()
	log.Info().
		Int("processed", processed).
		Int("total", p.stats.TotalPhotos).
		Float64("photosPerSec", rate).
		Dur("elapsed", elapsed.Round(time.Second)).
		Msg("progress")
}

// printStats prints processing statistics
func (p *PhotoProcessor) printStats() {
	fmt.Println("\n=== Processing Statistics ===")
	fmt.Printf("Total photos:            %d\n", p.stats.TotalPhotos)
	fmt.Printf("Successfully processed:  %d\n", p.stats.ProcessedPhotos)
	fmt.Printf("Captions from metadata:  %d\n", p.stats.MetadataCaptions)
	fmt.Printf("Captions from filename:  %d\n", p.stats.FilenameCaptions)
	fmt.Printf("With GPS position:       %d\n", p.stats.WithGPS)
	fmt.Printf("With compass bearing:    %d\n", p.stats.WithOrientation)
	fmt.Printf("Dimension read failures: %d\n", p.stats.DimensionErrors)
	fmt.Printf("Errors:                  %d\n", p.stats.ErrorPhotos)
	fmt.Println("============================")
}
