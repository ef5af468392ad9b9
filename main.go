package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	// Command-line flags
	photoDir := flag.String("photos", "", "Directory containing photos to process (positional paths override)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")

	flag.Parse()

	initLogging(*verbose)

	paths := flag.Args()
	if *photoDir == "" && len(paths) == 0 {
		fmt.Println("Usage: photo-metadata [-photos <dir>] [photo files...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := &Config{
		PhotoDir: *photoDir,
		Paths:    paths,
		Verbose:  *verbose,
	}

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}
}

func run(config *Config) error {
	processor := NewPhotoProcessor(config)
	return processor.Process()
}

// printReport writes one line per record, the best-effort metadata handed to
// the downstream report step.
func printReport(records []*PhotoRecord) {
	for _, rec := range records {
		if rec == nil {
			continue
		}

		dims := "-"
		if rec.Width > 0 && rec.Height > 0 {
			dims = fmt.Sprintf("%dx%d", rec.Width, rec.Height)
		}

		position := "-"
		if rec.HasGPS {
			position = fmt.Sprintf("%.6f, %.6f", rec.Latitude, rec.Longitude)
		}

		bearing := "-"
		if rec.HasOrientation {
			bearing = fmt.Sprintf("%.1f°", rec.Orientation)
		}

		status := ""
		if rec.Err != nil {
			status = fmt.Sprintf("  [error: %v]", rec.Err)
		}

		fmt.Printf("%-40s  %-12s  %-24s  %-8s  %s%s\n",
			rec.Filename, dims, position, bearing, rec.Caption, status)
	}
}
