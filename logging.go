package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogging initializes the global logger with configuration from environment
// variables. PHOTO_METADATA_LOG_LEVEL controls the log level: debug, info,
// warn, error (default: info).
func initLogging(verbose bool) {
	level := os.Getenv("PHOTO_METADATA_LOG_LEVEL")
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
