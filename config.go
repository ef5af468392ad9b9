package main

// Config holds the application configuration
type Config struct {
	PhotoDir string   // Directory to scan for photos (ignored if Paths is set)
	Paths    []string // Explicit photo paths, processed in the given order
	Verbose  bool
}
