package iosconfig

import (
	"io/fs"
	"time"

	"github.com/google/uuid"
)

// Package is one rendered configuration text.
// IOS backends produce a single package holding the startup configuration.
type Package struct {
	Name    string // Package name (e.g., "startup-config")
	Content []byte // Rendered configuration text
}

// File represents an additional file (certificates, scripts, keys, etc.)
// that should be deployed alongside the main configuration.
type File struct {
	Path    string      // Absolute file path where the file should be placed
	Content []byte      // File content (binary-safe)
	Mode    fs.FileMode // Unix file permissions (e.g., 0644, 0600)
}

// Metadata stores information about how and when the configuration was generated.
type Metadata struct {
	Format    string            // Format identifier ("ios")
	Backend   string            // Backend name that generated this bundle
	Generated time.Time         // Timestamp when the bundle was created
	Version   string            // Optional version tag
	Custom    map[string]string // Extensible metadata for backend-specific information
}

// GenerationIDKey is the Metadata.Custom key holding the per-render identifier.
const GenerationIDKey = "generation_id"

// Bundle represents the complete output of a configuration render operation.
type Bundle struct {
	Packages []Package // Configuration packages
	Files    []File    // Additional files to be deployed (certificates, keys, scripts)
	Metadata Metadata  // Generation metadata
}

// NewBundle creates an empty Bundle with initialized metadata.
// Generated is set to the current time and every bundle gets a fresh
// generation id.
func NewBundle(format, backend string) *Bundle {
	return &Bundle{
		Packages: make([]Package, 0),
		Files:    make([]File, 0),
		Metadata: Metadata{
			Format:    format,
			Backend:   backend,
			Generated: time.Now(),
			Custom: map[string]string{
				GenerationIDKey: uuid.NewString(),
			},
		},
	}
}

// Main returns the first package, which is the main configuration for
// single-file formats.
func (b *Bundle) Main() (Package, bool) {
	if b == nil || len(b.Packages) == 0 {
		return Package{}, false
	}
	return b.Packages[0], true
}
