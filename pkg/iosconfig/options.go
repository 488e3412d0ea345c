package iosconfig

import "time"

// RenderOptions controls the forward rendering process (NetJSON → IOS text).
type RenderOptions struct {
	Overrides     map[string]string // Option values applied after defaults and NetJSON values
	Identity      string            // Tool identity shown in the banner
	GenerationTag string            // Optional tag added as a header line
	Clock         func() time.Time  // Banner clock; nil means time.Now
	Strict        bool              // Run option type validation before rendering
	Trailer       string            // Line emitted after the last block (e.g. "end")
	Timeout       time.Duration     // Maximum time allowed for rendering
}
