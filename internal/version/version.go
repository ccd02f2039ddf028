// Package version exposes build metadata.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/ndewijer/Stock-AI-Report/internal/version.Version=v1.2.3".
var Version = "dev"
