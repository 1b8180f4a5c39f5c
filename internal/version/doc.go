// Package version exposes build metadata of the traffic-light binary.
//
// Commit and BuildTime can be injected with -ldflags -X; when left empty
// they are read from the VCS stamp the go tool embeds in the binary.
package version
