package uniplate

import "fmt"

var (
	// version is set via ldflags during build by GoReleaser
	// For development builds, this will show "dev"
	version = "dev"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// GeneratedBy returns the marker string written into generated file headers.
func GeneratedBy() string {
	return fmt.Sprintf("uniplate/%s", version)
}
