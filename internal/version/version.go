package version

// Version is the current version of multiout.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/multiout/internal/version.Version=1.2.3"
// The value "main" marks a development build.
var Version = "main"

// GetVersion returns the current version.
func GetVersion() string {
	return Version
}
