package version

// Version is the settlement desk release. Set at build time with
// -ldflags "-X github.com/rxtech-lab/settlement-desk/internal/version.Version=v1.2.3".
// "main" marks a development build.
var Version = "v0.4.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
