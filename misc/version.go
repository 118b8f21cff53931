// Package misc keeps build time program identification.
package misc

// Set by the linker: -ldflags "-X svgovl/misc.version=... -X svgovl/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "svgovl"

// GetAppName returns short program name used for logs and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git hash the program was built from.
func GetGitHash() string {
	return gitHash
}
