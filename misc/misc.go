// Package misc keeps build stamped program identity.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by the linker: -X rvcss/misc.version=... -X rvcss/misc.gitHash=...
var (
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns name of the program derived from its executable.
func GetAppName() string {
	name := filepath.Base(os.Args[0])
	if len(name) == 0 || strings.HasSuffix(name, ".test") || strings.HasSuffix(name, ".test.exe") {
		// running under go test
		return "rvc"
	}
	return strings.TrimSuffix(name, ".exe")
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit hash program was built from.
func GetGitHash() string {
	return gitHash
}
