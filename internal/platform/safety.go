package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the namespace inside the temp dir used by the dev sandbox.
const DevDirName = "quicknote-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveStorePath determines the actual store path based on safety rules.
// With forceTemp the file is re-rooted into <tmp>/quicknote-dev/<base name>,
// unless it already lives under the temp dir (e.g. t.TempDir()).
func ResolveStorePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		return userPath
	}

	clean := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), clean)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(filepath.Separator) {
		name = "quicknotes.json"
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}
