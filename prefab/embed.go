package prefab

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var specFS embed.FS

// Load reads a spec by name. A copy on disk next to the binary wins over the
// embedded default so tuning can be edited without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskSpecPath(clean)); err == nil {
		return data, nil
	}
	return specFS.ReadFile(clean)
}

func cleanSpecPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefab/") {
		return strings.TrimPrefix(s, "prefab/")
	}
	return s
}

func diskSpecPath(name string) string {
	return filepath.Join("prefab", filepath.FromSlash(name))
}
