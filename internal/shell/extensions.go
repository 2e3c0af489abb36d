package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListExtensions returns the extension scripts (*.sh) under dir, sorted by
// name. A missing or empty dir yields no extensions; kubesh only surfaces
// the scripts, it never executes them.
func ListExtensions(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sh") {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(scripts)
	return scripts, nil
}
