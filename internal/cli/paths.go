package cli

import (
	"path/filepath"
	"strings"
)

// relativeTo shortens path for display when it lies under dir.
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
