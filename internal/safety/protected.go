package safety

import (
	"path/filepath"
	"strings"
)

// protectedName marks repository metadata directories. A directory with this
// name, and everything beneath it, is never deleted regardless of contents.
const protectedName = ".git"

// IsProtected reports whether path is a .git directory or lies inside one.
// The check is a pure path-component comparison on the cleaned path, so its
// cost is proportional to the path length and it never touches the
// filesystem. Component matching is exact and case-sensitive.
func IsProtected(path string) bool {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == protectedName {
			return true
		}
	}
	return false
}
