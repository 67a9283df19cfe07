package platform

import (
	"path"
	"path/filepath"
	"strings"
)

// NormalizeKey normalizes a probe-reported relative path for use as an
// aggregation key: forward slashes, no trailing slash, cleaned
func NormalizeKey(p string) string {
	normalized := path.Clean(filepath.ToSlash(p))
	return strings.TrimSuffix(normalized, "/")
}

// ParentKey returns the aggregation key for the parent directory of a
// normalized relative path. Root-level entries map to "."
func ParentKey(p string) string {
	parent := path.Dir(NormalizeKey(p))
	if parent == "/" || parent == "" {
		return "."
	}
	return parent
}

// HasDrivePrefix reports whether a path starts with a Windows drive
// letter ("C:\..." or "C:/..."). Such paths must not be mistaken for
// remote host:path specs.
func HasDrivePrefix(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	if !(('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')) {
		return false
	}
	return len(p) == 2 || p[2] == '\\' || p[2] == '/'
}

// EnsureTrailingSlash appends a path separator when missing, so the
// probe compares directory contents rather than the directory itself
func EnsureTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, "\\") {
		return p
	}
	return p + "/"
}
