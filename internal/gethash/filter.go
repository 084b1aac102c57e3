package gethash

import (
	"path/filepath"
	"strings"
)

// videoExtensions is the allow-list of container formats the tool targets.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".wmv":  {},
	".flv":  {},
	".webm": {},
	".m4v":  {},
	".mpg":  {},
	".mpeg": {},
	".ts":   {},
	".m2ts": {},
}

// isVideoPath reports whether the filename component of path carries one of
// the recognized video extensions. The match is case-insensitive; a name
// without an extension never matches.
func isVideoPath(path string) bool {
	ext := filepath.Ext(filepath.Base(path))
	if ext == "" {
		return false
	}
	_, ok := videoExtensions[strings.ToLower(ext)]
	return ok
}
