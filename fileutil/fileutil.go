package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlphaNumExpr = regexp.MustCompile("[^a-zA-Z0-9_.-]+")

const maxNameLen = 200

// Safe strips anything unusual from a file name and caps its length,
// keeping the extension.
func Safe(filename string) string {
	filename = nonAlphaNumExpr.ReplaceAllString(filename, "")
	if len(filename) <= maxNameLen {
		return filename
	}
	ext := filepath.Ext(filename)
	if len(ext) >= maxNameLen {
		return filename[:maxNameLen]
	}
	return filename[:maxNameLen-len(ext)] + ext
}

// WindowName names the bytes [start, end) of path, eg. "disk.512-1024.img".
func WindowName(path string, start, end int64) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return Safe(fmt.Sprintf("%s.%d-%d%s", strings.TrimSuffix(base, ext), start, end, ext))
}

// HasPrefix checks a path has a prefix, making sure to respect path boundaries. So that /aa & /a does not match, but /a/a & /a does.
func HasPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, filepath.Clean(prefix)+string(filepath.Separator))
}
