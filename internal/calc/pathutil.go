package calc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// maxPathLen bounds every path composed by this package, terminator
// excluded. Any operation that would exceed it fails with ErrPathTooLong
// instead of truncating.
const maxPathLen = 4096

// Fatal errors. Filesystem misses (absent files, failed stats) are never
// errors; they are negative search results and the caller falls through to
// its next candidate.
var (
	ErrPathTooLong     = errors.New("path configuration: path too long")
	ErrSymlinkLoop     = errors.New("maximum number of symbolic links reached")
	ErrInvalidEncoding = errors.New("cannot decode marker file")
)

const (
	separator     = string(os.PathSeparator)
	listDelimiter = string(os.PathListSeparator)
)

func isAbs(path string) bool {
	return filepath.IsAbs(path)
}

// joinPath appends component to base, inserting exactly one separator
// between them. An absolute component replaces base entirely.
func joinPath(base, component string) (string, error) {
	if isAbs(component) {
		return boundedCopy(component, maxPathLen)
	}
	s := base
	if s != "" && !strings.HasSuffix(s, separator) {
		s += separator
	}
	s += component
	if len(s) > maxPathLen {
		return "", ErrPathTooLong
	}
	return s, nil
}

// reduce strips the last path component, separator included. Repeated
// application walks toward the root; a path without a separator reduces to
// the empty string.
func reduce(path string) string {
	i := strings.LastIndex(path, separator)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// boundedCopy returns src only if it fits within capacity. An oversized
// value is dropped whole, never truncated.
func boundedCopy(src string, capacity int) (string, error) {
	if len(src) > capacity {
		return "", ErrPathTooLong
	}
	return src, nil
}

// copyAbsolute resolves path against the current working directory. If the
// working directory cannot be determined the path is returned unchanged;
// the searches degrade rather than abort.
func copyAbsolute(path string) (string, error) {
	if isAbs(path) {
		return boundedCopy(path, maxPathLen)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return boundedCopy(path, maxPathLen)
	}
	path = strings.TrimPrefix(path, "."+separator)
	return joinPath(cwd, path)
}

// absolutize is copyAbsolute for in-place use: already absolute paths come
// back unchanged.
func absolutize(path string) (string, error) {
	if isAbs(path) {
		return path, nil
	}
	return copyAbsolute(path)
}
