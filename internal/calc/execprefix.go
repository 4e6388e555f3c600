package calc

import (
	"os"
	"strings"
	"unicode/utf8"

	"pypath/internal/model"
)

const (
	// dynloadDir holds the platform dependent loadable modules under a
	// versioned library directory.
	dynloadDir = "lib-dynload"
	// buildDirFile is written into a build tree; its entire content is the
	// dynamic-module directory's offset relative to the executable's
	// directory.
	buildDirFile = "pybuilddir.txt"
)

// readBuildDirMarker reads buildDirFile next to the executable and resolves
// its content against argv0Path. Presence of the file is the success
// condition; there is no landmark re-check. Returns "" when absent.
func readBuildDirMarker(argv0Path string) (string, error) {
	filename, err := joinPath(argv0Path, buildDirFile)
	if err != nil {
		return "", err
	}
	if !isFile(filename) {
		return "", nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", nil
	}
	if len(data) > maxPathLen {
		return "", ErrPathTooLong
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	// The content is the offset, verbatim.
	return joinPath(argv0Path, string(data))
}

// searchExecPrefix mirrors searchPrefix with the dynamic-module directory
// as the landmark. The returned value is the working form; finalization
// strips three components on a walk hit.
func (c *Calculator) searchExecPrefix(cfg *model.PathConfig, argv0Path string) (string, error) {
	// Home override: second delimiter-split component if present, else the
	// single value serves both roots.
	if cfg.Home != "" {
		home := cfg.Home
		if i := strings.Index(home, listDelimiter); i >= 0 {
			home = home[i+1:]
		}
		execPrefix, err := boundedCopy(home, maxPathLen)
		if err != nil {
			return "", err
		}
		if execPrefix, err = joinPath(execPrefix, c.libDir); err != nil {
			return "", err
		}
		if execPrefix, err = joinPath(execPrefix, dynloadDir); err != nil {
			return "", err
		}
		c.execPrefixFound = model.FoundByWalk
		c.step("exec_prefix", execPrefix, true, "home override")
		return execPrefix, nil
	}

	// Build-tree marker.
	execPrefix, err := readBuildDirMarker(argv0Path)
	if err != nil {
		return "", err
	}
	if execPrefix != "" {
		c.execPrefixFound = model.FoundByBuildMarker
		c.step("exec_prefix", execPrefix, true, "build tree")
		return execPrefix, nil
	}

	// Walk from the executable's directory toward the root.
	if execPrefix, err = copyAbsolute(argv0Path); err != nil {
		return "", err
	}
	for execPrefix != "" {
		candidate, err := joinPath(execPrefix, c.libDir)
		if err != nil {
			return "", err
		}
		if candidate, err = joinPath(candidate, dynloadDir); err != nil {
			return "", err
		}
		ok := isDir(candidate)
		c.step("exec_prefix", candidate, ok, "")
		if ok {
			c.execPrefixFound = model.FoundByWalk
			return candidate, nil
		}
		execPrefix = reduce(execPrefix)
	}

	// Compiled-in default.
	candidate, err := joinPath(c.Params.DefaultExecPrefix, c.libDir)
	if err != nil {
		return "", err
	}
	if candidate, err = joinPath(candidate, dynloadDir); err != nil {
		return "", err
	}
	ok := isDir(candidate)
	c.step("exec_prefix", candidate, ok, "compiled default")
	if ok {
		c.execPrefixFound = model.FoundByWalk
		return candidate, nil
	}

	c.execPrefixFound = model.NotFound
	c.warn("Could not find platform dependent libraries <exec_prefix>")
	// The unversioned "lib/lib-dynload" tail differs from the versioned
	// one probed above on purpose: the compiled EXEC_PREFIX is assumed to
	// be version-qualified already.
	return joinPath(c.Params.DefaultExecPrefix, "lib/"+dynloadDir)
}

// finalizeExecPrefix reduces the working value to the public exec-prefix.
func (c *Calculator) finalizeExecPrefix(execPrefix string) string {
	switch c.execPrefixFound {
	case model.FoundByWalk:
		// Undo ".../lib/pythonX.Y/lib-dynload".
		execPrefix = reduce(reduce(reduce(execPrefix)))
		if execPrefix == "" {
			execPrefix = separator
		}
		return execPrefix
	case model.FoundByBuildMarker:
		return execPrefix
	default:
		return c.Params.DefaultExecPrefix
	}
}
