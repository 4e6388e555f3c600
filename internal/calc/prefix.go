package calc

import (
	"strings"

	"pypath/internal/model"
)

const (
	// buildLandmark marks the executable's directory as a source build
	// tree; its content is irrelevant, presence is the signal.
	buildLandmark = "Modules/Setup.local"
	// buildLibDir is where an uninstalled tree keeps the stdlib.
	buildLibDir = "Lib"
)

// searchPrefix locates the platform independent library root. The returned
// value is the working form (still carrying the lib/pythonX.Y tail on a
// walk hit); finalizePrefix reduces it to the public value. Provenance is
// recorded on the calculator.
func (c *Calculator) searchPrefix(cfg *model.PathConfig, argv0Path string) (string, error) {
	// A home override is believed unconditionally: first delimiter-split
	// component, or the whole value.
	if cfg.Home != "" {
		home := cfg.Home
		if i := strings.Index(home, listDelimiter); i >= 0 {
			home = home[:i]
		}
		prefix, err := boundedCopy(home, maxPathLen)
		if err != nil {
			return "", err
		}
		if prefix, err = joinPath(prefix, c.libDir); err != nil {
			return "", err
		}
		c.prefixFound = model.FoundByWalk
		c.step("prefix", prefix, true, "home override")
		return prefix, nil
	}

	// Build-tree short circuit: the marker plus the source offset must
	// yield a directory that really holds the stdlib.
	marker, err := joinPath(argv0Path, buildLandmark)
	if err != nil {
		return "", err
	}
	if isFile(marker) {
		prefix, err := joinPath(argv0Path, c.Params.VPath)
		if err != nil {
			return "", err
		}
		if prefix, err = joinPath(prefix, buildLibDir); err != nil {
			return "", err
		}
		ok, err := isModuleRoot(prefix)
		if err != nil {
			return "", err
		}
		c.step("prefix", prefix, ok, "build tree")
		if ok {
			c.prefixFound = model.FoundByBuildMarker
			return prefix, nil
		}
	}

	// Walk from the executable's directory toward the root.
	prefix, err := copyAbsolute(argv0Path)
	if err != nil {
		return "", err
	}
	for prefix != "" {
		candidate, err := joinPath(prefix, c.libDir)
		if err != nil {
			return "", err
		}
		ok, err := isModuleRoot(candidate)
		if err != nil {
			return "", err
		}
		c.step("prefix", candidate, ok, "")
		if ok {
			c.prefixFound = model.FoundByWalk
			return candidate, nil
		}
		prefix = reduce(prefix)
	}

	// Compiled-in default.
	candidate, err := joinPath(c.Params.DefaultPrefix, c.libDir)
	if err != nil {
		return "", err
	}
	ok, err := isModuleRoot(candidate)
	if err != nil {
		return "", err
	}
	c.step("prefix", candidate, ok, "compiled default")
	if ok {
		c.prefixFound = model.FoundByWalk
		return candidate, nil
	}

	c.prefixFound = model.NotFound
	c.warn("Could not find platform independent libraries <prefix>")
	return candidate, nil
}

// finalizePrefix reduces the working value to the public prefix.
func (c *Calculator) finalizePrefix(prefix string) string {
	switch c.prefixFound {
	case model.FoundByWalk:
		// Undo ".../lib/pythonX.Y". The root filesystem reduces to "",
		// which the public value spells as the separator.
		prefix = reduce(reduce(prefix))
		if prefix == "" {
			prefix = separator
		}
		return prefix
	case model.FoundByBuildMarker:
		// Running uninstalled: the build tree itself is the truthful
		// public value, unreduced.
		return prefix
	default:
		return c.Params.DefaultPrefix
	}
}
