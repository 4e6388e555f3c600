package calc

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// maxSymlinkHops is the Linux kernel 4.2 limit.
const maxSymlinkHops = 40

const (
	venvConfigName = "pyvenv.cfg"
	venvHomeKey    = "home"
)

// resolveSymlinks chases path until it no longer names a symlink. A
// relative link target is resolved against the parent of the current path.
// A chain longer than maxSymlinkHops is treated as a cycle and is fatal.
func resolveSymlinks(path string) (string, error) {
	links := 0
	for {
		target, err := os.Readlink(path)
		if err != nil {
			// Not a symlink (or unreadable): resolution is done.
			return path, nil
		}
		if isAbs(target) {
			if path, err = boundedCopy(target, maxPathLen); err != nil {
				return "", err
			}
		} else {
			if path, err = joinPath(reduce(path), target); err != nil {
				return "", err
			}
		}
		links++
		if links >= maxSymlinkHops {
			return "", ErrSymlinkLoop
		}
	}
}

// deriveArgv0Path turns the resolved executable path into the directory the
// prefix searches start from.
func (c *Calculator) deriveArgv0Path(programFullPath string) (string, error) {
	argv0, err := boundedCopy(programFullPath, maxPathLen)
	if err != nil {
		return "", err
	}

	if c.Platform.FrameworkPath != nil {
		if libPath, ok := c.Platform.FrameworkPath(); ok {
			if argv0, err = c.frameworkArgv0(libPath, programFullPath); err != nil {
				return "", err
			}
		}
	}

	if argv0, err = resolveSymlinks(argv0); err != nil {
		return "", err
	}

	argv0 = reduce(argv0)
	c.step("argv0", argv0, argv0 != "", "")
	return argv0, nil
}

// frameworkArgv0 handles the shared-framework case: when the runtime
// library was loaded out of a bundle, the library roots are relative to the
// bundle, not to the executable. A bundle without the stdlib next to it is
// an incomplete build-tree bundle, and the executable path stays in charge.
func (c *Calculator) frameworkArgv0(libPath, programFullPath string) (string, error) {
	candidate, err := joinPath(reduce(libPath), c.libDir)
	if err != nil {
		return "", err
	}
	ok, err := isModuleRoot(candidate)
	if err != nil {
		return "", err
	}
	if ok {
		return boundedCopy(libPath, maxPathLen)
	}
	return boundedCopy(programFullPath, maxPathLen)
}

// applyVenvConfig looks for a pyvenv.cfg next to the executable's directory
// and then in its parent. A "home" entry there redirects the whole search;
// absence of the file or of the key changes nothing.
func (c *Calculator) applyVenvConfig(argv0Path string) (string, error) {
	filename, err := joinPath(argv0Path, venvConfigName)
	if err != nil {
		return "", err
	}

	file, openErr := os.Open(filename)
	if openErr != nil {
		filename = reduce(reduce(filename))
		if filename, err = joinPath(filename, venvConfigName); err != nil {
			return "", err
		}
		if file, openErr = os.Open(filename); openErr != nil {
			return argv0Path, nil
		}
	}
	defer file.Close()

	home, line := findConfigValue(file, venvHomeKey)
	if home == "" {
		return argv0Path, nil
	}
	if home, err = boundedCopy(home, maxPathLen); err != nil {
		return "", err
	}

	c.venvCfgFile = filename
	c.venvCfgLine = line
	c.step("venv", filename, true, "home = "+home)
	return home, nil
}

// findConfigValue scans line-oriented "key = value" content for key,
// returning its trimmed value and line number. Blank lines and #-comments
// are skipped; a missing key returns "".
func findConfigValue(r io.Reader, key string) (string, int) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(k) == key {
			return strings.TrimSpace(v), lineNo
		}
	}
	return "", 0
}
