package calc

import (
	"strings"

	"pypath/internal/model"
)

// zipPath composes the stdlib zip archive path, "<basis>/lib/pythonXY.zip".
// The basis is the twice-reduced public prefix after a normal walk; a build
// tree or an unresolved prefix falls back to the compiled default, since
// neither carries an archive of its own.
func (c *Calculator) zipPath(prefix string) (string, error) {
	var basis string
	var err error
	if c.prefixFound == model.FoundByWalk {
		basis = reduce(reduce(prefix))
	} else {
		if basis, err = boundedCopy(c.Params.DefaultPrefix, maxPathLen); err != nil {
			return "", err
		}
	}
	zip, err := joinPath(basis, "lib/python"+versionXY(c.Params.Version)+".zip")
	if err != nil {
		return "", err
	}
	c.step("zip", zip, isFile(zip), "")
	return zip, nil
}

// versionXY collapses a "X.Y" version token to "XY" for the archive name.
func versionXY(v string) string {
	if len(v) < 3 {
		return "00"
	}
	return v[:1] + v[2:3]
}

// assembleModulePath builds the final search path string, in fixed order:
// the run-time $PYTHONPATH override verbatim, the zip archive, the
// compile-time default fragments merged onto the working prefix, and the
// working exec-prefix. Existence checking already happened during the
// searches; this stage is purely syntactic.
func (c *Calculator) assembleModulePath(prefix, execPrefix, zipPath string) string {
	fragments := strings.Split(c.Params.DefaultModulePath, listDelimiter)

	// Size the buffer up front; every component is known.
	size := len(zipPath) + 1 + len(execPrefix)
	if c.Params.PythonPathEnv != "" {
		size += len(c.Params.PythonPathEnv) + 1
	}
	for _, frag := range fragments {
		size += len(prefix) + 1 + len(frag) + 1
	}

	var buf strings.Builder
	buf.Grow(size)

	if c.Params.PythonPathEnv != "" {
		buf.WriteString(c.Params.PythonPathEnv)
		buf.WriteString(listDelimiter)
	}

	buf.WriteString(zipPath)
	buf.WriteString(listDelimiter)

	for i, frag := range fragments {
		if i > 0 {
			buf.WriteString(listDelimiter)
		}
		if !isAbs(frag) {
			buf.WriteString(prefix)
			// No separator before an empty fragment: the prefix alone is
			// the entry. This rule is deliberately spelled out here rather
			// than delegated to joinPath, whose insertion rule differs.
			if prefix != "" && !strings.HasSuffix(prefix, separator) && frag != "" {
				buf.WriteString(separator)
			}
		}
		buf.WriteString(frag)
	}
	buf.WriteString(listDelimiter)

	buf.WriteString(execPrefix)
	return buf.String()
}
