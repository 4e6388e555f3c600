package calc

import "strings"

// locateProgram resolves the full path of the running executable from the
// raw program name. An empty result is not an error: it means "unknown
// executable", and the later searches will fall through to the compiled-in
// defaults.
func (c *Calculator) locateProgram(programName string) (string, error) {
	full, err := c.locateProgramRaw(programName)
	if err != nil {
		return "", err
	}

	if full != "" {
		if !isAbs(full) {
			if full, err = absolutize(full); err != nil {
				return "", err
			}
		}
		if c.Platform.ExeSuffix != "" {
			if full, err = addExeSuffix(full, c.Platform.ExeSuffix); err != nil {
				return "", err
			}
		}
	}

	c.step("program", full, full != "", "")
	return full, nil
}

func (c *Calculator) locateProgramRaw(programName string) (string, error) {
	// A program name with a separator is taken verbatim; it was invoked by
	// path, not found on $PATH.
	if strings.Contains(programName, separator) {
		return boundedCopy(programName, maxPathLen)
	}

	if c.Platform.ExecutablePath != nil {
		if path, ok := c.Platform.ExecutablePath(); ok && isAbs(path) {
			return boundedCopy(path, maxPathLen)
		}
	}

	if c.Params.PathEnv != "" {
		return whichProgram(c.Params.PathEnv, programName)
	}

	return "", nil
}

// whichProgram scans the delimiter-separated pathEnv for the first entry
// holding program as an executable regular file. Entries are tried in
// order; an empty entry yields a candidate relative to the working
// directory, matching Unix shell semantics for "".
func whichProgram(pathEnv, program string) (string, error) {
	for _, dir := range strings.Split(pathEnv, listDelimiter) {
		entry, err := boundedCopy(dir, maxPathLen)
		if err != nil {
			return "", err
		}
		candidate, err := joinPath(entry, program)
		if err != nil {
			return "", err
		}
		if isExecutableFile(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// addExeSuffix ensures path carries the platform's executable suffix. If
// the suffixed form is not an executable file the original path is kept.
func addExeSuffix(path, suffix string) (string, error) {
	if len(path) >= len(suffix) && strings.EqualFold(path[len(path)-len(suffix):], suffix) {
		return path, nil
	}
	if len(path)+len(suffix) > maxPathLen {
		return "", ErrPathTooLong
	}
	withSuffix := path + suffix
	if !isExecutableFile(withSuffix) {
		return path, nil
	}
	return withSuffix, nil
}
