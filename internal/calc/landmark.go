package calc

import "os"

// landmark is the file whose presence confirms a directory is the platform
// independent standard library.
const landmark = "os.py"

// Stat-based predicates. Any stat failure reads as "no", never as an
// error; a path we cannot inspect is a path we cannot use.

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func isExecutableFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular() && st.Mode().Perm()&0111 != 0
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// isModuleRoot reports whether dir contains the stdlib landmark module,
// accepting the compiled form for installs that strip sources.
func isModuleRoot(dir string) (bool, error) {
	filename, err := joinPath(dir, landmark)
	if err != nil {
		return false, err
	}
	if isFile(filename) {
		return true, nil
	}
	if len(filename)+1 <= maxPathLen && isFile(filename+"c") {
		return true, nil
	}
	return false, nil
}
