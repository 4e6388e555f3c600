//go:build windows

package calc

import "os"

// hostPlatform on Windows-like environments (MSYS/Cygwin layouts) adds the
// .exe suffix handling; without it the search can resolve to a directory of
// the same name as the program.
func hostPlatform() Platform {
	return Platform{
		ExecutablePath: nativeExecutablePath,
		ExeSuffix:      ".exe",
	}
}

func nativeExecutablePath() (string, bool) {
	path, err := os.Executable()
	return path, err == nil
}
