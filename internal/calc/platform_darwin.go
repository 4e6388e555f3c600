//go:build darwin

package calc

import "os"

// hostPlatform on macOS asks the kernel for the running image's path
// (os.Executable wraps _NSGetExecutablePath). A shebang line like
// "#!/opt/rt/bin/python" leaves only "python" in argv[0], and a plain $PATH
// scan could then pick up the wrong interpreter.
//
// Framework-bundle detection needs dyld introspection that is not reachable
// without cgo, so FrameworkPath stays unset; embedders that know their
// bundle path can supply their own hook.
func hostPlatform() Platform {
	return Platform{
		ExecutablePath: nativeExecutablePath,
	}
}

func nativeExecutablePath() (string, bool) {
	path, err := os.Executable()
	return path, err == nil
}
