//go:build !darwin && !windows

package calc

// hostPlatform on plain POSIX systems has no extra capabilities: the
// executable is found by argv[0] and $PATH alone.
func hostPlatform() Platform {
	return Platform{}
}
