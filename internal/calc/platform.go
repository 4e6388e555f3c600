package calc

// Platform isolates the capabilities that vary per operating system, so the
// shared search logic stays free of build-tag branches. The zero value
// describes a plain POSIX system: no native executable-path API, no
// executable suffix, no framework bundles. Tests inject their own.
type Platform struct {
	// ExecutablePath returns the running image's path where the OS exposes
	// one. For bare program names it is consulted before the $PATH scan,
	// because argv[0] of a script shebang only carries the base name.
	ExecutablePath func() (string, bool)

	// ExeSuffix is required on located executables on some platforms
	// (e.g. ".exe"); empty elsewhere.
	ExeSuffix string

	// FrameworkPath returns the loaded runtime library's own path when the
	// process runs out of a shared framework bundle. The library roots then
	// live next to the library, not next to the executable.
	FrameworkPath func() (string, bool)
}
