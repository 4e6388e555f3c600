package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconFirst     = "¹" // Highest priority entry
	IconLast      = "¶" // Lowest priority entry
	IconDuplicate = "≈" // Almost equal (duplicate)
	IconMissing   = "✗" // Thin X (directory or archive missing)
	IconOK        = " " // Space (OK - no icon to reduce noise)
	IconEnv       = "◆" // Diamond for $PYTHONPATH-injected entries
	IconZip       = "▣" // Boxed square for the stdlib zip archive
	IconBuild     = "⚒" // Hammer for build-tree provenance
)
