package calc

import (
	"fmt"
	"strings"

	"pypath/internal/model"
)

// GenerateReport renders a plain-text diagnostic report of an analysis.
// verbose adds the full probe log.
func GenerateReport(a model.Analysis, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "pypath %s - path configuration report\n", model.Version)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&b, "Program name:     %s\n", valueOrNone(a.Config.ProgramName))
	fmt.Fprintf(&b, "Executable:       %s\n", valueOrNone(a.Config.ProgramFullPath))
	fmt.Fprintf(&b, "Executable dir:   %s\n", valueOrNone(a.ArgV0Path))
	if a.Config.Home != "" {
		fmt.Fprintf(&b, "Home override:    %s\n", a.Config.Home)
	}
	if a.VenvCfgFile != "" {
		fmt.Fprintf(&b, "Virtual env:      %s (home at line %d)\n", a.VenvCfgFile, a.VenvCfgLine)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Prefix:           %s (%s)\n", a.Config.Prefix, a.PrefixProvenance)
	fmt.Fprintf(&b, "Exec prefix:      %s (%s)\n", a.Config.ExecPrefix, a.ExecPrefixProvenance)
	fmt.Fprintf(&b, "Stdlib archive:   %s\n", a.ZipPath)
	b.WriteString("\n")

	b.WriteString("Module search path:\n")
	for i, entry := range a.PathEntries {
		marker := " "
		switch {
		case entry.IsDuplicate:
			marker = model.IconDuplicate
		case !entry.Exists:
			marker = model.IconMissing
		case entry.Source == model.SourceZip:
			marker = model.IconZip
		}
		fmt.Fprintf(&b, " %2d. %s %-50s %s\n", i+1, marker, entry.Value, entry.Source)
		if entry.Remediation != "" {
			fmt.Fprintf(&b, "       %s\n", entry.Remediation)
		}
	}

	if len(a.Diagnostics) > 0 {
		b.WriteString("\nDiagnostics:\n")
		for _, d := range a.Diagnostics {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	if verbose {
		b.WriteString("\nSearch steps:\n")
		for _, s := range a.Steps {
			status := "miss"
			if s.Found {
				status = "hit "
			}
			fmt.Fprintf(&b, "  [%-11s] %s %s", s.Stage, status, s.Candidate)
			if s.Detail != "" {
				fmt.Fprintf(&b, " (%s)", s.Detail)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
