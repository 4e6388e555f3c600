package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pypath/internal/model"
)

func TestGenerateReport(t *testing.T) {
	t.Parallel()

	a := model.Analysis{
		Config: model.PathConfig{
			ProgramName:     "python3",
			ProgramFullPath: "/opt/rt/bin/python3",
			Prefix:          "/opt/rt",
			ExecPrefix:      "/opt/rt",
		},
		ArgV0Path:            "/opt/rt/bin",
		ZipPath:              "/opt/rt/lib/python39.zip",
		PrefixProvenance:     model.FoundByWalk,
		ExecPrefixProvenance: model.FoundByWalk,
		VenvCfgFile:          "/opt/venv/pyvenv.cfg",
		VenvCfgLine:          3,
		PathEntries: []model.PathEntry{
			{Value: "/opt/rt/lib/python39.zip", Source: model.SourceZip},
			{Value: "/opt/rt/lib/python3.9", Source: model.SourceDefault, Exists: true},
			{
				Value: "/opt/rt/lib/python3.9", Source: model.SourceExecPrefix,
				Exists: true, IsDuplicate: true, DuplicateOf: 1,
				Remediation: "Duplicate of entry 2 (from default path); imports will always resolve there first.",
			},
		},
		Steps: []model.SearchStep{
			{Stage: "prefix", Candidate: "/opt/rt/lib/python3.9", Found: true, Detail: "home override"},
		},
		Diagnostics: []string{"Consider setting $PYTHONHOME to <prefix>[:<exec_prefix>]"},
	}

	report := GenerateReport(a, false)

	assert.Contains(t, report, "Executable:       /opt/rt/bin/python3")
	assert.Contains(t, report, "Prefix:           /opt/rt (found)")
	assert.Contains(t, report, "/opt/venv/pyvenv.cfg (home at line 3)")
	assert.Contains(t, report, model.IconMissing)
	assert.Contains(t, report, model.IconDuplicate)
	assert.Contains(t, report, "Duplicate of entry 2")
	assert.Contains(t, report, "PYTHONHOME")
	assert.NotContains(t, report, "Search steps:")
	assert.NotContains(t, report, "Home override:")

	verbose := GenerateReport(a, true)
	assert.Contains(t, verbose, "Search steps:")
	assert.Contains(t, verbose, "home override")
}

func TestGenerateReportZipMarker(t *testing.T) {
	t.Parallel()

	a := model.Analysis{
		PathEntries: []model.PathEntry{
			{Value: "/opt/rt/lib/python39.zip", Source: model.SourceZip, Exists: true},
		},
	}
	report := GenerateReport(a, false)
	assert.Contains(t, report, model.IconZip)
	assert.NotContains(t, report, model.IconMissing)
}

func TestGenerateReportEmptyFields(t *testing.T) {
	t.Parallel()

	report := GenerateReport(model.Analysis{}, false)
	assert.True(t, strings.Contains(report, "(none)"))
	assert.NotContains(t, report, "Virtual env:")
	assert.NotContains(t, report, "Diagnostics:")
}
