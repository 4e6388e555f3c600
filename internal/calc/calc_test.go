package calc

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypath/internal/model"
)

func TestCalculateInstalledTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	exe := installTree(t, root, "python3")

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{ProgramName: exe}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	assert.Equal(t, exe, cfg.ProgramFullPath)
	assert.Equal(t, filepath.Join(root, "bin"), a.ArgV0Path)
	assert.Equal(t, root, cfg.Prefix)
	assert.Equal(t, root, cfg.ExecPrefix)
	assert.Equal(t, model.FoundByWalk, a.PrefixProvenance)
	assert.Equal(t, model.FoundByWalk, a.ExecPrefixProvenance)
	assert.Equal(t, root+"/lib/python39.zip", a.ZipPath)

	// The single empty default fragment merges to the stdlib directory
	// itself, which must exist on an installed tree.
	want := strings.Join([]string{
		root + "/lib/python39.zip",
		root + "/lib/python3.9",
		root + "/lib/python3.9/lib-dynload",
	}, listDelimiter)
	assert.Equal(t, want, cfg.ModuleSearchPath)
	require.Len(t, a.PathEntries, 3)
	assert.Equal(t, model.SourceDefault, a.PathEntries[1].Source)
	assert.True(t, a.PathEntries[1].Exists)
	assert.True(t, a.PathEntries[2].Exists)
	assert.Empty(t, a.Diagnostics)
}

func TestCalculateVirtualEnv(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	installTree(t, base, "python3")
	venv := t.TempDir()
	vexe := filepath.Join(venv, "bin", "python3")
	writeExec(t, vexe)
	writeFile(t, filepath.Join(venv, "pyvenv.cfg"), "home = "+base+"/bin\n")

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{ProgramName: vexe}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	// The cfg redirects the search to the base installation.
	assert.Equal(t, base+"/bin", a.ArgV0Path)
	assert.Equal(t, base, cfg.Prefix)
	assert.Equal(t, base, cfg.ExecPrefix)
	assert.Equal(t, filepath.Join(venv, "pyvenv.cfg"), a.VenvCfgFile)
	assert.Equal(t, 1, a.VenvCfgLine)
}

func TestCalculateBuildTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	exe := filepath.Join(src, "python")
	writeExec(t, exe)
	writeFile(t, filepath.Join(src, "Modules", "Setup.local"), "")
	writeFile(t, filepath.Join(src, "Lib", "os.py"), "")
	writeFile(t, filepath.Join(src, "pybuilddir.txt"), "build/lib.linux-x86_64-3.9")

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{ProgramName: exe}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	assert.Equal(t, model.FoundByBuildMarker, a.PrefixProvenance)
	assert.Equal(t, model.FoundByBuildMarker, a.ExecPrefixProvenance)
	// Build-tree roots are published unreduced.
	assert.Equal(t, src+"/Lib", cfg.Prefix)
	assert.Equal(t, src+"/build/lib.linux-x86_64-3.9", cfg.ExecPrefix)
	// The archive never lives in a build tree.
	assert.Equal(t, "/nonexistent/prefix/lib/python39.zip", a.ZipPath)
	assert.Empty(t, a.Diagnostics)
}

func TestCalculateNothingFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := filepath.Join(dir, "python3")
	writeExec(t, exe)

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{ProgramName: exe}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	assert.Equal(t, model.NotFound, a.PrefixProvenance)
	assert.Equal(t, model.NotFound, a.ExecPrefixProvenance)
	assert.Equal(t, "/nonexistent/prefix", cfg.Prefix)
	assert.Equal(t, "/nonexistent/exec-prefix", cfg.ExecPrefix)

	require.Len(t, a.Diagnostics, 3)
	assert.Contains(t, a.Diagnostics[0], "platform independent")
	assert.Contains(t, a.Diagnostics[1], "platform dependent")
	assert.Contains(t, a.Diagnostics[2], "PYTHONHOME")
}

func TestCalculateHomeOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := filepath.Join(dir, "python3")
	writeExec(t, exe)

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{ProgramName: exe, Home: "/opt/a" + listDelimiter + "/opt/b"}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	// No filesystem probing on the override path.
	assert.Equal(t, "/opt/a", cfg.Prefix)
	assert.Equal(t, "/opt/b", cfg.ExecPrefix)
	assert.Equal(t, model.FoundByWalk, a.PrefixProvenance)
	assert.Empty(t, a.Diagnostics)
}

func TestCalculatePreseededFieldsKept(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	exe := installTree(t, root, "python3")

	c := newTestCalc(model.Params{Version: "3.9"})
	cfg := &model.PathConfig{
		ProgramName:      exe,
		Prefix:           "/pinned/prefix",
		ExecPrefix:       "/pinned/exec",
		ModuleSearchPath: "/pinned/path",
	}
	_, err := c.Calculate(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/pinned/prefix", cfg.Prefix)
	assert.Equal(t, "/pinned/exec", cfg.ExecPrefix)
	assert.Equal(t, "/pinned/path", cfg.ModuleSearchPath)
}

func TestCalculatePythonPathEnv(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	exe := installTree(t, root, "python3")
	extra := t.TempDir()

	c := newTestCalc(model.Params{
		Version:       "3.9",
		PythonPathEnv: extra,
	})
	cfg := &model.PathConfig{ProgramName: exe}
	a, err := c.Calculate(cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cfg.ModuleSearchPath, extra+listDelimiter))
	require.Len(t, a.PathEntries, 4)
	assert.Equal(t, model.SourceEnv, a.PathEntries[0].Source)
	assert.True(t, a.PathEntries[0].Exists)
	assert.Equal(t, root+"/lib/python3.9", a.PathEntries[2].Value)
	assert.True(t, a.PathEntries[2].Exists)
}

func TestAnalyzeEntries(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()
	c := newTestCalc(model.Params{
		PythonPathEnv:     existing + listDelimiter + existing,
		DefaultModulePath: "lib/python3.9",
	})
	searchPath := strings.Join([]string{
		existing, existing, "/z.zip", "/p/lib/python3.9", "/xp",
	}, listDelimiter)

	entries := c.analyzeEntries(searchPath)
	require.Len(t, entries, 5)

	assert.Equal(t, model.SourceEnv, entries[0].Source)
	assert.Equal(t, model.SourceEnv, entries[1].Source)
	assert.Equal(t, model.SourceZip, entries[2].Source)
	assert.Equal(t, model.SourceDefault, entries[3].Source)
	assert.Equal(t, model.SourceExecPrefix, entries[4].Source)

	assert.False(t, entries[0].IsDuplicate)
	assert.True(t, entries[1].IsDuplicate)
	assert.Equal(t, 0, entries[1].DuplicateOf)
	assert.Contains(t, entries[1].Remediation, "entry 1")

	assert.True(t, entries[0].Exists)
	assert.False(t, entries[2].Exists)
	assert.False(t, entries[3].Exists)
}

func TestWarningsGate(t *testing.T) {
	t.Parallel()

	t.Run("suppressed by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		c := newTestCalc(model.Params{})
		c.Log = log.New(&buf)
		c.warn("something is off")
		assert.Empty(t, buf.String())
		assert.Equal(t, []string{"something is off"}, c.diagnostics)
	})

	t.Run("emitted when enabled", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		c := newTestCalc(model.Params{Warnings: true})
		c.Log = log.New(&buf)
		c.warn("something is off")
		assert.Contains(t, buf.String(), "something is off")
	})
}
