// Package calc computes the path configuration a CPython-style interpreter
// derives at startup: the resolved executable, the platform independent and
// platform dependent library roots, and the final module search path.
//
// The computation is a pure function of its Params, the seeded PathConfig
// and the filesystem; it reads marker files and probes directories but
// never creates or modifies anything.
package calc

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"pypath/internal/model"
)

// Compiled-in defaults, standing in for an interpreter build's configure
// output. All of them can be overridden through Params.
const (
	DefaultVersion    = "3.9"
	DefaultPrefix     = "/usr/local"
	DefaultExecPrefix = "/usr/local"
)

// Calculator runs one path calculation. It is not safe for concurrent use:
// all working state lives on the struct for the duration of a Calculate
// call and is reset on the next one.
type Calculator struct {
	Params   model.Params
	Platform Platform
	Log      *log.Logger

	libDir          string // "lib/python<version>"
	prefixFound     model.Provenance
	execPrefixFound model.Provenance
	steps           []model.SearchStep
	diagnostics     []string
	venvCfgFile     string
	venvCfgLine     int
}

// New returns a Calculator for the host platform, filling unset Params
// with the compiled-in defaults. Warnings go to stderr.
func New(params model.Params) *Calculator {
	if params.Version == "" {
		params.Version = DefaultVersion
	}
	if params.DefaultPrefix == "" {
		params.DefaultPrefix = DefaultPrefix
	}
	if params.DefaultExecPrefix == "" {
		params.DefaultExecPrefix = DefaultExecPrefix
	}
	return &Calculator{
		Params:   params,
		Platform: hostPlatform(),
		Log:      log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false}),
	}
}

// Calculate fills the empty fields of cfg and returns the full analysis.
// Pre-seeded fields (a pinned ProgramFullPath, Prefix, ExecPrefix or
// ModuleSearchPath) are trusted and left untouched. Errors are the fatal
// class only; an unresolved library root degrades to the compiled defaults
// and still succeeds.
func (c *Calculator) Calculate(cfg *model.PathConfig) (model.Analysis, error) {
	c.reset()
	c.libDir = "lib/python" + c.Params.Version

	if cfg.ProgramFullPath == "" {
		full, err := c.locateProgram(cfg.ProgramName)
		if err != nil {
			return model.Analysis{}, err
		}
		cfg.ProgramFullPath = full
	}

	argv0Path, err := c.deriveArgv0Path(cfg.ProgramFullPath)
	if err != nil {
		return model.Analysis{}, err
	}
	if argv0Path, err = c.applyVenvConfig(argv0Path); err != nil {
		return model.Analysis{}, err
	}

	prefix, err := c.searchPrefix(cfg, argv0Path)
	if err != nil {
		return model.Analysis{}, err
	}
	zip, err := c.zipPath(prefix)
	if err != nil {
		return model.Analysis{}, err
	}
	execPrefix, err := c.searchExecPrefix(cfg, argv0Path)
	if err != nil {
		return model.Analysis{}, err
	}

	if c.prefixFound == model.NotFound || c.execPrefixFound == model.NotFound {
		c.warn("Consider setting $PYTHONHOME to <prefix>[:<exec_prefix>]")
	}

	if cfg.ModuleSearchPath == "" {
		cfg.ModuleSearchPath = c.assembleModulePath(prefix, execPrefix, zip)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = c.finalizePrefix(prefix)
	}
	if cfg.ExecPrefix == "" {
		cfg.ExecPrefix = c.finalizeExecPrefix(execPrefix)
	}

	return model.Analysis{
		Config:               *cfg,
		ArgV0Path:            argv0Path,
		ZipPath:              zip,
		PrefixProvenance:     c.prefixFound,
		ExecPrefixProvenance: c.execPrefixFound,
		VenvCfgFile:          c.venvCfgFile,
		VenvCfgLine:          c.venvCfgLine,
		PathEntries:          c.analyzeEntries(cfg.ModuleSearchPath),
		Steps:                c.steps,
		Diagnostics:          c.diagnostics,
	}, nil
}

func (c *Calculator) reset() {
	c.prefixFound = model.NotFound
	c.execPrefixFound = model.NotFound
	c.steps = nil
	c.diagnostics = nil
	c.venvCfgFile = ""
	c.venvCfgLine = 0
}

func (c *Calculator) step(stage, candidate string, found bool, detail string) {
	c.steps = append(c.steps, model.SearchStep{
		Stage:     stage,
		Candidate: candidate,
		Found:     found,
		Detail:    detail,
	})
}

// warn records a diagnostic and, when warnings are enabled, emits it.
func (c *Calculator) warn(msg string) {
	c.diagnostics = append(c.diagnostics, msg)
	if c.Params.Warnings {
		c.Log.Warn(msg)
	}
}

// analyzeEntries splits the final search path into attributed entries. The
// attribution mirrors the assembly order: $PYTHONPATH entries first, then
// the zip archive, the default fragments and the exec-prefix. Later
// occurrences of a value already seen are flagged as duplicates.
func (c *Calculator) analyzeEntries(searchPath string) []model.PathEntry {
	parts := strings.Split(searchPath, listDelimiter)

	var sources []string
	if c.Params.PythonPathEnv != "" {
		for range strings.Split(c.Params.PythonPathEnv, listDelimiter) {
			sources = append(sources, model.SourceEnv)
		}
	}
	sources = append(sources, model.SourceZip)
	for range strings.Split(c.Params.DefaultModulePath, listDelimiter) {
		sources = append(sources, model.SourceDefault)
	}
	sources = append(sources, model.SourceExecPrefix)

	entries := make([]model.PathEntry, len(parts))
	for i, value := range parts {
		source := ""
		if i < len(sources) {
			source = sources[i]
		}
		exists := isDir(value)
		if source == model.SourceZip {
			exists = isFile(value)
		}
		entries[i] = model.PathEntry{Value: value, Source: source, Exists: exists}
	}

	seen := make(map[string]int)
	for i := range entries {
		if first, ok := seen[entries[i].Value]; ok {
			entries[i].IsDuplicate = true
			entries[i].DuplicateOf = first
			entries[i].Remediation = fmt.Sprintf(
				"Duplicate of entry %d (from %s); imports will always resolve there first.",
				first+1, entries[first].Source,
			)
		} else {
			seen[entries[i].Value] = i
		}
	}

	return entries
}
