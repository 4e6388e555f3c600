package model

// Version of pypath, shown by --version and the web UI.
const Version = "0.2.0"

// Params holds the inputs of one path calculation. It plays the role of the
// constants an interpreter bakes in at build time plus the environment the
// caller read at startup; the calculator itself never touches the process
// environment.
type Params struct {
	PathEnv       string // $PATH value used for the executable search
	PythonPathEnv string // $PYTHONPATH value, "" when unset; prepended verbatim

	DefaultModulePath string // compile-time default search path (delimiter-separated fragments)
	DefaultPrefix     string // compile-time platform independent root (PREFIX)
	DefaultExecPrefix string // compile-time platform dependent root (EXEC_PREFIX)

	Version string // runtime version token, e.g. "3.9"
	VPath   string // build-tree source offset relative to the executable's directory

	Warnings bool // emit diagnostics when a library root cannot be found
}

// PathConfig is the result of a calculation. Fields that are non-empty on
// entry are trusted and left untouched, so an embedder can pin any of them.
type PathConfig struct {
	ProgramName string `json:"ProgramName"` // raw invocation token (input)
	Home        string `json:"Home"`        // "prefix[:exec_prefix]" override (input)

	ProgramFullPath  string `json:"ProgramFullPath"`  // absolute, symlink-resolved executable
	Prefix           string `json:"Prefix"`           // platform independent library root
	ExecPrefix       string `json:"ExecPrefix"`       // platform dependent library root
	ModuleSearchPath string `json:"ModuleSearchPath"` // final delimiter-joined search path
}

// Provenance records how a library root was found.
type Provenance int

const (
	// NotFound means every search location failed and the compiled-in
	// default was used as-is.
	NotFound Provenance = iota
	// FoundByWalk means an installed tree matched a landmark during the
	// home-override, parent-walk or compiled-default probe.
	FoundByWalk
	// FoundByBuildMarker means the process runs from an uninstalled build
	// tree, detected via its dedicated marker file.
	FoundByBuildMarker
)

func (p Provenance) String() string {
	switch p {
	case FoundByWalk:
		return "found"
	case FoundByBuildMarker:
		return "build tree"
	default:
		return "not found"
	}
}

// SearchStep is one probe made during the calculation. The step log gives
// the final path configuration its attribution, the way a PATH debugger
// attributes entries to the config file that added them.
type SearchStep struct {
	Stage     string `json:"Stage"`     // "program", "argv0", "venv", "prefix", "exec_prefix", ...
	Candidate string `json:"Candidate"` // the path that was probed
	Found     bool   `json:"Found"`
	Detail    string `json:"Detail,omitempty"`
}

// Sources a PathEntry can be attributed to.
const (
	SourceEnv        = "$PYTHONPATH"
	SourceZip        = "zip archive"
	SourceDefault    = "default path"
	SourceExecPrefix = "exec_prefix"
)

// PathEntry is a single component of the final module search path.
type PathEntry struct {
	Value       string `json:"Value"`
	Source      string `json:"Source"` // one of the Source* constants
	Exists      bool   `json:"Exists"`
	IsDuplicate bool   `json:"IsDuplicate"`
	DuplicateOf int    `json:"DuplicateOf"` // index of the first occurrence
	Remediation string `json:"Remediation,omitempty"`
}

// Analysis is the full picture of one calculation: the resolved config plus
// everything needed to explain it.
type Analysis struct {
	Config    PathConfig `json:"Config"`
	ArgV0Path string     `json:"ArgV0Path"` // executable's directory after symlink/venv handling
	ZipPath   string     `json:"ZipPath"`   // stdlib zip archive path

	PrefixProvenance     Provenance `json:"PrefixProvenance"`
	ExecPrefixProvenance Provenance `json:"ExecPrefixProvenance"`

	VenvCfgFile string `json:"VenvCfgFile,omitempty"` // pyvenv.cfg that supplied "home", if any
	VenvCfgLine int    `json:"VenvCfgLine,omitempty"` // line number of the home entry

	PathEntries []PathEntry  `json:"PathEntries"`
	Steps       []SearchStep `json:"Steps"`
	Diagnostics []string     `json:"Diagnostics"`
}
