package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"pypath/internal/calc"
	"pypath/internal/model"
	"pypath/internal/tui"
	"pypath/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "abulka",
		Repository: "pypath",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/abulka/pypath/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pypath [options]\n\n")
		fmt.Fprintf(os.Stderr, "pypath computes the path configuration a Python interpreter derives at\n")
		fmt.Fprintf(os.Stderr, "startup (executable, prefix, exec_prefix, module search path) and\n")
		fmt.Fprintf(os.Stderr, "attributes every entry to the rule that added it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pypath                   # Start TUI mode\n")
		fmt.Fprintf(os.Stderr, "  pypath --report          # Print diagnostic report to stdout\n")
		fmt.Fprintf(os.Stderr, "  pypath -r -o r.txt       # Save report to file\n")
		fmt.Fprintf(os.Stderr, "  pypath --json            # Output analysis as JSON\n")
		fmt.Fprintf(os.Stderr, "  pypath --program python2 # Analyze a different interpreter\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output raw analysis data as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Generate a detailed diagnostic report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include the full probe log in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")

	programFlag := pflag.String("program", "python3", "Interpreter name or path to analyze")
	homeFlag := pflag.String("home", "", "Override prefix[:exec_prefix] (default $PYTHONHOME)")
	pythonPathFlag := pflag.String("pythonpath", "", "Entries to prepend to the search path (default $PYTHONPATH)")
	pyVersionFlag := pflag.String("pyversion", calc.DefaultVersion, "Runtime version the interpreter reports (X.Y)")
	prefixFlag := pflag.String("prefix", calc.DefaultPrefix, "Compiled-in platform independent root")
	execPrefixFlag := pflag.String("exec-prefix", calc.DefaultExecPrefix, "Compiled-in platform dependent root")
	modulePathFlag := pflag.String("module-path", "", "Compiled-in default search path fragments (delimiter-separated; an empty fragment is the versioned prefix itself)")
	vpathFlag := pflag.String("vpath", "", "Build-tree source offset relative to the executable's directory")
	quietFlag := pflag.BoolP("quiet", "q", false, "Suppress warnings about unresolved library roots")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("pypath version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	// The calculator never touches the process environment itself; all of
	// it is read here, once. The default module path is the single empty
	// fragment: merged onto the working prefix it names the versioned
	// stdlib directory itself.
	pythonPath := *pythonPathFlag
	if pythonPath == "" {
		pythonPath = os.Getenv("PYTHONPATH")
	}
	params := model.Params{
		PathEnv:           os.Getenv("PATH"),
		PythonPathEnv:     pythonPath,
		DefaultModulePath: *modulePathFlag,
		DefaultPrefix:     *prefixFlag,
		DefaultExecPrefix: *execPrefixFlag,
		Version:           *pyVersionFlag,
		VPath:             *vpathFlag,
		Warnings:          !*quietFlag,
	}
	program := *programFlag
	home := *homeFlag
	if home == "" {
		home = os.Getenv("PYTHONHOME")
	}

	run := func() (model.Analysis, error) {
		cfg := &model.PathConfig{ProgramName: program, Home: home}
		return calc.New(params).Calculate(cfg)
	}

	if *webFlag {
		server := &web.Server{Run: run}
		if err := server.Start("8080"); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *reportFlag {
		runReportMode(run, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(run)
		return
	}

	// Default: TUI
	runTuiMode(run)
}

func runReportMode(run func() (model.Analysis, error), outputFile string, verbose bool) {
	a, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := calc.GenerateReport(a, verbose)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

func runJsonMode(run func() (model.Analysis, error)) {
	a, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(a)
}

func runTuiMode(run func() (model.Analysis, error)) {
	m := tui.InitialModel(run)
	if err := tui.Run(m); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
