package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pypath/internal/calc"
	"pypath/internal/model"
)

//go:embed static/*
var staticFS embed.FS

//go:embed help.md
var helpMD string

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
	}
	return path
}

// Server serves the web UI and its JSON API. The calculation runs once per
// /api/analysis request so a changed environment is picked up on reload.
type Server struct {
	Run func() (model.Analysis, error)
	Log *log.Logger
}

// Start listens on the given port and blocks.
func (s *Server) Start(port string) error {
	if port == "" {
		port = "8080"
	}
	if s.Log == nil {
		s.Log = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	}

	mux := http.NewServeMux()

	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	mux.HandleFunc("/api/analysis", s.handleAnalysis)
	mux.HandleFunc("/api/file", s.handleFile)
	mux.HandleFunc("/api/line-context", s.handleLineContext)
	mux.HandleFunc("/api/ls", s.handleLs)
	mux.HandleFunc("/api/which", s.handleWhich)
	mux.HandleFunc("/api/help", s.handleHelp)

	s.Log.Info("Starting pypath web server", "url", "http://localhost:"+port)
	return http.ListenAndServe(":"+port, mux)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.Run()
	if err != nil {
		s.Log.Error("calculation failed", "err", err)
		http.Error(w, err.Error(), 500)
		return
	}

	response := struct {
		model.Analysis
		Report        string `json:"Report"`
		VerboseReport string `json:"VerboseReport"`
		Version       string `json:"Version"`
	}{
		Analysis:      a,
		Report:        calc.GenerateReport(a, false),
		VerboseReport: calc.GenerateReport(a, true),
		Version:       model.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", 400)
		return
	}

	content, err := os.ReadFile(expandTilde(path))
	if err != nil {
		http.Error(w, err.Error(), 404)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write(content)
}

func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	lineNumStr := r.URL.Query().Get("line")
	if path == "" || lineNumStr == "" {
		http.Error(w, "path and line are required", 400)
		return
	}

	lineNum := 0
	if _, err := fmt.Sscanf(lineNumStr, "%d", &lineNum); err != nil {
		http.Error(w, "invalid line number", 400)
		return
	}

	context := model.GetLineContext(path, lineNum)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(context)
}

type LsEntry struct {
	Name    string `json:"Name"`
	IsDir   bool   `json:"IsDir"`
	Size    int64  `json:"Size"`
	Mode    string `json:"Mode"`
	ModTime string `json:"ModTime"`
}

func (s *Server) handleLs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", 400)
		return
	}
	path = expandTilde(path)

	files, err := os.ReadDir(path)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	var entries []LsEntry
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		entries = append(entries, LsEntry{
			Name:    f.Name(),
			IsDir:   f.IsDir(),
			Size:    info.Size(),
			Mode:    info.Mode().String(),
			ModTime: info.ModTime().Format("Jan 02 15:04"),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleWhich(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", 400)
		return
	}

	a, err := s.Run()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	matches := calc.FindModules(a.PathEntries, query)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(text))
}
