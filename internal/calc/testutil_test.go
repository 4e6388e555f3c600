package calc

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"pypath/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeExec(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

// installTree lays out an installed interpreter under root: bin/<prog>, the
// stdlib landmark and the dynamic-module directory. Returns the executable
// path.
func installTree(t *testing.T, root, prog string) string {
	t.Helper()
	exe := filepath.Join(root, "bin", prog)
	writeExec(t, exe)
	writeFile(t, filepath.Join(root, "lib", "python3.9", "os.py"), "# landmark\n")
	mkdir(t, filepath.Join(root, "lib", "python3.9", "lib-dynload"))
	return exe
}

// newTestCalc builds a Calculator with no platform capabilities, silent
// logging and compiled defaults pointing nowhere, so only the tree under
// test can match.
func newTestCalc(params model.Params) *Calculator {
	if params.DefaultPrefix == "" {
		params.DefaultPrefix = "/nonexistent/prefix"
	}
	if params.DefaultExecPrefix == "" {
		params.DefaultExecPrefix = "/nonexistent/exec-prefix"
	}
	c := New(params)
	c.Platform = Platform{}
	c.Log = log.New(io.Discard)
	return c
}
