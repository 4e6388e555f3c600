package calc

import (
	"os"
	"strings"

	"pypath/internal/model"
)

// ModuleMatch ties a search-path entry to a file in it that matched a
// module query.
type ModuleMatch struct {
	Index       int    `json:"Index"`
	MatchedFile string `json:"MatchedFile"`
}

// FindModules reports, in search order, the entries containing a file whose
// name starts with query (case-insensitive). The first match is where an
// import would resolve; later ones are shadowed. Zip archives and missing
// directories are skipped, and duplicate directories are scanned once.
func FindModules(entries []model.PathEntry, query string) []ModuleMatch {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	var matches []ModuleMatch
	seenDirs := make(map[string]bool)

	for i, entry := range entries {
		if entry.Source == model.SourceZip || seenDirs[entry.Value] {
			continue
		}
		// Marked before the scan: a repeated directory is never read twice,
		// match or not.
		seenDirs[entry.Value] = true
		files, err := os.ReadDir(entry.Value)
		if err != nil {
			continue
		}

		var matchedFile string
		for _, f := range files {
			name := strings.ToLower(f.Name())
			if strings.HasPrefix(name, query) {
				matchedFile = f.Name()
				if name == query || name == query+".py" {
					break
				}
			}
		}

		if matchedFile != "" {
			matches = append(matches, ModuleMatch{Index: i, MatchedFile: matchedFile})
		}
	}

	return matches
}
